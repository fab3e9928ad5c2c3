package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-input-replay/internal/data/codec"
	"github.com/penwyp/go-input-replay/internal/data/watcher"
	"github.com/penwyp/go-input-replay/internal/presentation/formatter"
)

var (
	inspectInput  string
	inspectOutput string
	inspectEvents bool
	inspectWatch  bool

	inspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the contents of a recording file",
		RunE:  runInspect,
	}
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectInput, "input", "i", "recording.jsonl",
		"Recording file to inspect")
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "table",
		"Output format (table, summary, json)")
	inspectCmd.Flags().BoolVar(&inspectEvents, "events", false,
		"List every record individually")
	inspectCmd.Flags().BoolVar(&inspectWatch, "watch", false,
		"Re-render whenever the file changes")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := formatter.New(inspectOutput)
	if err != nil {
		return err
	}

	path := expandPath(inspectInput)

	render := func() error {
		log, cursor, err := codec.Load(path)
		if err != nil {
			return err
		}
		return f.Format(formatter.BuildReport(inspectInput, log, cursor, inspectEvents))
	}

	if err := render(); err != nil {
		return err
	}
	if !inspectWatch {
		return nil
	}

	w, err := watcher.New(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", inspectInput, err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes():
			fmt.Println()
			if err := render(); err != nil {
				// The file may be mid-write; keep watching.
				fmt.Printf("(%v)\n", err)
			}
		}
	}
}
