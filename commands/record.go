package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-input-replay/internal/core/capture"
	"github.com/penwyp/go-input-replay/internal/core/timeline"
	"github.com/penwyp/go-input-replay/internal/host/terminal"
)

var (
	recordOutput string
	recordFrames uint64
	recordTick   time.Duration

	recordMouse    bool
	recordKeyboard bool
	recordGamepad  bool

	recordCmd = &cobra.Command{
		Use:   "record",
		Short: "Capture terminal keystrokes into a recording file",
		RunE:  runRecord,
	}
)

func init() {
	recordCmd.Flags().StringVarP(&recordOutput, "output", "o", "recording.jsonl",
		"Recording file to write")
	recordCmd.Flags().Uint64Var(&recordFrames, "frames", 0,
		"Stop after this many frames (0 = until ESC)")
	recordCmd.Flags().DurationVar(&recordTick, "tick", 16*time.Millisecond,
		"Tick interval")
	recordCmd.Flags().BoolVar(&recordKeyboard, "keyboard", true,
		"Capture keyboard events")
	recordCmd.Flags().BoolVar(&recordMouse, "mouse", true,
		"Capture mouse button and motion events")
	recordCmd.Flags().BoolVar(&recordGamepad, "gamepad", true,
		"Capture gamepad events")

	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	reader, err := terminal.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}

	cfg := capture.Config{
		Filter: capture.Filter{
			MouseButtons: recordMouse,
			MouseMotion:  recordMouse,
			Keyboard:     recordKeyboard,
			Gamepad:      recordGamepad,
		},
		OutputPath: expandPath(recordOutput),
	}
	if recordFrames > 0 {
		limit := timeline.FrameCount(recordFrames)
		cfg.FrameLimit = &limit
	}

	session := capture.Begin(cfg)
	fmt.Printf("Recording to %s, press ESC to stop.\r\n", recordOutput)

	ticker := time.NewTicker(recordTick)
	start := time.Now()
	var frame timeline.FrameCount

	for range ticker.C {
		keys, quit := reader.Drain()
		raw := &capture.RawInput{Keyboard: keys, SessionEnd: quit}
		if session.Tick(frame, time.Since(start), raw) {
			break
		}
		frame = frame.Add(1)
	}
	ticker.Stop()

	if err := reader.Close(); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}

	log, err := session.End()
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %d events over %d frames to %s\n", log.Len(), frame+1, recordOutput)
	return nil
}
