package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-input-replay/internal/util"
)

var (
	// Logging related
	debug   bool
	logFile string

	rootCmd = &cobra.Command{
		Use:   "input-replay",
		Short: "Deterministic capture and playback of user input",
		Long: `input-replay records streams of user-input events and plays them back
exactly, so interactive behavior can be tested or demonstrated without a
human operator.

Examples:
  input-replay record -o session.jsonl                 # Capture keystrokes until ESC
  input-replay record -o session.jsonl --frames 600    # Capture at most 600 frames
  input-replay replay -i session.jsonl                 # Replay in real time
  input-replay replay -i session.jsonl -s frame-loop --start 0 --end 120
  input-replay inspect -i session.jsonl --events       # List every record
  input-replay inspect -i session.jsonl --watch        # Re-render on change`,
		SilenceUsage: true,
	}
)

const defaultLogFile = "~/.input-replay/logs/app.log"

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logLevel := "info"
		if debug {
			logLevel = "debug"
		}
		path := expandPath(logFile)
		if err := ensureDir(filepath.Dir(path)); err != nil {
			path = ""
		}
		util.InitLogger(logLevel, path, debug)
	}
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
