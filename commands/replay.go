package commands

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-input-replay/internal/core/event"
	"github.com/penwyp/go-input-replay/internal/core/playback"
	"github.com/penwyp/go-input-replay/internal/core/timeline"
	"github.com/penwyp/go-input-replay/internal/util"
)

var (
	replayInput    string
	replayStrategy string
	replayStart    string
	replayEnd      string
	replayWindow   string
	replayTick     time.Duration

	replayCmd = &cobra.Command{
		Use:   "replay",
		Short: "Play a recording back, printing each emitted event",
		RunE:  runReplay,
	}
)

func init() {
	replayCmd.Flags().StringVarP(&replayInput, "input", "i", "recording.jsonl",
		"Recording file to play back")
	replayCmd.Flags().StringVarP(&replayStrategy, "strategy", "s", "realtime",
		"Pacing strategy (realtime, lockstep, time-once, time-loop, frame-once, frame-loop)")
	replayCmd.Flags().StringVar(&replayStart, "start", "",
		"Range start: a duration (e.g. 1.5s) for time strategies, a frame number for frame strategies")
	replayCmd.Flags().StringVar(&replayEnd, "end", "",
		"Range end, same unit as --start")
	replayCmd.Flags().StringVar(&replayWindow, "window", "",
		"Override the target window of every replayed event")
	replayCmd.Flags().DurationVar(&replayTick, "tick", 16*time.Millisecond,
		"Tick interval")

	rootCmd.AddCommand(replayCmd)
}

// printSinks writes every replayed event to stdout, tagged with the tick's
// frame, and remembers whether a session-end marker came through.
type printSinks struct {
	frame      *timeline.FrameCount
	sessionEnd bool
}

func (p *printSinks) line(kind, detail string) {
	fmt.Printf("[frame %5d] %-13s %s\n", *p.frame, kind, detail)
}

func (p *printSinks) Keyboard(e event.KeyboardInput) {
	p.line("keyboard", fmt.Sprintf("%s %s window=%s", e.Key, e.State, e.Window))
}

func (p *printSinks) MouseButton(e event.MouseButtonInput) {
	p.line("mouse-button", fmt.Sprintf("%s %s window=%s", e.Button, e.State, e.Window))
}

func (p *printSinks) MouseWheel(e event.MouseWheel) {
	p.line("mouse-wheel", fmt.Sprintf("(%.1f, %.1f) %s window=%s", e.X, e.Y, e.Unit, e.Window))
}

func (p *printSinks) PointerMoved(e event.PointerMoved) {
	p.line("pointer", fmt.Sprintf("(%.1f, %.1f) window=%s", e.X, e.Y, e.Window))
}

func (p *printSinks) Gamepad(e event.GamepadEvent) {
	p.line("gamepad", fmt.Sprintf("pad%d %s", e.Gamepad, e.Kind))
}

func (p *printSinks) SessionEnd() {
	p.line("session-end", "")
	p.sessionEnd = true
}

func runReplay(cmd *cobra.Command, args []string) error {
	strategy, err := buildStrategy(replayStrategy, replayStart, replayEnd)
	if err != nil {
		return err
	}
	looping := strategy.Kind() == playback.TimeRangeLoop || strategy.Kind() == playback.FrameRangeLoop

	var frame timeline.FrameCount
	sinks := &printSinks{frame: &frame}

	cfg := playback.Config{
		Source:   playback.SourceFromFile(expandPath(replayInput)),
		Strategy: strategy,
	}
	if replayWindow != "" {
		w := event.WindowID(replayWindow)
		cfg.Window = &w
	}

	session, err := playback.Begin(cfg, sinks)
	if err != nil {
		return err
	}
	defer session.End()

	util.LogInfof("replaying %s with strategy %s", replayInput, strategy)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := session.Engine()
	ticker := time.NewTicker(replayTick)
	defer ticker.Stop()
	start := time.Now()
	last := start

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			session.Tick(frame, now.Sub(start), now.Sub(last))
			last = now
			frame = frame.Add(1)

			if sinks.sessionEnd {
				return nil
			}
			if engine.Strategy().Kind() == playback.Paused && strategy.Kind() != playback.Paused {
				return nil
			}
			if !looping && engine.Exhausted() {
				return nil
			}
		}
	}
}

func buildStrategy(name, start, end string) (playback.Strategy, error) {
	switch name {
	case "realtime":
		return playback.NewRealTime(), nil
	case "lockstep":
		return playback.NewFrameLockstep(), nil
	case "paused":
		return playback.NewPaused(), nil
	case "time-once", "time-loop":
		from, err := time.ParseDuration(start)
		if err != nil {
			return playback.Strategy{}, fmt.Errorf("invalid --start duration %q: %w", start, err)
		}
		to, err := time.ParseDuration(end)
		if err != nil {
			return playback.Strategy{}, fmt.Errorf("invalid --end duration %q: %w", end, err)
		}
		if name == "time-once" {
			return playback.NewTimeRangeOnce(from, to)
		}
		return playback.NewTimeRangeLoop(from, to)
	case "frame-once", "frame-loop":
		from, err := strconv.ParseUint(start, 10, 64)
		if err != nil {
			return playback.Strategy{}, fmt.Errorf("invalid --start frame %q: %w", start, err)
		}
		to, err := strconv.ParseUint(end, 10, 64)
		if err != nil {
			return playback.Strategy{}, fmt.Errorf("invalid --end frame %q: %w", end, err)
		}
		if name == "frame-once" {
			return playback.NewFrameRangeOnce(timeline.FrameCount(from), timeline.FrameCount(to))
		}
		return playback.NewFrameRangeLoop(timeline.FrameCount(from), timeline.FrameCount(to))
	default:
		return playback.Strategy{}, fmt.Errorf("unknown strategy: %s", name)
	}
}
