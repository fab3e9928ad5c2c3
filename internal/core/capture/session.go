package capture

import (
	"errors"
	"fmt"
	"time"

	"github.com/penwyp/go-input-replay/internal/core/event"
	"github.com/penwyp/go-input-replay/internal/core/timeline"
	"github.com/penwyp/go-input-replay/internal/data/codec"
	"github.com/penwyp/go-input-replay/internal/util"
)

// ErrSessionEnded is returned when a session is used after End.
var ErrSessionEnded = errors.New("capture: session already ended")

// Config carries the per-session capture settings. Optional fields are nil
// or empty when not configured.
type Config struct {
	// Filter masks device classes. The zero value records nothing; use
	// CaptureAll for the usual default.
	Filter Filter

	// OutputPath, when set, is where the log is persisted on End.
	OutputPath string

	// FrameLimit, when set, ends the session once the tick counter reaches
	// this frame.
	FrameLimit *timeline.FrameCount

	// Window, when set, restricts capture to events targeting that window.
	Window *event.WindowID
}

// Session is an active capture session: a fresh event log plus the unifier
// feeding it. Sessions move Idle -> Active -> Idle through Begin and End;
// the log is exclusively owned by the session until End hands it back.
type Session struct {
	cfg     Config
	unifier Unifier
	log     *timeline.EventLog
	active  bool
}

// Begin starts a capture session with a fresh, empty log.
func Begin(cfg Config) *Session {
	return &Session{
		cfg:     cfg,
		unifier: Unifier{Filter: cfg.Filter, Window: cfg.Window},
		log:     timeline.NewEventLog(),
		active:  true,
	}
}

// SetFilter swaps the device-class mask. Takes effect on the next tick.
func (s *Session) SetFilter(f Filter) {
	s.unifier.Filter = f
}

// Log returns the log being captured into, or nil after End.
func (s *Session) Log() *timeline.EventLog {
	return s.log
}

// Tick drains the host's queues for one tick and records the enabled events.
// It reports whether the session should end: either a session-end signal was
// observed or the configured frame limit was reached. Ticking an ended
// session drains and discards without recording.
func (s *Session) Tick(frame timeline.FrameCount, elapsed time.Duration, raw *RawInput) (done bool) {
	if !s.active {
		Unifier{Filter: CaptureNone()}.Capture(timeline.NewEventLog(), frame, elapsed, raw)
		return true
	}

	if s.cfg.FrameLimit != nil && frame >= *s.cfg.FrameLimit {
		Unifier{Filter: CaptureNone()}.Capture(timeline.NewEventLog(), frame, elapsed, raw)
		return true
	}

	return s.unifier.Capture(s.log, frame, elapsed, raw)
}

// End closes the session, persists the log when an output path is
// configured, and returns the captured log. The session cannot be reused.
func (s *Session) End() (*timeline.EventLog, error) {
	if !s.active {
		return nil, ErrSessionEnded
	}
	s.active = false
	log := s.log
	s.log = nil

	if s.cfg.OutputPath != "" {
		if err := codec.Save(s.cfg.OutputPath, log, 0); err != nil {
			return nil, fmt.Errorf("capture: persisting session: %w", err)
		}
		util.LogInfof("capture: saved %d events to %s", log.Len(), s.cfg.OutputPath)
	}

	return log, nil
}
