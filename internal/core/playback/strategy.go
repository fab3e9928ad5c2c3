// Package playback re-emits recorded input events. A strategy decides which
// slice of the log each tick replays; the engine drives the strategy state
// machine and forwards events into host-provided sinks.
package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/penwyp/go-input-replay/internal/core/timeline"
)

// ErrInvalidRange rejects bounded strategies constructed with start > end.
// Unsigned frame arithmetic would otherwise loop incorrectly.
var ErrInvalidRange = errors.New("playback: range start is after range end")

// StrategyKind enumerates the playback pacing policies.
type StrategyKind int

const (
	// RealTime replays events up to (but not past) the current elapsed time.
	RealTime StrategyKind = iota
	// FrameLockstep replays events up to (but not past) the current frame.
	FrameLockstep
	// TimeRangeOnce replays the events in a half-open time window once, at
	// the rate they were captured, then pauses.
	TimeRangeOnce
	// TimeRangeLoop replays a half-open time window indefinitely, with one
	// empty tick between passes.
	TimeRangeLoop
	// FrameRangeOnce replays the events in a half-open frame window once,
	// then pauses.
	FrameRangeOnce
	// FrameRangeLoop replays a half-open frame window indefinitely, with one
	// empty tick between passes.
	FrameRangeLoop
	// Paused emits nothing and leaves the cursor and progress untouched.
	Paused
)

func (k StrategyKind) String() string {
	switch k {
	case RealTime:
		return "real-time"
	case FrameLockstep:
		return "frame-lockstep"
	case TimeRangeOnce:
		return "time-range-once"
	case TimeRangeLoop:
		return "time-range-loop"
	case FrameRangeOnce:
		return "frame-range-once"
	case FrameRangeLoop:
		return "frame-range-loop"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Strategy is one pacing policy plus its bounds. Bounded strategies carry
// either a time window or a frame window, never both; construct through the
// New* functions so the bounds are validated.
type Strategy struct {
	kind       StrategyKind
	timeStart  time.Duration
	timeEnd    time.Duration
	frameStart timeline.FrameCount
	frameEnd   timeline.FrameCount
}

// Kind returns the pacing policy.
func (s Strategy) Kind() StrategyKind {
	return s.kind
}

// TimeBounds returns the window of a time-bounded strategy.
func (s Strategy) TimeBounds() (start, end time.Duration) {
	return s.timeStart, s.timeEnd
}

// FrameBounds returns the window of a frame-bounded strategy.
func (s Strategy) FrameBounds() (start, end timeline.FrameCount) {
	return s.frameStart, s.frameEnd
}

func (s Strategy) String() string {
	switch s.kind {
	case TimeRangeOnce, TimeRangeLoop:
		return fmt.Sprintf("%s[%s, %s)", s.kind, s.timeStart, s.timeEnd)
	case FrameRangeOnce, FrameRangeLoop:
		return fmt.Sprintf("%s[%d, %d)", s.kind, s.frameStart, s.frameEnd)
	default:
		return s.kind.String()
	}
}

// NewRealTime replays against the wall-clock elapsed time.
func NewRealTime() Strategy {
	return Strategy{kind: RealTime}
}

// NewFrameLockstep replays against the tick counter, which lets the host run
// unthrottled.
func NewFrameLockstep() Strategy {
	return Strategy{kind: FrameLockstep}
}

// NewPaused emits nothing until the strategy is swapped.
func NewPaused() Strategy {
	return Strategy{kind: Paused}
}

// NewTimeRangeOnce replays events with elapsed time in [start, end) exactly
// once.
func NewTimeRangeOnce(start, end time.Duration) (Strategy, error) {
	if start > end {
		return Strategy{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidRange, start, end)
	}
	return Strategy{kind: TimeRangeOnce, timeStart: start, timeEnd: end}, nil
}

// NewTimeRangeLoop replays events with elapsed time in [start, end) forever.
func NewTimeRangeLoop(start, end time.Duration) (Strategy, error) {
	if start > end {
		return Strategy{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidRange, start, end)
	}
	return Strategy{kind: TimeRangeLoop, timeStart: start, timeEnd: end}, nil
}

// NewFrameRangeOnce replays events with frame in [start, end) exactly once.
func NewFrameRangeOnce(start, end timeline.FrameCount) (Strategy, error) {
	if start > end {
		return Strategy{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, start, end)
	}
	return Strategy{kind: FrameRangeOnce, frameStart: start, frameEnd: end}, nil
}

// NewFrameRangeLoop replays events with frame in [start, end) forever.
func NewFrameRangeLoop(start, end timeline.FrameCount) (Strategy, error) {
	if start > end {
		return Strategy{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, start, end)
	}
	return Strategy{kind: FrameRangeLoop, frameStart: start, frameEnd: end}, nil
}
