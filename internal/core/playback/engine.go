package playback

import (
	"time"

	"github.com/penwyp/go-input-replay/internal/core/event"
	"github.com/penwyp/go-input-replay/internal/core/timeline"
	"github.com/penwyp/go-input-replay/internal/util"
)

// Sinks is the host-side boundary of the playback pipeline: one method per
// device class, invoked in recorded order as events are replayed.
type Sinks interface {
	Keyboard(event.KeyboardInput)
	MouseButton(event.MouseButtonInput)
	MouseWheel(event.MouseWheel)
	PointerMoved(event.PointerMoved)
	Gamepad(event.GamepadEvent)
	SessionEnd()
}

// WindowResolver applies positional side effects on live host windows.
// Implementations report whether the window still exists.
type WindowResolver interface {
	SetPointerPosition(window event.WindowID, x, y float64) bool
}

// Engine is the per-tick playback state machine. Each Tick it consults the
// strategy to pick a slice of the log and forwards those events into the
// sinks. Bounded strategies consult and advance the Progress tracker;
// completing a once-bounded pass flips the strategy to Paused.
type Engine struct {
	strategy Strategy
	progress Progress
	reader   *timeline.Reader
	sinks    Sinks
	resolver WindowResolver
	override *event.WindowID
}

// NewEngine builds an engine replaying from reader into sinks.
func NewEngine(reader *timeline.Reader, strategy Strategy, sinks Sinks) *Engine {
	return &Engine{strategy: strategy, reader: reader, sinks: sinks}
}

// SetWindowOverride retargets every replayed event that carries a window at
// the given window, instead of the recorded one.
func (e *Engine) SetWindowOverride(id event.WindowID) {
	e.override = &id
}

// SetResolver installs the host object used for pointer-position side
// effects. Without one, only the logical events are forwarded.
func (e *Engine) SetResolver(r WindowResolver) {
	e.resolver = r
}

// Strategy returns the current pacing policy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// SetStrategy swaps the pacing policy between ticks.
func (e *Engine) SetStrategy(s Strategy) {
	e.strategy = s
}

// Reader returns the engine's cursor over the log.
func (e *Engine) Reader() *timeline.Reader {
	return e.reader
}

// Exhausted reports whether every event has been read in the current pass.
func (e *Engine) Exhausted() bool {
	return e.reader.Cursor() >= e.reader.Log().Len()
}

// Tick replays the slice of the log selected by the strategy for the given
// frame, elapsed time, and tick delta. A missing reader or sink degrades to
// emitting nothing; Tick itself never fails.
func (e *Engine) Tick(frame timeline.FrameCount, elapsed, delta time.Duration) {
	if e.reader == nil || e.sinks == nil {
		return
	}

	switch e.strategy.kind {
	case RealTime:
		e.emit(e.reader.IterUntilTime(elapsed))

	case FrameLockstep:
		e.emit(e.reader.IterUntilFrame(frame))

	case TimeRangeOnce:
		// Completion is detected on the tick that drains the window, so the
		// pass fires exactly once and the log is left rewound.
		start, end := e.strategy.timeStart, e.strategy.timeEnd
		e.emit(e.reader.IterBetweenTimes(
			minDuration(e.progress.CurrentTime(start), end),
			minDuration(e.progress.NextTime(delta, start), end),
		))
		if e.progress.CurrentTime(start) >= end {
			e.progress.Reset(e.reader)
			e.strategy = NewPaused()
		}

	case TimeRangeLoop:
		start, end := e.strategy.timeStart, e.strategy.timeEnd
		e.emit(e.reader.IterBetweenTimes(
			minDuration(e.progress.CurrentTime(start), end),
			minDuration(e.progress.NextTime(delta, start), end),
		))
		if e.progress.CurrentTime(start) > end {
			e.progress.Reset(e.reader)
		}

	case FrameRangeOnce:
		start, end := e.strategy.frameStart, e.strategy.frameEnd
		e.emit(e.reader.IterBetweenFrames(
			minFrame(e.progress.CurrentFrame(start), end),
			minFrame(e.progress.NextFrame(start), end),
		))
		if e.progress.CurrentFrame(start) >= end {
			e.progress.Reset(e.reader)
			e.strategy = NewPaused()
		}

	case FrameRangeLoop:
		start, end := e.strategy.frameStart, e.strategy.frameEnd
		e.emit(e.reader.IterBetweenFrames(
			minFrame(e.progress.CurrentFrame(start), end),
			minFrame(e.progress.NextFrame(start), end),
		))
		if e.progress.CurrentFrame(start) > end {
			e.progress.Reset(e.reader)
		}

	case Paused:
	}
}

// The emission bound is clamped at the window end so an overshooting tick
// delta never replays events outside the half-open range.

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

func minFrame(a, b timeline.FrameCount) timeline.FrameCount {
	if a < b {
		return a
	}
	return b
}

// emit forwards replayed events into the sinks, applying the window override
// and pointer side effects. A pointer event whose recorded window no longer
// resolves loses only its positional side effect; the logical event is still
// forwarded.
func (e *Engine) emit(events []timeline.TimestampedEvent) {
	for _, te := range events {
		ev := te.Event
		if e.override != nil {
			if _, ok := ev.Window(); ok {
				ev = ev.WithWindow(*e.override)
			}
		}

		switch ev.Kind {
		case event.KindKeyboard:
			e.sinks.Keyboard(*ev.Keyboard)
		case event.KindMouseButton:
			e.sinks.MouseButton(*ev.MouseButton)
		case event.KindMouseWheel:
			e.sinks.MouseWheel(*ev.MouseWheel)
		case event.KindPointerMoved:
			pm := *ev.PointerMoved
			if e.resolver != nil {
				if !e.resolver.SetPointerPosition(pm.Window, pm.X, pm.Y) && e.override == nil {
					util.LogWarnf("playback: window %q not found while replaying pointer motion", pm.Window)
				}
			}
			e.sinks.PointerMoved(pm)
		case event.KindGamepad:
			e.sinks.Gamepad(*ev.Gamepad)
		case event.KindSessionEnd:
			e.sinks.SessionEnd()
		}
	}
}
