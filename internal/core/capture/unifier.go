package capture

import (
	"time"

	"github.com/penwyp/go-input-replay/internal/core/event"
	"github.com/penwyp/go-input-replay/internal/core/timeline"
)

// Unifier merges the host's per-class queues into one event log. Within a
// class the host's order is preserved; across classes events are appended in
// a fixed priority order each tick (buttons and wheel, then motion, then
// keyboard, then gamepad, then session end). The true hardware interleaving
// within a tick is not reconstructable, so this fixed order is the documented
// approximation.
type Unifier struct {
	// Filter masks device classes. Mutable between ticks.
	Filter Filter

	// Window, when non-nil, restricts capture to events targeting that
	// window. Events without a window target are unaffected.
	Window *event.WindowID
}

// Capture drains every queue in raw and appends the enabled, matching events
// to log, all tagged with the tick's frame and elapsed time. Every queue is
// emptied even when its class is disabled. It reports whether a session-end
// signal was observed; the signal is always recorded regardless of the
// filter.
func (u Unifier) Capture(log *timeline.EventLog, frame timeline.FrameCount, elapsed time.Duration, raw *RawInput) bool {
	buttons := raw.drainMouseButtons()
	wheel := raw.drainMouseWheel()
	motion := raw.drainPointerMoved()
	keyboard := raw.drainKeyboard()
	gamepad := raw.drainGamepad()
	sessionEnd := raw.drainSessionEnd()

	if u.Filter.MouseButtons {
		evs := make([]event.InputEvent, 0, len(buttons)+len(wheel))
		for _, e := range buttons {
			evs = append(evs, event.FromMouseButton(e))
		}
		for _, e := range wheel {
			evs = append(evs, event.FromMouseWheel(e))
		}
		log.AppendMany(frame, elapsed, u.matching(evs))
	}

	if u.Filter.MouseMotion {
		evs := make([]event.InputEvent, 0, len(motion))
		for _, e := range motion {
			evs = append(evs, event.FromPointerMoved(e))
		}
		log.AppendMany(frame, elapsed, u.matching(evs))
	}

	if u.Filter.Keyboard {
		evs := make([]event.InputEvent, 0, len(keyboard))
		for _, e := range keyboard {
			evs = append(evs, event.FromKeyboard(e))
		}
		log.AppendMany(frame, elapsed, u.matching(evs))
	}

	if u.Filter.Gamepad {
		evs := make([]event.InputEvent, 0, len(gamepad))
		for _, e := range gamepad {
			evs = append(evs, event.FromGamepad(e))
		}
		log.AppendMany(frame, elapsed, evs)
	}

	if sessionEnd {
		log.Append(frame, elapsed, event.SessionEnd())
	}

	return sessionEnd
}

// matching applies the optional window filter.
func (u Unifier) matching(evs []event.InputEvent) []event.InputEvent {
	if u.Window == nil {
		return evs
	}
	kept := evs[:0]
	for _, ev := range evs {
		if w, ok := ev.Window(); ok && w != *u.Window {
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}
