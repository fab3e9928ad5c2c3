package formatter

import (
	"fmt"

	"github.com/penwyp/go-input-replay/internal/core/event"
	"github.com/penwyp/go-input-replay/internal/core/timeline"
)

// classOrder matches the unifier's fixed cross-class capture order.
var classOrder = []event.Kind{
	event.KindMouseButton,
	event.KindMouseWheel,
	event.KindPointerMoved,
	event.KindKeyboard,
	event.KindGamepad,
	event.KindSessionEnd,
}

// BuildReport summarizes a loaded recording. When includeEvents is set, the
// report also lists every record individually.
func BuildReport(path string, log *timeline.EventLog, cursor int, includeEvents bool) Report {
	report := Report{
		Path:       path,
		EventCount: log.Len(),
		Cursor:     cursor,
	}

	if first, last, ok := log.FrameRange(); ok {
		report.FrameFirst = uint64(first)
		report.FrameLast = uint64(last)
	}
	if first, last, ok := log.TimeRange(); ok {
		report.TimeFirst = first
		report.TimeLast = last
	}

	counts := make(map[event.Kind]int)
	for i := 0; i < log.Len(); i++ {
		counts[log.At(i).Event.Kind]++
	}
	for _, kind := range classOrder {
		report.Classes = append(report.Classes, ClassCount{Class: string(kind), Count: counts[kind]})
	}

	if includeEvents {
		report.Events = make([]EventRow, 0, log.Len())
		for i := 0; i < log.Len(); i++ {
			te := log.At(i)
			row := EventRow{
				Index:   i,
				Frame:   uint64(te.Frame),
				Elapsed: te.Elapsed,
				Kind:    string(te.Event.Kind),
				Detail:  describe(te.Event),
			}
			if w, ok := te.Event.Window(); ok {
				row.Window = string(w)
			}
			report.Events = append(report.Events, row)
		}
	}

	return report
}

func describe(ev event.InputEvent) string {
	switch ev.Kind {
	case event.KindKeyboard:
		return fmt.Sprintf("%s %s", ev.Keyboard.Key, ev.Keyboard.State)
	case event.KindMouseButton:
		return fmt.Sprintf("%s %s", ev.MouseButton.Button, ev.MouseButton.State)
	case event.KindMouseWheel:
		return fmt.Sprintf("(%.1f, %.1f) %s", ev.MouseWheel.X, ev.MouseWheel.Y, ev.MouseWheel.Unit)
	case event.KindPointerMoved:
		return fmt.Sprintf("(%.1f, %.1f)", ev.PointerMoved.X, ev.PointerMoved.Y)
	case event.KindGamepad:
		g := ev.Gamepad
		switch g.Kind {
		case event.GamepadConnection:
			if g.Connected {
				return fmt.Sprintf("pad%d connected", g.Gamepad)
			}
			return fmt.Sprintf("pad%d disconnected", g.Gamepad)
		case event.GamepadButton:
			return fmt.Sprintf("pad%d %s=%.2f", g.Gamepad, g.Button, g.Value)
		case event.GamepadAxis:
			return fmt.Sprintf("pad%d %s=%.2f", g.Gamepad, g.Axis, g.Value)
		}
		return fmt.Sprintf("pad%d", g.Gamepad)
	case event.KindSessionEnd:
		return "session end"
	default:
		return string(ev.Kind)
	}
}
