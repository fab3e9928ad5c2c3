// Package capture drains host input queues once per tick, unifies them into
// a single timestamped event log, and manages the capture session lifecycle.
package capture

// Filter selects which device classes are recorded. Disabled classes are
// still drained from the host each tick and discarded, so toggling a class
// back on never replays a backlog. The session-end signal is always recorded
// regardless of the filter.
type Filter struct {
	MouseButtons bool `json:"mouse_buttons"`
	MouseMotion  bool `json:"mouse_motion"`
	Keyboard     bool `json:"keyboard"`
	Gamepad      bool `json:"gamepad"`
}

// CaptureAll records every supported device class. This is the default.
func CaptureAll() Filter {
	return Filter{MouseButtons: true, MouseMotion: true, Keyboard: true, Gamepad: true}
}

// CaptureNone discards every device class.
func CaptureNone() Filter {
	return Filter{}
}
