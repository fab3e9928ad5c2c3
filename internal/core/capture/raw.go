package capture

import "github.com/penwyp/go-input-replay/internal/core/event"

// RawInput is the host-side boundary of the capture pipeline: one drainable
// queue per device class, filled by the host before each tick and emptied by
// the unifier during it. Order within a queue is the host's delivery order.
type RawInput struct {
	MouseButtons []event.MouseButtonInput
	MouseWheel   []event.MouseWheel
	PointerMoved []event.PointerMoved
	Keyboard     []event.KeyboardInput
	Gamepad      []event.GamepadEvent

	// SessionEnd is set when the host observed a shutdown request this tick.
	SessionEnd bool
}

func (r *RawInput) drainMouseButtons() []event.MouseButtonInput {
	q := r.MouseButtons
	r.MouseButtons = nil
	return q
}

func (r *RawInput) drainMouseWheel() []event.MouseWheel {
	q := r.MouseWheel
	r.MouseWheel = nil
	return q
}

func (r *RawInput) drainPointerMoved() []event.PointerMoved {
	q := r.PointerMoved
	r.PointerMoved = nil
	return q
}

func (r *RawInput) drainKeyboard() []event.KeyboardInput {
	q := r.Keyboard
	r.Keyboard = nil
	return q
}

func (r *RawInput) drainGamepad() []event.GamepadEvent {
	q := r.Gamepad
	r.Gamepad = nil
	return q
}

func (r *RawInput) drainSessionEnd() bool {
	end := r.SessionEnd
	r.SessionEnd = false
	return end
}
