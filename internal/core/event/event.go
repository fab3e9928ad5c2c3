// Package event defines the closed vocabulary of input events that can be
// captured and played back. Host-native inputs are converted into one of the
// variants below via the From* constructors; the set is deliberately closed
// so that every recording stays replayable by every future reader.
package event

import "fmt"

// WindowID identifies the host window (or comparable output target) that an
// input event was delivered to.
type WindowID string

// Kind discriminates the variants of InputEvent.
type Kind string

const (
	KindKeyboard     Kind = "keyboard"
	KindMouseButton  Kind = "mouse_button"
	KindMouseWheel   Kind = "mouse_wheel"
	KindPointerMoved Kind = "pointer_moved"
	KindGamepad      Kind = "gamepad"
	KindSessionEnd   Kind = "session_end"
)

// ButtonState reports whether a key or button was pressed or released.
type ButtonState string

const (
	Pressed  ButtonState = "pressed"
	Released ButtonState = "released"
)

// MouseButton names a physical mouse button.
type MouseButton string

const (
	MouseLeft   MouseButton = "left"
	MouseRight  MouseButton = "right"
	MouseMiddle MouseButton = "middle"
)

// ScrollUnit is the unit a mouse wheel delta is reported in.
type ScrollUnit string

const (
	ScrollLines  ScrollUnit = "lines"
	ScrollPixels ScrollUnit = "pixels"
)

// KeyboardInput is a single key press or release.
type KeyboardInput struct {
	Key    string      `json:"key"`
	Code   string      `json:"code"`
	State  ButtonState `json:"state"`
	Repeat bool        `json:"repeat,omitempty"`
	Window WindowID    `json:"window"`
}

// MouseButtonInput is a single mouse button press or release.
type MouseButtonInput struct {
	Button MouseButton `json:"button"`
	State  ButtonState `json:"state"`
	Window WindowID    `json:"window"`
}

// MouseWheel is a scroll-wheel movement.
type MouseWheel struct {
	Unit   ScrollUnit `json:"unit"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Window WindowID   `json:"window"`
}

// PointerMoved reports the pointer's new position within a window.
type PointerMoved struct {
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Window WindowID `json:"window"`
}

// GamepadEventKind discriminates gamepad event payloads.
type GamepadEventKind string

const (
	GamepadConnection GamepadEventKind = "connection"
	GamepadButton     GamepadEventKind = "button"
	GamepadAxis       GamepadEventKind = "axis"
)

// GamepadEvent is a connection change, button change, or axis movement on a
// gamepad. Gamepads have no window target.
type GamepadEvent struct {
	Gamepad   int              `json:"gamepad"`
	Kind      GamepadEventKind `json:"kind"`
	Button    string           `json:"button,omitempty"`
	Axis      string           `json:"axis,omitempty"`
	Value     float64          `json:"value,omitempty"`
	Connected bool             `json:"connected,omitempty"`
}

// InputEvent is the tagged union over all capturable event variants. Exactly
// the payload field matching Kind is non-nil; SessionEnd carries no payload.
type InputEvent struct {
	Kind         Kind              `json:"kind"`
	Keyboard     *KeyboardInput    `json:"keyboard,omitempty"`
	MouseButton  *MouseButtonInput `json:"mouse_button,omitempty"`
	MouseWheel   *MouseWheel       `json:"mouse_wheel,omitempty"`
	PointerMoved *PointerMoved     `json:"pointer_moved,omitempty"`
	Gamepad      *GamepadEvent     `json:"gamepad,omitempty"`
}

// FromKeyboard wraps a keyboard payload.
func FromKeyboard(e KeyboardInput) InputEvent {
	return InputEvent{Kind: KindKeyboard, Keyboard: &e}
}

// FromMouseButton wraps a mouse button payload.
func FromMouseButton(e MouseButtonInput) InputEvent {
	return InputEvent{Kind: KindMouseButton, MouseButton: &e}
}

// FromMouseWheel wraps a mouse wheel payload.
func FromMouseWheel(e MouseWheel) InputEvent {
	return InputEvent{Kind: KindMouseWheel, MouseWheel: &e}
}

// FromPointerMoved wraps a pointer motion payload.
func FromPointerMoved(e PointerMoved) InputEvent {
	return InputEvent{Kind: KindPointerMoved, PointerMoved: &e}
}

// FromGamepad wraps a gamepad payload.
func FromGamepad(e GamepadEvent) InputEvent {
	return InputEvent{Kind: KindGamepad, Gamepad: &e}
}

// SessionEnd is the shutdown marker recorded when the host signals exit.
func SessionEnd() InputEvent {
	return InputEvent{Kind: KindSessionEnd}
}

// Validate checks that the payload fields agree with Kind: exactly the
// matching payload is set, and none for SessionEnd. Events built through the
// From* constructors always pass; decoded events must be validated before
// use, since the accessors dereference the payload for their Kind.
func (e InputEvent) Validate() error {
	payloads := []struct {
		kind Kind
		set  bool
	}{
		{KindKeyboard, e.Keyboard != nil},
		{KindMouseButton, e.MouseButton != nil},
		{KindMouseWheel, e.MouseWheel != nil},
		{KindPointerMoved, e.PointerMoved != nil},
		{KindGamepad, e.Gamepad != nil},
	}

	known := e.Kind == KindSessionEnd
	for _, p := range payloads {
		if p.kind == e.Kind {
			known = true
			if !p.set {
				return fmt.Errorf("event: %s event is missing its payload", e.Kind)
			}
		} else if p.set {
			return fmt.Errorf("event: %s event carries a stray %s payload", e.Kind, p.kind)
		}
	}
	if !known {
		return fmt.Errorf("event: unknown kind %q", e.Kind)
	}
	return nil
}

// Window returns the target window of the event, if the variant carries one.
func (e InputEvent) Window() (WindowID, bool) {
	switch e.Kind {
	case KindKeyboard:
		return e.Keyboard.Window, true
	case KindMouseButton:
		return e.MouseButton.Window, true
	case KindMouseWheel:
		return e.MouseWheel.Window, true
	case KindPointerMoved:
		return e.PointerMoved.Window, true
	default:
		return "", false
	}
}

// WithWindow returns a copy of the event retargeted at the given window.
// Events without a window target are returned unchanged.
func (e InputEvent) WithWindow(id WindowID) InputEvent {
	switch e.Kind {
	case KindKeyboard:
		kb := *e.Keyboard
		kb.Window = id
		return InputEvent{Kind: KindKeyboard, Keyboard: &kb}
	case KindMouseButton:
		mb := *e.MouseButton
		mb.Window = id
		return InputEvent{Kind: KindMouseButton, MouseButton: &mb}
	case KindMouseWheel:
		mw := *e.MouseWheel
		mw.Window = id
		return InputEvent{Kind: KindMouseWheel, MouseWheel: &mw}
	case KindPointerMoved:
		pm := *e.PointerMoved
		pm.Window = id
		return InputEvent{Kind: KindPointerMoved, PointerMoved: &pm}
	default:
		return e
	}
}
