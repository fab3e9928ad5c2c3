package event

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ev   InputEvent
	}{
		{
			name: "keyboard",
			ev: FromKeyboard(KeyboardInput{
				Key: "F", Code: "KeyF", State: Pressed, Window: "main",
			}),
		},
		{
			name: "mouse_button",
			ev: FromMouseButton(MouseButtonInput{
				Button: MouseLeft, State: Released, Window: "main",
			}),
		},
		{
			name: "mouse_wheel",
			ev: FromMouseWheel(MouseWheel{
				Unit: ScrollLines, X: 0, Y: -1.5, Window: "main",
			}),
		},
		{
			name: "pointer_moved",
			ev: FromPointerMoved(PointerMoved{
				X: 12.5, Y: 34, Window: "main",
			}),
		},
		{
			name: "gamepad_button",
			ev: FromGamepad(GamepadEvent{
				Gamepad: 0, Kind: GamepadButton, Button: "south", Value: 1,
			}),
		},
		{
			name: "gamepad_connection",
			ev: FromGamepad(GamepadEvent{
				Gamepad: 1, Kind: GamepadConnection, Connected: true,
			}),
		},
		{
			name: "session_end",
			ev:   SessionEnd(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := sonic.Marshal(tt.ev)
			require.NoError(t, err)

			var decoded InputEvent
			require.NoError(t, sonic.Unmarshal(data, &decoded))
			assert.Equal(t, tt.ev, decoded)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := []InputEvent{
		FromKeyboard(KeyboardInput{Key: "A", State: Pressed, Window: "main"}),
		FromMouseButton(MouseButtonInput{Button: MouseLeft, State: Pressed, Window: "main"}),
		FromMouseWheel(MouseWheel{Unit: ScrollLines, Y: 1, Window: "main"}),
		FromPointerMoved(PointerMoved{X: 1, Y: 2, Window: "main"}),
		FromGamepad(GamepadEvent{Gamepad: 0, Kind: GamepadAxis, Axis: "left_x"}),
		SessionEnd(),
	}
	for _, ev := range valid {
		assert.NoError(t, ev.Validate(), string(ev.Kind))
	}

	kb := &KeyboardInput{Key: "A", State: Pressed, Window: "main"}
	invalid := []struct {
		name string
		ev   InputEvent
	}{
		{"kind_without_payload", InputEvent{Kind: KindKeyboard}},
		{"mismatched_payload", InputEvent{Kind: KindMouseButton, Keyboard: kb}},
		{"stray_payload_on_session_end", InputEvent{Kind: KindSessionEnd, Keyboard: kb}},
		{"unknown_kind", InputEvent{Kind: "joystick"}},
		{"empty", InputEvent{}},
	}
	for _, tt := range invalid {
		assert.Error(t, tt.ev.Validate(), tt.name)
	}
}

func TestWindow(t *testing.T) {
	kb := FromKeyboard(KeyboardInput{Key: "A", State: Pressed, Window: "editor"})
	w, ok := kb.Window()
	require.True(t, ok)
	assert.Equal(t, WindowID("editor"), w)

	_, ok = FromGamepad(GamepadEvent{Gamepad: 0, Kind: GamepadAxis, Axis: "left_x"}).Window()
	assert.False(t, ok)

	_, ok = SessionEnd().Window()
	assert.False(t, ok)
}

func TestWithWindow(t *testing.T) {
	original := FromMouseButton(MouseButtonInput{Button: MouseLeft, State: Pressed, Window: "recorded"})

	retargeted := original.WithWindow("live")
	w, ok := retargeted.Window()
	require.True(t, ok)
	assert.Equal(t, WindowID("live"), w)

	// The original payload is untouched.
	assert.Equal(t, WindowID("recorded"), original.MouseButton.Window)

	// Targetless variants pass through unchanged.
	exit := SessionEnd()
	assert.Equal(t, exit, exit.WithWindow("live"))
}
