package capture

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-input-replay/internal/core/event"
	"github.com/penwyp/go-input-replay/internal/core/timeline"
	"github.com/penwyp/go-input-replay/internal/data/codec"
)

func testRaw() *RawInput {
	return &RawInput{
		Keyboard: []event.KeyboardInput{
			{Key: "F", Code: "KeyF", State: event.Pressed, Window: "main"},
		},
		MouseButtons: []event.MouseButtonInput{
			{Button: event.MouseLeft, State: event.Pressed, Window: "main"},
		},
		MouseWheel: []event.MouseWheel{
			{Unit: event.ScrollLines, Y: -1, Window: "main"},
		},
		PointerMoved: []event.PointerMoved{
			{X: 10, Y: 20, Window: "main"},
		},
		Gamepad: []event.GamepadEvent{
			{Gamepad: 0, Kind: event.GamepadButton, Button: "south", Value: 1},
		},
	}
}

func TestUnifierCrossClassOrder(t *testing.T) {
	log := timeline.NewEventLog()
	u := Unifier{Filter: CaptureAll()}

	raw := testRaw()
	raw.SessionEnd = true
	end := u.Capture(log, 7, 100*time.Millisecond, raw)
	assert.True(t, end)

	require.Equal(t, 6, log.Len())
	wantOrder := []event.Kind{
		event.KindMouseButton,
		event.KindMouseWheel,
		event.KindPointerMoved,
		event.KindKeyboard,
		event.KindGamepad,
		event.KindSessionEnd,
	}
	for i, kind := range wantOrder {
		te := log.At(i)
		assert.Equal(t, kind, te.Event.Kind, "index %d", i)
		assert.Equal(t, timeline.FrameCount(7), te.Frame)
		assert.Equal(t, 100*time.Millisecond, te.Elapsed)
	}
}

func TestUnifierWithinClassOrder(t *testing.T) {
	log := timeline.NewEventLog()
	u := Unifier{Filter: CaptureAll()}

	raw := &RawInput{Keyboard: []event.KeyboardInput{
		{Key: "A", State: event.Pressed, Window: "main"},
		{Key: "B", State: event.Pressed, Window: "main"},
		{Key: "A", State: event.Released, Window: "main"},
	}}
	u.Capture(log, 0, 0, raw)

	require.Equal(t, 3, log.Len())
	assert.Equal(t, "A", log.At(0).Event.Keyboard.Key)
	assert.Equal(t, "B", log.At(1).Event.Keyboard.Key)
	assert.Equal(t, "A", log.At(2).Event.Keyboard.Key)
	assert.Equal(t, event.Released, log.At(2).Event.Keyboard.State)
}

func TestUnifierDrainsEveryQueue(t *testing.T) {
	log := timeline.NewEventLog()
	u := Unifier{Filter: CaptureNone()}

	raw := testRaw()
	u.Capture(log, 0, 0, raw)

	assert.True(t, log.IsEmpty())
	assert.Nil(t, raw.Keyboard)
	assert.Nil(t, raw.MouseButtons)
	assert.Nil(t, raw.MouseWheel)
	assert.Nil(t, raw.PointerMoved)
	assert.Nil(t, raw.Gamepad)
}

// Disabled classes never grow the log, and re-enabling never replays the
// discarded backlog.
func TestFilterToggling(t *testing.T) {
	session := Begin(Config{Filter: Filter{MouseButtons: true, MouseMotion: true, Gamepad: true}})

	session.Tick(0, 0, &RawInput{Keyboard: []event.KeyboardInput{
		{Key: "Lost", State: event.Pressed, Window: "main"},
	}})
	assert.Equal(t, 0, session.Log().Len())

	session.SetFilter(CaptureAll())
	session.Tick(1, 16*time.Millisecond, &RawInput{Keyboard: []event.KeyboardInput{
		{Key: "Kept", State: event.Pressed, Window: "main"},
	}})

	log, err := session.End()
	require.NoError(t, err)
	require.Equal(t, 1, log.Len())
	assert.Equal(t, "Kept", log.At(0).Event.Keyboard.Key)
}

// The session-end signal is recorded even when every class is filtered out.
func TestSessionEndIgnoresFilter(t *testing.T) {
	session := Begin(Config{Filter: CaptureNone()})

	done := session.Tick(4, 50*time.Millisecond, &RawInput{
		Keyboard:   []event.KeyboardInput{{Key: "X", State: event.Pressed, Window: "main"}},
		SessionEnd: true,
	})
	assert.True(t, done)

	log, err := session.End()
	require.NoError(t, err)
	require.Equal(t, 1, log.Len())
	assert.Equal(t, event.KindSessionEnd, log.At(0).Event.Kind)
}

func TestWindowFilter(t *testing.T) {
	target := event.WindowID("editor")
	session := Begin(Config{Filter: CaptureAll(), Window: &target})

	session.Tick(0, 0, &RawInput{
		Keyboard: []event.KeyboardInput{
			{Key: "A", State: event.Pressed, Window: "editor"},
			{Key: "B", State: event.Pressed, Window: "other"},
		},
		Gamepad: []event.GamepadEvent{
			{Gamepad: 0, Kind: event.GamepadButton, Button: "south", Value: 1},
		},
	})

	log, err := session.End()
	require.NoError(t, err)
	require.Equal(t, 2, log.Len())
	assert.Equal(t, "A", log.At(0).Event.Keyboard.Key)
	// Targetless gamepad events are unaffected by the window filter.
	assert.Equal(t, event.KindGamepad, log.At(1).Event.Kind)
}

func TestFrameLimit(t *testing.T) {
	limit := timeline.FrameCount(2)
	session := Begin(Config{Filter: CaptureAll(), FrameLimit: &limit})

	press := func(key string) *RawInput {
		return &RawInput{Keyboard: []event.KeyboardInput{
			{Key: key, State: event.Pressed, Window: "main"},
		}}
	}

	assert.False(t, session.Tick(0, 0, press("A")))
	assert.False(t, session.Tick(1, 16*time.Millisecond, press("B")))

	// The cutoff frame itself is not recorded; its queues are still drained.
	raw := press("C")
	assert.True(t, session.Tick(2, 32*time.Millisecond, raw))
	assert.Nil(t, raw.Keyboard)

	log, err := session.End()
	require.NoError(t, err)
	assert.Equal(t, 2, log.Len())
}

// A freshly captured log is non-decreasing in both frame and time.
func TestCapturedLogIsMonotonic(t *testing.T) {
	session := Begin(Config{Filter: CaptureAll()})
	for frame := 0; frame < 10; frame++ {
		session.Tick(timeline.FrameCount(frame), time.Duration(frame)*16*time.Millisecond, testRaw())
	}

	log, err := session.End()
	require.NoError(t, err)
	require.Equal(t, 50, log.Len())
	assert.True(t, log.IsSorted(timeline.ByFrame))
	assert.True(t, log.IsSorted(timeline.ByTime))
}

func TestEndPersistsLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.jsonl")
	session := Begin(Config{Filter: CaptureAll(), OutputPath: path})

	session.Tick(0, 0, &RawInput{Keyboard: []event.KeyboardInput{
		{Key: "F", State: event.Pressed, Window: "main"},
	}})
	session.Tick(1, 16*time.Millisecond, &RawInput{Keyboard: []event.KeyboardInput{
		{Key: "F", State: event.Released, Window: "main"},
	}})

	captured, err := session.End()
	require.NoError(t, err)

	loaded, cursor, err := codec.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cursor)
	require.Equal(t, captured.Len(), loaded.Len())
	for i := 0; i < captured.Len(); i++ {
		assert.Equal(t, captured.At(i), loaded.At(i))
	}
}

func TestEndTwice(t *testing.T) {
	session := Begin(Config{Filter: CaptureAll()})
	_, err := session.End()
	require.NoError(t, err)

	_, err = session.End()
	assert.ErrorIs(t, err, ErrSessionEnded)

	// Ticking an ended session drains without recording.
	raw := testRaw()
	assert.True(t, session.Tick(5, time.Second, raw))
	assert.Nil(t, raw.Keyboard)
}
