package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-input-replay/internal/core/event"
	"github.com/penwyp/go-input-replay/internal/core/timeline"
)

func sampleLog(n int) *timeline.EventLog {
	log := timeline.NewEventLog()
	for i := 0; i < n; i++ {
		frame := timeline.FrameCount(i)
		elapsed := time.Duration(i) * 16 * time.Millisecond
		switch i % 4 {
		case 0:
			log.Append(frame, elapsed, event.FromKeyboard(event.KeyboardInput{
				Key: fmt.Sprintf("K%d", i), Code: "KeyK", State: event.Pressed, Window: "main",
			}))
		case 1:
			log.Append(frame, elapsed, event.FromMouseButton(event.MouseButtonInput{
				Button: event.MouseRight, State: event.Released, Window: "main",
			}))
		case 2:
			log.Append(frame, elapsed, event.FromPointerMoved(event.PointerMoved{
				X: float64(i), Y: float64(-i), Window: "main",
			}))
		case 3:
			log.Append(frame, elapsed, event.FromGamepad(event.GamepadEvent{
				Gamepad: i, Kind: event.GamepadAxis, Axis: "left_y", Value: 0.5,
			}))
		}
	}
	return log
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 37} {
		t.Run(fmt.Sprintf("%d_events", n), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "recording.jsonl")
			log := sampleLog(n)

			require.NoError(t, Save(path, log, 0))
			loaded, cursor, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, 0, cursor)
			require.Equal(t, log.Len(), loaded.Len())
			for i := 0; i < log.Len(); i++ {
				assert.Equal(t, log.At(i), loaded.At(i))
			}
		})
	}
}

func TestRoundTripPreservesCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recording.jsonl")
	log := sampleLog(5)

	require.NoError(t, Save(path, log, 3))
	_, cursor, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cursor)
}

func TestRoundTripIncludesSessionEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recording.jsonl")
	log := timeline.NewEventLog()
	log.Append(0, 0, event.SessionEnd())

	require.NoError(t, Save(path, log, 0))
	loaded, _, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, event.KindSessionEnd, loaded.At(0).Event.Kind)
}

func TestSaveRejectsBadCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recording.jsonl")
	assert.Error(t, Save(path, sampleLog(2), 3))
	assert.Error(t, Save(path, sampleLog(2), -1))
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.Error(t, err)
	// File-missing is an I/O error, not a format error.
	assert.NotErrorIs(t, err, ErrMalformed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "not json at all\n"},
		{"incomplete_record", `{"frame": 3}` + "\n" + `{"cursor": 0}` + "\n"},
		{"missing_cursor", `{"frame":0,"elapsed_ns":0,"event":{"kind":"session_end"}}` + "\n"},
		{"content_after_cursor", strings.Join([]string{
			`{"cursor": 0}`,
			`{"frame":0,"elapsed_ns":0,"event":{"kind":"session_end"}}`,
		}, "\n") + "\n"},
		{"cursor_out_of_range", `{"cursor": 5}` + "\n"},
		{"empty_file", ""},
		{"kind_without_payload", `{"frame":0,"elapsed_ns":0,"event":{"kind":"keyboard"}}` + "\n" + `{"cursor":0}` + "\n"},
		{"stray_payload", `{"frame":0,"elapsed_ns":0,"event":{"kind":"session_end","keyboard":{"key":"F","code":"KeyF","state":"pressed","window":"main"}}}` + "\n" + `{"cursor":0}` + "\n"},
		{"unknown_kind", `{"frame":0,"elapsed_ns":0,"event":{"kind":"joystick"}}` + "\n" + `{"cursor":0}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "recording.jsonl")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, _, err := Load(path)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recording.jsonl")
	content := `{"frame":0,"elapsed_ns":0,"event":{"kind":"session_end"}}` + "\n\n" + `{"cursor":1}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	log, cursor, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, log.Len())
	assert.Equal(t, 1, cursor)
}
