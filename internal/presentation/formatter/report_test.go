package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-input-replay/internal/core/event"
	"github.com/penwyp/go-input-replay/internal/core/timeline"
)

func reportLog() *timeline.EventLog {
	log := timeline.NewEventLog()
	log.Append(0, 0, event.FromKeyboard(event.KeyboardInput{
		Key: "F", Code: "KeyF", State: event.Pressed, Window: "main",
	}))
	log.Append(1, 16*time.Millisecond, event.FromPointerMoved(event.PointerMoved{
		X: 10.5, Y: 20.5, Window: "main",
	}))
	log.Append(2, 32*time.Millisecond, event.FromGamepad(event.GamepadEvent{
		Gamepad: 0, Kind: event.GamepadConnection, Connected: true,
	}))
	log.Append(3, 48*time.Millisecond, event.SessionEnd())
	return log
}

func TestBuildReport(t *testing.T) {
	report := BuildReport("rec.jsonl", reportLog(), 1, false)

	assert.Equal(t, "rec.jsonl", report.Path)
	assert.Equal(t, 4, report.EventCount)
	assert.Equal(t, 1, report.Cursor)
	assert.Equal(t, uint64(0), report.FrameFirst)
	assert.Equal(t, uint64(3), report.FrameLast)
	assert.Equal(t, time.Duration(0), report.TimeFirst)
	assert.Equal(t, 48*time.Millisecond, report.TimeLast)
	assert.Nil(t, report.Events)

	// Every class is tallied, present or not, in capture order.
	require.Len(t, report.Classes, 6)
	byClass := make(map[string]int)
	for _, c := range report.Classes {
		byClass[c.Class] = c.Count
	}
	assert.Equal(t, 1, byClass[string(event.KindKeyboard)])
	assert.Equal(t, 1, byClass[string(event.KindPointerMoved)])
	assert.Equal(t, 1, byClass[string(event.KindGamepad)])
	assert.Equal(t, 1, byClass[string(event.KindSessionEnd)])
	assert.Equal(t, 0, byClass[string(event.KindMouseButton)])
	assert.Equal(t, 0, byClass[string(event.KindMouseWheel)])
}

func TestBuildReportWithEvents(t *testing.T) {
	report := BuildReport("rec.jsonl", reportLog(), 0, true)

	require.Len(t, report.Events, 4)
	assert.Equal(t, EventRow{
		Index: 0, Frame: 0, Elapsed: 0,
		Kind: string(event.KindKeyboard), Detail: "F pressed", Window: "main",
	}, report.Events[0])
	assert.Equal(t, "(10.5, 20.5)", report.Events[1].Detail)
	assert.Equal(t, "pad0 connected", report.Events[2].Detail)
	// Targetless events leave the window column blank.
	assert.Empty(t, report.Events[2].Window)
	assert.Equal(t, "session end", report.Events[3].Detail)
}

func TestBuildReportEmptyLog(t *testing.T) {
	report := BuildReport("empty.jsonl", timeline.NewEventLog(), 0, true)

	assert.Equal(t, 0, report.EventCount)
	assert.Equal(t, uint64(0), report.FrameFirst)
	assert.Empty(t, report.Events)
	require.Len(t, report.Classes, 6)
}

func TestNewFormatter(t *testing.T) {
	for _, format := range []string{"table", "summary", "json"} {
		f, err := New(format)
		require.NoError(t, err)
		assert.NotNil(t, f)
	}

	_, err := New("yaml")
	assert.Error(t, err)
}
