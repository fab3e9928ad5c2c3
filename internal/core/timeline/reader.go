package timeline

import (
	"fmt"
	"time"

	"github.com/penwyp/go-input-replay/internal/core/event"
)

// Reader is a cursor over an EventLog. Every query advances the cursor past
// the prefix it scanned, so an event is delivered at most once until
// ResetCursor is called. A Reader never mutates the underlying log.
type Reader struct {
	log    *EventLog
	cursor int
}

// NewReader returns a reader positioned at the start of the log.
func NewReader(log *EventLog) *Reader {
	return &Reader{log: log}
}

// Log returns the underlying event log.
func (r *Reader) Log() *EventLog {
	return r.log
}

// Cursor returns the index of the next unread event.
func (r *Reader) Cursor() int {
	return r.cursor
}

// SetCursor positions the reader at index n, which must be in [0, Len].
func (r *Reader) SetCursor(n int) error {
	if n < 0 || n > r.log.Len() {
		return fmt.Errorf("timeline: cursor %d out of range [0, %d]", n, r.log.Len())
	}
	r.cursor = n
	return nil
}

// ResetCursor rewinds to the start of the log, making a drained log
// replayable again.
func (r *Reader) ResetCursor() {
	r.cursor = 0
}

// Next returns the event at the cursor and advances past it. ok is false once
// the log is exhausted; the cursor never moves past Len.
func (r *Reader) Next() (TimestampedEvent, bool) {
	if r.cursor >= r.log.Len() {
		return TimestampedEvent{}, false
	}
	te := r.log.At(r.cursor)
	r.cursor++
	return te, true
}

// IterAll returns every stored event regardless of the cursor position and
// leaves the reader exhausted.
func (r *Reader) IterAll() []TimestampedEvent {
	out := make([]TimestampedEvent, r.log.Len())
	copy(out, r.log.events)
	r.cursor = r.log.Len()
	return out
}

// IterRest returns every unread event and leaves the reader exhausted.
func (r *Reader) IterRest() []TimestampedEvent {
	out := make([]TimestampedEvent, r.log.Len()-r.cursor)
	copy(out, r.log.events[r.cursor:])
	r.cursor = r.log.Len()
	return out
}

// IterUntilTime returns every unread event with elapsed time <= t, in order,
// advancing the cursor past each one. The log must be sorted by time.
func (r *Reader) IterUntilTime(t time.Duration) []TimestampedEvent {
	assertSorted(r.log, ByTime)
	var out []TimestampedEvent
	for r.cursor < r.log.Len() && r.log.At(r.cursor).Elapsed <= t {
		out = append(out, r.log.At(r.cursor))
		r.cursor++
	}
	return out
}

// IterUntilFrame returns every unread event with frame <= f, in order,
// advancing the cursor past each one. The log must be sorted by frame.
func (r *Reader) IterUntilFrame(f FrameCount) []TimestampedEvent {
	assertSorted(r.log, ByFrame)
	var out []TimestampedEvent
	for r.cursor < r.log.Len() && r.log.At(r.cursor).Frame <= f {
		out = append(out, r.log.At(r.cursor))
		r.cursor++
	}
	return out
}

// IterBetweenTimes returns unread events in the half-open window
// [start, end). The cursor advances through the whole scanned prefix,
// including too-early events that are skipped rather than returned, and
// stops as soon as the elapsed time reaches end. The log must be sorted by
// time.
func (r *Reader) IterBetweenTimes(start, end time.Duration) []TimestampedEvent {
	assertSorted(r.log, ByTime)
	var out []TimestampedEvent
	for r.cursor < r.log.Len() {
		elapsed := r.log.At(r.cursor).Elapsed
		if elapsed >= end {
			break
		}
		if elapsed >= start {
			out = append(out, r.log.At(r.cursor))
		}
		r.cursor++
	}
	return out
}

// IterBetweenFrames returns unread events in the half-open window
// [start, end), with the same cursor semantics as IterBetweenTimes. The log
// must be sorted by frame.
func (r *Reader) IterBetweenFrames(start, end FrameCount) []TimestampedEvent {
	assertSorted(r.log, ByFrame)
	var out []TimestampedEvent
	for r.cursor < r.log.Len() {
		frame := r.log.At(r.cursor).Frame
		if frame >= end {
			break
		}
		if frame >= start {
			out = append(out, r.log.At(r.cursor))
		}
		r.cursor++
	}
	return out
}

// LastEvent returns the most recently read event.
func (r *Reader) LastEvent() (event.InputEvent, bool) {
	if r.cursor == 0 {
		return event.InputEvent{}, false
	}
	return r.log.At(r.cursor - 1).Event, true
}

// CurrentEvent returns the next unread event without advancing.
func (r *Reader) CurrentEvent() (event.InputEvent, bool) {
	if r.cursor >= r.log.Len() {
		return event.InputEvent{}, false
	}
	return r.log.At(r.cursor).Event, true
}

// LastFrame returns the frame of the most recently read event.
func (r *Reader) LastFrame() (FrameCount, bool) {
	if r.cursor == 0 {
		return 0, false
	}
	return r.log.At(r.cursor - 1).Frame, true
}

// CurrentFrame returns the frame of the next unread event.
func (r *Reader) CurrentFrame() (FrameCount, bool) {
	if r.cursor >= r.log.Len() {
		return 0, false
	}
	return r.log.At(r.cursor).Frame, true
}

// LastTime returns the elapsed time of the most recently read event.
func (r *Reader) LastTime() (time.Duration, bool) {
	if r.cursor == 0 {
		return 0, false
	}
	return r.log.At(r.cursor - 1).Elapsed, true
}

// CurrentTime returns the elapsed time of the next unread event.
func (r *Reader) CurrentTime() (time.Duration, bool) {
	if r.cursor >= r.log.Len() {
		return 0, false
	}
	return r.log.At(r.cursor).Elapsed, true
}
