// Package timeline stores timestamped input events in the order they were
// captured and hands them back out through cursor-driven readers during
// playback.
package timeline

import (
	"sort"
	"time"

	"github.com/penwyp/go-input-replay/internal/core/event"
)

// TimestampedEvent is one captured input event together with the frame and
// elapsed time at which it was observed. Immutable once appended.
type TimestampedEvent struct {
	Frame   FrameCount       `json:"frame"`
	Elapsed time.Duration    `json:"elapsed_ns"`
	Event   event.InputEvent `json:"event"`
}

// SortKey selects which timestamp component ordering operations compare by.
// In any normally captured log the two orderings agree.
type SortKey int

const (
	// ByFrame orders events by ascending frame count.
	ByFrame SortKey = iota
	// ByTime orders events by ascending elapsed time.
	ByTime
)

func (k SortKey) String() string {
	if k == ByTime {
		return "time"
	}
	return "frame"
}

// EventLog is the append-only store of captured events. It holds no read
// position of its own; playback sessions track their position with a Reader,
// so a recorded fixture can back any number of independent replays.
type EventLog struct {
	events []TimestampedEvent
}

// NewEventLog returns an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Append records a single event at the given frame and elapsed time.
func (l *EventLog) Append(frame FrameCount, elapsed time.Duration, ev event.InputEvent) {
	l.events = append(l.events, TimestampedEvent{Frame: frame, Elapsed: elapsed, Event: ev})
}

// AppendMany records a batch of events sharing one timestamp, preserving the
// caller's order.
func (l *EventLog) AppendMany(frame FrameCount, elapsed time.Duration, evs []event.InputEvent) {
	for _, ev := range evs {
		l.Append(frame, elapsed, ev)
	}
}

// Len reports the number of stored events.
func (l *EventLog) Len() int {
	return len(l.events)
}

// IsEmpty reports whether the log holds no events.
func (l *EventLog) IsEmpty() bool {
	return len(l.events) == 0
}

// At returns the event at index i. The index must be in [0, Len).
func (l *EventLog) At(i int) TimestampedEvent {
	return l.events[i]
}

// FrameRange returns the first and last frame over all stored events.
// ok is false for an empty log.
func (l *EventLog) FrameRange() (first, last FrameCount, ok bool) {
	if len(l.events) == 0 {
		return 0, 0, false
	}
	return l.events[0].Frame, l.events[len(l.events)-1].Frame, true
}

// TimeRange returns the earliest and latest elapsed time over all stored
// events. ok is false for an empty log.
func (l *EventLog) TimeRange() (first, last time.Duration, ok bool) {
	if len(l.events) == 0 {
		return 0, 0, false
	}
	return l.events[0].Elapsed, l.events[len(l.events)-1].Elapsed, true
}

// Sort reorders the stored events by the given key. Only needed for logs
// assembled out of capture order; freshly captured logs are already sorted.
func (l *EventLog) Sort(key SortKey) {
	if key == ByTime {
		sort.SliceStable(l.events, func(i, j int) bool {
			return l.events[i].Elapsed < l.events[j].Elapsed
		})
		return
	}
	sort.SliceStable(l.events, func(i, j int) bool {
		return l.events[i].Frame < l.events[j].Frame
	})
}

// IsSorted reports whether the stored events are non-decreasing in the given
// key.
func (l *EventLog) IsSorted(key SortKey) bool {
	for i := 1; i < len(l.events); i++ {
		if key == ByTime {
			if l.events[i].Elapsed < l.events[i-1].Elapsed {
				return false
			}
		} else if l.events[i].Frame < l.events[i-1].Frame {
			return false
		}
	}
	return true
}

// orderChecks enables the sorted-log precondition assertions on Reader
// queries. Off by default; tests switch it on.
var orderChecks bool

// SetOrderChecks toggles the debug ordering assertions and returns the
// previous setting.
func SetOrderChecks(enabled bool) bool {
	prev := orderChecks
	orderChecks = enabled
	return prev
}

func assertSorted(l *EventLog, key SortKey) {
	if orderChecks && !l.IsSorted(key) {
		panic("timeline: event log is not sorted by " + key.String())
	}
}
