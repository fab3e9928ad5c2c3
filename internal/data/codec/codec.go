// Package codec persists event logs as line-delimited JSON: one record per
// captured event in log order, followed by a single trailing cursor record.
// A load of a saved file reproduces the events, their order, and the cursor
// exactly.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-input-replay/internal/core/event"
	"github.com/penwyp/go-input-replay/internal/core/timeline"
)

// ErrMalformed marks content that opened fine but does not parse as a
// recording. Callers can distinguish it from plain I/O failures with
// errors.Is.
var ErrMalformed = errors.New("codec: malformed recording")

// line is the on-disk shape of a single JSON line. Event records carry
// frame, elapsed_ns, and event; the final line carries only cursor.
type line struct {
	Frame   *uint64           `json:"frame,omitempty"`
	Elapsed *time.Duration    `json:"elapsed_ns,omitempty"`
	Event   *event.InputEvent `json:"event,omitempty"`
	Cursor  *int              `json:"cursor,omitempty"`
}

// Save writes the full log plus the given cursor position to path,
// overwriting any existing file.
func Save(path string, log *timeline.EventLog, cursor int) error {
	if cursor < 0 || cursor > log.Len() {
		return fmt.Errorf("codec: cursor %d out of range [0, %d]", cursor, log.Len())
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("codec: creating %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for i := 0; i < log.Len(); i++ {
		te := log.At(i)
		frame := uint64(te.Frame)
		elapsed := te.Elapsed
		ev := te.Event
		data, err := sonic.Marshal(line{Frame: &frame, Elapsed: &elapsed, Event: &ev})
		if err != nil {
			return fmt.Errorf("codec: encoding record %d: %w", i, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("codec: writing %s: %w", path, err)
		}
	}

	data, err := sonic.Marshal(line{Cursor: &cursor})
	if err != nil {
		return fmt.Errorf("codec: encoding cursor: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("codec: writing %s: %w", path, err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("codec: writing %s: %w", path, err)
	}
	return file.Sync()
}

// Load reads a recording from path and returns the reconstructed log plus
// the persisted cursor. An unreadable path surfaces as an I/O error; content
// that does not parse, mismatches an event kind with its payload, lacks the
// trailing cursor record, or carries an out-of-range cursor surfaces as
// ErrMalformed. A loaded log therefore never feeds an invalid event into
// playback.
func Load(path string) (*timeline.EventLog, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("codec: opening %s: %w", path, err)
	}
	defer file.Close()

	log := timeline.NewEventLog()
	cursor := -1

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		if cursor >= 0 {
			return nil, 0, fmt.Errorf("%w: %s line %d: content after cursor record", ErrMalformed, path, lineNo)
		}

		var rec line
		if err := sonic.Unmarshal(raw, &rec); err != nil {
			return nil, 0, fmt.Errorf("%w: %s line %d: %v", ErrMalformed, path, lineNo, err)
		}

		switch {
		case rec.Cursor != nil:
			cursor = *rec.Cursor
		case rec.Frame != nil && rec.Elapsed != nil && rec.Event != nil:
			if err := rec.Event.Validate(); err != nil {
				return nil, 0, fmt.Errorf("%w: %s line %d: %v", ErrMalformed, path, lineNo, err)
			}
			log.Append(timeline.FrameCount(*rec.Frame), *rec.Elapsed, *rec.Event)
		default:
			return nil, 0, fmt.Errorf("%w: %s line %d: incomplete record", ErrMalformed, path, lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("codec: reading %s: %w", path, err)
	}

	if cursor < 0 {
		return nil, 0, fmt.Errorf("%w: %s: missing trailing cursor record", ErrMalformed, path)
	}
	if cursor > log.Len() {
		return nil, 0, fmt.Errorf("%w: %s: cursor %d exceeds %d events", ErrMalformed, path, cursor, log.Len())
	}

	return log, cursor, nil
}
