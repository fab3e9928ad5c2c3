package formatter

import (
	"fmt"
	"time"
)

// Report is the displayable summary of one recording.
type Report struct {
	Path       string        `json:"path"`
	EventCount int           `json:"event_count"`
	Cursor     int           `json:"cursor"`
	FrameFirst uint64        `json:"frame_first"`
	FrameLast  uint64        `json:"frame_last"`
	TimeFirst  time.Duration `json:"time_first_ns"`
	TimeLast   time.Duration `json:"time_last_ns"`
	Classes    []ClassCount  `json:"classes"`
	Events     []EventRow    `json:"events,omitempty"`
}

// ClassCount tallies one device class.
type ClassCount struct {
	Class string `json:"class"`
	Count int    `json:"count"`
}

// EventRow is one recorded event rendered for display.
type EventRow struct {
	Index   int           `json:"index"`
	Frame   uint64        `json:"frame"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Kind    string        `json:"kind"`
	Detail  string        `json:"detail"`
	Window  string        `json:"window,omitempty"`
}

// Formatter renders a report to stdout.
type Formatter interface {
	Format(report Report) error
}

// New returns the formatter for the requested output format.
func New(format string) (Formatter, error) {
	switch format {
	case "table":
		return NewTableFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
