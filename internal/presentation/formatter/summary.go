package formatter

import (
	"fmt"

	"github.com/penwyp/go-input-replay/internal/util"
)

// SummaryFormatter renders a report as a short key/value block.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) Format(report Report) error {
	fmt.Printf("Recording:    %s\n", report.Path)
	fmt.Printf("Events:       %s\n", util.FormatCount(report.EventCount))
	fmt.Printf("Cursor:       %d\n", report.Cursor)
	if report.EventCount > 0 {
		fmt.Printf("Frame range:  %d - %d\n", report.FrameFirst, report.FrameLast)
		fmt.Printf("Time range:   %s - %s\n",
			util.FormatElapsed(report.TimeFirst), util.FormatElapsed(report.TimeLast))
	}
	for _, c := range report.Classes {
		if c.Count == 0 {
			continue
		}
		fmt.Printf("  %-14s %s\n", c.Class+":", util.FormatCount(c.Count))
	}
	return nil
}
