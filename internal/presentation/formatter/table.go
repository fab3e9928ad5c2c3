package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/penwyp/go-input-replay/internal/util"
)

// TableFormatter renders a report as bordered ASCII tables.
type TableFormatter struct{}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

func (f *TableFormatter) Format(report Report) error {
	fmt.Printf("Recording: %s\n", report.Path)
	fmt.Printf("Events: %s  Cursor: %d", util.FormatCount(report.EventCount), report.Cursor)
	if report.EventCount > 0 {
		fmt.Printf("  Frames: %d-%d  Time: %s-%s",
			report.FrameFirst, report.FrameLast,
			util.FormatElapsed(report.TimeFirst), util.FormatElapsed(report.TimeLast))
	}
	fmt.Println()
	fmt.Println()

	classRows := make([][]string, 0, len(report.Classes))
	for _, c := range report.Classes {
		classRows = append(classRows, []string{c.Class, util.FormatCount(c.Count)})
	}
	printTable([]string{"Class", "Count"}, classRows)

	if len(report.Events) > 0 {
		fmt.Println()
		eventRows := make([][]string, 0, len(report.Events))
		for _, e := range report.Events {
			eventRows = append(eventRows, []string{
				fmt.Sprintf("%d", e.Index),
				fmt.Sprintf("%d", e.Frame),
				util.FormatElapsed(e.Elapsed),
				e.Kind,
				e.Detail,
				e.Window,
			})
		}
		printTable([]string{"#", "Frame", "Elapsed", "Kind", "Detail", "Window"}, eventRows)
	}

	return nil
}

func printTable(headers []string, rows [][]string) {
	widths := columnWidths(headers, rows)

	printBorder(widths)
	printRow(headers, widths)
	printBorder(widths)
	for _, row := range rows {
		printRow(row, widths)
	}
	printBorder(widths)
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Shrink the widest column when the table would overflow the terminal.
	if termWidth, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && termWidth > 0 {
		for total(widths) > termWidth {
			widest := 0
			for i := range widths {
				if widths[i] > widths[widest] {
					widest = i
				}
			}
			if widths[widest] <= 8 {
				break
			}
			widths[widest]--
		}
	}

	return widths
}

func total(widths []int) int {
	// Per-column padding plus separators.
	t := 1
	for _, w := range widths {
		t += w + 3
	}
	return t
}

func printBorder(widths []int) {
	var b strings.Builder
	b.WriteString("+")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("+")
	}
	fmt.Println(b.String())
}

func printRow(cells []string, widths []int) {
	var b strings.Builder
	b.WriteString("|")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = runewidth.Truncate(cells[i], w, "…")
		}
		b.WriteString(" ")
		b.WriteString(runewidth.FillRight(cell, w))
		b.WriteString(" |")
	}
	fmt.Println(b.String())
}
