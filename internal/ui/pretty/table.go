package pretty

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/ditaspace/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
	statusColumn     = 1
)

// TableRow is one file in the results table.
type TableRow struct {
	File     string
	Status   string
	Encoding string
	Spans    int
	Changed  int
	Missed   int
}

type column struct {
	title string
	width int
	right bool
}

// TableFormatter formats run results as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Rows converts runner outcomes to table rows.
func Rows(result *runner.Result) []TableRow {
	if result == nil {
		return nil
	}
	rows := make([]TableRow, 0, len(result.Files))
	for _, outcome := range result.Files {
		row := TableRow{File: outcome.Path, Status: Status(outcome)}
		if res := outcome.Result; res != nil {
			row.Encoding = res.Encoding
			row.Spans = res.Spans
			row.Changed = res.SpansChanged
			row.Missed = len(res.Misses)
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatTable formats runner results as a table, one row per file.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	rows := Rows(result)
	if len(rows) == 0 {
		return ""
	}

	cols := t.columns(rows)

	var builder strings.Builder

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	builder.WriteString(t.styles.TableHeader.Render(t.formatCells(cols, titles, nil)))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(cols, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		cells := []string{
			truncateLeft(row.File, cols[0].width),
			row.Status,
			row.Encoding,
			strconv.Itoa(row.Spans),
			strconv.Itoa(row.Changed),
			strconv.Itoa(row.Missed),
		}
		builder.WriteString(t.formatCells(cols, cells, func(i int, padded string) string {
			if i == statusColumn {
				return t.styles.FormatStatus(row.Status) + padded[len(row.Status):]
			}
			return padded
		}))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(cols, lightSeparator))
	builder.WriteString("\n")

	return builder.String()
}

// columns sizes each column to its widest cell, shrinking the file column
// to fit the terminal.
func (t *TableFormatter) columns(rows []TableRow) []column {
	cols := []column{
		{title: "FILE", width: minFileWidth},
		{title: "STATUS"},
		{title: "ENCODING"},
		{title: "SPANS", right: true},
		{title: "CHANGED", right: true},
		{title: "MISSED", right: true},
	}
	for i := range cols {
		cols[i].width = max(cols[i].width, runewidth.StringWidth(cols[i].title))
	}

	for _, row := range rows {
		cells := []string{
			row.File, row.Status, row.Encoding,
			strconv.Itoa(row.Spans), strconv.Itoa(row.Changed), strconv.Itoa(row.Missed),
		}
		for i, cell := range cells {
			cols[i].width = max(cols[i].width, runewidth.StringWidth(cell))
		}
	}

	if excess := totalWidth(cols) - t.termWidth; excess > 0 {
		cols[0].width = max(minFileWidth, cols[0].width-excess)
	}

	return cols
}

func totalWidth(cols []column) int {
	total := 0
	for _, c := range cols {
		total += c.width + tablePadding
	}
	return total
}

// formatCells pads each cell to its column width. Padding is computed on
// the plain text; style, if set, may decorate each padded cell.
func (t *TableFormatter) formatCells(cols []column, cells []string, style func(i int, padded string) string) string {
	var b strings.Builder
	b.WriteString(" ")
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", tablePadding))
		}
		padded := padRight(cell, cols[i].width)
		if cols[i].right {
			padded = padLeft(cell, cols[i].width)
		}
		if style != nil {
			padded = style(i, padded)
		}
		b.WriteString(padded)
	}
	return strings.TrimRight(b.String(), " ")
}

func (t *TableFormatter) formatSeparator(cols []column, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth(cols)))
}

// padRight pads s with spaces to display width w.
func padRight(s string, w int) string {
	return runewidth.FillRight(s, w)
}

// padLeft right-aligns s in display width w.
func padLeft(s string, w int) string {
	return runewidth.FillLeft(s, w)
}

// truncateLeft shortens s to display width w, keeping the end (file name).
func truncateLeft(s string, w int) string {
	if runewidth.StringWidth(s) <= w {
		return s
	}
	return ellipsis + runewidth.TruncateLeft(s, runewidth.StringWidth(s)-w+len(ellipsis), "")
}
