package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/ditaspace/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "scanned 12, modified 3, 9 unchanged, 1 error".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("scanned %d", stats.FilesScanned),
	}

	modified := fmt.Sprintf("modified %d", stats.FilesModified)
	if stats.FilesModified > 0 {
		modified = s.Success.Render(modified)
	}
	parts = append(parts, modified)

	if stats.FilesUnchanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "error", "errors")))
	}
	if stats.SpansMissed > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.SpansMissed, "text node", "text nodes")+" not located"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-20s%s\n", label+":", value)
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files scanned", s.SummaryValue.Render(strconv.Itoa(stats.FilesScanned)))
	row("Files modified", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	if stats.FilesWritten != stats.FilesModified {
		row("Files written", s.SummaryValue.Render(strconv.Itoa(stats.FilesWritten)))
	}
	row("Files unchanged", s.SummaryValue.Render(strconv.Itoa(stats.FilesUnchanged)))
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files with errors", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")

	row("Spans changed", s.SummaryValue.Render(strconv.Itoa(stats.SpansChanged)))
	if stats.SpansMissed > 0 {
		row("Spans not located", s.Warning.Render(strconv.Itoa(stats.SpansMissed)))
	}
	if stats.BackupsCreated > 0 {
		row("Backups created", s.SummaryValue.Render(strconv.Itoa(stats.BackupsCreated)))
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Completed with errors"))
	case stats.FilesModified == 0:
		builder.WriteString(s.Success.Render("Nothing to change"))
	default:
		builder.WriteString(s.Success.Render("Done"))
	}
	builder.WriteString("\n")

	return builder.String()
}
