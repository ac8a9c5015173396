package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/ditaspace/pkg/runner"
	"github.com/yaklabco/ditaspace/pkg/stylize"
	"github.com/yaklabco/ditaspace/pkg/textnode"
)

// Status labels shown per file.
const (
	StatusSaved     = "saved"
	StatusPending   = "would change"
	StatusUnchanged = "unchanged"
	StatusSkipped   = "skipped"
	StatusError     = "error"
)

// Status returns the label for an outcome.
func Status(outcome runner.FileOutcome) string {
	res := outcome.Result
	switch {
	case outcome.Error != nil:
		return StatusError
	case res == nil:
		return StatusUnchanged
	case res.Skipped:
		return StatusSkipped
	case res.Written:
		return StatusSaved
	case res.Modified:
		return StatusPending
	default:
		return StatusUnchanged
	}
}

// FormatStatus renders a status label in its style.
func (s *Styles) FormatStatus(status string) string {
	switch status {
	case StatusSaved:
		return s.Saved.Render(status)
	case StatusPending:
		return s.Pending.Render(status)
	case StatusSkipped:
		return s.Skipped.Render(status)
	case StatusError:
		return s.Error.Render(status)
	default:
		return s.Unchanged.Render(status)
	}
}

// FormatFileLine formats one outcome as "path: status (details)".
func (s *Styles) FormatFileLine(outcome runner.FileOutcome) string {
	status := Status(outcome)

	var b strings.Builder
	b.WriteString(s.FilePath.Render(outcome.Path))
	b.WriteString(": ")
	b.WriteString(s.FormatStatus(status))

	if outcome.Error != nil {
		b.WriteString(" ")
		b.WriteString(s.Error.Render(outcome.Error.Error()))
		b.WriteString("\n")
		return b.String()
	}

	if details := fileDetails(outcome.Result); details != "" {
		b.WriteString(" ")
		b.WriteString(s.Dim.Render("(" + details + ")"))
	}
	b.WriteString("\n")
	return b.String()
}

func fileDetails(res *stylize.Result) string {
	if res == nil {
		return ""
	}

	var parts []string
	if res.SpansChanged > 0 {
		parts = append(parts, plural(res.SpansChanged, "span", "spans")+" changed")
	}
	if res.Skipped && res.SkipReason != "" {
		parts = append(parts, res.SkipReason)
	}
	if res.BackupCreated {
		parts = append(parts, "backup created")
	}
	if res.Encoding != "" && res.Encoding != "utf-8" {
		parts = append(parts, res.Encoding)
	}
	return strings.Join(parts, ", ")
}

// FormatMiss formats a skipped text node as an indented warning line.
func (s *Styles) FormatMiss(miss textnode.Miss) string {
	return fmt.Sprintf("  %s %s %q\n",
		s.Offset.Render(fmt.Sprintf("@%d", miss.Offset)),
		s.Warning.Render("not found in source, skipped:"),
		miss.Preview(),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
