package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/ditaspace/internal/ui/pretty"
	"github.com/yaklabco/ditaspace/pkg/runner"
)

// TextReporter formats results as styled terminal output, one line per file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Unchanged files are listed only in verbose
// mode; errors, changes and skipped files are always listed.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to process."))
		}
		return 0, nil
	}

	for _, outcome := range result.Files {
		status := pretty.Status(outcome)
		if status == pretty.StatusUnchanged && !r.opts.Verbose {
			continue
		}

		outcome.Path = displayPath(outcome.Path, r.opts.WorkingDir)
		fmt.Fprint(r.bw, r.styles.FormatFileLine(outcome))

		if r.opts.Verbose && outcome.Result != nil {
			for _, miss := range outcome.Result.Misses {
				fmt.Fprint(r.bw, r.styles.FormatMiss(miss))
			}
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return changedFiles(result), nil
}
