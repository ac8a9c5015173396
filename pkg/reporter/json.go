package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/ditaspace/internal/ui/pretty"
	"github.com/yaklabco/ditaspace/pkg/runner"
)

// jsonSchemaVersion identifies the JSON output layout.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path          string     `json:"path"`
	Status        string     `json:"status"`
	Format        string     `json:"format,omitempty"`
	Encoding      string     `json:"encoding,omitempty"`
	Spans         int        `json:"spans"`
	SpansChanged  int        `json:"spansChanged"`
	Misses        []JSONMiss `json:"misses,omitempty"`
	Modified      bool       `json:"modified"`
	Written       bool       `json:"written"`
	BackupCreated bool       `json:"backupCreated,omitempty"`
	SkipReason    string     `json:"skipReason,omitempty"`
	Diff          string     `json:"diff,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// JSONMiss is a text node that could not be located in the source.
type JSONMiss struct {
	Offset int    `json:"offset"`
	Text   string `json:"text"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesScanned   int `json:"filesScanned"`
	FilesModified  int `json:"filesModified"`
	FilesWritten   int `json:"filesWritten"`
	FilesUnchanged int `json:"filesUnchanged"`
	FilesSkipped   int `json:"filesSkipped"`
	FilesErrored   int `json:"filesErrored"`
	SpansChanged   int `json:"spansChanged"`
	SpansMissed    int `json:"spansMissed"`
	BackupsCreated int `json:"backupsCreated"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesModified, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	for _, outcome := range result.Files {
		file := JSONFileResult{
			Path:   displayPath(outcome.Path, r.opts.WorkingDir),
			Status: pretty.Status(outcome),
		}

		if outcome.Error != nil {
			file.Error = outcome.Error.Error()
		}

		if res := outcome.Result; res != nil {
			file.Format = res.Format.String()
			file.Encoding = res.Encoding
			file.Spans = res.Spans
			file.SpansChanged = res.SpansChanged
			file.Modified = res.Modified
			file.Written = res.Written
			file.BackupCreated = res.BackupCreated
			file.SkipReason = res.SkipReason
			if res.Diff != nil {
				file.Diff = res.Diff.String()
			}
			for _, miss := range res.Misses {
				file.Misses = append(file.Misses, JSONMiss{Offset: miss.Offset, Text: miss.Text})
			}
		}

		output.Files = append(output.Files, file)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesScanned:   stats.FilesScanned,
		FilesModified:  stats.FilesModified,
		FilesWritten:   stats.FilesWritten,
		FilesUnchanged: stats.FilesUnchanged,
		FilesSkipped:   stats.FilesSkipped,
		FilesErrored:   stats.FilesErrored,
		SpansChanged:   stats.SpansChanged,
		SpansMissed:    stats.SpansMissed,
		BackupsCreated: stats.BackupsCreated,
	}

	return output
}
