package runner

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/ditaspace/internal/logging"
	"github.com/yaklabco/ditaspace/pkg/stylize"
)

// Processor handles a single file.
type Processor interface {
	ProcessFile(ctx context.Context, path string) (*stylize.Result, error)
}

var _ Processor = (*stylize.Pipeline)(nil)

// Runner processes discovered files one at a time.
type Runner struct {
	// Processor handles each file.
	Processor Processor
}

// New creates a Runner around p.
func New(p Processor) *Runner {
	return &Runner{Processor: p}
}

// Run discovers the files for opts and processes them in order.
//
// A failing file is logged and recorded in its FileOutcome; the batch
// continues. Cancellation is checked between files, and a cancelled run
// returns the partial result together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("run cancelled: %w", err)
		}

		logger.Info("found file", logging.FieldPath, path)

		outcome := FileOutcome{Path: path}
		res, err := r.Processor.ProcessFile(ctx, path)
		if err != nil {
			outcome.Error = err
			logger.Error("failed to process file", logging.FieldPath, path, logging.FieldError, err)
		} else {
			outcome.Result = res
			logOutcome(logger, res)
		}

		result.accumulate(outcome)
	}

	logger.Info(fmt.Sprintf("scanned %d, modified %d", result.Stats.FilesScanned, result.Stats.FilesModified),
		logging.FieldFilesScanned, result.Stats.FilesScanned,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldSpansChanged, result.Stats.SpansChanged,
		logging.FieldSpansMissed, result.Stats.SpansMissed)

	return result, nil
}

func logOutcome(logger *log.Logger, res *stylize.Result) {
	switch {
	case res.Skipped:
		logger.Warn("skipping save", logging.FieldPath, res.Path, logging.FieldReason, res.SkipReason)
	case res.Written:
		logger.Info("saved", logging.FieldPath, res.Path,
			logging.FieldSpansChanged, res.SpansChanged, logging.FieldBackup, res.BackupCreated)
	case res.Modified:
		logger.Info("changes pending", logging.FieldPath, res.Path,
			logging.FieldSpansChanged, res.SpansChanged, logging.FieldDryRun, true)
	default:
		logger.Info("unchanged, skipping save", logging.FieldPath, res.Path)
	}
}
