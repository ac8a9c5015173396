package runner

import "github.com/yaklabco/ditaspace/pkg/stylize"

// FileOutcome pairs a processed path with its result or error.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil when Error is set.
	Result *stylize.Result

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesScanned is the number of files the run attempted.
	FilesScanned int

	// FilesModified counts files whose content changed, written or not.
	FilesModified int

	// FilesWritten counts files overwritten on disk.
	FilesWritten int

	// FilesUnchanged counts files that needed no change.
	FilesUnchanged int

	// FilesSkipped counts changed files deliberately left unwritten.
	FilesSkipped int

	// FilesErrored counts files that failed.
	FilesErrored int

	// SpansChanged is the number of text spans that received spaces.
	SpansChanged int

	// SpansMissed is the number of text nodes skipped as not found.
	SpansMissed int

	// BackupsCreated is the number of sidecar backups written.
	BackupsCreated int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per file, in processing order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Errors returns the per-file errors in processing order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errs
}

// accumulate records an outcome and updates the stats.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.FilesScanned++

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	res := outcome.Result
	if res == nil {
		return
	}

	r.Stats.SpansChanged += res.SpansChanged
	r.Stats.SpansMissed += len(res.Misses)

	switch {
	case !res.Modified:
		r.Stats.FilesUnchanged++
	case res.Skipped:
		r.Stats.FilesModified++
		r.Stats.FilesSkipped++
	default:
		r.Stats.FilesModified++
	}

	if res.Written {
		r.Stats.FilesWritten++
	}
	if res.BackupCreated {
		r.Stats.BackupsCreated++
	}
}
