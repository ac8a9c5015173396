package stylize

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/ditaspace/internal/logging"
	"github.com/yaklabco/ditaspace/pkg/charset"
	"github.com/yaklabco/ditaspace/pkg/fix"
	"github.com/yaklabco/ditaspace/pkg/fsutil"
	"github.com/yaklabco/ditaspace/pkg/langdetect"
	"github.com/yaklabco/ditaspace/pkg/textnode"
)

// Error categories for classification with errors.Is.
var (
	// ErrRead covers missing, unreadable, binary and undecodable files.
	ErrRead = errors.New("read failure")

	// ErrParse indicates malformed markup.
	ErrParse = errors.New("parse failure")

	// ErrWrite covers encode, backup and write failures.
	ErrWrite = errors.New("write failure")
)

// Options controls file processing.
type Options struct {
	// Encoding is the primary encoding.
	Encoding string

	// FallbackEncoding is tried once on decode failure. Empty disables it.
	FallbackEncoding string

	// Markdown enables Markdown topics.
	Markdown bool

	// DryRun produces diffs instead of writing.
	DryRun bool

	// Backup configures sidecar backups.
	Backup fsutil.BackupConfig

	// QuickModifiedCheck skips the content re-hash before writing.
	QuickModifiedCheck bool
}

// Result is the outcome of processing one file.
type Result struct {
	Path string

	// Format is the format the file was processed as.
	Format langdetect.Format

	// Encoding is the encoding the file was decoded with.
	Encoding string

	// Spans is the number of text spans located.
	Spans int

	// SpansChanged is the number of spans that received spaces.
	SpansChanged int

	// Misses are text nodes that could not be located in the source.
	Misses []textnode.Miss

	// Modified is true if the content changed in memory.
	Modified bool

	// Written is true if the file was overwritten.
	Written bool

	// BackupCreated is true if a backup was written.
	BackupCreated bool

	// Skipped is true if a modified file was deliberately not written.
	Skipped bool

	// SkipReason explains Skipped.
	SkipReason string

	// Diff is set in dry-run mode when the file would change.
	Diff *fix.Diff
}

// Summary returns a short status for the file.
func (r *Result) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "saved (backup created)"
	case r.Written:
		return "saved"
	case r.Modified:
		return "changes pending"
	default:
		return "unchanged"
	}
}

// Pipeline processes files one at a time.
type Pipeline struct {
	Engine  *Engine
	decoder *charset.Decoder
	opts    Options
}

// NewPipeline validates the encodings in opts and returns a Pipeline.
func NewPipeline(engine *Engine, opts Options) (*Pipeline, error) {
	decoder, err := charset.NewDecoder(opts.Encoding, opts.FallbackEncoding)
	if err != nil {
		return nil, fmt.Errorf("configure encodings: %w", err)
	}
	if engine == nil {
		engine = NewEngine()
	}
	return &Pipeline{Engine: engine, decoder: decoder, opts: opts}, nil
}

// ProcessFile runs one file through the pipeline:
//  1. Read the raw bytes and snapshot the file state.
//  2. Decode with the primary encoding, then the fallback.
//  3. Rewrite the text in memory.
//  4. In dry-run mode, produce a diff and stop.
//  5. Skip the write if the file changed on disk meanwhile.
//  6. Back up the original bytes if enabled.
//  7. Encode with the encoding that decoded it and write atomically.
//
// Errors wrap ErrRead, ErrParse or ErrWrite.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*Result, error) {
	logger := logging.FromContext(ctx)

	format := langdetect.FormatOf(path, p.opts.Markdown)
	if format == langdetect.FormatUnsupported {
		format = langdetect.FormatXML
	}
	result := &Result{Path: path, Format: format}

	raw, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	if !p.decoder.Primary.IsUTF16() && langdetect.IsBinary(raw) {
		return nil, fmt.Errorf("%w: %s: binary content", ErrRead, path)
	}

	logger.Debug("reading file", logging.FieldPath, path,
		logging.FieldEncoding, p.decoder.Primary.Name,
		logging.FieldLanguage, langdetect.Language(path, raw))

	text, codec, err := p.decoder.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	result.Encoding = codec.Name
	if codec.Name != p.decoder.Primary.Name {
		logger.Warn("decoded with fallback encoding", logging.FieldPath, path, logging.FieldEncoding, codec.Name)
	}

	outcome, err := p.Engine.ProcessContent(ctx, text, format)
	if err != nil {
		if errors.Is(err, textnode.ErrParse) {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	result.Spans = outcome.Spans
	result.SpansChanged = len(outcome.Edits)
	result.Misses = outcome.Misses
	result.Modified = outcome.Modified

	for _, miss := range outcome.Misses {
		logger.Warn("text node not found in source, skipping",
			logging.FieldPath, path, logging.FieldOffset, miss.Offset, logging.FieldText, miss.Preview())
	}

	if !outcome.Modified {
		return result, nil
	}

	if p.opts.DryRun {
		diff, err := fix.GenerateDiff(path, text, outcome.Text)
		if err != nil {
			return nil, err
		}
		result.Diff = diff
		return result, nil
	}

	encoded, err := codec.Encode(outcome.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	changed, err := fsutil.CheckModified(ctx, info, !p.opts.QuickModifiedCheck)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	created, err := fsutil.CreateBackup(ctx, info, raw, p.opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, path, encoded, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	result.Written = true

	return result, nil
}
