package logging

// Structured log field names.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldInput    = "input"
	FieldEncoding = "encoding"
	FieldFormat   = "format"
	FieldLanguage = "language"
	FieldOffset   = "offset"
	FieldText     = "text"
	FieldReason   = "reason"
	FieldBackup   = "backup"
	FieldConfig   = "config"
	FieldFiles    = "files"
	FieldRule     = "rule"
	FieldPattern  = "pattern"
	FieldWorkDir  = "working_dir"

	// Run options.
	FieldRecursive = "recursive"
	FieldDryRun    = "dry_run"
	FieldMarkdown  = "markdown"

	// Per-file and batch counts.
	FieldSpans          = "spans"
	FieldSpansChanged   = "spans_changed"
	FieldSpansMissed    = "spans_missed"
	FieldFilesScanned   = "files_scanned"
	FieldFilesModified  = "files_modified"
	FieldFilesUnchanged = "files_unchanged"
	FieldFilesErrored   = "files_errored"
	FieldFilesSkipped   = "files_skipped"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
