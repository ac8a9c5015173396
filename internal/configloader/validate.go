package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/ditaspace/internal/logging"
	"github.com/yaklabco/ditaspace/pkg/charset"
	"github.com/yaklabco/ditaspace/pkg/config"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	// Field is the config key, e.g. "backups.mode".
	Field string

	// Value is the offending value.
	Value any

	Message string

	// FilePath is the config file the value came from, if known.
	FilePath string
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult collects errors and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	config.BackupModeSidecar: true,
	config.BackupModeNone:    true,
}

// Validate checks every set field of cfg. Empty fields are not errors so a
// partial config file validates on its own.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Encoding != "" && !charset.Valid(cfg.Encoding) {
		result.addError("encoding", cfg.Encoding, "unknown encoding %q", cfg.Encoding)
	}
	if cfg.FallbackEncoding != "" && !charset.Valid(cfg.FallbackEncoding) {
		result.addError("fallback_encoding", cfg.FallbackEncoding, "unknown encoding %q", cfg.FallbackEncoding)
	}

	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			result.addError("log_level", cfg.LogLevel, "invalid log level %q; must be one of: %s",
				cfg.LogLevel, strings.Join(logging.Levels(), ", "))
		}
	}

	if cfg.Format != "" && !IsValidFormat(cfg.Format) {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: text, json, diff, table", cfg.Format)
	}

	switch cfg.Color {
	case "", config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		result.addError("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}
	if cfg.Backups.Enabled && cfg.Backups.Mode == config.BackupModeNone {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "backups",
			Message: "backups are enabled but mode is none; no backups will be written",
		})
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

// ValidateWithFile validates cfg and tags every finding with filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidFormat reports whether f is a supported output format.
func IsValidFormat(f config.OutputFormat) bool {
	for _, known := range config.Formats() {
		if f == known {
			return true
		}
	}
	return false
}
