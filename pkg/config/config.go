// Package config defines the configuration of a spacing run. The types are
// plain data; loading and precedence live in internal/configloader.
package config

import "github.com/yaklabco/ditaspace/pkg/charset"

// OutputFormat selects how results are reported.
type OutputFormat string

// Output formats.
const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatDiff  OutputFormat = "diff"
	FormatTable OutputFormat = "table"
)

// Formats returns every supported output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatDiff, FormatTable}
}

// ColorMode controls colored output.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Backup modes, mirrored from fsutil so config stays dependency-light.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// DefaultLogLevel is the level used when none is configured.
const DefaultLogLevel = "INFO"

// ProjectConfigFile is the preferred project configuration file name.
const ProjectConfigFile = ".ditaspace.yml"

// BackupsConfig controls backups written before a file is overwritten.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"`
}

// Config is the resolved configuration for one run.
type Config struct {
	// Encoding is the primary encoding used to read and write files.
	Encoding string `yaml:"encoding"`

	// FallbackEncoding is tried once if Encoding cannot decode a file.
	FallbackEncoding string `yaml:"fallback_encoding"`

	// Recursive descends into subdirectories of a directory input.
	Recursive bool `yaml:"recursive"`

	// LogLevel is one of DEBUG, INFO, WARNING, ERROR.
	LogLevel string `yaml:"log_level"`

	// Markdown also processes .md and .markdown files.
	Markdown bool `yaml:"markdown"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Backups configures sidecar backups.
	Backups BackupsConfig `yaml:"backups"`

	// Format is the report format.
	Format OutputFormat `yaml:"format"`

	// Color controls colored output.
	Color ColorMode `yaml:"color"`

	// QuickModifiedCheck detects concurrent edits by modification time and
	// size only, skipping the re-hash done before each write.
	QuickModifiedCheck bool `yaml:"quick_modified_check"`

	// Command-line only.

	// Input is the file or directory to process.
	Input string `yaml:"-"`

	// DryRun reports changes without writing.
	DryRun bool `yaml:"-"`
}

// NewConfig returns a Config with the defaults.
func NewConfig() *Config {
	return &Config{
		Encoding:         charset.UTF8,
		FallbackEncoding: charset.GBK,
		LogLevel:         DefaultLogLevel,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    BackupModeSidecar,
		},
		Format: FormatText,
		Color:  ColorAuto,
	}
}
