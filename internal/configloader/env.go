package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/ditaspace/pkg/config"
)

// envVarPrefix prefixes every environment variable the loader reads.
const envVarPrefix = "DITASPACE_"

// envSetter applies one environment value to the configuration.
type envSetter struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringSetter(description string, set func(*config.Config, string)) envSetter {
	return envSetter{
		description: description,
		apply: func(cfg *config.Config, value string) error {
			set(cfg, value)
			return nil
		},
	}
}

func boolSetter(description string, set func(*config.Config, bool)) envSetter {
	return envSetter{
		description: description,
		apply: func(cfg *config.Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
			}
			set(cfg, b)
			return nil
		},
	}
}

// envSetters maps variable names without the prefix to their setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envSetters = map[string]envSetter{
	"INPUT": stringSetter("File or directory to process",
		func(c *config.Config, v string) { c.Input = v }),
	"ENCODING": stringSetter("Primary encoding, e.g. utf-8 or gbk",
		func(c *config.Config, v string) { c.Encoding = v }),
	"FALLBACK_ENCODING": stringSetter("Fallback encoding tried on decode failure",
		func(c *config.Config, v string) { c.FallbackEncoding = v }),
	"LOG_LEVEL": stringSetter("Log level: DEBUG, INFO, WARNING or ERROR",
		func(c *config.Config, v string) { c.LogLevel = v }),
	"FORMAT": stringSetter("Report format: text, json, diff or table",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	"COLOR": stringSetter("Colored output: auto, always or never",
		func(c *config.Config, v string) { c.Color = config.ColorMode(v) }),
	"BACKUPS_MODE": stringSetter("Backup mode: sidecar or none",
		func(c *config.Config, v string) { c.Backups.Mode = v }),
	"IGNORE": stringSetter("Comma-separated ignore globs",
		func(c *config.Config, v string) { c.Ignore = parseSliceValue(v) }),
	"RECURSIVE": boolSetter("Descend into subdirectories: true or false",
		func(c *config.Config, v bool) { c.Recursive = v }),
	"MARKDOWN": boolSetter("Process Markdown topics: true or false",
		func(c *config.Config, v bool) { c.Markdown = v }),
	"DRY_RUN": boolSetter("Report changes without writing: true or false",
		func(c *config.Config, v bool) { c.DryRun = v }),
	"BACKUPS_ENABLED": boolSetter("Write backups before overwriting: true or false",
		func(c *config.Config, v bool) { c.Backups.Enabled = v }),
	"QUICK_MODIFIED_CHECK": boolSetter("Skip re-hashing before writes: true or false",
		func(c *config.Config, v bool) { c.QuickModifiedCheck = v }),
}

// LoadFromEnv applies DITASPACE_* environment variables to cfg.
// Unset or empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.LookupEnv)
}

func loadFromEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range envSuffixes() {
		name := envVarPrefix + suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := envSetters[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envSetters))
	for suffix, setter := range envSetters {
		out[envVarPrefix+suffix] = setter.description
	}
	return out
}

func envSuffixes() []string {
	suffixes := make([]string, 0, len(envSetters))
	for suffix := range envSetters {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// parseSliceValue splits a comma-separated list, dropping blank entries.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
