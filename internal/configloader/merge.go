package configloader

import "github.com/yaklabco/ditaspace/pkg/config"

// merge layers override on top of base and returns a new Config.
//   - Strings replace base when non-empty.
//   - Booleans can only be switched on; false is indistinguishable from unset.
//   - Slices replace base when non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	setString(&result.Encoding, override.Encoding)
	setString(&result.FallbackEncoding, override.FallbackEncoding)
	setString(&result.LogLevel, override.LogLevel)
	setString(&result.Backups.Mode, override.Backups.Mode)
	setString(&result.Input, override.Input)

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	result.Recursive = result.Recursive || override.Recursive
	result.Markdown = result.Markdown || override.Markdown
	result.DryRun = result.DryRun || override.DryRun
	result.Backups.Enabled = result.Backups.Enabled || override.Backups.Enabled
	result.QuickModifiedCheck = result.QuickModifiedCheck || override.QuickModifiedCheck

	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// MergeAll merges configs in order; later ones take precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
