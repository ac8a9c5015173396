package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ditaspace/internal/configloader"
	"github.com/yaklabco/ditaspace/internal/logging"
	"github.com/yaklabco/ditaspace/pkg/config"
	"github.com/yaklabco/ditaspace/pkg/fsutil"
	"github.com/yaklabco/ditaspace/pkg/reporter"
	"github.com/yaklabco/ditaspace/pkg/runner"
	"github.com/yaklabco/ditaspace/pkg/stylize"
)

// ErrMissingInput is returned when neither --input nor DITASPACE_INPUT is set.
var ErrMissingInput = errors.New("required flag --input not set")

type stylizeFlags struct {
	input            string
	encoding         string
	fallbackEncoding string
	recursive        bool
	logLevel         string
	dryRun           bool
	backup           bool
	markdown         bool
	ignore           []string
	format           string
	verbose          bool
	compact          bool
	quickCheck       bool
}

func addStylizeFlags(cmd *cobra.Command, flags *stylizeFlags) {
	defaults := config.NewConfig()

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "file or directory to process (required unless DITASPACE_INPUT is set)")
	cmd.Flags().StringVarP(&flags.encoding, "encoding", "e", defaults.Encoding,
		"encoding used to read and write files")
	cmd.Flags().StringVar(&flags.fallbackEncoding, "fallback-encoding", defaults.FallbackEncoding,
		"encoding tried once when the primary encoding fails")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", defaults.LogLevel,
		"log level: DEBUG, INFO, WARNING, ERROR")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "report changes without writing files")
	cmd.Flags().BoolVar(&flags.backup, "backup", false,
		"write <file>"+fsutil.BackupSuffix+" before overwriting a file")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "also process .md and .markdown files")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().StringVar(&flags.format, "format", string(defaults.Format),
		"report format: text, json, diff, table")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"list unchanged files and skipped text nodes in the report")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minified JSON output")
	cmd.Flags().BoolVar(&flags.quickCheck, "quick-modified-check", false,
		"detect concurrent edits by size and modification time only")
}

// cliConfig copies the flags the user actually set into a Config, so that
// unset flags leave file and environment values alone.
func cliConfig(cmd *cobra.Command, flags *stylizeFlags) *config.Config {
	cfg := &config.Config{
		Input:              flags.input,
		Recursive:          flags.recursive,
		DryRun:             flags.dryRun,
		Markdown:           flags.markdown,
		Ignore:             flags.ignore,
		QuickModifiedCheck: flags.quickCheck,
	}
	cfg.Backups.Enabled = flags.backup

	changed := cmd.Flags().Changed
	if changed("encoding") {
		cfg.Encoding = flags.encoding
	}
	if changed("fallback-encoding") {
		cfg.FallbackEncoding = flags.fallbackEncoding
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("color") {
		color, _ := cmd.Flags().GetString("color")
		cfg.Color = config.ColorMode(color)
	}
	return cfg
}

func runStylize(cmd *cobra.Command, flags *stylizeFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	cfg := loadResult.Config
	if cfg.Input == "" {
		return ErrMissingInput
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	ctx = logging.WithLogger(ctx, logger)

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	pipeline, err := stylize.NewPipeline(stylize.NewEngine(), stylize.Options{
		Encoding:         cfg.Encoding,
		FallbackEncoding: cfg.FallbackEncoding,
		Markdown:         cfg.Markdown,
		DryRun:           cfg.DryRun,
		Backup: fsutil.BackupConfig{
			Enabled: cfg.Backups.Enabled,
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
		QuickModifiedCheck: cfg.QuickModifiedCheck,
	})
	if err != nil {
		return err
	}

	logger.Debug("starting run",
		logging.FieldInput, cfg.Input,
		logging.FieldWorkDir, workDir,
		logging.FieldEncoding, cfg.Encoding,
		logging.FieldRecursive, cfg.Recursive,
		logging.FieldMarkdown, cfg.Markdown,
		logging.FieldDryRun, cfg.DryRun,
	)

	result, err := runner.New(pipeline).Run(ctx, runner.Options{
		Input:        cfg.Input,
		WorkingDir:   workDir,
		Recursive:    cfg.Recursive,
		Markdown:     cfg.Markdown,
		ExcludeGlobs: cfg.Ignore,
	})
	if err != nil {
		return err
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       cfg.Color,
		ShowSummary: true,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return nil
}
