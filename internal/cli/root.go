// Package cli provides the Cobra command structure for ditaspace.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ditaspace/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root ditaspace command with all subcommands.
// The root command itself runs the stylizer.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var configPath string
	var color string
	flags := &stylizeFlags{}

	rootCmd := &cobra.Command{
		Use:   "ditaspace",
		Short: "Insert spaces between Chinese and Latin text in XML and DITA files",
		Long: `ditaspace inserts a single space between Chinese characters and adjacent
Latin letters, digits and opening parentheses in the text of XML and DITA
documents, rewriting files in place.

Only text nodes change. Markup, attributes, comments, CDATA sections,
processing instructions and the XML declaration are preserved byte for byte.`,
		Example: `  ditaspace -i topic.dita                 Fix a single file
  ditaspace -i docs -r                    Fix every .xml and .dita file under docs
  ditaspace -i docs -r --dry-run          Show the changes as diffs
  ditaspace -i legacy -e gbk --backup     Read and write GBK, keeping backups`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStylize(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	addStylizeFlags(rootCmd, flags)

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(config.ColorMode(color), os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
