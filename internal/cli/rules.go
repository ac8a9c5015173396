package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/ditaspace/internal/logging"
	"github.com/yaklabco/ditaspace/pkg/spacing"
)

const formatJSON = "json"

// ruleInfo represents a spacing rule in JSON output.
type ruleInfo struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the spacing rules",
		Long: `List the spacing rules in the order they are applied. Each rule matches
one adjacent pair of characters and separates them with a single space.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := spacing.Rules()

			switch format {
			case formatJSON:
				return outputRulesJSON(cmd, rules)
			case "", "text":
			default:
				return fmt.Errorf("invalid format %q: must be text or json", format)
			}

			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{ReportTimestamp: false})
			logger.SetLevel(log.InfoLevel)

			for _, rule := range rules {
				logger.Info(rule.Name, logging.FieldPattern, rule.Pattern.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(cmd *cobra.Command, rules []spacing.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{Name: rule.Name, Pattern: rule.Pattern.String()})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
