package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"verdict/internal/engine"
	"verdict/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in rules and their descriptors",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "table", "output format (table|json)")
}

type ruleInfoJSON struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Category         string `json:"category"`
	Severity         string `json:"severity"`
	EnabledByDefault bool   `json:"enabled_by_default"`
	HelpURI          string `json:"help_uri,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	table, err := engine.NewTable(rules.Default())
	if err != nil {
		return fmt.Errorf("failed to build rule table: %w", err)
	}

	descriptors := table.Descriptors()
	switch format {
	case "json":
		infos := make([]ruleInfoJSON, 0, len(descriptors))
		for _, d := range descriptors {
			infos = append(infos, ruleInfoJSON{
				ID:               d.ID,
				Title:            d.Title,
				Category:         d.Category,
				Severity:         strings.ToLower(d.DefaultSeverity.String()),
				EnabledByDefault: d.EnabledByDefault,
				HelpURI:          d.HelpURI,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)

	case "table":
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s %-12s %-8s %-8s %s\n", "ID", "CATEGORY", "SEVERITY", "DEFAULT", "TITLE")
		for _, d := range descriptors {
			enabled := "on"
			if !d.EnabledByDefault {
				enabled = "off"
			}
			fmt.Fprintf(out, "%-8s %-12s %-8s %-8s %s\n",
				d.ID, d.Category, strings.ToLower(d.DefaultSeverity.String()), enabled, d.Title)
		}
		return nil

	default:
		return fmt.Errorf("unsupported format %q (must be table or json)", format)
	}
}
