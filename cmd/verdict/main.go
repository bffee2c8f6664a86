package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"verdict/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "verdict",
	Short: "Verdict rule-multiplexing analyzer",
	Long:  `Verdict runs a set of detection rules over exported syntax trees in a single pass and reports deduplicated, ordered diagnostics`,
}

// main registers subcommands and persistent flags, then executes the
// root command. Command failures exit with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum diagnostics per file (0=config default)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColor applies the --color mode to the global fatih/color
// switch and reports whether output should be colorized.
func resolveColor(mode string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		on := isTerminal(os.Stdout)
		color.NoColor = !on
		return on, nil
	case "on", "always":
		color.NoColor = false
		return true, nil
	case "off", "never":
		color.NoColor = true
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
