package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"verdict/internal/diag"
	"verdict/internal/diagfmt"
	"verdict/internal/engine"
	"verdict/internal/observ"
	"verdict/internal/project"
	"verdict/internal/rules"
	"verdict/internal/session"
	"verdict/internal/source"
	"verdict/internal/suppress"
	"verdict/internal/syntax"
	"verdict/internal/version"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <file" + project.BundleSuffix + "|directory>...",
	Short: "Run all rules over exported syntax trees",
	Long:  `Analyze loads tree files exported by a front end, runs every enabled rule over each tree in one pass and prints the resulting diagnostics`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	analyzeCmd.Flags().Int("jobs", 0, "max parallel files (0=config or auto)")
	analyzeCmd.Flags().String("config", "", "path to "+project.DefaultConfigName+" (default: search working directory)")
	analyzeCmd.Flags().Bool("no-cache", false, "disable the persistent result cache")
	analyzeCmd.Flags().String("fail-on", "error", "exit nonzero when diagnostics reach this severity (error|warning|never)")
	analyzeCmd.Flags().String("ui", "auto", "live progress UI (auto|on|off)")
	analyzeCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "sarif", "short":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json, sarif or short)", format)
	}

	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	colorOn, err := resolveColor(colorMode)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	failOn, err := cmd.Flags().GetString("fail-on")
	if err != nil {
		return fmt.Errorf("failed to get fail-on flag: %w", err)
	}
	switch failOn {
	case "error", "warning", "never":
	default:
		return fmt.Errorf("invalid --fail-on value %q (expected error|warning|never)", failOn)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	cfg, err := loadAnalyzeConfig(cmd)
	if err != nil {
		return err
	}
	suppression, err := cfg.Suppression()
	if err != nil {
		return err
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = cfg.Engine.Jobs
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = cfg.Engine.MaxDiagnostics
	}

	table, err := engine.NewTable(rules.Default())
	if err != nil {
		return fmt.Errorf("failed to build rule table: %w", err)
	}

	timer := observ.NewTimer()

	// load phase: bundles into the file set, trees into memory
	loadIdx := timer.Begin("load")
	inputs, err := project.CollectBundles(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no %s inputs found", project.BundleSuffix)
	}

	fs := source.NewFileSet()
	regions := suppress.NewRegions()
	trees := make([]*syntax.Tree, 0, len(inputs))
	for _, input := range inputs {
		tree, err := project.LoadBundle(fs, regions, input)
		if err != nil {
			return err
		}
		trees = append(trees, tree)
	}
	timer.End(loadIdx, strconv.Itoa(len(trees))+" trees")

	cache, err := openCache(cmd, cfg)
	if err != nil {
		return err
	}

	opts := session.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Cache:          cache,
	}

	analyzeIdx := timer.Begin("analyze")
	var results []session.Result
	if format == "pretty" && shouldUseTUI(mode) {
		results = runSessionWithUI(cmd, table, suppression, regions, opts, fs, trees)
	} else {
		s := session.New(table, suppression, regions, opts)
		results = s.Analyze(cmd.Context(), fs, trees)
	}
	timer.End(analyzeIdx, analyzeNote(results))

	renderIdx := timer.Begin("render")
	combined := session.Combined(results)
	if err := renderResults(cmd, format, colorOn, combined, fs, table); err != nil {
		return err
	}
	timer.End(renderIdx, "")

	for _, r := range results {
		if r.Cancelled {
			fmt.Fprintf(os.Stderr, "warning: analysis of %s was cancelled; results are partial\n", r.Path)
		}
	}
	if !quiet && format == "pretty" {
		printSummary(cmd, results, combined)
	}
	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	return checkFailOn(cmd, failOn, combined)
}

func loadAnalyzeConfig(cmd *cobra.Command) (project.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		return project.LoadConfig(configPath)
	}
	return project.LoadConfigIfPresent(project.DefaultConfigName)
}

func openCache(cmd *cobra.Command, cfg project.Config) (*session.DiskCache, error) {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if noCache || !cfg.Engine.Cache {
		return nil, nil
	}
	cache, err := session.OpenDiskCache("verdict")
	if err != nil {
		// a broken cache dir should not block analysis
		fmt.Fprintf(os.Stderr, "warning: result cache disabled: %v\n", err)
		return nil, nil
	}
	return cache, nil
}

func analyzeNote(results []session.Result) string {
	hits := 0
	for _, r := range results {
		if r.CacheHit {
			hits++
		}
	}
	if hits == 0 {
		return ""
	}
	return strconv.Itoa(hits) + " cache hits"
}

func renderResults(cmd *cobra.Command, format string, colorOn bool, combined *diag.Bag, fs *source.FileSet, table *engine.Table) error {
	out := cmd.OutOrStdout()
	pathMode := diagfmt.PathModeRelative
	if fullpath, err := cmd.Flags().GetBool("fullpath"); err == nil && fullpath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(out, combined, fs, diagfmt.PrettyOpts{
			Color:    colorOn,
			PathMode: pathMode,
		})
		return nil
	case "short":
		diagfmt.Short(out, combined, fs)
		return nil
	case "json":
		return diagfmt.JSON(out, combined, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
		})
	case "sarif":
		return diagfmt.Sarif(out, combined, fs, table.Descriptors(), diagfmt.SarifRunMeta{
			ToolName:       "verdict",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	}
	return nil
}

func printSummary(cmd *cobra.Command, results []session.Result, combined *diag.Bag) {
	errors, warnings := 0, 0
	for _, d := range combined.Items() {
		switch d.Severity {
		case diag.SevError:
			errors++
		case diag.SevWarning:
			warnings++
		}
	}
	cached, dropped := 0, 0
	for _, r := range results {
		if r.CacheHit {
			cached++
		}
		dropped += r.Stats.Dropped
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d files, %d diagnostics (%d errors, %d warnings)",
		len(results), combined.Len(), errors, warnings)
	if cached > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", %d cached", cached)
	}
	if dropped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", %d dropped by --max-diagnostics", dropped)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

func checkFailOn(cmd *cobra.Command, failOn string, combined *diag.Bag) error {
	cmd.SilenceUsage = true
	switch failOn {
	case "error":
		if combined.HasErrors() {
			return fmt.Errorf("analysis reported errors")
		}
	case "warning":
		if combined.HasErrors() || combined.HasWarnings() {
			return fmt.Errorf("analysis reported warnings or errors")
		}
	}
	return nil
}
