package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/viant/anteater/internal/config"
	"github.com/viant/anteater/internal/rules"
	"github.com/viant/anteater/internal/run"
)

var (
	scanConcurrency int
	scanWorstK      int
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Analyze a project root and report metrics, violations, and debt",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanConcurrency, "concurrency", 0, "number of files analyzed in parallel (0 = sequential)")
	scanCmd.Flags().IntVar(&scanWorstK, "worst", 10, "number of worst-rated functions to list (0 = no limit)")
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	conf, err := loadConfig()
	if err != nil {
		return withExitCode(err, exitConfigError)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner := run.New(conf, run.WithConcurrency(scanConcurrency), run.WithWorstK(scanWorstK))
	result, err := runner.Scan(ctx, root)
	if err != nil {
		if _, ok := err.(*run.AbortedError); !ok {
			return withExitCode(fmt.Errorf("scan: %w", err), exitInternalError)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}

	printReport(cmd, result)

	switch {
	case result.DebtThresholdHit:
		return withExitCode(fmt.Errorf("debt cost %.1f exceeds threshold %.1f", result.Report.TotalDebtCost, conf.Debt.Threshold), exitThresholdExceeded)
	case result.Report.Violations > 0:
		return withExitCode(fmt.Errorf("%d violation(s) found", result.Report.Violations), exitViolations)
	}
	return nil
}

func printReport(cmd *cobra.Command, result *run.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "anteater scan %s (%s)\n", result.RunID, result.Root)
	fmt.Fprintf(out, "files analyzed:   %d\n", len(result.Report.Files))
	fmt.Fprintf(out, "avg cyclomatic:   %.1f\n", result.Report.AvgCC)
	fmt.Fprintf(out, "avg maintainability: %.1f\n", result.Report.AvgMI)
	fmt.Fprintf(out, "health score:     %.1f\n", result.Report.HealthScore)
	fmt.Fprintf(out, "violations:       %d\n", result.Report.Violations)
	fmt.Fprintf(out, "debt cost:        %.1f\n", result.Report.TotalDebtCost)
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "skipped:          %d\n", len(result.Skipped))
		for _, s := range result.Skipped {
			if s.Function != "" {
				fmt.Fprintf(out, "  - %s:%s — %s\n", s.File, s.Function, s.Reason)
			} else {
				fmt.Fprintf(out, "  - %s — %s\n", s.File, s.Reason)
			}
		}
	}
	for _, wf := range result.Report.WorstFunctions {
		fmt.Fprintf(out, "  [%s] %s:%s MI=%.1f CC=%d\n", wf.Rating, wf.File, wf.Name, wf.MI, wf.CC)
	}
}

// loadConfig reads --config when given, otherwise falls back to
// config.Default() — spec.md §6's "a missing config file is not an error,
// only a missing or malformed one that was explicitly named".
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configPath, err)
	}
	return config.Load(data)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the active style-rule registry",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every active rule, its severity, and the node kinds it checks",
	RunE:  runRulesList,
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
}

func runRulesList(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return withExitCode(err, exitConfigError)
	}
	active := conf.ActiveRules(rules.Default())

	out := cmd.OutOrStdout()
	enc := yaml.NewEncoder(out)
	defer enc.Close()

	type ruleEntry struct {
		ID        string   `yaml:"id"`
		Severity  string   `yaml:"severity"`
		NodeKinds []string `yaml:"nodeKinds"`
	}
	entries := make([]ruleEntry, 0, len(active))
	for _, r := range active {
		entries = append(entries, ruleEntry{ID: r.ID(), Severity: r.Severity().String(), NodeKinds: r.NodeKinds()})
	}
	return enc.Encode(entries)
}
