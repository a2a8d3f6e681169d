// Command anteater is Anteater's CLI framing: interface-level cobra command
// tree (spec.md §1's "CLI framing" is explicitly out of scope for the
// analysis core) wrapping internal/run, internal/rules, and internal/datalog.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viant/anteater/internal/log"
)

// Exit codes, spec.md §6: "informative" driver-level codes.
const (
	exitOK               = 0
	exitViolations        = 1
	exitThresholdExceeded = 2
	exitConfigError       = 64
	exitInternalError     = 70
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "anteater",
	Short: "Anteater - static analysis for CFG/SSA/Datalog-backed source inspection",
	Long: `Anteater parses source into a control-flow graph and SSA form, runs a
bottom-up Datalog evaluator and an abstract-interpretation safety checker
over it, and reports complexity metrics, style violations, and technical
debt.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := log.Init(verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file")
	rootCmd.AddCommand(scanCmd, rulesCmd, datalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := err.(exitCoder); ok {
			os.Exit(code.ExitCode())
		}
		os.Exit(exitInternalError)
	}
}

// exitCoder lets a command's RunE carry a specific exit code (spec.md §6)
// through cobra's plain error-return surface.
type exitCoder interface {
	error
	ExitCode() int
}

type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) ExitCode() int { return e.code }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &exitError{err: err, code: code}
}
