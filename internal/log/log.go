// Package log wraps a package-level zap.SugaredLogger, the way
// cmd/nerd/main.go builds and installs a *zap.Logger for CLI output.
// Anteater uses it for spec.md §7's "file skipped, logged" notices and
// run-level timing; never inside the hot CFG/SSA/Datalog passes themselves.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop().Sugar()

// Init builds the process logger: zap's production config, debug level if
// verbose is set, mirroring cmd/nerd's rootCmd.PersistentPreRunE.
func Init(verbose bool) error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	built, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = built.Sugar()
	return nil
}

// Sync flushes buffered log entries; call before process exit.
func Sync() {
	_ = logger.Sync()
}

// SkippedFile logs a per-file skip notice (ParseError, CfgBuildError, etc.)
// per spec.md §7, tagging the reason so the run's skipped-section report
// can be reconstructed from logs alone if needed.
func SkippedFile(path string, reason error) {
	logger.Warnw("skipped file", "path", path, "reason", reason)
}

// SkippedFunction logs a per-function skip notice (SsaError, CfgBuildError).
func SkippedFunction(file, function string, reason error) {
	logger.Warnw("skipped function", "file", file, "function", function, "reason", reason)
}

// RunStarted logs the start of an analysis run.
func RunStarted(runID string, root string) {
	logger.Infow("run started", "runId", runID, "root", root)
}

// RunFinished logs run completion with its wall-clock duration in
// milliseconds and the number of files analyzed.
func RunFinished(runID string, files int, durationMS int64) {
	logger.Infow("run finished", "runId", runID, "files", files, "durationMs", durationMS)
}

// Error logs an unexpected condition (ConfigError, DatalogProgramError);
// internal/run logs Datalog failures here and continues the scan.
func Error(msg string, err error) {
	logger.Errorw(msg, "error", err)
}
