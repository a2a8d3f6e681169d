package run

import "fmt"

// AbortedError wraps spec.md §7's AnalysisAborted: the run was cancelled
// before completion. Result still carries every file/function finished
// before cancellation; this error is returned in addition, for callers that
// want to distinguish "done" from "done early".
type AbortedError struct {
	RunID string
	Root  string
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("run: analysis aborted (run %s, root %s)", e.RunID, e.Root)
}

// ConfigError wraps spec.md §7's ConfigError: a fatal configuration problem
// at start-up, before any file is scanned.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("run: configuration error: %s", e.Reason)
}
