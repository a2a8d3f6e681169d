package cfg

import (
	"fmt"

	"github.com/viant/anteater/internal/ast"
)

// BuildError is CfgBuildError from spec.md §4.1/§7: construction failed for
// one function because of a malformed AST (unmatched jump, etc). Callers
// skip the affected function and continue with the rest of the file.
type BuildError struct {
	Node   ast.Node
	Reason string
}

func (e *BuildError) Error() string {
	if e.Node != nil {
		r := e.Node.Range()
		return fmt.Sprintf("cfg: %s (at %d:%d)", e.Reason, r.StartLine, r.StartCol)
	}
	return fmt.Sprintf("cfg: %s", e.Reason)
}

func buildErr(n ast.Node, reason string) error {
	return &BuildError{Node: n, Reason: reason}
}
