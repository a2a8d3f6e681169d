package cfg

import "strings"

// StmtKind is the canonical statement shape the builder lowers, independent
// of any one front end's literal node-kind strings.
type StmtKind int

const (
	StmtOther StmtKind = iota
	StmtBlock
	StmtIf
	StmtWhile
	StmtFor
	StmtSwitch
	StmtReturn
	StmtThrow
	StmtTry
	StmtBreak
	StmtContinue
)

// Classifier maps a front end's raw ast.Node.Kind() string to a StmtKind.
// The default classifier recognizes the node-kind naming convention shared
// by the tree-sitter grammars in the pack (Go, Java) and by most C-family /
// class-based language grammars generally: "if_statement", "while_statement",
// "for_statement", "switch_statement", "return_statement", "throw_statement",
// "try_statement", "block"/"block_statement". Front ends for a different
// naming convention can inject their own Classifier via WithClassifier.
type Classifier func(kind string) StmtKind

// DefaultClassifier implements the convention described above.
func DefaultClassifier(kind string) StmtKind {
	switch {
	case kind == "block" || kind == "block_statement" || kind == "statement_block":
		return StmtBlock
	case kind == "if_statement":
		return StmtIf
	case kind == "while_statement" || kind == "do_statement":
		return StmtWhile
	case kind == "for_statement" || kind == "for_in_statement" || kind == "foreach_statement":
		return StmtFor
	case kind == "switch_statement":
		return StmtSwitch
	case kind == "return_statement":
		return StmtReturn
	case kind == "throw_statement":
		return StmtThrow
	case kind == "try_statement":
		return StmtTry
	case kind == "break_statement":
		return StmtBreak
	case kind == "continue_statement":
		return StmtContinue
	case strings.HasSuffix(kind, "_statement"):
		return StmtOther
	default:
		return StmtOther
	}
}
