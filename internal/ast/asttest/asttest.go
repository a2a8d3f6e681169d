// Package asttest builds small, hand-authored ast.Node/ast.Tree trees for
// tests across internal/cfg, internal/ssa, internal/metrics, and
// internal/rules, so those packages can be exercised without a real parser
// front end. Field names here follow the same convention the default
// cfg.Classifier and the CFG/expression lowerers recognize
// ("condition"/"consequence"/"alternative" for if, "left"/"right" for
// binary expressions and assignments, etc.) — the same convention
// github.com/smacker/go-tree-sitter's Go grammar uses, which is why
// internal/ast/treesitter needs no special-casing to sit alongside it.
package asttest

import "github.com/viant/anteater/internal/ast"

// N is a mutable, hand-built AST node for tests.
type N struct {
	KindVal   string
	Lex       string
	Kids      []*N
	Fields    map[string]*N
	RangeVal  ast.Range
}

// Node builds a leaf or interior node.
func Node(kind string, kids ...*N) *N {
	return &N{KindVal: kind, Kids: kids}
}

// Leaf builds an identifier/literal node carrying lexeme text.
func Leaf(kind, lexeme string) *N {
	return &N{KindVal: kind, Lex: lexeme}
}

// WithField attaches a named field child (e.g. "condition", "body").
func (n *N) WithField(name string, child *N) *N {
	if n.Fields == nil {
		n.Fields = map[string]*N{}
	}
	n.Fields[name] = child
	return n
}

// At sets the node's source range.
func (n *N) At(startLine, startCol, endLine, endCol int) *N {
	n.RangeVal = ast.Range{StartLine: startLine, StartCol: startCol, EndLine: endLine, EndCol: endCol}
	return n
}

func (n *N) Kind() string { return n.KindVal }

func (n *N) Children() []ast.Node {
	out := make([]ast.Node, len(n.Kids))
	for i, k := range n.Kids {
		out[i] = k
	}
	return out
}

func (n *N) Range() ast.Range { return n.RangeVal }

func (n *N) Lexeme() string { return n.Lex }

func (n *N) FieldChild(field string) ast.Node {
	if n.Fields == nil {
		return nil
	}
	c, ok := n.Fields[field]
	if !ok || c == nil {
		return nil
	}
	return c
}

// Tree wraps a root *N as an ast.Tree.
type Tree struct {
	RootNode *N
	Path_    string
	Src      string
}

func (t *Tree) Root() ast.Node       { return t.RootNode }
func (t *Tree) SourceText() string   { return t.Src }
func (t *Tree) Path() string         { return t.Path_ }
func (t *Tree) LineColumn(offset int) (int, int) {
	line, col := 1, 1
	for i := 0; i < offset && i < len(t.Src); i++ {
		if t.Src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

var (
	_ ast.Node = (*N)(nil)
	_ ast.Tree = (*Tree)(nil)
)
