// Package ast defines the language-agnostic AST visitor surface the analysis
// core consumes. The core never imports a concrete parser; it only ever
// walks values that satisfy Node and Tree, so the same CFG/SSA/Datalog/
// abstract-interpretation pipeline runs unchanged over any front end that
// implements this interface (see internal/ast/treesitter for the concrete
// binding used by Anteater's own CLI).
package ast

// Range is a 1-based source range, (startLine, startCol, endLine, endCol).
// The core treats all positions as 1-based; conversion to 0-based LSP
// ranges happens only at the internal/diagnostics boundary.
type Range struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Contains reports whether r fully contains o.
func (r Range) Contains(o Range) bool {
	if o.StartLine < r.StartLine || (o.StartLine == r.StartLine && o.StartCol < r.StartCol) {
		return false
	}
	if o.EndLine > r.EndLine || (o.EndLine == r.EndLine && o.EndCol > r.EndCol) {
		return false
	}
	return true
}

// Node is a single AST node. Implementations are expected to be cheap
// value-like wrappers over a parser's own node type.
type Node interface {
	// Kind classifies the node (e.g. "if_statement", "binary_expression").
	// Kind strings are defined by the front end; the core only ever compares
	// them against literal constants it declares itself.
	Kind() string
	// Children returns the node's direct children in source order.
	Children() []Node
	// Range returns the node's source range.
	Range() Range
	// Lexeme returns the raw source text spanned by the node. For identifier
	// and literal nodes this is the name/literal text; for composite nodes
	// it is implementation-defined and not relied upon by the core.
	Lexeme() string
	// FieldChild returns a named child (e.g. "condition", "body"), or nil if
	// the front end does not expose named children or the field is absent.
	FieldChild(field string) Node
}

// Tree is a parsed compilation unit.
type Tree interface {
	Root() Node
	// SourceText returns the full source text of the unit.
	SourceText() string
	// LineColumn converts a byte offset into the unit's source into a
	// 1-based (line, column) pair.
	LineColumn(offset int) (line, col int)
	// Path returns the file path the tree was parsed from.
	Path() string
}

// Visitor is the capability interface used to walk a tree without requiring
// node types to know about each other (spec: "polymorphism set with a
// capability interface, no inheritance required").
type Visitor interface {
	// Enter is called before a node's children are visited. Returning false
	// skips the node's children (but Exit is still called).
	Enter(n Node) bool
	Exit(n Node)
}

// Walk performs a depth-first pre/post-order traversal of n using v.
func Walk(n Node, v Visitor) {
	if n == nil {
		return
	}
	if v.Enter(n) {
		for _, c := range n.Children() {
			Walk(c, v)
		}
	}
	v.Exit(n)
}

// funcVisitor adapts two closures to the Visitor interface.
type funcVisitor struct {
	enter func(Node) bool
	exit  func(Node)
}

func (f funcVisitor) Enter(n Node) bool {
	if f.enter == nil {
		return true
	}
	return f.enter(n)
}

func (f funcVisitor) Exit(n Node) {
	if f.exit != nil {
		f.exit(n)
	}
}

// WalkFunc walks n calling enter on descent and exit on ascent; either may
// be nil.
func WalkFunc(n Node, enter func(Node) bool, exit func(Node)) {
	Walk(n, funcVisitor{enter: enter, exit: exit})
}

// Find returns the first descendant of n (including n) for which pred
// returns true, in pre-order.
func Find(n Node, pred func(Node) bool) Node {
	var found Node
	WalkFunc(n, func(cur Node) bool {
		if found != nil {
			return false
		}
		if pred(cur) {
			found = cur
			return false
		}
		return true
	}, nil)
	return found
}

// Collect returns every descendant of n (including n) for which pred
// returns true, in pre-order.
func Collect(n Node, pred func(Node) bool) []Node {
	var out []Node
	WalkFunc(n, func(cur Node) bool {
		if pred(cur) {
			out = append(out, cur)
		}
		return true
	}, nil)
	return out
}
