// Package treesitter is the concrete AST front end binding: it satisfies
// internal/ast's Node/Tree interfaces over github.com/smacker/go-tree-sitter,
// the same parser library the teacher analyzer (github.com/viant/linager)
// walks directly. Anteater's core never imports this package; only
// internal/discover and cmd/anteater do, at the external-parser boundary
// spec.md §1 calls out.
package treesitter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/viant/anteater/internal/ast"
)

// Language names recognized by Parse.
const (
	Go   = "go"
	Java = "java"
)

func languageFor(name string) (*sitter.Language, error) {
	switch name {
	case Go:
		return golang.GetLanguage(), nil
	case Java:
		return java.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("treesitter: unsupported language %q", name)
	}
}

// Parse parses src as the named language and returns an ast.Tree rooted at
// the resulting parse tree. The returned tree owns src; callers must not
// mutate it afterwards (tree-sitter nodes index into it by byte offset).
func Parse(ctx context.Context, path, language string, src []byte) (ast.Tree, error) {
	lang, err := languageFor(language)
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("treesitter: parse %s: %w", path, err)
	}
	return &Tree{path: path, src: src, tree: tree}, nil
}

// Tree adapts a *sitter.Tree + source buffer to ast.Tree.
type Tree struct {
	path string
	src  []byte
	tree *sitter.Tree
}

func (t *Tree) Root() ast.Node { return &Node{n: t.tree.RootNode(), src: t.src} }

func (t *Tree) SourceText() string { return string(t.src) }

func (t *Tree) Path() string { return t.path }

// LineColumn converts a byte offset into a 1-based (line, column) pair by
// scanning the source buffer, matching the convention tree-sitter itself
// uses internally (0-based rows/columns) promoted to the core's 1-based
// contract (spec.md §6).
func (t *Tree) LineColumn(offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.src) {
		offset = len(t.src)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if t.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// Node adapts a *sitter.Node to ast.Node.
type Node struct {
	n   *sitter.Node
	src []byte
}

func (n *Node) Kind() string { return n.n.Type() }

func (n *Node) Children() []ast.Node {
	count := int(n.n.ChildCount())
	out := make([]ast.Node, 0, count)
	for i := 0; i < count; i++ {
		ch := n.n.Child(i)
		if ch == nil {
			continue
		}
		out = append(out, &Node{n: ch, src: n.src})
	}
	return out
}

func (n *Node) Range() ast.Range {
	start := n.n.StartPoint()
	end := n.n.EndPoint()
	return ast.Range{
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
	}
}

func (n *Node) Lexeme() string {
	return string(n.src[n.n.StartByte():n.n.EndByte()])
}

func (n *Node) FieldChild(field string) ast.Node {
	ch := n.n.ChildByFieldName(field)
	if ch == nil {
		return nil
	}
	return &Node{n: ch, src: n.src}
}

// compile-time interface assertions
var (
	_ ast.Node = (*Node)(nil)
	_ ast.Tree = (*Tree)(nil)
)
