package debt

import (
	"regexp"
	"strings"

	"github.com/viant/anteater/internal/ast"
)

// markerPattern finds the lexical comment markers of spec.md §4.9 inside a
// comment node's lexeme. Matching is case-sensitive on the convention the
// markers are almost always written in (all caps).
var markerPattern = regexp.MustCompile(`\b(TODO|FIXME|HACK|XXX)\b`)

var markerType = map[string]Type{
	"TODO": TODO, "FIXME": FIXME, "HACK": HACK, "XXX": XXX,
}

// ignorePragma matches common lint-suppression pragmas embedded in
// comments (nolint, ts-ignore, noqa and similar "ignore" directives).
var ignorePragma = regexp.MustCompile(`(?i)nolint|ts-ignore|noqa|ignore:`)

// Detector walks a parsed file once, producing every DebtItem spec.md
// §4.9 names: a lexical comment scan plus AST-level pattern checks.
type Detector struct {
	// GodClassThreshold is the member count above which a type/class
	// declaration is flagged as a god-object (spec.md §4.9: "class with
	// > threshold members").
	GodClassThreshold int
}

// NewDetector builds a Detector with spec.md's illustrative threshold.
func NewDetector() *Detector {
	return &Detector{GodClassThreshold: 20}
}

// Detect scans tree for every debt source spec.md §4.9 names.
func (d *Detector) Detect(tree ast.Tree) []Item {
	if tree == nil {
		return nil
	}
	var out []Item
	path := tree.Path()
	d.walk(tree.Root(), path, &out)
	return out
}

func (d *Detector) walk(n ast.Node, path string, out *[]Item) {
	if n == nil {
		return
	}
	kind := n.Kind()

	switch {
	case strings.Contains(kind, "comment"):
		d.scanComment(n, path, out)
	case isCastKind(kind):
		d.checkAsDynamic(n, path, out)
	case strings.Contains(kind, "catch"):
		d.checkEmptyCatch(n, path, out)
	case isTypeDeclKind(kind):
		d.checkGodClass(n, path, out)
	}

	if kids := n.Children(); len(kids) > 0 {
		for _, c := range kids {
			d.walk(c, path, out)
		}
		return
	}
	for _, field := range structuralFields {
		d.walk(n.FieldChild(field), path, out)
	}
}

// structuralFields mirrors internal/rules.structuralFields: a node whose
// Children() is empty exposes its structure only through named fields
// (internal/ast/asttest's fixtures; real tree-sitter nodes never have
// zero children when they carry fields).
var structuralFields = []string{
	"condition", "consequence", "alternative", "body", "initializer",
	"update", "left", "right", "value", "type", "operand", "function",
	"arguments", "name", "parameters", "receiver", "key", "expression",
}

func (d *Detector) scanComment(n ast.Node, path string, out *[]Item) {
	text := n.Lexeme()
	if m := markerPattern.FindString(text); m != "" {
		*out = append(*out, Item{
			Type: markerType[m], Severity: defaultSeverity[markerType[m]],
			File: path, Range: n.Range(), Description: strings.TrimSpace(text),
		})
		return
	}
	if strings.Contains(text, "@deprecated") || strings.Contains(text, "@Deprecated") {
		*out = append(*out, Item{
			Type: Deprecated, Severity: defaultSeverity[Deprecated],
			File: path, Range: n.Range(), Description: strings.TrimSpace(text),
		})
		return
	}
	if ignorePragma.MatchString(text) {
		*out = append(*out, Item{
			Type: IgnorePragma, Severity: defaultSeverity[IgnorePragma],
			File: path, Range: n.Range(), Description: strings.TrimSpace(text),
		})
	}
}

func isCastKind(kind string) bool {
	return kind == "cast_expression" || kind == "type_cast_expression" || kind == "as_expression"
}

// checkAsDynamic flags a cast whose target type is "dynamic" (spec.md
// §4.9's "as dynamic" pattern — a TypeScript/Dart-style escape from the
// type system that this analyzer otherwise cannot see through).
func (d *Detector) checkAsDynamic(n ast.Node, path string, out *[]Item) {
	t := n.FieldChild("type")
	if t == nil || t.Lexeme() != "dynamic" {
		return
	}
	*out = append(*out, Item{
		Type: AsDynamic, Severity: defaultSeverity[AsDynamic],
		File: path, Range: n.Range(), Description: "cast to dynamic",
	})
}

// checkEmptyCatch flags a catch clause whose body has no statements.
func (d *Detector) checkEmptyCatch(n ast.Node, path string, out *[]Item) {
	body := n.FieldChild("body")
	if body == nil || len(body.Children()) != 0 {
		return
	}
	*out = append(*out, Item{
		Type: EmptyCatch, Severity: defaultSeverity[EmptyCatch],
		File: path, Range: n.Range(), Description: "empty catch block swallows the exception",
	})
}

func isTypeDeclKind(kind string) bool {
	return kind == "class_declaration" || kind == "struct_type" || kind == "type_spec" ||
		kind == "interface_declaration" || kind == "class_body"
}

// checkGodClass flags a type declaration whose member/field list exceeds
// GodClassThreshold (spec.md §4.9: "class with > threshold members").
func (d *Detector) checkGodClass(n ast.Node, path string, out *[]Item) {
	body := n.FieldChild("body")
	if body == nil {
		body = n
	}
	members := countMembers(body)
	if members <= d.GodClassThreshold {
		return
	}
	*out = append(*out, Item{
		Type: GodClass, Severity: defaultSeverity[GodClass],
		File: path, Range: n.Range(),
		Description: "type declaration exceeds the member-count threshold",
	})
}

func countMembers(n ast.Node) int {
	count := 0
	for _, c := range n.Children() {
		switch c.Kind() {
		case "field_declaration", "method_declaration", "field_declaration_list":
			count++
		}
	}
	return count
}
