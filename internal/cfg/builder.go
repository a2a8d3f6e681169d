package cfg

import (
	"fmt"
	"strings"

	"github.com/viant/anteater/internal/ast"
)

// loopCtx records the header/exit targets for the innermost enclosing loop,
// for break/continue lowering.
type loopCtx struct {
	header BlockID
	exit   BlockID
}

// Builder performs the structured-statement lowering of spec.md §4.1. A
// Builder carries only local scratch for one function; callers must not
// share a single instance across goroutines (spec.md §5), but a Builder may
// be reused sequentially: each Build call resets its per-function state.
type Builder struct {
	classifier       Classifier
	allowFallthrough bool

	g         *CFG
	funcScope string
	loops     []loopCtx
	catches   []BlockID
	err       error
}

// NewBuilder constructs a Builder with the given options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{classifier: DefaultClassifier}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build lowers a single function AST node into a CFG (spec.md §4.1).
func Build(fn ast.Node, opts ...Option) (*CFG, error) {
	return NewBuilder(opts...).Build(fn)
}

// Build lowers fn using b's configuration. Safe to call multiple times on
// distinct fn nodes sequentially (not concurrently).
func (b *Builder) Build(fn ast.Node) (*CFG, error) {
	b.g = &CFG{Symbols: map[SymbolID]*Symbol{}}
	b.loops = nil
	b.catches = nil
	b.err = nil
	b.funcScope = functionName(fn)

	entry := b.newBlock(KindEntry)
	exit := b.newBlock(KindExit)
	b.g.Entry = entry.ID
	b.g.Exit = exit.ID

	b.declareParameters(fn)

	body := fn.FieldChild("body")
	if body == nil {
		body = ast.Find(fn, func(n ast.Node) bool { return b.classifier(n.Kind()) == StmtBlock })
	}
	if body == nil {
		return nil, buildErr(fn, "function has no body")
	}

	end := b.lowerStmt(entry, body)
	if b.err != nil {
		return nil, b.err
	}
	if end != nil {
		b.addEdge(end.ID, exit.ID)
	}

	if err := validate(b.g); err != nil {
		return nil, err
	}
	return b.g, nil
}

func functionName(fn ast.Node) string {
	if name := fn.FieldChild("name"); name != nil {
		return name.Lexeme()
	}
	return "<anonymous>"
}

func (b *Builder) declareParameters(fn ast.Node) {
	params := fn.FieldChild("parameters")
	if params == nil {
		return
	}
	for _, p := range params.Children() {
		nameNode := p.FieldChild("name")
		if nameNode == nil {
			continue
		}
		var declType string
		if t := p.FieldChild("type"); t != nil {
			declType = t.Lexeme()
		}
		sym := b.g.NewSymbol(nameNode.Lexeme(), b.funcScope, declType)
		sym.IsParam = true
	}
}

// --- block/edge plumbing -----------------------------------------------

func (b *Builder) newBlock(kind BlockKind) *Block {
	id := BlockID(len(b.g.Blocks))
	blk := &Block{ID: id, Kind: kind}
	b.g.Blocks = append(b.g.Blocks, blk)
	if kind != KindCatch && len(b.catches) > 0 {
		b.addEdge(id, b.catches[len(b.catches)-1])
	}
	return blk
}

func (b *Builder) addEdge(from, to BlockID) {
	fb := b.g.Blocks[from]
	tb := b.g.Blocks[to]
	if !fb.HasSucc(to) {
		fb.Succs = append(fb.Succs, to)
	}
	if !tb.HasPred(from) {
		tb.Preds = append(tb.Preds, from)
	}
}

func (b *Builder) emit(cur *Block, instr *Instruction) *Instruction {
	instr.ID = InstrID(len(b.g.Instructions))
	b.g.Instructions = append(b.g.Instructions, instr)
	cur.Instructions = append(cur.Instructions, instr.ID)
	if instr.Op == OpBranch || instr.Op == OpReturn {
		cur.terminated = true
	}
	return instr
}

func (b *Builder) declareOrLookup(name string) *Symbol {
	if id, ok := b.g.SymbolByName[name]; ok {
		return b.g.Symbol(id)
	}
	return b.g.NewSymbol(name, b.funcScope, "")
}

func (b *Builder) newTemp() *Symbol {
	sym := b.g.NewSymbol("", b.funcScope, "")
	sym.Name = fmt.Sprintf("%%t%d", sym.ID)
	return sym
}

func (b *Builder) fail(n ast.Node, reason string) {
	if b.err == nil {
		b.err = buildErr(n, reason)
	}
}

// --- statement lowering --------------------------------------------------

// lowerStmt lowers n starting at cur, returning the block where control
// continues after n, or nil if n always terminates the enclosing block
// (return, throw, break, continue, or an if/switch/try whose every branch
// terminates).
func (b *Builder) lowerStmt(cur *Block, n ast.Node) *Block {
	if n == nil || cur == nil || b.err != nil {
		return cur
	}
	switch b.classifier(n.Kind()) {
	case StmtBlock:
		for _, c := range n.Children() {
			cur = b.lowerStmt(cur, c)
			if cur == nil {
				break
			}
		}
		return cur
	case StmtIf:
		return b.lowerIf(cur, n)
	case StmtWhile, StmtFor:
		return b.lowerLoop(cur, n)
	case StmtSwitch:
		return b.lowerSwitch(cur, n)
	case StmtReturn:
		return b.lowerReturn(cur, n)
	case StmtThrow:
		return b.lowerThrow(cur, n)
	case StmtTry:
		return b.lowerTry(cur, n)
	case StmtBreak:
		return b.lowerBreak(cur, n)
	case StmtContinue:
		return b.lowerContinue(cur, n)
	default:
		return b.lowerSimple(cur, n)
	}
}

func (b *Builder) lowerSimple(cur *Block, n ast.Node) *Block {
	kind := n.Kind()
	switch {
	case strings.Contains(kind, "assignment"), strings.Contains(kind, "var_declaration"),
		strings.Contains(kind, "variable_declaration"), strings.Contains(kind, "short_var"):
		b.lowerAssignment(cur, n)
	default:
		b.lowerExpr(cur, n)
	}
	return cur
}

func (b *Builder) lowerAssignment(cur *Block, n ast.Node) {
	left := n.FieldChild("left")
	right := n.FieldChild("right")
	if left == nil || right == nil {
		// declaration-with-initializer shape: fall back to scanning named
		// identifier/initializer children.
		left = ast.Find(n, func(c ast.Node) bool { return c.Kind() == "identifier" })
		right = n.FieldChild("value")
	}
	if left == nil {
		return
	}
	rhsSym := NoSymbol
	if right != nil {
		rhsSym = b.lowerExpr(cur, right)
	} else {
		rhsSym = b.newTemp().ID
	}
	dst := b.declareOrLookup(left.Lexeme())
	b.emit(cur, &Instruction{Op: OpAssign, Node: n, Operands: []SymbolID{rhsSym}, Result: dst.ID})
}

func (b *Builder) lowerIf(cur *Block, n ast.Node) *Block {
	cond := n.FieldChild("condition")
	condSym := b.lowerExpr(cur, cond)
	b.emit(cur, &Instruction{Op: OpBranch, Node: n, Operands: []SymbolID{condSym}})

	thenNode := n.FieldChild("consequence")
	if thenNode == nil {
		thenNode = firstChildOfKind(n, StmtBlock, b.classifier)
	}
	thenBlock := b.newBlock(KindNormal)
	b.addEdge(cur.ID, thenBlock.ID)
	thenEnd := b.lowerStmt(thenBlock, thenNode)

	altNode := n.FieldChild("alternative")
	var elseEnd *Block
	if altNode != nil {
		elseBlock := b.newBlock(KindNormal)
		b.addEdge(cur.ID, elseBlock.ID)
		elseEnd = b.lowerStmt(elseBlock, altNode)
	} else {
		elseEnd = cur
	}

	if thenEnd == nil && elseEnd == nil {
		return nil
	}
	join := b.newBlock(KindNormal)
	if thenEnd != nil {
		b.addEdge(thenEnd.ID, join.ID)
	}
	if elseEnd != nil {
		b.addEdge(elseEnd.ID, join.ID)
	}
	return join
}

func (b *Builder) lowerLoop(cur *Block, n ast.Node) *Block {
	if init := n.FieldChild("initializer"); init != nil {
		cur = b.lowerStmt(cur, init)
		if cur == nil {
			return nil
		}
	}
	header := b.newBlock(KindLoopHeader)
	b.addEdge(cur.ID, header.ID)

	cond := n.FieldChild("condition")
	condSym := b.lowerExpr(header, cond)
	b.emit(header, &Instruction{Op: OpBranch, Node: n, Operands: []SymbolID{condSym}})

	exitBlock := b.newBlock(KindNormal)
	b.addEdge(header.ID, exitBlock.ID)

	body := n.FieldChild("body")
	bodyBlock := b.newBlock(KindNormal)
	b.addEdge(header.ID, bodyBlock.ID)

	b.loops = append(b.loops, loopCtx{header: header.ID, exit: exitBlock.ID})
	bodyEnd := b.lowerStmt(bodyBlock, body)
	b.loops = b.loops[:len(b.loops)-1]

	if bodyEnd != nil {
		if update := n.FieldChild("update"); update != nil {
			bodyEnd = b.lowerStmt(bodyEnd, update)
		}
	}
	if bodyEnd != nil {
		b.addEdge(bodyEnd.ID, header.ID)
	}
	return exitBlock
}

func (b *Builder) lowerSwitch(cur *Block, n ast.Node) *Block {
	subject := n.FieldChild("value")
	if subject == nil {
		subject = n.FieldChild("condition")
	}
	b.lowerExpr(cur, subject)

	cases := filterChildren(n, func(c ast.Node) bool { return strings.Contains(c.Kind(), "case") })
	if len(cases) == 0 {
		return cur
	}

	hasDefault := false
	var caseBlocks []*Block
	for _, c := range cases {
		if strings.Contains(c.Kind(), "default") {
			hasDefault = true
		}
		blk := b.newBlock(KindNormal)
		b.addEdge(cur.ID, blk.ID)
		caseBlocks = append(caseBlocks, blk)
	}

	join := b.newBlock(KindNormal)
	needJoin := false
	for i, c := range cases {
		end := b.lowerStmt(caseBlocks[i], caseBody(c))
		if end == nil {
			continue
		}
		if b.allowFallthrough && i < len(cases)-1 {
			b.addEdge(end.ID, caseBlocks[i+1].ID)
			continue
		}
		b.addEdge(end.ID, join.ID)
		needJoin = true
	}
	if !hasDefault {
		b.addEdge(cur.ID, join.ID)
		needJoin = true
	}
	if !needJoin {
		return nil
	}
	return join
}

func (b *Builder) lowerReturn(cur *Block, n ast.Node) *Block {
	var operands []SymbolID
	for _, c := range n.Children() {
		if c.Kind() == "return" || c.Kind() == "," {
			continue
		}
		operands = append(operands, b.lowerExpr(cur, c))
	}
	b.emit(cur, &Instruction{Op: OpReturn, Node: n, Operands: operands})
	b.addEdge(cur.ID, b.g.Exit)
	return nil
}

func (b *Builder) lowerThrow(cur *Block, n ast.Node) *Block {
	var operands []SymbolID
	if expr := n.FieldChild("value"); expr != nil {
		operands = append(operands, b.lowerExpr(cur, expr))
	}
	b.emit(cur, &Instruction{Op: OpReturn, Node: n, Operands: operands, Aux: "throw"})
	target := b.g.Exit
	if len(b.catches) > 0 {
		target = b.catches[len(b.catches)-1]
	}
	b.addEdge(cur.ID, target)
	return nil
}

func (b *Builder) lowerBreak(cur *Block, n ast.Node) *Block {
	if len(b.loops) == 0 {
		b.fail(n, "break outside loop")
		return nil
	}
	target := b.loops[len(b.loops)-1].exit
	b.emit(cur, &Instruction{Op: OpBranch, Node: n, Aux: "break"})
	b.addEdge(cur.ID, target)
	return nil
}

func (b *Builder) lowerContinue(cur *Block, n ast.Node) *Block {
	if len(b.loops) == 0 {
		b.fail(n, "continue outside loop")
		return nil
	}
	target := b.loops[len(b.loops)-1].header
	b.emit(cur, &Instruction{Op: OpBranch, Node: n, Aux: "continue"})
	b.addEdge(cur.ID, target)
	return nil
}

func (b *Builder) lowerTry(cur *Block, n ast.Node) *Block {
	tryBody := n.FieldChild("body")
	catchClauses := filterChildren(n, func(c ast.Node) bool { return strings.Contains(c.Kind(), "catch") })
	finallyNode := firstChildWhere(n, func(c ast.Node) bool { return strings.Contains(c.Kind(), "finally") })

	var catchBlock *Block
	if len(catchClauses) > 0 {
		catchBlock = b.newBlock(KindCatch)
	}

	tryEntry := b.newBlock(KindNormal)
	b.addEdge(cur.ID, tryEntry.ID)
	if catchBlock != nil {
		b.catches = append(b.catches, catchBlock.ID)
	}
	tryEnd := b.lowerStmt(tryEntry, tryBody)
	if catchBlock != nil {
		b.catches = b.catches[:len(b.catches)-1]
	}

	var catchEnd *Block
	if catchBlock != nil {
		catchBody := catchClauses[0].FieldChild("body")
		catchEnd = b.lowerStmt(catchBlock, catchBody)
	}

	if finallyNode != nil {
		finallyBody := finallyNode.FieldChild("body")
		if finallyBody == nil {
			finallyBody = finallyNode
		}
		tryEnd = b.lowerFinallyOn(tryEnd, finallyBody)
		catchEnd = b.lowerFinallyOn(catchEnd, finallyBody)
	}

	if tryEnd == nil && catchEnd == nil {
		return nil
	}
	join := b.newBlock(KindNormal)
	if tryEnd != nil {
		b.addEdge(tryEnd.ID, join.ID)
	}
	if catchEnd != nil {
		b.addEdge(catchEnd.ID, join.ID)
	}
	return join
}

// lowerFinallyOn duplicates finallyBody's instructions onto end's exit path
// (spec.md open-question decision: duplicate rather than reference, see
// DESIGN.md).
func (b *Builder) lowerFinallyOn(end *Block, finallyBody ast.Node) *Block {
	if end == nil || finallyBody == nil {
		return end
	}
	fb := b.newBlock(KindNormal)
	b.addEdge(end.ID, fb.ID)
	return b.lowerStmt(fb, finallyBody)
}

// --- expression lowering ---------------------------------------------------

func (b *Builder) lowerExpr(cur *Block, n ast.Node) SymbolID {
	if n == nil || cur == nil {
		return NoSymbol
	}
	kind := n.Kind()
	switch {
	case kind == "identifier":
		return b.declareOrLookup(n.Lexeme()).ID

	case strings.HasSuffix(kind, "_literal"), kind == "true", kind == "false", kind == "null", kind == "nil":
		t := b.newTemp()
		b.emit(cur, &Instruction{Op: OpAssign, Node: n, Result: t.ID, Aux: n.Lexeme()})
		return t.ID

	case kind == "binary_expression":
		left := b.lowerExpr(cur, n.FieldChild("left"))
		right := b.lowerExpr(cur, n.FieldChild("right"))
		t := b.newTemp()
		b.emit(cur, &Instruction{Op: OpBinop, Node: n, Operands: []SymbolID{left, right}, Result: t.ID, Aux: operatorText(n)})
		return t.ID

	case kind == "unary_expression", kind == "not_expression":
		operand := b.lowerExpr(cur, n.FieldChild("operand"))
		t := b.newTemp()
		b.emit(cur, &Instruction{Op: OpBinop, Node: n, Operands: []SymbolID{operand}, Result: t.ID, Aux: operatorText(n)})
		return t.ID

	case kind == "call_expression", kind == "method_invocation":
		fnSym := b.lowerExpr(cur, n.FieldChild("function"))
		operands := []SymbolID{fnSym}
		if args := n.FieldChild("arguments"); args != nil {
			for _, a := range args.Children() {
				if a.Kind() == "," || a.Kind() == "(" || a.Kind() == ")" {
					continue
				}
				operands = append(operands, b.lowerExpr(cur, a))
			}
		}
		t := b.newTemp()
		b.emit(cur, &Instruction{Op: OpCall, Node: n, Operands: operands, Result: t.ID})
		return t.ID

	case strings.Contains(kind, "selector"), strings.Contains(kind, "field_access"),
		strings.Contains(kind, "member_expression"), strings.Contains(kind, "property_access"):
		obj := n.FieldChild("object")
		if obj == nil {
			obj = n.FieldChild("operand")
		}
		objSym := b.lowerExpr(cur, obj)
		b.emit(cur, &Instruction{Op: OpNullCheck, Node: n, Operands: []SymbolID{objSym}})
		field := n.FieldChild("field")
		if field == nil {
			field = n.FieldChild("property")
		}
		fieldName := ""
		if field != nil {
			fieldName = field.Lexeme()
		}
		t := b.newTemp()
		b.emit(cur, &Instruction{Op: OpLoad, Node: n, Operands: []SymbolID{objSym}, Result: t.ID, Aux: fieldName})
		return t.ID

	case strings.Contains(kind, "index"), strings.Contains(kind, "subscript"):
		base := n.FieldChild("object")
		if base == nil {
			base = n.FieldChild("operand")
		}
		baseSym := b.lowerExpr(cur, base)
		idxSym := b.lowerExpr(cur, n.FieldChild("index"))
		b.emit(cur, &Instruction{Op: OpNullCheck, Node: n, Operands: []SymbolID{baseSym}})
		t := b.newTemp()
		b.emit(cur, &Instruction{Op: OpIndexLoad, Node: n, Operands: []SymbolID{baseSym, idxSym}, Result: t.ID})
		return t.ID

	case strings.Contains(kind, "new"), strings.Contains(kind, "object_creation"), strings.Contains(kind, "instance_creation"):
		typeName := ""
		if tn := n.FieldChild("type"); tn != nil {
			typeName = tn.Lexeme()
		}
		t := b.newTemp()
		b.emit(cur, &Instruction{Op: OpAlloc, Node: n, Result: t.ID, Aux: typeName})
		return t.ID

	default:
		children := n.Children()
		if len(children) == 0 {
			t := b.newTemp()
			b.emit(cur, &Instruction{Op: OpAssign, Node: n, Result: t.ID, Aux: n.Lexeme()})
			return t.ID
		}
		// Transparent wrapper node (parenthesized expression, etc): fold
		// through the first non-punctuation child.
		for _, c := range children {
			if len(c.Lexeme()) > 0 && isPunctuation(c.Kind()) {
				continue
			}
			return b.lowerExpr(cur, c)
		}
		return NoSymbol
	}
}

func operatorText(n ast.Node) string {
	if op := n.FieldChild("operator"); op != nil {
		return op.Lexeme()
	}
	return n.Kind()
}

func isPunctuation(kind string) bool {
	switch kind {
	case "(", ")", "[", "]", "{", "}", ",", ";":
		return true
	default:
		return false
	}
}

func firstChildOfKind(n ast.Node, want StmtKind, classify Classifier) ast.Node {
	for _, c := range n.Children() {
		if classify(c.Kind()) == want {
			return c
		}
	}
	return nil
}

func firstChildWhere(n ast.Node, pred func(ast.Node) bool) ast.Node {
	for _, c := range n.Children() {
		if pred(c) {
			return c
		}
	}
	return nil
}

func filterChildren(n ast.Node, pred func(ast.Node) bool) []ast.Node {
	var out []ast.Node
	for _, c := range n.Children() {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

// caseBody returns the statement list a case/default clause governs: its
// "body" field if the grammar exposes one, otherwise the clause node itself
// (whose non-label children are lowered as a sequence).
func caseBody(c ast.Node) ast.Node {
	if body := c.FieldChild("body"); body != nil {
		return body
	}
	return c
}

// validate checks the CFG well-formedness invariants of spec.md §3/§8 that
// are knowable without dominance information (dominance-dependent back-edge
// validity is checked by internal/ssa once the dominator tree exists).
func validate(g *CFG) error {
	entry := g.Block(g.Entry)
	if len(entry.Preds) != 0 {
		return fmt.Errorf("cfg: entry block has predecessors")
	}
	exit := g.Block(g.Exit)
	if len(exit.Succs) != 0 {
		return fmt.Errorf("cfg: exit block has successors")
	}
	reach := g.Reachable()
	for _, blk := range g.Blocks {
		if !reach[blk.ID] {
			continue
		}
		if blk.ID != g.Exit && len(blk.Succs) == 0 {
			return fmt.Errorf("cfg: block %d is non-exit with no successors", blk.ID)
		}
		if blk.ID != g.Entry && len(blk.Preds) == 0 {
			return fmt.Errorf("cfg: block %d is non-entry with no predecessors", blk.ID)
		}
	}
	return nil
}
