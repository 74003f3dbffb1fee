// Package parser builds the IR graph straight from the token stream;
// there is no syntax tree in between. Expressions are value-numbered and
// simplified as they are constructed, statements thread a current
// control node, and if/else lowers to If/Proj/Region/Phi.
package parser

import (
	"fmt"
	"sort"
	"strconv"

	"riptide/internal/diag"
	"riptide/internal/ir"
	"riptide/internal/source"
	"riptide/internal/token"
)

type Parser struct {
	toks []token.Token
	pos  int
	bag  *diag.Bag

	b      *ir.Builder
	scopes *scopeStack
	// ctrl is the control node statements execute under; NoNode after a
	// return, meaning the path has ended.
	ctrl ir.NodeID

	returns []ir.NodeID

	// ShowGraph is invoked for every '#showGraph' directive.
	ShowGraph func(*ir.Graph)
}

func New(toks []token.Token, bag *diag.Bag, b *ir.Builder) *Parser {
	return &Parser{
		toks:   toks,
		bag:    bag,
		b:      b,
		scopes: newScopeStack(),
		ctrl:   b.Start(),
	}
}

// ParseProgram consumes the whole token stream and returns the Return
// nodes in source order. Scope pins are released at the end, so values
// no path can reach are collected before the caller validates.
func (p *Parser) ParseProgram() []ir.NodeID {
	for !p.cur().Is(token.EOF) {
		p.parseStmt()
	}
	for p.scopes.depth() > 0 {
		p.scopes.pop(p.b)
	}
	if p.ctrl != ir.NoNode {
		p.b.KillIfUnused(p.ctrl)
	}
	return p.returns
}

func (p *Parser) parseStmt() {
	switch p.cur().Kind {
	case token.KwReturn:
		p.parseReturn()
	case token.KwInt:
		p.parseDecl()
	case token.Ident:
		p.parseAssign()
	case token.LBrace:
		p.parseBlock()
	case token.KwIf:
		p.parseIf()
	case token.DirShowGraph:
		p.bump()
		p.expect(token.Semi, diag.SynExpectSemicolon, "';'")
		if p.ShowGraph != nil {
			p.ShowGraph(p.b.Graph())
		}
	case token.Semi:
		p.bump() // пустой statement
	default:
		p.errAtCur(diag.SynUnexpectedToken, fmt.Sprintf("unexpected token %s", p.cur().Kind))
		p.sync()
	}
}

func (p *Parser) parseReturn() {
	if !p.reachable() {
		return
	}
	p.bump() // 'return'
	v := p.parseExpr()
	p.expect(token.Semi, diag.SynExpectSemicolon, "';'")
	ret := p.b.Return(p.ctrl, v)
	p.returns = append(p.returns, ret)
	p.ctrl = ir.NoNode
}

func (p *Parser) parseDecl() {
	p.bump() // 'int'
	name, nameSpan, ok := p.expectIdent()
	if !ok {
		p.sync()
		return
	}
	if !p.expect(token.Assign, diag.SynUnexpectedToken, "'='") {
		p.sync()
		return
	}
	v := p.parseExpr()
	p.expect(token.Semi, diag.SynExpectSemicolon, "';'")
	if !p.scopes.declare(p.b, name, v) {
		p.err(diag.SemRedefinedName, nameSpan, fmt.Sprintf("name %q is already declared in this scope", name))
		p.b.KillIfUnused(v)
	}
}

func (p *Parser) parseAssign() {
	name := p.cur().Text
	nameSpan := p.cur().Span
	p.bump()
	if !p.expect(token.Assign, diag.SynUnexpectedToken, "'='") {
		p.sync()
		return
	}
	v := p.parseExpr()
	p.expect(token.Semi, diag.SynExpectSemicolon, "';'")
	if !p.scopes.assign(p.b, name, v) {
		p.err(diag.SemUndefinedName, nameSpan, fmt.Sprintf("name %q is not declared", name))
		p.b.KillIfUnused(v)
	}
}

func (p *Parser) parseBlock() {
	p.bump() // '{'
	p.scopes.push()
	for !p.cur().Is(token.RBrace) && !p.cur().Is(token.EOF) {
		p.parseStmt()
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "'}'")
	p.scopes.pop(p.b)
}

// parseIf lowers if/else onto the graph: control forks through If and
// its projections, each arm runs against its own copy of the scopes,
// and the join inserts a Phi for every name the arms left disagreeing.
func (p *Parser) parseIf() {
	if !p.reachable() {
		return
	}
	p.bump() // 'if'
	if !p.expect(token.LParen, diag.SynUnexpectedToken, "'('") {
		p.sync()
		return
	}
	cond := p.parseExpr()
	p.expect(token.RParen, diag.SynUnclosedParen, "')'")

	tProj, fProj := p.b.If(p.ctrl, cond)
	p.b.Keep(tProj)
	p.b.Keep(fProj)
	snap := p.scopes.capture(p.b)

	p.ctrl = tProj
	p.parseStmt()
	thenCtrl := p.ctrl
	thenSnap := p.scopes.capture(p.b)
	p.scopes.replace(p.b, snap)

	elseCtrl := fProj
	if p.cur().Is(token.KwElse) {
		p.bump()
		p.ctrl = fProj
		p.parseStmt()
		elseCtrl = p.ctrl
	}

	p.b.Unkeep(tProj)
	p.b.Unkeep(fProj)
	p.mergeArms(thenCtrl, elseCtrl, thenSnap)
}

// mergeArms joins the two arm controls and reconciles the scopes. The
// current stack holds the else-side bindings, thenSnap the then-side.
func (p *Parser) mergeArms(thenCtrl, elseCtrl ir.NodeID, thenSnap *scopeStack) {
	switch {
	case thenCtrl == ir.NoNode && elseCtrl == ir.NoNode:
		thenSnap.release(p.b)
		p.ctrl = ir.NoNode
		return
	case thenCtrl == ir.NoNode:
		thenSnap.release(p.b)
		p.ctrl = elseCtrl
		return
	case elseCtrl == ir.NoNode:
		p.scopes.replace(p.b, thenSnap)
		p.ctrl = thenCtrl
		return
	}

	region := p.b.Region(thenCtrl, elseCtrl)
	if p.b.MustNode(region).Op() != ir.OpRegion {
		// One side was already dead; the merge collapsed to the
		// surviving control and its bindings win.
		if region == thenCtrl {
			p.scopes.replace(p.b, thenSnap)
		} else {
			thenSnap.release(p.b)
		}
		p.ctrl = region
		return
	}

	p.b.Keep(region)
	depth := min(p.scopes.depth(), len(thenSnap.levels))
	for i := 0; i < depth; i++ {
		lvl := p.scopes.levels[i]
		names := make([]string, 0, len(lvl))
		for name := range lvl {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ev := lvl[name]
			tv, ok := thenSnap.levels[i][name]
			if !ok || tv == ev {
				continue
			}
			phi := p.b.Phi(region, tv, ev)
			if phi == ev {
				continue
			}
			p.b.Keep(phi)
			lvl[name] = phi
			p.b.Unkeep(ev)
			p.b.KillIfUnused(ev)
		}
	}
	thenSnap.release(p.b)
	p.b.Unkeep(region)
	p.ctrl = region
}

// ---- expressions ----

func (p *Parser) parseExpr() ir.NodeID { return p.parseComparison() }

func (p *Parser) parseComparison() ir.NodeID {
	lhs := p.parseAddition()
	for {
		var op ir.Op
		switch p.cur().Kind {
		case token.EqEq:
			op = ir.OpEq
		case token.Lt:
			op = ir.OpLt
		case token.Le:
			op = ir.OpLe
		default:
			return lhs
		}
		p.bump()
		lhs = p.withKept(lhs, func() ir.NodeID {
			rhs := p.parseAddition()
			return p.b.Binary(op, lhs, rhs)
		})
	}
}

func (p *Parser) parseAddition() ir.NodeID {
	lhs := p.parseMultiplication()
	var op ir.Op
	switch p.cur().Kind {
	case token.Plus:
		op = ir.OpAdd
	case token.Minus:
		op = ir.OpSub
	case token.Amp:
		op = ir.OpAnd
	case token.Pipe:
		op = ir.OpOr
	case token.Caret:
		op = ir.OpXor
	default:
		return lhs
	}
	p.bump()
	return p.withKept(lhs, func() ir.NodeID {
		rhs := p.parseAddition()
		return p.b.Binary(op, lhs, rhs)
	})
}

func (p *Parser) parseMultiplication() ir.NodeID {
	lhs := p.parseUnary()
	var op ir.Op
	switch p.cur().Kind {
	case token.Star:
		op = ir.OpMul
	case token.Slash:
		op = ir.OpDiv
	default:
		return lhs
	}
	p.bump()
	return p.withKept(lhs, func() ir.NodeID {
		rhs := p.parseMultiplication()
		return p.b.Binary(op, lhs, rhs)
	})
}

func (p *Parser) parseUnary() ir.NodeID {
	switch p.cur().Kind {
	case token.Minus:
		p.bump()
		return p.b.Unary(ir.OpNeg, p.parseUnary())
	case token.Bang:
		p.bump()
		return p.b.Unary(ir.OpNot, p.parseUnary())
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ir.NodeID {
	t := p.cur()
	switch t.Kind {
	case token.Int:
		p.bump()
		v, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			p.err(diag.LexBadNumber, t.Span, fmt.Sprintf("integer literal %s does not fit in 64 bits", t.Text))
			return p.b.Constant(0)
		}
		return p.b.Constant(v)
	case token.KwTrue:
		p.bump()
		return p.b.Constant(1)
	case token.KwFalse:
		p.bump()
		return p.b.Constant(0)
	case token.Ident:
		p.bump()
		if id, ok := p.scopes.lookup(t.Text); ok {
			return id
		}
		p.err(diag.SemUndefinedName, t.Span, fmt.Sprintf("name %q is not declared", t.Text))
		return p.b.Constant(0)
	case token.LParen:
		p.bump()
		v := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedParen, "')'")
		return v
	}
	p.errAtCur(diag.SynExpectExpr, fmt.Sprintf("expected expression, found %s", t.Kind))
	if !t.Is(token.EOF) {
		p.bump()
	}
	return p.b.Constant(0)
}

// withKept pins id for the duration of fn so nested construction cannot
// collect it before it gets wired.
func (p *Parser) withKept(id ir.NodeID, fn func() ir.NodeID) ir.NodeID {
	p.b.Keep(id)
	res := fn()
	p.b.Unkeep(id)
	return res
}

// ---- token plumbing ----

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

func (p *Parser) bump() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

func (p *Parser) expect(k token.Kind, code diag.Code, what string) bool {
	if p.cur().Kind == k {
		p.bump()
		return true
	}
	p.errAtCur(code, fmt.Sprintf("expected %s, found %s", what, p.cur().Kind))
	return false
}

func (p *Parser) expectIdent() (string, source.Span, bool) {
	t := p.cur()
	if t.Kind != token.Ident {
		p.errAtCur(diag.SynUnexpectedToken, fmt.Sprintf("expected identifier, found %s", t.Kind))
		return "", t.Span, false
	}
	p.bump()
	return t.Text, t.Span, true
}

// reachable reports whether statements can still execute; dead code
// after a return is reported once and skipped.
func (p *Parser) reachable() bool {
	if p.ctrl != ir.NoNode {
		return true
	}
	p.errAtCur(diag.SemUnreachable, "unreachable code after return")
	p.sync()
	return false
}

// sync пропускает токены до конца statement.
func (p *Parser) sync() {
	for {
		switch p.cur().Kind {
		case token.EOF, token.RBrace:
			return
		case token.Semi:
			p.bump()
			return
		}
		p.bump()
	}
}

func (p *Parser) err(code diag.Code, span source.Span, msg string) {
	p.bag.Add(diag.New(diag.SevError, code, span, msg))
}

func (p *Parser) errAtCur(code diag.Code, msg string) {
	p.err(code, p.cur().Span, msg)
}
