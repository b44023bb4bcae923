package ast

import (
	"testing"

	"github.com/semlang/semlang/internal/lexer"
)

func span(start, end int) lexer.Span {
	return lexer.Span{Line: 1, Column: start + 1, Start: start, End: end}
}

func ident(name string, start int) *Ident {
	return NewIdent(name, span(start, start+len(name)))
}

func ref(name string, start int) *VarRef {
	id := ident(name, start)
	return NewVarRef(NewName([]*Ident{id}, id.Span()), id.Span())
}

func TestWalkVisitsEveryNode(t *testing.T) {
	// f(a: T | a > 1): int { return a; };
	cond := NewBinaryOp(GT, ref("a", 9), NewIntLit("1", span(13, 14)), span(9, 14))
	param := NewSimpleParam(ident("a", 2), NewName([]*Ident{ident("T", 5)}, span(5, 6)), cond, span(2, 14))
	ret := NewReturn(ref("a", 31), span(24, 32))
	body := NewBlock([]Stmt{ret}, span(22, 35))
	fn := NewFunctionDecl(NewName([]*Ident{ident("f", 0)}, span(0, 1)), []Param{param}, ident("int", 17), body, span(0, 36))

	prog := NewProgram(span(0, 36))
	prog.Functions = append(prog.Functions, fn)

	counts := map[string]int{}
	Walk(prog, func(n Node) bool {
		switch n.(type) {
		case *Ident:
			counts["ident"]++
		case *VarRef:
			counts["ref"]++
		case *BinaryOp:
			counts["binary"]++
		case *Return:
			counts["return"]++
		}
		return true
	})

	if counts["ref"] != 2 || counts["binary"] != 1 || counts["return"] != 1 {
		t.Fatalf("unexpected visit counts %v", counts)
	}
	// f, a, T, a (cond), int, a (return)
	if counts["ident"] != 6 {
		t.Fatalf("expected 6 identifiers, got %d", counts["ident"])
	}
}

func TestWalkStopsDescending(t *testing.T) {
	expr := NewBinaryOp(ADD, ref("a", 0), ref("b", 4), span(0, 5))

	visited := 0
	Walk(expr, func(n Node) bool {
		visited++
		_, isRef := n.(*VarRef)
		return !isRef
	})

	// BinaryOp plus two VarRefs; names below the refs are skipped.
	if visited != 3 {
		t.Fatalf("expected 3 visits, got %d", visited)
	}
}

func TestWalkSkipsNilChildren(t *testing.T) {
	decl := NewVarDecl(ident("x", 0), nil, NewIntLit("5", span(6, 7)), span(0, 7))
	alias := NewAlias(ident("p", 6), nil, span(0, 20))

	for _, n := range []Node{decl, alias} {
		Walk(n, func(n Node) bool {
			if n == nil {
				t.Fatalf("Walk passed a nil node")
			}
			return true
		})
	}
}

func TestCountBad(t *testing.T) {
	body := NewBlock([]Stmt{NewBadStmt(span(2, 4)), NewExprStmt(NewBadExpr(span(5, 6)), span(5, 6))}, span(0, 8))
	fn := NewFunctionDecl(NewName([]*Ident{ident("f", 0)}, span(0, 1)), []Param{NewBadParam(span(2, 3))}, ident("int", 5), body, span(0, 9))

	prog := NewProgram(span(0, 20))
	prog.Functions = append(prog.Functions, fn)
	prog.Bad = append(prog.Bad, NewBadDecl(span(10, 20)))

	if got := CountBad(prog); got != 4 {
		t.Fatalf("expected 4 placeholders, got %d", got)
	}
}

func TestBindingDepth(t *testing.T) {
	leaf := NewPropertyBinding(ident("c", 0), ident("city", 3), nil, nil, span(0, 7))
	mid := NewPropertyBinding(ident("a", 0), ident("addr", 3), nil, []*PropertyBinding{leaf}, span(0, 20))
	top := NewPropertyBinding(ident("p", 0), ident("person", 3), nil, []*PropertyBinding{mid}, span(0, 30))

	if leaf.Depth() != 1 || mid.Depth() != 2 || top.Depth() != 3 {
		t.Fatalf("unexpected depths %d %d %d", leaf.Depth(), mid.Depth(), top.Depth())
	}
}

func TestFormatExpressions(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{NewBinaryOp(LT, ref("a", 0), ref("b", 4), span(0, 5)), "a < b"},
		{NewUnaryNeg(NewIntLit("5", span(1, 2)), span(0, 2)), "- 5"},
		{NewUnaryNeg(ref("x", 1), span(0, 2)), "-x"},
		{NewUnaryNot(NewBoolLit(true, span(1, 5)), span(0, 5)), "!true"},
		{NewStringLit("hi", '\'', span(0, 4)), "'hi'"},
		{NewStringLit("hi", 0, span(0, 4)), `"hi"`},
		{NewTypeCast(ident("int", 1), ref("x", 6), span(0, 7)), "(int) x"},
		{NewListLiteral(nil, span(0, 2)), "[]"},
		{NewBadExpr(span(0, 1)), "<bad>"},
		{operatorSymbolsCall(), "f(a && b, c >= d, e <= f, g / h)"},
	}

	for _, tt := range tests {
		if got := Format(tt.node); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

// operatorSymbolsCall builds f(a && b, c >= d, e <= f, g / h).
func operatorSymbolsCall() *FuncCall {
	pair := func(op BinaryOperator, l, r string) Expr {
		return NewBinaryOp(op, ref(l, 0), ref(r, 0), span(0, 0))
	}
	return NewFuncCall(
		NewName([]*Ident{ident("f", 0)}, span(0, 1)),
		[]Expr{pair(AND, "a", "b"), pair(GEQ, "c", "d"), pair(LEQ, "e", "f"), pair(DIV, "g", "h")},
		span(0, 0),
	)
}

func TestFormatAbsoluteIri(t *testing.T) {
	iri := NewAbsoluteIri(ident("http", 0), []*Ident{ident("example", 7), ident("org", 15)},
		[]*Ident{ident("geo", 19)}, false, NewIdent("", span(23, 23)), span(0, 23))

	if got := iri.String(); got != "http://example.org/geo#" {
		t.Fatalf("unexpected IRI %q", got)
	}

	noFragment := NewAbsoluteIri(ident("s", 0), []*Ident{ident("a", 4)}, nil, true, nil, span(0, 6))
	if got := noFragment.String(); got != "s://a/" {
		t.Fatalf("unexpected IRI %q", got)
	}

	if got := NewQName(nil, ident("x", 1), span(0, 2)).String(); got != ":x" {
		t.Fatalf("unexpected QName %q", got)
	}
}

func TestBinaryOperatorNames(t *testing.T) {
	if ADD.String() != "ADD" || ADD.Symbol() != "+" {
		t.Fatalf("unexpected ADD rendering %s %s", ADD, ADD.Symbol())
	}
	if BinaryOperator(99).String() != "BinaryOperator(?)" {
		t.Fatalf("unexpected unknown operator rendering")
	}
}
