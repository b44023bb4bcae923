package ast

import "github.com/semlang/semlang/internal/lexer"

// BinaryOperator tags a BinaryOp node.
type BinaryOperator int

const (
	LT BinaryOperator = iota + 1
	GT
	LEQ
	GEQ
	AND
	ADD
	SUB
	MUL
	DIV
)

var binaryOperatorNames = map[BinaryOperator]struct{ tag, symbol string }{
	LT:  {"LT", "<"},
	GT:  {"GT", ">"},
	LEQ: {"LEQ", "<="},
	GEQ: {"GEQ", ">="},
	AND: {"AND", "&&"},
	ADD: {"ADD", "+"},
	SUB: {"SUB", "-"},
	MUL: {"MUL", "*"},
	DIV: {"DIV", "/"},
}

// String returns the operator tag, e.g. "ADD".
func (op BinaryOperator) String() string {
	if n, ok := binaryOperatorNames[op]; ok {
		return n.tag
	}
	return "BinaryOperator(?)"
}

// Symbol returns the source spelling, e.g. "+".
func (op BinaryOperator) Symbol() string {
	return binaryOperatorNames[op].symbol
}

// BoolLit represents `true` or `false`.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

// Span returns the literal span.
func (e *BoolLit) Span() lexer.Span { return e.span }

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

func (*BoolLit) exprNode() {}

// IntLit keeps the literal text; values are not evaluated here.
type IntLit struct {
	Text string
	span lexer.Span
}

// Span returns the literal span.
func (e *IntLit) Span() lexer.Span { return e.span }

// NewIntLit constructs an integer literal node.
func NewIntLit(text string, span lexer.Span) *IntLit {
	return &IntLit{Text: text, span: span}
}

func (*IntLit) exprNode() {}

// FloatLit keeps the literal text.
type FloatLit struct {
	Text string
	span lexer.Span
}

// Span returns the literal span.
func (e *FloatLit) Span() lexer.Span { return e.span }

// NewFloatLit constructs a float literal node.
func NewFloatLit(text string, span lexer.Span) *FloatLit {
	return &FloatLit{Text: text, span: span}
}

func (*FloatLit) exprNode() {}

// StringLit holds the unquoted body and the quote it was written with.
type StringLit struct {
	Value string
	Quote rune
	span  lexer.Span
}

// Span returns the literal span.
func (e *StringLit) Span() lexer.Span { return e.span }

// NewStringLit constructs a string literal node.
func NewStringLit(value string, quote rune, span lexer.Span) *StringLit {
	return &StringLit{Value: value, Quote: quote, span: span}
}

func (*StringLit) exprNode() {}

// ListLiteral represents `[a, b, c]`.
type ListLiteral struct {
	Elems []Expr
	span  lexer.Span
}

// Span returns the literal span.
func (e *ListLiteral) Span() lexer.Span { return e.span }

// NewListLiteral constructs a list literal node.
func NewListLiteral(elems []Expr, span lexer.Span) *ListLiteral {
	return &ListLiteral{Elems: elems, span: span}
}

func (*ListLiteral) exprNode() {}

// Generator is the `var <- source` clause of a comprehension.
type Generator struct {
	Var    *Ident
	Source *Ident
	span   lexer.Span
}

// Span returns the generator span.
func (g *Generator) Span() lexer.Span { return g.span }

// NewGenerator constructs a generator node.
func NewGenerator(v, source *Ident, span lexer.Span) *Generator {
	return &Generator{Var: v, Source: source, span: span}
}

// ListComprehension represents `[var | gen <- source, constraint]` with
// exactly one generator and exactly one constraint.
type ListComprehension struct {
	Var        *Ident
	Generator  *Generator
	Constraint Expr
	span       lexer.Span
}

// Span returns the comprehension span.
func (e *ListComprehension) Span() lexer.Span { return e.span }

// NewListComprehension constructs a list comprehension node.
func NewListComprehension(v *Ident, gen *Generator, constraint Expr, span lexer.Span) *ListComprehension {
	return &ListComprehension{Var: v, Generator: gen, Constraint: constraint, span: span}
}

func (*ListComprehension) exprNode() {}

// VarRef is a reference through a dotted chain, e.g. `p.x`.
type VarRef struct {
	Name *Name
	span lexer.Span
}

// Span returns the reference span.
func (e *VarRef) Span() lexer.Span { return e.span }

// NewVarRef constructs a variable reference node.
func NewVarRef(name *Name, span lexer.Span) *VarRef {
	return &VarRef{Name: name, span: span}
}

func (*VarRef) exprNode() {}

// UnaryNot represents `!x`.
type UnaryNot struct {
	X    Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *UnaryNot) Span() lexer.Span { return e.span }

// NewUnaryNot constructs a logical negation node.
func NewUnaryNot(x Expr, span lexer.Span) *UnaryNot {
	return &UnaryNot{X: x, span: span}
}

func (*UnaryNot) exprNode() {}

// UnaryNeg represents `-x`.
type UnaryNeg struct {
	X    Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *UnaryNeg) Span() lexer.Span { return e.span }

// NewUnaryNeg constructs an arithmetic negation node.
func NewUnaryNeg(x Expr, span lexer.Span) *UnaryNeg {
	return &UnaryNeg{X: x, span: span}
}

func (*UnaryNeg) exprNode() {}

// BinaryOp represents `left op right`.
type BinaryOp struct {
	Op    BinaryOperator
	Left  Expr
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *BinaryOp) Span() lexer.Span { return e.span }

// NewBinaryOp constructs a binary operation node.
func NewBinaryOp(op BinaryOperator, left, right Expr, span lexer.Span) *BinaryOp {
	return &BinaryOp{Op: op, Left: left, Right: right, span: span}
}

func (*BinaryOp) exprNode() {}

// FuncCall represents `name(args)`.
type FuncCall struct {
	Name *Name
	Args []Expr
	span lexer.Span
}

// Span returns the call span.
func (e *FuncCall) Span() lexer.Span { return e.span }

// NewFuncCall constructs a call node.
func NewFuncCall(name *Name, args []Expr, span lexer.Span) *FuncCall {
	return &FuncCall{Name: name, Args: args, span: span}
}

func (*FuncCall) exprNode() {}

// Paren represents `(x)`. It is kept so that printed output matches the
// source token for token.
type Paren struct {
	X    Expr
	span lexer.Span
}

// Span returns the expression span, parentheses included.
func (e *Paren) Span() lexer.Span { return e.span }

// NewParen constructs a parenthesised expression node.
func NewParen(x Expr, span lexer.Span) *Paren {
	return &Paren{X: x, span: span}
}

func (*Paren) exprNode() {}

// TypeCast represents `(Type) x`.
type TypeCast struct {
	Type *Ident
	X    Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *TypeCast) Span() lexer.Span { return e.span }

// NewTypeCast constructs a type cast node.
func NewTypeCast(typ *Ident, x Expr, span lexer.Span) *TypeCast {
	return &TypeCast{Type: typ, X: x, span: span}
}

func (*TypeCast) exprNode() {}

// PropertyInit is one `name = value` inside `new Type(...)`.
type PropertyInit struct {
	Name  *Ident
	Value Expr
	span  lexer.Span
}

// Span returns the initializer span.
func (p *PropertyInit) Span() lexer.Span { return p.span }

// NewPropertyInit constructs a property initializer node.
func NewPropertyInit(name *Ident, value Expr, span lexer.Span) *PropertyInit {
	return &PropertyInit{Name: name, Value: value, span: span}
}

// NewInstance represents `new Type(name = value, ...)`.
type NewInstance struct {
	Type  *Ident
	Inits []*PropertyInit
	span  lexer.Span
}

// Span returns the expression span.
func (e *NewInstance) Span() lexer.Span { return e.span }

// NewNewInstance constructs an instantiation node.
func NewNewInstance(typ *Ident, inits []*PropertyInit, span lexer.Span) *NewInstance {
	return &NewInstance{Type: typ, Inits: inits, span: span}
}

func (*NewInstance) exprNode() {}

// BadExpr is a placeholder for an expression that could not be parsed.
type BadExpr struct {
	span lexer.Span
}

// Span returns the skipped region.
func (e *BadExpr) Span() lexer.Span { return e.span }

// NewBadExpr constructs an expression placeholder.
func NewBadExpr(span lexer.Span) *BadExpr {
	return &BadExpr{span: span}
}

func (*BadExpr) exprNode() {}
