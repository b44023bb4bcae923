package ast

import "github.com/semlang/semlang/internal/lexer"

// Block is `{ (statement ;)* }`.
type Block struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the block span.
func (b *Block) Span() lexer.Span { return b.span }

// NewBlock constructs a block node.
func NewBlock(stmts []Stmt, span lexer.Span) *Block {
	return &Block{Stmts: stmts, span: span}
}

// SetSpan updates the block span.
func (b *Block) SetSpan(span lexer.Span) {
	b.span = span
}

// IfElse represents `if cond { } else { }`.
type IfElse struct {
	Condition Expr
	Then      *Block
	Else      *Block // nil without an else branch
	span      lexer.Span
}

// Span returns the statement span.
func (s *IfElse) Span() lexer.Span { return s.span }

// NewIfElse constructs an if/else node.
func NewIfElse(cond Expr, then, els *Block, span lexer.Span) *IfElse {
	return &IfElse{Condition: cond, Then: then, Else: els, span: span}
}

func (*IfElse) stmtNode() {}

// While represents `while cond { }`.
type While struct {
	Condition Expr
	Body      *Block
	span      lexer.Span
}

// Span returns the statement span.
func (s *While) Span() lexer.Span { return s.span }

// NewWhile constructs a while node.
func NewWhile(cond Expr, body *Block, span lexer.Span) *While {
	return &While{Condition: cond, Body: body, span: span}
}

func (*While) stmtNode() {}

// With represents `with resource { }`: the resource is held for the
// lifetime of Body.
type With struct {
	Resource Expr
	Body     *Block
	span     lexer.Span
}

// Span returns the statement span.
func (s *With) Span() lexer.Span { return s.span }

// NewWith constructs a with node.
func NewWith(resource Expr, body *Block, span lexer.Span) *With {
	return &With{Resource: resource, Body: body, span: span}
}

func (*With) stmtNode() {}

// TypeRef is a variable type: `Type` or `list<Type>`. A TypeRef with Bad
// set stands in for a type that was missing; its Name is nil.
type TypeRef struct {
	Name *Ident
	List bool
	Bad  bool
	span lexer.Span
}

// Span returns the type span.
func (t *TypeRef) Span() lexer.Span { return t.span }

// NewTypeRef constructs a type reference node.
func NewTypeRef(name *Ident, list bool, span lexer.Span) *TypeRef {
	return &TypeRef{Name: name, List: list, span: span}
}

// NewBadTypeRef constructs a placeholder for a missing type.
func NewBadTypeRef(span lexer.Span) *TypeRef {
	return &TypeRef{Bad: true, span: span}
}

// VarDecl represents `name: Type (= init)?`.
type VarDecl struct {
	Name *Ident
	// Type is a Bad TypeRef when the declaration was recovered from a
	// missing type.
	Type *TypeRef
	Init Expr
	span lexer.Span
}

// Span returns the statement span.
func (s *VarDecl) Span() lexer.Span { return s.span }

// NewVarDecl constructs a variable declaration node.
func NewVarDecl(name *Ident, typ *TypeRef, init Expr, span lexer.Span) *VarDecl {
	return &VarDecl{Name: name, Type: typ, Init: init, span: span}
}

func (*VarDecl) stmtNode() {}

// Assignment represents `target = value`.
type Assignment struct {
	Target *Name
	Value  Expr
	span   lexer.Span
}

// Span returns the statement span.
func (s *Assignment) Span() lexer.Span { return s.span }

// NewAssignment constructs an assignment node.
func NewAssignment(target *Name, value Expr, span lexer.Span) *Assignment {
	return &Assignment{Target: target, Value: value, span: span}
}

func (*Assignment) stmtNode() {}

// Return represents `return value`.
type Return struct {
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *Return) Span() lexer.Span { return s.span }

// NewReturn constructs a return node.
func NewReturn(value Expr, span lexer.Span) *Return {
	return &Return{Value: value, span: span}
}

func (*Return) stmtNode() {}

// ExprStmt represents an expression evaluated for its effect.
type ExprStmt struct {
	X    Expr
	span lexer.Span
}

// Span returns the statement span.
func (s *ExprStmt) Span() lexer.Span { return s.span }

// NewExprStmt constructs an expression statement node.
func NewExprStmt(x Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{X: x, span: span}
}

func (*ExprStmt) stmtNode() {}

// BadStmt is a placeholder for a statement that could not be parsed.
type BadStmt struct {
	span lexer.Span
}

// Span returns the skipped region.
func (s *BadStmt) Span() lexer.Span { return s.span }

// NewBadStmt constructs a statement placeholder.
func NewBadStmt(span lexer.Span) *BadStmt {
	return &BadStmt{span: span}
}

func (*BadStmt) stmtNode() {}
