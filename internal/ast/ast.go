package ast

import (
	"strings"

	"github.com/semlang/semlang/internal/lexer"
)

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl represents a top-level declaration or a class member.
type Decl interface {
	Node
	declNode()
}

// Param represents a function parameter: simple, destructuring, or a
// placeholder for one that failed to parse.
type Param interface {
	Node
	paramNode()
}

// Program is the root of a parsed source unit. Classes and functions may be
// interleaved in source; each list keeps its own source order.
type Program struct {
	Imports   []*ModuleImport
	Aliases   []*Alias
	Classes   []*ClassDef
	Functions []*FunctionDecl
	// Bad holds placeholders for top-level declarations that failed to parse.
	Bad  []*BadDecl
	span lexer.Span
}

// Span returns the span covering the entire program.
func (p *Program) Span() lexer.Span { return p.span }

// NewProgram constructs a program node with the provided span.
func NewProgram(span lexer.Span) *Program {
	return &Program{span: span}
}

// SetSpan updates the program span.
func (p *Program) SetSpan(span lexer.Span) {
	p.span = span
}

// ModuleImport represents `use a, b;`.
type ModuleImport struct {
	Names []*Ident
	span  lexer.Span
}

// Span returns the declaration span.
func (d *ModuleImport) Span() lexer.Span { return d.span }

// NewModuleImport constructs a module import node.
func NewModuleImport(names []*Ident, span lexer.Span) *ModuleImport {
	return &ModuleImport{Names: names, span: span}
}

func (*ModuleImport) declNode() {}

// Alias binds a local name to an absolute IRI: `alias p as scheme://host#;`.
type Alias struct {
	Name *Ident
	// Target is nil when the IRI failed to parse or was not absolute.
	Target *AbsoluteIri
	span   lexer.Span
}

// Span returns the declaration span.
func (d *Alias) Span() lexer.Span { return d.span }

// NewAlias constructs an alias node.
func NewAlias(name *Ident, target *AbsoluteIri, span lexer.Span) *Alias {
	return &Alias{Name: name, Target: target, span: span}
}

func (*Alias) declNode() {}

// ClassDef represents a class with its properties and methods partitioned
// into two lists, each in source order.
type ClassDef struct {
	Name       *Ident
	Properties []*PropertyDecl
	Methods    []*FunctionDecl
	Bad        []*BadDecl
	span       lexer.Span
}

// Span returns the declaration span.
func (d *ClassDef) Span() lexer.Span { return d.span }

// NewClassDef constructs a class node.
func NewClassDef(name *Ident, span lexer.Span) *ClassDef {
	return &ClassDef{Name: name, span: span}
}

// SetSpan updates the class span.
func (d *ClassDef) SetSpan(span lexer.Span) {
	d.span = span
}

func (*ClassDef) declNode() {}

// PropertyDecl represents `name: Type;` inside a class body.
type PropertyDecl struct {
	Name *Ident
	Type *Ident
	span lexer.Span
}

// Span returns the declaration span.
func (d *PropertyDecl) Span() lexer.Span { return d.span }

// NewPropertyDecl constructs a property declaration node.
func NewPropertyDecl(name, typ *Ident, span lexer.Span) *PropertyDecl {
	return &PropertyDecl{Name: name, Type: typ, span: span}
}

func (*PropertyDecl) declNode() {}

// FunctionDecl represents a top-level function or a class method.
type FunctionDecl struct {
	Name       *Name
	Params     []Param
	ReturnType *Ident
	Body       *Block
	span       lexer.Span
}

// Span returns the declaration span.
func (d *FunctionDecl) Span() lexer.Span { return d.span }

// NewFunctionDecl constructs a function declaration node.
func NewFunctionDecl(name *Name, params []Param, returnType *Ident, body *Block, span lexer.Span) *FunctionDecl {
	return &FunctionDecl{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		span:       span,
	}
}

func (*FunctionDecl) declNode() {}

// BadDecl is a placeholder for a declaration or class member that could
// not be parsed. Its span covers the skipped tokens.
type BadDecl struct {
	span lexer.Span
}

// Span returns the skipped region.
func (d *BadDecl) Span() lexer.Span { return d.span }

// NewBadDecl constructs a declaration placeholder.
func NewBadDecl(span lexer.Span) *BadDecl {
	return &BadDecl{span: span}
}

func (*BadDecl) declNode() {}

// Ident represents an identifier.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}

// Name is a dotted identifier chain such as `p.x` or `geo.Point`.
type Name struct {
	Parts []*Ident
	span  lexer.Span
}

// Span returns the span of the whole chain.
func (n *Name) Span() lexer.Span { return n.span }

// NewName constructs a dotted name node.
func NewName(parts []*Ident, span lexer.Span) *Name {
	return &Name{Parts: parts, span: span}
}

// String joins the parts with dots.
func (n *Name) String() string {
	parts := make([]string, len(n.Parts))
	for i, p := range n.Parts {
		parts[i] = p.Name
	}
	return strings.Join(parts, ".")
}

// SimpleParam represents `name: Type` with an optional `| constraint`.
type SimpleParam struct {
	Name       *Ident
	Type       *Name
	Constraint Expr
	span       lexer.Span
}

// Span returns the parameter span.
func (p *SimpleParam) Span() lexer.Span { return p.span }

// NewSimpleParam constructs a simple parameter node.
func NewSimpleParam(name *Ident, typ *Name, constraint Expr, span lexer.Span) *SimpleParam {
	return &SimpleParam{Name: name, Type: typ, Constraint: constraint, span: span}
}

func (*SimpleParam) paramNode() {}

// DestructuringParam represents `name: Type { bindings }`.
type DestructuringParam struct {
	Name     *Ident
	Type     *Name
	Bindings []*PropertyBinding
	span     lexer.Span
}

// Span returns the parameter span.
func (p *DestructuringParam) Span() lexer.Span { return p.span }

// NewDestructuringParam constructs a destructuring parameter node.
func NewDestructuringParam(name *Ident, typ *Name, bindings []*PropertyBinding, span lexer.Span) *DestructuringParam {
	return &DestructuringParam{Name: name, Type: typ, Bindings: bindings, span: span}
}

func (*DestructuringParam) paramNode() {}

// PropertyBinding binds Local to the source property Property. A binding
// carries either a constraint or a nested destructuring block, never both.
type PropertyBinding struct {
	Local      *Ident
	Property   *Ident
	Constraint Expr
	// Nested is non-nil when the property is itself destructured.
	Nested []*PropertyBinding
	span   lexer.Span
}

// Span returns the binding span.
func (b *PropertyBinding) Span() lexer.Span { return b.span }

// NewPropertyBinding constructs a property binding node.
func NewPropertyBinding(local, property *Ident, constraint Expr, nested []*PropertyBinding, span lexer.Span) *PropertyBinding {
	return &PropertyBinding{
		Local:      local,
		Property:   property,
		Constraint: constraint,
		Nested:     nested,
		span:       span,
	}
}

// Depth returns the nesting depth of the binding tree rooted at b (1 for a
// leaf binding).
func (b *PropertyBinding) Depth() int {
	depth := 0
	for _, n := range b.Nested {
		depth = max(depth, n.Depth())
	}
	return depth + 1
}

// BadParam is a placeholder for a parameter that could not be parsed.
type BadParam struct {
	span lexer.Span
}

// Span returns the skipped region.
func (p *BadParam) Span() lexer.Span { return p.span }

// NewBadParam constructs a parameter placeholder.
func NewBadParam(span lexer.Span) *BadParam {
	return &BadParam{span: span}
}

func (*BadParam) paramNode() {}
