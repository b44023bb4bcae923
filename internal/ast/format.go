package ast

import (
	"sort"
	"strings"
)

// Format renders node as canonical source text. Parsing the output of
// Format yields a structurally equal tree, and its token sequence matches
// the tokens the node was parsed from (the optional `;` after a function
// body is always written). Placeholders print as `<bad>`.
func Format(node Node) string {
	p := &printer{}
	p.node(node)
	return p.b.String()
}

type printer struct {
	b      strings.Builder
	indent int
}

func (p *printer) write(s ...string) {
	for _, part := range s {
		p.b.WriteString(part)
	}
}

func (p *printer) newline() {
	p.b.WriteByte('\n')
	p.b.WriteString(strings.Repeat("  ", p.indent))
}

func (p *printer) node(node Node) {
	switch n := node.(type) {
	case *Program:
		p.program(n)
	case *ModuleImport:
		p.write("use ", joinIdents(n.Names, ", "), ";")
	case *Alias:
		p.write("alias ", identName(n.Name), " as ")
		if n.Target != nil {
			p.write(n.Target.String())
		} else {
			p.write("<bad>")
		}
		p.write(";")
	case *ClassDef:
		p.class(n)
	case *PropertyDecl:
		p.write(identName(n.Name), ": ", identName(n.Type), ";")
	case *FunctionDecl:
		p.function(n)
	case *BadDecl, *BadStmt, *BadExpr, *BadParam:
		p.write("<bad>")
	case *Ident:
		p.write(n.Name)
	case *Name:
		p.write(n.String())
	case *SimpleParam:
		p.write(identName(n.Name), ": ", nameString(n.Type))
		if n.Constraint != nil {
			p.write(" | ")
			p.node(n.Constraint)
		}
	case *DestructuringParam:
		p.write(identName(n.Name), ": ", nameString(n.Type), " ")
		p.bindings(n.Bindings)
	case *PropertyBinding:
		p.binding(n)
	case *Block:
		p.block(n)
	case Stmt:
		p.stmt(n)
	case *TypeRef:
		p.typeRef(n)
	case Expr:
		p.expr(n)
	case *Generator:
		p.write(identName(n.Var), " <- ", identName(n.Source))
	case *PropertyInit:
		p.write(identName(n.Name), " = ")
		p.node(n.Value)
	case Iri:
		p.write(n.String())
	}
}

func (p *printer) program(n *Program) {
	first := true
	sep := func() {
		if !first {
			p.newline()
		}
		first = false
	}

	for _, imp := range n.Imports {
		sep()
		p.node(imp)
	}
	for _, alias := range n.Aliases {
		sep()
		p.node(alias)
	}

	// Classes and functions interleave in source; restore that order.
	decls := make([]Decl, 0, len(n.Classes)+len(n.Functions))
	for _, c := range n.Classes {
		decls = append(decls, c)
	}
	for _, f := range n.Functions {
		decls = append(decls, f)
	}
	sortBySource(decls)

	for _, d := range decls {
		sep()
		p.node(d)
	}
}

func (p *printer) class(n *ClassDef) {
	p.write("class ", identName(n.Name), " {")

	members := make([]Decl, 0, len(n.Properties)+len(n.Methods))
	for _, prop := range n.Properties {
		members = append(members, prop)
	}
	for _, m := range n.Methods {
		members = append(members, m)
	}
	sortBySource(members)

	p.indent++
	for _, m := range members {
		p.newline()
		p.node(m)
	}
	p.indent--
	p.newline()
	p.write("}")
}

func (p *printer) function(n *FunctionDecl) {
	p.write(nameString(n.Name), "(")
	for i, param := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		p.node(param)
	}
	p.write("): ", identName(n.ReturnType), " ")
	if n.Body != nil {
		p.block(n.Body)
	} else {
		p.write("<bad>")
	}
	p.write(";")
}

func (p *printer) bindings(bs []*PropertyBinding) {
	p.write("{ ")
	for i, b := range bs {
		if i > 0 {
			p.write(", ")
		}
		p.binding(b)
	}
	p.write(" }")
}

func (p *printer) binding(b *PropertyBinding) {
	p.write(identName(b.Local), ": ", identName(b.Property))
	if b.Constraint != nil {
		p.write(" | ")
		p.node(b.Constraint)
	}
	if b.Nested != nil {
		p.write(" ")
		p.bindings(b.Nested)
	}
}

func (p *printer) block(b *Block) {
	p.write("{")
	p.indent++
	for _, stmt := range b.Stmts {
		p.newline()
		p.stmt(stmt)
		p.write(";")
	}
	p.indent--
	p.newline()
	p.write("}")
}

func (p *printer) stmt(s Stmt) {
	switch n := s.(type) {
	case *IfElse:
		p.write("if ")
		p.expr(n.Condition)
		p.write(" ")
		p.block(n.Then)
		if n.Else != nil {
			p.write(" else ")
			p.block(n.Else)
		}
	case *While:
		p.write("while ")
		p.expr(n.Condition)
		p.write(" ")
		p.block(n.Body)
	case *With:
		p.write("with ")
		p.expr(n.Resource)
		p.write(" ")
		p.block(n.Body)
	case *VarDecl:
		p.write(identName(n.Name), ": ")
		if n.Type != nil {
			p.typeRef(n.Type)
		} else {
			p.write("<bad>")
		}
		if n.Init != nil {
			p.write(" = ")
			p.expr(n.Init)
		}
	case *Assignment:
		p.write(nameString(n.Target), " = ")
		p.expr(n.Value)
	case *Return:
		p.write("return ")
		p.expr(n.Value)
	case *ExprStmt:
		p.expr(n.X)
	default:
		p.write("<bad>")
	}
}

func (p *printer) typeRef(t *TypeRef) {
	if t.Bad {
		p.write("<bad>")
		return
	}
	if t.List {
		p.write("list<", identName(t.Name), ">")
		return
	}
	p.write(identName(t.Name))
}

func (p *printer) expr(e Expr) {
	switch n := e.(type) {
	case *BoolLit:
		if n.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *IntLit:
		p.write(n.Text)
	case *FloatLit:
		p.write(n.Text)
	case *StringLit:
		quote := string(n.Quote)
		if n.Quote == 0 {
			quote = `"`
		}
		p.write(quote, n.Value, quote)
	case *ListLiteral:
		p.write("[")
		p.exprList(n.Elems)
		p.write("]")
	case *ListComprehension:
		p.write("[", identName(n.Var), " | ")
		if n.Generator != nil {
			p.node(n.Generator)
		}
		p.write(", ")
		p.expr(n.Constraint)
		p.write("]")
	case *VarRef:
		p.write(nameString(n.Name))
	case *UnaryNot:
		p.write("!")
		p.expr(n.X)
	case *UnaryNeg:
		p.write("-")
		operand := Format(n.X)
		// "-5" would lex as a single negative literal.
		if operand != "" && operand[0] >= '0' && operand[0] <= '9' {
			p.write(" ")
		}
		p.write(operand)
	case *BinaryOp:
		p.expr(n.Left)
		p.write(" ", n.Op.Symbol(), " ")
		p.expr(n.Right)
	case *FuncCall:
		p.write(nameString(n.Name), "(")
		p.exprList(n.Args)
		p.write(")")
	case *Paren:
		p.write("(")
		p.expr(n.X)
		p.write(")")
	case *TypeCast:
		p.write("(", identName(n.Type), ") ")
		p.expr(n.X)
	case *NewInstance:
		p.write("new ", identName(n.Type), "(")
		for i, init := range n.Inits {
			if i > 0 {
				p.write(", ")
			}
			p.node(init)
		}
		p.write(")")
	default:
		p.write("<bad>")
	}
}

func (p *printer) exprList(es []Expr) {
	for i, e := range es {
		if i > 0 {
			p.write(", ")
		}
		p.expr(e)
	}
}

func sortBySource(decls []Decl) {
	sort.SliceStable(decls, func(i, j int) bool {
		return decls[i].Span().Start < decls[j].Span().Start
	})
}

func identName(id *Ident) string {
	if id == nil {
		return "<bad>"
	}
	return id.Name
}

func nameString(n *Name) string {
	if n == nil {
		return "<bad>"
	}
	return n.String()
}
