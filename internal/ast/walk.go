package ast

// Walk traverses the AST depth-first starting from node, calling fn for
// each node before its children. Children are visited in field order, so a
// Program yields its classes before its functions. If fn returns false,
// Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, imp := range n.Imports {
			Walk(imp, fn)
		}
		for _, alias := range n.Aliases {
			Walk(alias, fn)
		}
		for _, class := range n.Classes {
			Walk(class, fn)
		}
		for _, decl := range n.Functions {
			Walk(decl, fn)
		}
		for _, bad := range n.Bad {
			Walk(bad, fn)
		}

	case *ModuleImport:
		for _, name := range n.Names {
			Walk(name, fn)
		}

	case *Alias:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Target != nil {
			Walk(n.Target, fn)
		}

	case *ClassDef:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, prop := range n.Properties {
			Walk(prop, fn)
		}
		for _, method := range n.Methods {
			Walk(method, fn)
		}
		for _, bad := range n.Bad {
			Walk(bad, fn)
		}

	case *PropertyDecl:
		walkIdent(n.Name, fn)
		walkIdent(n.Type, fn)

	case *FunctionDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, param := range n.Params {
			Walk(param, fn)
		}
		walkIdent(n.ReturnType, fn)
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *Name:
		for _, part := range n.Parts {
			Walk(part, fn)
		}

	case *SimpleParam:
		walkIdent(n.Name, fn)
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Constraint != nil {
			Walk(n.Constraint, fn)
		}

	case *DestructuringParam:
		walkIdent(n.Name, fn)
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		for _, b := range n.Bindings {
			Walk(b, fn)
		}

	case *PropertyBinding:
		walkIdent(n.Local, fn)
		walkIdent(n.Property, fn)
		if n.Constraint != nil {
			Walk(n.Constraint, fn)
		}
		for _, nested := range n.Nested {
			Walk(nested, fn)
		}

	case *Block:
		for _, stmt := range n.Stmts {
			Walk(stmt, fn)
		}

	case *IfElse:
		if n.Condition != nil {
			Walk(n.Condition, fn)
		}
		if n.Then != nil {
			Walk(n.Then, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *While:
		if n.Condition != nil {
			Walk(n.Condition, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *With:
		if n.Resource != nil {
			Walk(n.Resource, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *VarDecl:
		walkIdent(n.Name, fn)
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Init != nil {
			Walk(n.Init, fn)
		}

	case *TypeRef:
		walkIdent(n.Name, fn)

	case *Assignment:
		if n.Target != nil {
			Walk(n.Target, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *Return:
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *ExprStmt:
		if n.X != nil {
			Walk(n.X, fn)
		}

	case *ListLiteral:
		for _, elem := range n.Elems {
			Walk(elem, fn)
		}

	case *ListComprehension:
		walkIdent(n.Var, fn)
		if n.Generator != nil {
			Walk(n.Generator, fn)
		}
		if n.Constraint != nil {
			Walk(n.Constraint, fn)
		}

	case *Generator:
		walkIdent(n.Var, fn)
		walkIdent(n.Source, fn)

	case *VarRef:
		if n.Name != nil {
			Walk(n.Name, fn)
		}

	case *UnaryNot:
		if n.X != nil {
			Walk(n.X, fn)
		}

	case *UnaryNeg:
		if n.X != nil {
			Walk(n.X, fn)
		}

	case *BinaryOp:
		if n.Left != nil {
			Walk(n.Left, fn)
		}
		if n.Right != nil {
			Walk(n.Right, fn)
		}

	case *FuncCall:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *Paren:
		if n.X != nil {
			Walk(n.X, fn)
		}

	case *TypeCast:
		walkIdent(n.Type, fn)
		if n.X != nil {
			Walk(n.X, fn)
		}

	case *NewInstance:
		walkIdent(n.Type, fn)
		for _, init := range n.Inits {
			Walk(init, fn)
		}

	case *PropertyInit:
		walkIdent(n.Name, fn)
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *QName:
		walkIdent(n.Prefix, fn)
		walkIdent(n.Fragment, fn)

	case *AbsoluteIri:
		walkIdent(n.Scheme, fn)
		for _, seg := range n.Domain {
			Walk(seg, fn)
		}
		for _, seg := range n.Path {
			Walk(seg, fn)
		}
		walkIdent(n.Fragment, fn)
	}
}

// walkIdent skips nil identifiers so that a typed nil never reaches fn.
func walkIdent(id *Ident, fn func(Node) bool) {
	if id != nil {
		Walk(id, fn)
	}
}

// CountBad returns the number of error placeholders under node.
func CountBad(node Node) int {
	count := 0
	Walk(node, func(n Node) bool {
		switch n := n.(type) {
		case *BadDecl, *BadStmt, *BadExpr, *BadParam:
			count++
		case *TypeRef:
			if n.Bad {
				count++
			}
		}
		return true
	})
	return count
}
