package parser

import (
	"github.com/semlang/semlang/internal/ast"
	"github.com/semlang/semlang/internal/diag"
	"github.com/semlang/semlang/internal/lexer"
)

// parseBlock parses `{ (stmt ;)* }` starting at `{` and returns with curTok
// on the closing `}`. A failed statement becomes a BadStmt and parsing
// resumes at the next statement. A block cut off by the end of input is
// reported and returned as far as it got.
func (p *Parser) parseBlock() *ast.Block {
	lbrace := p.curTok
	if lbrace.Type != lexer.LBRACE {
		p.reportExpected(tokenName(lexer.LBRACE), lbrace)
		return nil
	}

	p.nextToken()

	var stmts []ast.Stmt
	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
		start := p.curTok

		stmt := p.parseStmt()
		if stmt == nil {
			stmts = append(stmts, ast.NewBadStmt(p.recover(syncStmt, start)))
			continue
		}

		stmts = append(stmts, stmt)
		p.finishStmt()
	}

	if p.curTok.Type == lexer.EOF {
		p.reportUnclosed(lbrace, p.curTok, "block")
	}

	return ast.NewBlock(stmts, mergeSpan(lbrace.Span, p.curTok.Span))
}

// finishStmt consumes the `;` after a statement and moves to the next one.
// A missing `;` is reported but the statement is kept.
func (p *Parser) finishStmt() {
	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
		p.nextToken()
		return
	}

	found := lexer.Describe(p.peekTok)
	p.emitParseError(ParseError{
		Kind:     KindSyntax,
		Code:     diag.CodeSyntaxMissingSemicolon,
		Message:  "expected `;` after statement, found " + found,
		Expected: "`;`",
		Found:    found,
		Span:     p.peekTok.Span,
		Help:     "every statement in a block ends with `;`",
	})
	p.nextToken()
}

// parseStmt tries the statement forms in a fixed order: if, while, with,
// variable declaration, assignment, return, bare expression.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.curTok.Type {
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.WITH:
		return p.parseWithStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IDENT:
		if p.peekTok.Type == lexer.COLON {
			return p.parseVarDecl()
		}
		if p.isAssignment() {
			return p.parseAssignment()
		}
	}

	return p.parseExprStmt()
}

// isAssignment looks past a dotted chain for `=`.
func (p *Parser) isAssignment() bool {
	n := 0
	for p.peekTokenAt(n).Type == lexer.DOT && p.peekTokenAt(n+1).Type == lexer.IDENT {
		n += 2
	}
	return p.peekTokenAt(n).Type == lexer.ASSIGN
}

// parseCondBlock parses `expr {block}` after a statement keyword.
func (p *Parser) parseCondBlock() (ast.Expr, *ast.Block) {
	p.nextToken()

	cond := p.parseExpr()
	if cond == nil {
		return nil, nil
	}

	if !p.expect(lexer.LBRACE) {
		return nil, nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil, nil
	}

	return cond, body
}

func (p *Parser) parseIfStmt() ast.Stmt {
	ifTok := p.curTok

	cond, then := p.parseCondBlock()
	if then == nil {
		return nil
	}

	var els *ast.Block
	if p.peekTok.Type == lexer.ELSE {
		p.nextToken()
		if !p.expect(lexer.LBRACE) {
			return nil
		}
		els = p.parseBlock()
		if els == nil {
			return nil
		}
	}

	return ast.NewIfElse(cond, then, els, mergeSpan(ifTok.Span, p.curTok.Span))
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	whileTok := p.curTok

	cond, body := p.parseCondBlock()
	if body == nil {
		return nil
	}

	return ast.NewWhile(cond, body, mergeSpan(whileTok.Span, p.curTok.Span))
}

func (p *Parser) parseWithStmt() ast.Stmt {
	withTok := p.curTok

	resource, body := p.parseCondBlock()
	if body == nil {
		return nil
	}

	return ast.NewWith(resource, body, mergeSpan(withTok.Span, p.curTok.Span))
}

// parseVarDecl parses `name : Type [= expr]` or `name : list<Type> [= expr]`.
// A missing type before `=` is reported and the declaration is kept with a
// placeholder Type so the initializer is still available.
func (p *Parser) parseVarDecl() ast.Stmt {
	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Literal, nameTok.Span)

	p.nextToken() // ':'

	var typ *ast.TypeRef
	initFollows := false

	switch p.peekTok.Type {
	case lexer.ASSIGN:
		p.emitParseError(ParseError{
			Kind:     KindSyntax,
			Code:     diag.CodeSyntaxExpectedToken,
			Message:  "expected type, found `=`",
			Expected: "type",
			Found:    "`=`",
			Span:     p.peekTok.Span,
			Help:     "declare the variable as `" + nameTok.Literal + ": Type = value`",
		})
		missing := p.peekTok.Span
		missing.End = missing.Start
		typ = ast.NewBadTypeRef(missing)

	case lexer.LIST:
		p.nextToken()
		listTok := p.curTok
		if !p.expect(lexer.LT) || !p.expect(lexer.IDENT) {
			return nil
		}
		elem := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

		switch p.peekTok.Type {
		case lexer.GT:
			p.nextToken()
		case lexer.GE:
			// `list<T>=` lexes the closing `>` and the `=` as one token.
			p.nextToken()
			initFollows = true
		default:
			p.reportExpected(tokenName(lexer.GT), p.peekTok)
			return nil
		}
		closeSpan := p.curTok.Span
		closeSpan.End = closeSpan.Start + 1
		typ = ast.NewTypeRef(elem, true, mergeSpan(listTok.Span, closeSpan))

	default:
		if !p.expect(lexer.IDENT) {
			return nil
		}
		typ = ast.NewTypeRef(ast.NewIdent(p.curTok.Literal, p.curTok.Span), false, p.curTok.Span)
	}

	if !initFollows && p.peekTok.Type == lexer.ASSIGN {
		p.nextToken()
		initFollows = true
	}

	if !initFollows {
		return ast.NewVarDecl(name, typ, nil, mergeSpan(nameTok.Span, p.curTok.Span))
	}

	p.nextToken()

	init := p.parseExpr()
	if init == nil {
		return nil
	}

	return ast.NewVarDecl(name, typ, init, mergeSpan(nameTok.Span, init.Span()))
}

func (p *Parser) parseAssignment() ast.Stmt {
	target := p.parseDottedName()
	if target == nil {
		return nil
	}

	p.nextToken() // '='
	p.nextToken()

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	return ast.NewAssignment(target, value, mergeSpan(target.Span(), value.Span()))
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	returnTok := p.curTok

	p.nextToken()

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	return ast.NewReturn(value, mergeSpan(returnTok.Span, value.Span()))
}

func (p *Parser) parseExprStmt() ast.Stmt {
	x := p.parseExpr()
	if x == nil {
		return nil
	}

	return ast.NewExprStmt(x, x.Span())
}
