package parser

import (
	"github.com/semlang/semlang/internal/ast"
	"github.com/semlang/semlang/internal/lexer"
)

func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrecedence(precedenceLowest)
}

// parseExprPrecedence is the Pratt loop. Operators of equal power do not
// continue the loop, which makes every binary operator left-associative.
func (p *Parser) parseExprPrecedence(precedence int) ast.Expr {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportUnexpected(p.curTok, "expected expression")
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			return left
		}

		p.nextToken()

		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	info := binaryOperators[p.curTok.Type]

	p.nextToken()

	right := p.parseExprPrecedence(info.precedence)
	if right == nil {
		return nil
	}

	return ast.NewBinaryOp(info.op, left, right, mergeSpan(left.Span(), right.Span()))
}

// parseUnaryExpr handles `!x` and `-x`. The operand is a primary, so `!a < b`
// is `(!a) < b`. A `-` directly before a digit never reaches here; the lexer
// folds it into the literal.
func (p *Parser) parseUnaryExpr() ast.Expr {
	opTok := p.curTok

	p.nextToken()

	operand := p.parseExprPrecedence(precedencePrefix)
	if operand == nil {
		return nil
	}

	span := mergeSpan(opTok.Span, operand.Span())
	if opTok.Type == lexer.BANG {
		return ast.NewUnaryNot(operand, span)
	}
	return ast.NewUnaryNeg(operand, span)
}

// parseParenOrCast distinguishes `(Type) operand` from a parenthesised
// expression. `( IDENT )` followed by a token that can start a primary is a
// cast; anything else is grouping. As a consequence `(a) - b` casts `-b`
// to `a`; write `a - b` for the subtraction.
func (p *Parser) parseParenOrCast() ast.Expr {
	lparen := p.curTok

	if p.peekTok.Type == lexer.IDENT &&
		p.peekTokenAt(1).Type == lexer.RPAREN &&
		isPrimaryStart(p.peekTokenAt(2).Type) {
		return p.parseCast(lparen)
	}

	p.nextToken()

	inner := p.parseExpr()
	if inner == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	return ast.NewParen(inner, mergeSpan(lparen.Span, p.curTok.Span))
}

func (p *Parser) parseCast(lparen lexer.Token) ast.Expr {
	p.nextToken()
	typ := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	p.nextToken() // ')'
	p.nextToken()

	operand := p.parseExprPrecedence(precedencePrefix)
	if operand == nil {
		return nil
	}

	return ast.NewTypeCast(typ, operand, mergeSpan(lparen.Span, operand.Span()))
}

// parseNameExpr parses a variable reference `a.b.c` or a call `a.b(args)`.
func (p *Parser) parseNameExpr() ast.Expr {
	name := p.parseDottedName()
	if name == nil {
		return nil
	}

	if p.peekTok.Type != lexer.LPAREN {
		return ast.NewVarRef(name, name.Span())
	}

	p.nextToken() // '('
	p.nextToken()

	args, ok := parseDelimited[ast.Expr](p, delimitedConfig{
		Closing:     lexer.RPAREN,
		AllowEmpty:  true,
		ElementName: "argument",
	}, func(int) (ast.Expr, bool) {
		arg := p.parseExpr()
		return arg, arg != nil
	})
	if !ok {
		return nil
	}

	return ast.NewFuncCall(name, args.Items, mergeSpan(name.Span(), p.curTok.Span))
}

// parseDottedName parses IDENT ('.' IDENT)* starting at curTok.
func (p *Parser) parseDottedName() *ast.Name {
	if p.curTok.Type != lexer.IDENT {
		p.reportExpected("identifier", p.curTok)
		return nil
	}

	first := p.curTok
	parts := []*ast.Ident{ast.NewIdent(first.Literal, first.Span)}

	for p.peekTok.Type == lexer.DOT {
		p.nextToken()
		if !p.expect(lexer.IDENT) {
			return nil
		}
		parts = append(parts, ast.NewIdent(p.curTok.Literal, p.curTok.Span))
	}

	return ast.NewName(parts, mergeSpan(first.Span, p.curTok.Span))
}
