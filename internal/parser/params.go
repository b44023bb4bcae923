package parser

import (
	"github.com/semlang/semlang/internal/ast"
	"github.com/semlang/semlang/internal/lexer"
)

// parseParams parses a parameter list whose `(` has been consumed. It
// returns with curTok on `)` and ok set, or with ok false when the list
// could not be closed. A broken parameter is replaced by a BadParam and
// the list continues at the next `,`.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	var params []ast.Param

	if p.curTok.Type == lexer.RPAREN {
		return params, true
	}

	for {
		start := p.curTok

		param := p.parseParam()
		if param != nil {
			switch p.peekTok.Type {
			case lexer.COMMA, lexer.RPAREN:
				p.nextToken()
			default:
				p.reportExpected("`,` or `)`", p.peekTok)
				p.nextToken()
				p.skipParam()
			}
		} else {
			param = ast.NewBadParam(p.skipParamFrom(start))
		}
		params = append(params, param)

		switch p.curTok.Type {
		case lexer.RPAREN:
			return params, true
		case lexer.COMMA:
			p.nextToken()
			if p.curTok.Type == lexer.RPAREN {
				p.reportExpected("parameter", p.curTok)
				return params, true
			}
		default:
			return params, false
		}
	}
}

// skipParamFrom resynchronises after a parameter that began at start
// failed, returning the span of the skipped region.
func (p *Parser) skipParamFrom(start lexer.Token) lexer.Span {
	span := start.Span
	if sameTokenPosition(p.curTok, start) && p.curTok.Type != lexer.RPAREN && p.curTok.Type != lexer.COMMA {
		p.nextToken()
	}
	end := p.skipParam()
	if end.End > span.End {
		span = mergeSpan(span, end)
	}
	return span
}

// skipParam advances to the `,` or `)` that ends the current parameter,
// balancing nested parentheses. It stops early at a `{` or `;` outside
// parentheses, or at the end of input, where the list cannot continue. A
// `}` left over from a broken destructuring block is skipped.
func (p *Parser) skipParam() lexer.Span {
	last := p.curTok.Span
	depth := 0

	for {
		switch p.curTok.Type {
		case lexer.EOF:
			return last
		case lexer.LBRACE, lexer.SEMICOLON:
			if depth == 0 {
				return last
			}
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			if depth == 0 {
				return last
			}
			depth--
		case lexer.COMMA:
			if depth == 0 {
				return last
			}
		}
		last = p.curTok.Span
		p.nextToken()
	}
}

// parseParam parses `name : Type [| constraint]` or
// `name : Type { bindings }`.
func (p *Parser) parseParam() ast.Param {
	if p.curTok.Type != lexer.IDENT {
		p.reportExpected("parameter name", p.curTok)
		return nil
	}
	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Literal, nameTok.Span)

	if !p.expect(lexer.COLON) {
		return nil
	}
	p.nextToken()

	typ := p.parseDottedName()
	if typ == nil {
		return nil
	}

	switch p.peekTok.Type {
	case lexer.LBRACE:
		p.nextToken()
		bindings := p.parseBindings()
		if bindings == nil {
			return nil
		}
		return ast.NewDestructuringParam(name, typ, bindings, mergeSpan(nameTok.Span, p.curTok.Span))

	case lexer.PIPE:
		p.nextToken()
		p.nextToken()
		constraint := p.parseExpr()
		if constraint == nil {
			return nil
		}
		return ast.NewSimpleParam(name, typ, constraint, mergeSpan(nameTok.Span, constraint.Span()))
	}

	return ast.NewSimpleParam(name, typ, nil, mergeSpan(nameTok.Span, typ.Span()))
}

// parseBindings parses `{ binding, ... }` starting at `{`. Nested blocks
// recurse through parseBinding with no depth limit.
func (p *Parser) parseBindings() []*ast.PropertyBinding {
	p.nextToken()

	result, ok := parseDelimited[*ast.PropertyBinding](p, delimitedConfig{
		Closing:     lexer.RBRACE,
		ElementName: "property binding",
	}, func(int) (*ast.PropertyBinding, bool) {
		b := p.parseBinding()
		return b, b != nil
	})
	if !ok {
		return nil
	}

	return result.Items
}

// parseBinding parses `local : property` followed by either
// `| constraint` or a nested `{ bindings }`.
func (p *Parser) parseBinding() *ast.PropertyBinding {
	if p.curTok.Type != lexer.IDENT {
		p.reportExpected("binding name", p.curTok)
		return nil
	}
	localTok := p.curTok
	local := ast.NewIdent(localTok.Literal, localTok.Span)

	if !p.expect(lexer.COLON) || !p.expect(lexer.IDENT) {
		return nil
	}
	property := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	var constraint ast.Expr
	var nested []*ast.PropertyBinding

	switch p.peekTok.Type {
	case lexer.PIPE:
		p.nextToken()
		p.nextToken()
		constraint = p.parseExpr()
		if constraint == nil {
			return nil
		}
	case lexer.LBRACE:
		p.nextToken()
		nested = p.parseBindings()
		if nested == nil {
			return nil
		}
	}

	return ast.NewPropertyBinding(local, property, constraint, nested, mergeSpan(localTok.Span, p.curTok.Span))
}
