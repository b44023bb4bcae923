package parser

import (
	"github.com/semlang/semlang/internal/ast"
	"github.com/semlang/semlang/internal/diag"
	"github.com/semlang/semlang/internal/lexer"
)

func (p *Parser) parseIntLiteral() ast.Expr {
	return ast.NewIntLit(p.curTok.Literal, p.curTok.Span)
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	return ast.NewFloatLit(p.curTok.Literal, p.curTok.Span)
}

func (p *Parser) parseStringLiteral() ast.Expr {
	quote := '"'
	if p.curTok.Raw != "" {
		quote = rune(p.curTok.Raw[0])
	}
	return ast.NewStringLit(p.curTok.Literal, quote, p.curTok.Span)
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	return ast.NewBoolLit(p.curTok.Type == lexer.TRUE, p.curTok.Span)
}

// parseListExpr parses `[ e, ... ]` or a comprehension `[ v | gen, cond ]`.
// `IDENT |` right after the bracket selects the comprehension.
func (p *Parser) parseListExpr() ast.Expr {
	lbracket := p.curTok

	if p.peekTok.Type == lexer.IDENT && p.peekTokenAt(1).Type == lexer.PIPE {
		return p.parseComprehension(lbracket)
	}

	p.nextToken()

	elems, ok := parseDelimited[ast.Expr](p, delimitedConfig{
		Closing:     lexer.RBRACKET,
		AllowEmpty:  true,
		ElementName: "list element",
	}, func(int) (ast.Expr, bool) {
		elem := p.parseExpr()
		return elem, elem != nil
	})
	if !ok {
		return nil
	}

	return ast.NewListLiteral(elems.Items, mergeSpan(lbracket.Span, p.curTok.Span))
}

// comprehensionItem is one comma-separated entry after the `|`.
type comprehensionItem struct {
	gen  *ast.Generator
	expr ast.Expr
}

func (it comprehensionItem) span() lexer.Span {
	if it.gen != nil {
		return it.gen.Span()
	}
	return it.expr.Span()
}

// parseComprehension accepts any mix of generators and expressions so that
// arity mistakes surface as one structural error over the whole list
// instead of a cascade of syntax errors.
func (p *Parser) parseComprehension(lbracket lexer.Token) ast.Expr {
	p.nextToken()
	v := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	p.nextToken() // '|'
	p.nextToken()

	items, ok := parseDelimited[comprehensionItem](p, delimitedConfig{
		Closing:     lexer.RBRACKET,
		ElementName: "generator or constraint",
	}, func(int) (comprehensionItem, bool) {
		if p.curTok.Type == lexer.IDENT && p.peekTok.Type == lexer.LARROW {
			gen := p.parseGenerator()
			return comprehensionItem{gen: gen}, gen != nil
		}
		expr := p.parseExpr()
		return comprehensionItem{expr: expr}, expr != nil
	})
	if !ok {
		return nil
	}

	span := mergeSpan(lbracket.Span, p.curTok.Span)

	var gens, constraints []comprehensionItem
	for _, it := range items.Items {
		if it.gen != nil {
			gens = append(gens, it)
		} else {
			constraints = append(constraints, it)
		}
	}

	msg := ""
	errSpan := span
	switch {
	case len(gens) == 0:
		msg = "list comprehension requires a generator `var <- source`"
	case len(gens) > 1:
		msg = "list comprehension allows exactly one generator"
		errSpan = gens[1].span()
	case len(constraints) == 0:
		msg = "list comprehension requires a constraint after the generator"
	case len(constraints) > 1:
		msg = "list comprehension allows exactly one constraint"
		errSpan = constraints[1].span()
	case items.Items[0].gen == nil:
		msg = "the generator must come before the constraint"
		errSpan = gens[0].span()
	}

	if msg != "" {
		p.reportStructural(diag.CodeStructuralComprehension, msg, errSpan,
			"write the comprehension as `[v | v <- source, condition]`")
		return ast.NewBadExpr(span)
	}

	return ast.NewListComprehension(v, gens[0].gen, constraints[0].expr, span)
}

func (p *Parser) parseGenerator() *ast.Generator {
	first := p.curTok
	v := ast.NewIdent(first.Literal, first.Span)

	p.nextToken() // '<-'

	if !p.expect(lexer.IDENT) {
		return nil
	}
	source := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	return ast.NewGenerator(v, source, mergeSpan(first.Span, p.curTok.Span))
}

// parseNewInstance parses `new Type(name = expr, ...)`.
func (p *Parser) parseNewInstance() ast.Expr {
	newTok := p.curTok

	if !p.expect(lexer.IDENT) {
		return nil
	}
	typ := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	if !p.expect(lexer.LPAREN) {
		return nil
	}
	p.nextToken()

	inits, ok := parseDelimited[*ast.PropertyInit](p, delimitedConfig{
		Closing:     lexer.RPAREN,
		AllowEmpty:  true,
		ElementName: "property initializer",
	}, func(int) (*ast.PropertyInit, bool) {
		init := p.parsePropertyInit()
		return init, init != nil
	})
	if !ok {
		return nil
	}

	return ast.NewNewInstance(typ, inits.Items, mergeSpan(newTok.Span, p.curTok.Span))
}

func (p *Parser) parsePropertyInit() *ast.PropertyInit {
	if p.curTok.Type != lexer.IDENT {
		p.reportExpected("property name", p.curTok)
		return nil
	}
	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Literal, nameTok.Span)

	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	p.nextToken()

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	return ast.NewPropertyInit(name, value, mergeSpan(nameTok.Span, value.Span()))
}
