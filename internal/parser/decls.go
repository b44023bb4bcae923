package parser

import (
	"github.com/semlang/semlang/internal/ast"
	"github.com/semlang/semlang/internal/diag"
	"github.com/semlang/semlang/internal/lexer"
)

// Top-level sections must appear in this order.
const (
	phaseImports = iota
	phaseAliases
	phaseDecls
)

// ParseProgram parses the entire input and returns the program AST. It
// always returns a Program; failed declarations are collected in
// Program.Bad and reported through Errors and Diagnostics.
func (p *Parser) ParseProgram() *ast.Program {
	first := p.curTok
	prog := ast.NewProgram(first.Span)
	phase := phaseImports

	for p.curTok.Type != lexer.EOF {
		start := p.curTok
		ok := true

		switch p.curTok.Type {
		case lexer.USE:
			if phase > phaseImports {
				p.reportOutOfOrder("`use` must come before aliases and declarations", p.curTok.Span)
			}
			if imp := p.parseModuleImport(); imp != nil {
				prog.Imports = append(prog.Imports, imp)
			} else {
				ok = false
			}

		case lexer.ALIAS:
			if phase > phaseAliases {
				p.reportOutOfOrder("`alias` must come before class and function declarations", p.curTok.Span)
			} else {
				phase = phaseAliases
			}
			if alias := p.parseAlias(); alias != nil {
				prog.Aliases = append(prog.Aliases, alias)
			} else {
				ok = false
			}

		case lexer.CLASS:
			phase = phaseDecls
			class, closed := p.parseClassDef()
			if class == nil {
				ok = false
				break
			}
			prog.Classes = append(prog.Classes, class)
			if !closed {
				// curTok already starts the next declaration (or is EOF).
				continue
			}

		case lexer.IDENT:
			phase = phaseDecls
			if fn := p.parseFunctionDecl(); fn != nil {
				prog.Functions = append(prog.Functions, fn)
			} else {
				ok = false
			}

		default:
			p.reportUnexpected(p.curTok, "expected `use`, `alias`, `class` or a function declaration")
			ok = false
		}

		if !ok {
			prog.Bad = append(prog.Bad, ast.NewBadDecl(p.recover(syncDecl, start)))
			continue
		}

		p.nextToken()
	}

	prog.SetSpan(mergeSpan(first.Span, p.curTok.Span))
	return prog
}

func (p *Parser) reportOutOfOrder(msg string, span lexer.Span) {
	p.emitParseError(ParseError{
		Kind:    KindSyntax,
		Code:    diag.CodeSyntaxOutOfOrder,
		Message: msg,
		Span:    span,
		Notes:   []string{"a file lists `use` imports first, then aliases, then classes and functions"},
	})
}

// parseModuleImport parses `use a, b;`.
func (p *Parser) parseModuleImport() *ast.ModuleImport {
	useTok := p.curTok

	p.nextToken()

	names, ok := parseDelimited[*ast.Ident](p, delimitedConfig{
		Closing:     lexer.SEMICOLON,
		ElementName: "module name",
	}, func(int) (*ast.Ident, bool) {
		if p.curTok.Type != lexer.IDENT {
			p.reportExpected("module name", p.curTok)
			return nil, false
		}
		return ast.NewIdent(p.curTok.Literal, p.curTok.Span), true
	})
	if !ok {
		return nil
	}

	return ast.NewModuleImport(names.Items, mergeSpan(useTok.Span, p.curTok.Span))
}

// parseAlias parses `alias name as scheme://host/path#frag;`. A QName
// target is a structural error; the alias is kept with a nil Target.
func (p *Parser) parseAlias() *ast.Alias {
	aliasTok := p.curTok

	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	if !p.expect(lexer.AS) {
		return nil
	}
	p.nextToken()

	iri := p.parseIRI()
	if iri == nil {
		return nil
	}

	var target *ast.AbsoluteIri
	switch t := iri.(type) {
	case *ast.AbsoluteIri:
		target = t
	case *ast.QName:
		p.reportStructural(diag.CodeStructuralIRI, "alias target must be an absolute IRI", t.Span(),
			"write the full form, e.g. `http://example.org/path#`")
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	return ast.NewAlias(name, target, mergeSpan(aliasTok.Span, p.curTok.Span))
}

// parseClassDef parses `class Name { members }`. A member starting with
// `name :` is a property; any other identifier starts a method. Members are
// recovered individually, so one broken member leaves its siblings intact.
//
// A class body cut off by a declaration keyword or the end of input is
// reported and kept with the members parsed so far; closed is then false
// and curTok is left on the token that ended the body.
func (p *Parser) parseClassDef() (class *ast.ClassDef, closed bool) {
	classTok := p.curTok

	if !p.expect(lexer.IDENT) {
		return nil, false
	}
	class = ast.NewClassDef(ast.NewIdent(p.curTok.Literal, p.curTok.Span), classTok.Span)

	if !p.expect(lexer.LBRACE) {
		return nil, false
	}
	lbrace := p.curTok
	end := lbrace.Span
	p.nextToken()

	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF && !isDeclKeyword(p.curTok.Type) {
		start := p.curTok

		switch {
		case p.curTok.Type == lexer.IDENT && p.peekTok.Type == lexer.COLON:
			if prop := p.parsePropertyDecl(); prop != nil {
				class.Properties = append(class.Properties, prop)
				end = p.curTok.Span
				p.nextToken()
				continue
			}
		case p.curTok.Type == lexer.IDENT:
			if method := p.parseFunctionDecl(); method != nil {
				class.Methods = append(class.Methods, method)
				end = p.curTok.Span
				p.nextToken()
				continue
			}
		default:
			p.reportUnexpected(p.curTok, "expected property or method")
		}

		bad := ast.NewBadDecl(p.recover(syncMember, start))
		class.Bad = append(class.Bad, bad)
		end = bad.Span()
	}

	if p.curTok.Type != lexer.RBRACE {
		p.reportUnclosed(lbrace, p.curTok, "class `"+class.Name.Name+"`")
		class.SetSpan(mergeSpan(classTok.Span, end))
		return class, false
	}

	class.SetSpan(mergeSpan(classTok.Span, p.curTok.Span))
	return class, true
}

// parsePropertyDecl parses `name : Type ;`.
func (p *Parser) parsePropertyDecl() *ast.PropertyDecl {
	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Literal, nameTok.Span)

	p.nextToken() // ':'

	if !p.expect(lexer.IDENT) {
		return nil
	}
	typ := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	return ast.NewPropertyDecl(name, typ, mergeSpan(nameTok.Span, p.curTok.Span))
}

// parseFunctionDecl parses `name(params): Type { body }` with an optional
// trailing `;`. Used for top-level functions and methods alike.
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	name := p.parseDottedName()
	if name == nil {
		return nil
	}

	if !p.expect(lexer.LPAREN) {
		return nil
	}
	p.nextToken()

	params, ok := p.parseParams()
	if !ok {
		return nil
	}

	if !p.expect(lexer.COLON) || !p.expect(lexer.IDENT) {
		return nil
	}
	ret := ast.NewIdent(p.curTok.Literal, p.curTok.Span)

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}

	return ast.NewFunctionDecl(name, params, ret, body, mergeSpan(name.Span(), p.curTok.Span))
}
