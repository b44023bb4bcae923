package parser

import (
	"github.com/semlang/semlang/internal/ast"
	"github.com/semlang/semlang/internal/lexer"
)

// parseIRI parses a QName (`prefix:fragment`, `:fragment`) or an absolute
// IRI (`scheme://a.b/p/q/#frag`) starting at curTok. Segments are words:
// identifiers or keywords.
func (p *Parser) parseIRI() ast.Iri {
	first := p.curTok

	if first.Type == lexer.COLON {
		if !p.expectWord("IRI fragment") {
			return nil
		}
		fragment := p.wordIdent()
		return ast.NewQName(nil, fragment, mergeSpan(first.Span, p.curTok.Span))
	}

	if !isWord(first.Type) {
		p.reportExpected("IRI", first)
		return nil
	}
	head := p.wordIdent()

	if !p.expect(lexer.COLON) {
		return nil
	}

	if p.peekTok.Type == lexer.SLASH && p.peekTokenAt(1).Type == lexer.SLASH {
		return p.parseAbsoluteIRI(first, head)
	}

	if !p.expectWord("IRI fragment") {
		return nil
	}
	fragment := p.wordIdent()

	return ast.NewQName(head, fragment, mergeSpan(first.Span, p.curTok.Span))
}

// parseAbsoluteIRI continues after `scheme:` with curTok on the colon.
func (p *Parser) parseAbsoluteIRI(first lexer.Token, scheme *ast.Ident) ast.Iri {
	p.nextToken() // '/'
	p.nextToken() // '/'

	if !p.expectWord("domain segment") {
		return nil
	}
	domain := []*ast.Ident{p.wordIdent()}

	for p.peekTok.Type == lexer.DOT {
		p.nextToken()
		if !p.expectWord("domain segment") {
			return nil
		}
		domain = append(domain, p.wordIdent())
	}

	var path []*ast.Ident
	trailingSlash := false

	for p.peekTok.Type == lexer.SLASH {
		p.nextToken()
		if !isWord(p.peekTok.Type) {
			trailingSlash = true
			break
		}
		p.nextToken()
		path = append(path, p.wordIdent())
	}

	var fragment *ast.Ident
	if p.peekTok.Type == lexer.HASH {
		p.nextToken()
		if isWord(p.peekTok.Type) {
			p.nextToken()
			fragment = p.wordIdent()
		} else {
			empty := p.curTok.Span
			empty.Start = empty.End
			empty.Column++
			fragment = ast.NewIdent("", empty)
		}
	}

	return ast.NewAbsoluteIri(scheme, domain, path, trailingSlash, fragment, mergeSpan(first.Span, p.curTok.Span))
}

func (p *Parser) wordIdent() *ast.Ident {
	return ast.NewIdent(p.curTok.Raw, p.curTok.Span)
}
