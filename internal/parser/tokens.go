package parser

import (
	"strings"

	"github.com/semlang/semlang/internal/lexer"
)

// nextToken advances the parser's token window.
// Contract: after calling nextToken, curTok == old(peekTok). The lexer is only
// queried from fetch to keep lookahead bookkeeping centralized.
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if len(p.tokenBuffer) > 0 {
		p.peekTok = p.tokenBuffer[0]
		p.tokenBuffer = p.tokenBuffer[1:]
		return
	}
	p.peekTok = p.fetch()
}

// fetch pulls the next significant token. ILLEGAL tokens are dropped here:
// the lexer has already recorded an error for each of them, so skipping
// them is the one-character recovery the lexer promises.
func (p *Parser) fetch() lexer.Token {
	for {
		tok := p.lx.NextToken()
		if tok.Type != lexer.ILLEGAL {
			return tok
		}
	}
}

// peekTokenAt returns the token n positions after peekTok (n == 0 is
// peekTok itself).
func (p *Parser) peekTokenAt(n int) lexer.Token {
	if n == 0 {
		return p.peekTok
	}
	for len(p.tokenBuffer) < n {
		tok := p.fetch()
		p.tokenBuffer = append(p.tokenBuffer, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	if len(p.tokenBuffer) >= n {
		return p.tokenBuffer[n-1]
	}
	return p.tokenBuffer[len(p.tokenBuffer)-1]
}

// expect asserts that the peek token matches the provided type.
// The caller is responsible for inspecting curTok before invoking expect,
// because expect never rewinds; on success it promotes peekTok into curTok.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}

	p.reportExpected(tokenName(tt), p.peekTok)
	return false
}

// expectWord is expect for positions that accept an identifier or any
// keyword (IRI segments).
func (p *Parser) expectWord(what string) bool {
	if isWord(p.peekTok.Type) {
		p.nextToken()
		return true
	}

	p.reportExpected(what, p.peekTok)
	return false
}

func isWord(tt lexer.TokenType) bool {
	return tt == lexer.IDENT || lexer.IsKeyword(tt)
}

// tokenName renders a token type for "expected ..." messages.
func tokenName(tt lexer.TokenType) string {
	switch {
	case tt == lexer.IDENT:
		return "identifier"
	case tt == lexer.EOF:
		return "end of input"
	case lexer.IsKeyword(tt):
		return "`" + strings.ToLower(string(tt)) + "`"
	default:
		return "`" + string(tt) + "`"
	}
}

func sameTokenPosition(a, b lexer.Token) bool {
	return a.Type == b.Type && a.Span.Start == b.Span.Start && a.Span.End == b.Span.End
}

// mergeSpan assumes start.End <= end.End and returns a span covering both.
// Callers pass the earliest span first so node spans only grow.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if span.Filename == "" {
		span.Filename = end.Filename
	}

	if end.End > span.End {
		span.End = end.End
	}

	return span
}
