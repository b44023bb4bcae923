package parser

import (
	"github.com/semlang/semlang/internal/lexer"
)

// syncUnit names the recoverable unit a resynchronisation is performed for.
type syncUnit int

const (
	syncStmt syncUnit = iota
	syncMember
	syncDecl
)

func (u syncUnit) String() string {
	switch u {
	case syncStmt:
		return "statement"
	case syncMember:
		return "class member"
	default:
		return "declaration"
	}
}

func isDeclKeyword(tt lexer.TokenType) bool {
	switch tt {
	case lexer.CLASS, lexer.USE, lexer.ALIAS:
		return true
	}
	return false
}

func isStatementKeyword(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IF, lexer.WHILE, lexer.WITH, lexer.RETURN:
		return true
	}
	return false
}

// isPrimaryStart reports whether tt can begin a primary expression. It
// decides whether `(Ident)` is a cast or a parenthesised reference.
func isPrimaryStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE,
		lexer.BANG, lexer.MINUS, lexer.LPAREN, lexer.LBRACKET, lexer.NEW:
		return true
	}
	return false
}

// atFunctionHead reports whether curTok starts `IDENT ('.' IDENT)* '('`.
func (p *Parser) atFunctionHead() bool {
	if p.curTok.Type != lexer.IDENT {
		return false
	}
	n := 0
	for p.peekTokenAt(n).Type == lexer.DOT && p.peekTokenAt(n+1).Type == lexer.IDENT {
		n += 2
	}
	return p.peekTokenAt(n).Type == lexer.LPAREN
}

func (p *Parser) peekPrecedence() int {
	if info, ok := binaryOperators[p.peekTok.Type]; ok {
		return info.precedence
	}

	return precedenceLowest
}

// recover skips tokens after a failed unit that began at start, leaving
// curTok on the first token of the next unit. Braces are balanced while
// skipping so a broken statement never swallows the `}` of its block. The
// returned span covers the skipped region and is used for the placeholder.
//
// Stopping rules, all at brace depth 0:
//   - `;` is consumed and ends the unit.
//   - a `}` closing a brace opened inside the unit is consumed; for members
//     and declarations it ends the unit together with an optional `;`.
//   - an unmatched `}` ends the unit; a declaration consumes it as stray.
//   - a keyword that starts a new unit ends it without being consumed. So
//     does the head of a function (`name(` or `a.b(`) for members and
//     declarations, and `name :` for members.
func (p *Parser) recover(unit syncUnit, start lexer.Token) lexer.Span {
	span := start.Span
	skipped := 0
	depth := 0

	advance := func() {
		span = mergeSpan(span, p.curTok.Span)
		skipped++
		p.nextToken()
	}

	defer func() {
		p.log.Debug().
			Str("unit", unit.String()).
			Int("skipped", skipped).
			Str("sync", string(p.curTok.Type)).
			Str("at", p.curTok.Span.String()).
			Msg("parser recovered")
	}()

	// Make progress even when the failure was reported on the first token.
	if sameTokenPosition(p.curTok, start) && p.curTok.Type != lexer.EOF {
		switch start.Type {
		case lexer.SEMICOLON:
			advance()
			return span
		case lexer.RBRACE:
			if unit == syncDecl {
				advance()
				return span
			}
		case lexer.LBRACE:
			depth++
		}
		advance()
	}

	for p.curTok.Type != lexer.EOF {
		switch p.curTok.Type {
		case lexer.LBRACE:
			depth++

		case lexer.RBRACE:
			if depth == 0 {
				if unit == syncDecl {
					advance()
				}
				return span
			}
			depth--
			if depth == 0 && unit != syncStmt {
				advance()
				if p.curTok.Type == lexer.SEMICOLON {
					advance()
				}
				return span
			}

		case lexer.SEMICOLON:
			if depth == 0 {
				advance()
				return span
			}

		default:
			if depth == 0 {
				if unit == syncStmt && isStatementKeyword(p.curTok.Type) {
					return span
				}
				if unit != syncStmt && (isDeclKeyword(p.curTok.Type) || p.atFunctionHead()) {
					return span
				}
				if unit == syncMember && p.curTok.Type == lexer.IDENT && p.peekTok.Type == lexer.COLON {
					return span
				}
			}
		}

		advance()
	}

	return span
}
