package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune of the source
	End      int    // exclusive end index
}

// String returns "file:line:col" or "line:col".
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string // exact runes from source; for strings the quotes are stripped
	Raw     string // exact runes from source, quotes included
	Span    Span
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // point, _tmp, x1
	INT    TokenType = "INT"    // 42, -7
	FLOAT  TokenType = "FLOAT"  // 3.14, -0.5e+10
	STRING TokenType = "STRING" // "hello", 'hello'

	// Operators and punctuation
	AMPERSAND  TokenType = "&"
	AND        TokenType = "&&"
	ASSIGN     TokenType = "="
	PIPE       TokenType = "|"
	OR         TokenType = "||"
	RBRACE     TokenType = "}"
	RBRACKET   TokenType = "]"
	RPAREN     TokenType = ")"
	COLON      TokenType = ":"
	COMMA      TokenType = ","
	SLASH      TokenType = "/"
	DOT        TokenType = "."
	EQ         TokenType = "=="
	LARROW     TokenType = "<-"
	GE         TokenType = ">="
	GT         TokenType = ">"
	HASH       TokenType = "#"
	FATARROW   TokenType = "=>"
	LE         TokenType = "<="
	LT         TokenType = "<"
	MINUS      TokenType = "-"
	NOT_EQ     TokenType = "!="
	BANG       TokenType = "!"
	LBRACE     TokenType = "{"
	LBRACKET   TokenType = "["
	LPAREN     TokenType = "("
	PERCENT    TokenType = "%"
	PLUS       TokenType = "+"
	CARET      TokenType = "^"
	QUESTION   TokenType = "?"
	SEMICOLON  TokenType = ";"
	ASTERISK   TokenType = "*"
	UNDERSCORE TokenType = "_"

	// Keywords
	ALIAS  TokenType = "ALIAS"
	AS     TokenType = "AS"
	CLASS  TokenType = "CLASS"
	ELSE   TokenType = "ELSE"
	FALSE  TokenType = "FALSE"
	IF     TokenType = "IF"
	LIST   TokenType = "LIST"
	NEW    TokenType = "NEW"
	RETURN TokenType = "RETURN"
	USE    TokenType = "USE"
	TRUE   TokenType = "TRUE"
	WHILE  TokenType = "WHILE"
	WITH   TokenType = "WITH"
)

var keywords = map[string]TokenType{
	"alias":  ALIAS,
	"as":     AS,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"if":     IF,
	"list":   LIST,
	"new":    NEW,
	"return": RETURN,
	"use":    USE,
	"true":   TRUE,
	"while":  WHILE,
	"with":   WITH,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether tt is one of the reserved words.
func IsKeyword(tt TokenType) bool {
	for _, kw := range keywords {
		if kw == tt {
			return true
		}
	}
	return false
}

// Describe renders a token for "expected X, found Y" messages.
func Describe(tok Token) string {
	switch tok.Type {
	case EOF:
		return "end of input"
	case IDENT, INT, FLOAT:
		return "`" + tok.Raw + "`"
	case STRING:
		return "string " + tok.Raw
	}
	if tok.Raw != "" {
		return "`" + tok.Raw + "`"
	}
	return "`" + string(tok.Type) + "`"
}
