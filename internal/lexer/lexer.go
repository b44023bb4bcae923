package lexer

import (
	"strconv"
	"unicode"

	"github.com/semlang/semlang/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnterminatedString LexerErrorKind = iota
	ErrIllegalRune
)

// LexerError records one unrecognised character sequence.
type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (e LexerError) Error() string {
	return e.Span.String() + ": " + e.Message
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     diag.SpanOf(e.Span.Filename, e.Span.Line, e.Span.Column, e.Span.Start, e.Span.End),
	}
}

// Lexer represents the lexer state
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // line of the current rune (1-based)
	column   int  // column of the current rune (1-based)
	filename string
	fatal    bool

	Errors []LexerError
}

// New creates a new lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1,
		line:   1,
		column: 0,
	}
	l.read()
	return l
}

// SetFilename attributes every subsequent span to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// Fatal reports whether the lexer hit an error that consumed the rest of
// the input, leaving no synchronisation point for the parser.
func (l *Lexer) Fatal() bool {
	return l.fatal
}

// Tokenize lexes input to the end and returns every token, EOF included.
func Tokenize(input string) ([]Token, []LexerError) {
	return TokenizeFile("", input)
}

// TokenizeFile is Tokenize with every span attributed to filename.
func TokenizeFile(filename, input string) ([]Token, []LexerError) {
	l := New(input)
	l.SetFilename(filename)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, l.Errors
		}
	}
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// read advances to the next rune. line/column always describe the rune at pos.
func (l *Lexer) read() {
	if l.pos >= 0 && l.pos < len(l.input) && l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.pos++
	if l.pos >= len(l.input) {
		l.pos = len(l.input)
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

func (l *Lexer) peek() rune {
	return l.peekAt(1)
}

func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && unicode.IsSpace(l.ch) {
		l.read()
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	startLine, startColumn, startPos := l.line, l.column, l.pos

	if l.atEOF() {
		return l.finish(EOF, startLine, startColumn, startPos, "")
	}

	switch l.ch {
	case '&':
		return l.either('&', AND, AMPERSAND, startLine, startColumn, startPos)
	case '|':
		return l.either('|', OR, PIPE, startLine, startColumn, startPos)
	case '!':
		return l.either('=', NOT_EQ, BANG, startLine, startColumn, startPos)
	case '>':
		return l.either('=', GE, GT, startLine, startColumn, startPos)
	case '=':
		switch l.peek() {
		case '=':
			return l.fixed(2, EQ, startLine, startColumn, startPos)
		case '>':
			return l.fixed(2, FATARROW, startLine, startColumn, startPos)
		}
		return l.fixed(1, ASSIGN, startLine, startColumn, startPos)
	case '<':
		switch l.peek() {
		case '-':
			return l.fixed(2, LARROW, startLine, startColumn, startPos)
		case '=':
			return l.fixed(2, LE, startLine, startColumn, startPos)
		}
		return l.fixed(1, LT, startLine, startColumn, startPos)
	case '-':
		if isDigit(l.peek()) {
			return l.readNumber(startLine, startColumn, startPos)
		}
		return l.fixed(1, MINUS, startLine, startColumn, startPos)
	case '}':
		return l.fixed(1, RBRACE, startLine, startColumn, startPos)
	case ']':
		return l.fixed(1, RBRACKET, startLine, startColumn, startPos)
	case ')':
		return l.fixed(1, RPAREN, startLine, startColumn, startPos)
	case ':':
		return l.fixed(1, COLON, startLine, startColumn, startPos)
	case ',':
		return l.fixed(1, COMMA, startLine, startColumn, startPos)
	case '/':
		return l.fixed(1, SLASH, startLine, startColumn, startPos)
	case '.':
		return l.fixed(1, DOT, startLine, startColumn, startPos)
	case '#':
		return l.fixed(1, HASH, startLine, startColumn, startPos)
	case '{':
		return l.fixed(1, LBRACE, startLine, startColumn, startPos)
	case '[':
		return l.fixed(1, LBRACKET, startLine, startColumn, startPos)
	case '(':
		return l.fixed(1, LPAREN, startLine, startColumn, startPos)
	case '%':
		return l.fixed(1, PERCENT, startLine, startColumn, startPos)
	case '+':
		return l.fixed(1, PLUS, startLine, startColumn, startPos)
	case '^':
		return l.fixed(1, CARET, startLine, startColumn, startPos)
	case '?':
		return l.fixed(1, QUESTION, startLine, startColumn, startPos)
	case ';':
		return l.fixed(1, SEMICOLON, startLine, startColumn, startPos)
	case '*':
		return l.fixed(1, ASTERISK, startLine, startColumn, startPos)
	case '"', '\'':
		return l.readString(startLine, startColumn, startPos)
	}

	if isLetter(l.ch) {
		// A lone underscore is punctuation; keywords win over identifiers of
		// the same length, and so does "_".
		if l.ch == '_' && !isIdentPart(l.peek()) {
			return l.fixed(1, UNDERSCORE, startLine, startColumn, startPos)
		}
		for isIdentPart(l.ch) {
			l.read()
		}
		literal := string(l.input[startPos:l.pos])
		return l.finish(LookupIdent(literal), startLine, startColumn, startPos, literal)
	}

	if isDigit(l.ch) {
		return l.readNumber(startLine, startColumn, startPos)
	}

	raw := string(l.ch)
	l.read()
	tok := l.finish(ILLEGAL, startLine, startColumn, startPos, raw)
	l.addError(ErrIllegalRune, "illegal character "+strconv.Quote(raw), tok.Span)
	return tok
}

// either lexes a one- or two-rune operator depending on the following rune.
func (l *Lexer) either(second rune, long, short TokenType, line, column, pos int) Token {
	if l.peek() == second {
		return l.fixed(2, long, line, column, pos)
	}
	return l.fixed(1, short, line, column, pos)
}

func (l *Lexer) fixed(n int, tt TokenType, line, column, pos int) Token {
	for i := 0; i < n; i++ {
		l.read()
	}
	return l.finish(tt, line, column, pos, string(l.input[pos:l.pos]))
}

func (l *Lexer) finish(tt TokenType, line, column, pos int, literal string) Token {
	return Token{
		Type:    tt,
		Literal: literal,
		Raw:     string(l.input[pos:l.pos]),
		Span: Span{
			Filename: l.filename,
			Line:     line,
			Column:   column,
			Start:    pos,
			End:      l.pos,
		},
	}
}

// readNumber lexes -?digits, optionally followed by .digits and then an
// exponent e|E [+-] digits. The exponent is only taken when all of its
// parts are present; otherwise the longest valid prefix is returned.
func (l *Lexer) readNumber(line, column, pos int) Token {
	if l.ch == '-' {
		l.read()
	}
	for isDigit(l.ch) {
		l.read()
	}

	tt := INT
	if l.ch == '.' && isDigit(l.peek()) {
		tt = FLOAT
		l.read()
		for isDigit(l.ch) {
			l.read()
		}

		if (l.ch == 'e' || l.ch == 'E') && (l.peek() == '+' || l.peek() == '-') && isDigit(l.peekAt(2)) {
			l.read()
			l.read()
			for isDigit(l.ch) {
				l.read()
			}
		}
	}

	literal := string(l.input[pos:l.pos])
	return l.finish(tt, line, column, pos, literal)
}

// readString lexes a single- or double-quoted string. The body is taken
// verbatim; the only excluded rune is the opening quote.
func (l *Lexer) readString(line, column, pos int) Token {
	quote := l.ch
	l.read()

	for !l.atEOF() && l.ch != quote {
		l.read()
	}

	if l.atEOF() {
		tok := l.finish(ILLEGAL, line, column, pos, string(l.input[pos:l.pos]))
		l.addError(ErrUnterminatedString, "unterminated string literal", tok.Span)
		l.fatal = true
		return tok
	}

	l.read() // closing quote
	tok := l.finish(STRING, line, column, pos, "")
	tok.Literal = string(l.input[pos+1 : l.pos-1])
	return tok
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return isLetter(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}
