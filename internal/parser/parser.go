package parser

import (
	"github.com/rs/zerolog"

	"github.com/semlang/semlang/internal/ast"
	"github.com/semlang/semlang/internal/diag"
	"github.com/semlang/semlang/internal/lexer"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

type Option func(*options)

type options struct {
	filename  string
	logger    zerolog.Logger
	maxErrors int
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithLogger routes recovery traces to logger at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxErrors stops recording diagnostics after n errors. Parsing still
// runs to the end of the input. Zero means no limit.
func WithMaxErrors(n int) Option {
	return func(o *options) {
		o.maxErrors = n
	}
}

// Binary operators bind left-associatively with these powers, loosest
// first. Relational operators bind tighter than the arithmetic ones.
const (
	precedenceLowest = iota
	precedenceDiv
	precedenceMul
	precedenceSub
	precedenceAdd
	precedenceAnd
	precedenceGeq
	precedenceLeq
	precedenceGt
	precedenceLt
	precedencePrefix
)

type binaryInfo struct {
	op         ast.BinaryOperator
	precedence int
}

var binaryOperators = map[lexer.TokenType]binaryInfo{
	lexer.LT:       {ast.LT, precedenceLt},
	lexer.GT:       {ast.GT, precedenceGt},
	lexer.LE:       {ast.LEQ, precedenceLeq},
	lexer.GE:       {ast.GEQ, precedenceGeq},
	lexer.AND:      {ast.AND, precedenceAnd},
	lexer.PLUS:     {ast.ADD, precedenceAdd},
	lexer.MINUS:    {ast.SUB, precedenceSub},
	lexer.ASTERISK: {ast.MUL, precedenceMul},
	lexer.SLASH:    {ast.DIV, precedenceDiv},
}

// Parser is a hand-written recursive-descent parser with a Pratt loop for
// binary expressions. Every parse function returns its finished AST node,
// so the tree is built bottom-up as rules complete.
//
// Invariants:
//   - Lookahead: curTok is the token under examination and peekTok the one
//     after it; peekTokenAt reaches further into tokenBuffer for the few
//     constructs that need bounded lookahead (casts, assignments, IRIs).
//     Only nextToken moves the window.
//   - Position: a parse function is entered with curTok on the first token
//     of its construct and returns with curTok on the last one. On failure
//     it reports and returns nil; the enclosing unit (statement, parameter,
//     class member, declaration) resynchronises and inserts a placeholder.
//   - Diagnostics: errors is append-only and ordered by emission.
//
// A Parser is single-use and not safe for concurrent use. Independent
// parsers share nothing and may run in parallel.
type Parser struct {
	lx          *lexer.Lexer
	curTok      lexer.Token
	peekTok     lexer.Token
	tokenBuffer []lexer.Token

	errors    []ParseError
	maxErrors int
	truncated bool

	filename string
	log      zerolog.Logger

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser initialised with the provided source input.
func New(input string, opts ...Option) *Parser {
	cfg := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{
		lx:        lexer.New(input),
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixParseFn),
		filename:  cfg.filename,
		log:       cfg.logger,
		maxErrors: cfg.maxErrors,
	}

	if cfg.filename != "" {
		p.lx.SetFilename(cfg.filename)
	}

	p.registerPrefix(lexer.IDENT, p.parseNameExpr)
	p.registerPrefix(lexer.INT, p.parseIntLiteral)
	p.registerPrefix(lexer.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.BANG, p.parseUnaryExpr)
	p.registerPrefix(lexer.MINUS, p.parseUnaryExpr)
	p.registerPrefix(lexer.LPAREN, p.parseParenOrCast)
	p.registerPrefix(lexer.LBRACKET, p.parseListExpr)
	p.registerPrefix(lexer.NEW, p.parseNewInstance)

	for tt := range binaryOperators {
		p.registerInfix(tt, p.parseInfixExpr)
	}

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

// Parse parses a complete source unit. The program is returned even when
// diagnostics are present; failed regions appear as Bad* placeholders.
func Parse(src string, opts ...Option) (*ast.Program, []diag.Diagnostic) {
	p := New(src, opts...)
	prog := p.ParseProgram()
	return prog, p.Diagnostics()
}

// ParseExpr parses src as a single expression.
func ParseExpr(src string, opts ...Option) (ast.Expr, []diag.Diagnostic) {
	p := New(src, opts...)
	start := p.curTok

	expr := p.parseExpr()
	if expr == nil {
		expr = ast.NewBadExpr(mergeSpan(start.Span, p.curTok.Span))
	} else {
		p.expectEnd()
	}

	return expr, p.Diagnostics()
}

// ParseIRI parses src as a QName or an absolute IRI.
func ParseIRI(src string, opts ...Option) (ast.Iri, []diag.Diagnostic) {
	p := New(src, opts...)

	iri := p.parseIRI()
	if iri != nil {
		p.expectEnd()
	}

	return iri, p.Diagnostics()
}

func (p *Parser) expectEnd() {
	if p.peekTok.Type != lexer.EOF {
		p.reportUnexpected(p.peekTok, "expected end of input")
	}
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixFns[tokenType] = fn
}
