package parser

import (
	"fmt"

	"github.com/semlang/semlang/internal/diag"
	"github.com/semlang/semlang/internal/lexer"
)

// ErrorKind separates grammar violations from well-tokenised but malformed
// constructs.
type ErrorKind int

const (
	// KindSyntax: a grammar rule was violated (missing or unexpected token).
	KindSyntax ErrorKind = iota
	// KindStructural: the tokens parsed, but the construct breaks a shape
	// rule (comprehension arity, alias target form).
	KindStructural
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindStructural:
		return "structural"
	default:
		return "unknown"
	}
}

// ParseError represents a parser error with position information.
type ParseError struct {
	Kind     ErrorKind
	Code     diag.Code
	Message  string
	Expected string
	Found    string
	Span     lexer.Span
	Severity diag.Severity
	Help     string
	// Related points at other source locations involved in the error,
	// such as the brace a missing `}` should close.
	Related []RelatedSpan
	Notes   []string
}

// RelatedSpan is a secondary location attached to a ParseError.
type RelatedSpan struct {
	Span  lexer.Span
	Label string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s error: %s", e.Span, e.Kind, e.Message)
}

// ToDiagnostic converts a parser error into a shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	severity := e.Severity
	if severity == "" {
		severity = diag.SeverityError
	}

	span := toDiagSpan(e.Span)
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: severity,
		Code:     e.Code,
		Message:  e.Message,
		Span:     span,
		Expected: e.Expected,
		Found:    e.Found,
		Help:     e.Help,
	}
	if e.Expected != "" {
		d = d.WithPrimarySpan(span, "expected "+e.Expected)
	} else if len(e.Related) > 0 {
		d = d.WithPrimarySpan(span, "")
	}
	for _, r := range e.Related {
		d = d.WithSecondarySpan(toDiagSpan(r.Span), r.Label)
	}
	for _, note := range e.Notes {
		d = d.WithNote(note)
	}
	return d
}

func toDiagSpan(s lexer.Span) diag.Span {
	return diag.SpanOf(s.Filename, s.Line, s.Column, s.Start, s.End)
}

// emitParseError records a recoverable error without aborting parsing.
// An error repeating the previous one at the same position is dropped, so
// nested constructs cut off by the end of input report it once. Once the
// configured limit is reached a single TOO_MANY_ERRORS entry is appended
// and everything after it is dropped.
func (p *Parser) emitParseError(err ParseError) {
	if p.truncated {
		return
	}

	if err.Span.Filename == "" && p.filename != "" {
		err.Span.Filename = p.filename
	}
	if err.Severity == "" {
		err.Severity = diag.SeverityError
	}
	for i := range err.Related {
		if err.Related[i].Span.Filename == "" {
			err.Related[i].Span.Filename = p.filename
		}
	}

	if n := len(p.errors); n > 0 {
		last := p.errors[n-1]
		if last.Code == err.Code && last.Expected == err.Expected && last.Span.Start == err.Span.Start {
			return
		}
	}

	if p.maxErrors > 0 && len(p.errors)+len(p.lx.Errors) >= p.maxErrors {
		p.truncated = true
		p.errors = append(p.errors, ParseError{
			Kind:     KindSyntax,
			Code:     diag.CodeTooManyErrors,
			Message:  fmt.Sprintf("too many errors (limit %d), further errors suppressed", p.maxErrors),
			Span:     err.Span,
			Severity: diag.SeverityError,
		})
		return
	}

	p.errors = append(p.errors, err)
}

// reportExpected reports that expected was required where found appeared.
func (p *Parser) reportExpected(expected string, found lexer.Token) {
	foundText := lexer.Describe(found)

	help := ""
	if found.Type == lexer.EOF {
		help = "the input ended early; check for a missing `}` or `;`"
	}

	p.emitParseError(ParseError{
		Kind:     KindSyntax,
		Code:     diag.CodeSyntaxExpectedToken,
		Message:  fmt.Sprintf("expected %s, found %s", expected, foundText),
		Expected: expected,
		Found:    foundText,
		Span:     found.Span,
		Help:     help,
	})
}

// reportUnclosed reports a construct that ended at found without the `}`
// matching open.
func (p *Parser) reportUnclosed(open, found lexer.Token, what string) {
	foundText := lexer.Describe(found)
	expected := tokenName(lexer.RBRACE)

	p.emitParseError(ParseError{
		Kind:     KindSyntax,
		Code:     diag.CodeSyntaxExpectedToken,
		Message:  fmt.Sprintf("expected %s to close %s, found %s", expected, what, foundText),
		Expected: expected,
		Found:    foundText,
		Span:     found.Span,
		Related:  []RelatedSpan{{Span: open.Span, Label: "unclosed `{` opened here"}},
	})
}

// reportUnexpected reports a token that no rule accepts at this position.
func (p *Parser) reportUnexpected(tok lexer.Token, context string) {
	foundText := lexer.Describe(tok)

	msg := "unexpected " + foundText
	if context != "" {
		msg = context + ", found " + foundText
	}

	p.emitParseError(ParseError{
		Kind:    KindSyntax,
		Code:    diag.CodeSyntaxUnexpectedToken,
		Message: msg,
		Found:   foundText,
		Span:    tok.Span,
	})
}

func (p *Parser) reportStructural(code diag.Code, msg string, span lexer.Span, help string) {
	p.emitParseError(ParseError{
		Kind:    KindStructural,
		Code:    code,
		Message: msg,
		Span:    span,
		Help:    help,
	})
}

// Errors returns the parser errors in emission order. Lexer errors are not
// included; see Diagnostics.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// Diagnostics merges lexer and parser errors, ordered by source position.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(p.lx.Errors)+len(p.errors))
	for _, err := range p.lx.Errors {
		out = append(out, err.ToDiagnostic())
	}
	for _, err := range p.errors {
		out = append(out, err.ToDiagnostic())
	}
	diag.SortBySpan(out)
	return out
}

// Fatal reports whether the parse was cut short by an error that left no
// synchronisation point (an unterminated string).
func (p *Parser) Fatal() bool {
	return p.lx.Fatal()
}
