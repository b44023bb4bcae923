package lexer

import (
	"testing"

	"github.com/semlang/semlang/internal/diag"
)

func TestIllegalRuneIsSkippedAndRecorded(t *testing.T) {
	l := New("a @ b $ c")

	var kinds []TokenType
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Type)
		if tok.Type == EOF {
			break
		}
	}

	want := []TokenType{IDENT, ILLEGAL, IDENT, ILLEGAL, IDENT, EOF}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(kinds), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("tokens[%d] - expected %q, got %q", i, want[i], kinds[i])
		}
	}

	if len(l.Errors) != 2 {
		t.Fatalf("expected 2 lexer errors, got %d", len(l.Errors))
	}
	if l.Errors[0].Kind != ErrIllegalRune || l.Errors[0].Span.Start != 2 {
		t.Fatalf("unexpected first error: %+v", l.Errors[0])
	}
	if l.Errors[1].Message != `illegal character "$"` {
		t.Fatalf("unexpected message %q", l.Errors[1].Message)
	}
	if l.Fatal() {
		t.Fatalf("illegal runes must not be fatal")
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	l := New(`x = "abc`)

	l.NextToken()
	l.NextToken()
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %q", tok.Type)
	}
	if tok.Raw != `"abc` {
		t.Fatalf("expected raw %q, got %q", `"abc`, tok.Raw)
	}
	if next := l.NextToken(); next.Type != EOF {
		t.Fatalf("expected EOF after unterminated string, got %q", next.Type)
	}

	if !l.Fatal() {
		t.Fatalf("expected fatal lexer state")
	}
	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrUnterminatedString {
		t.Fatalf("expected one unterminated-string error, got %+v", l.Errors)
	}
}

func TestStringMayContainNewlines(t *testing.T) {
	l := New("'a\nb' x")

	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "a\nb" {
		t.Fatalf("expected multi-line string, got %q %q", tok.Type, tok.Literal)
	}
	x := l.NextToken()
	if x.Span.Line != 2 || x.Span.Column != 4 {
		t.Fatalf("expected x at 2:4, got %d:%d", x.Span.Line, x.Span.Column)
	}
}

func TestLexerError_ToDiagnostic(t *testing.T) {
	err := LexerError{
		Kind:    ErrIllegalRune,
		Message: `illegal character "@"`,
		Span: Span{
			Filename: "a.sem",
			Line:     2,
			Column:   5,
			Start:    4,
			End:      5,
		},
	}

	diagnostic := err.ToDiagnostic()

	if diagnostic.Stage != diag.StageLexer {
		t.Fatalf("expected stage %q, got %q", diag.StageLexer, diagnostic.Stage)
	}
	if diagnostic.Severity != diag.SeverityError {
		t.Fatalf("expected severity %q, got %q", diag.SeverityError, diagnostic.Severity)
	}
	if diagnostic.Code != diag.CodeLexerIllegalRune {
		t.Fatalf("expected code %q, got %q", diag.CodeLexerIllegalRune, diagnostic.Code)
	}
	if diagnostic.Message != err.Message {
		t.Fatalf("expected message %q, got %q", err.Message, diagnostic.Message)
	}

	wantSpan := diag.Span{
		Filename: "a.sem",
		Line:     2,
		Column:   5,
		Start:    4,
		End:      5,
	}
	if diagnostic.Span != wantSpan {
		t.Fatalf("expected span %+v, got %+v", wantSpan, diagnostic.Span)
	}

	if got := err.Error(); got != `a.sem:2:5: illegal character "@"` {
		t.Fatalf("unexpected Error() %q", got)
	}
}
