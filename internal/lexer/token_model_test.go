package lexer

import (
	"testing"
)

// TestTokenSpan_Basic tests that tokens have correct span information
func TestTokenSpan_Basic(t *testing.T) {
	input := `use x;`

	l := New(input)
	tok := l.NextToken() // USE

	if tok.Span.Line != 1 || tok.Span.Column != 1 {
		t.Fatalf("expected 1:1, got %d:%d", tok.Span.Line, tok.Span.Column)
	}
	if tok.Span.Start != 0 || tok.Span.End != 3 {
		t.Fatalf("expected [0,3), got [%d,%d)", tok.Span.Start, tok.Span.End)
	}

	tok = l.NextToken() // IDENT "x"
	if tok.Span.Column != 5 {
		t.Fatalf("expected column 5, got %d", tok.Span.Column)
	}
	if tok.Span.Start != 4 || tok.Span.End != 5 {
		t.Fatalf("expected [4,5), got [%d,%d)", tok.Span.Start, tok.Span.End)
	}
}

// TestTokenSpan_MultiLine tests span tracking across multiple lines
func TestTokenSpan_MultiLine(t *testing.T) {
	input := "a\n  bb\n\n c"

	l := New(input)
	want := []struct {
		line, column, start, end int
	}{
		{1, 1, 0, 1},
		{2, 3, 4, 6},
		{4, 2, 9, 10},
	}

	for i, w := range want {
		tok := l.NextToken()
		if tok.Span.Line != w.line || tok.Span.Column != w.column {
			t.Fatalf("tokens[%d] - expected %d:%d, got %d:%d", i, w.line, w.column, tok.Span.Line, tok.Span.Column)
		}
		if tok.Span.Start != w.start || tok.Span.End != w.end {
			t.Fatalf("tokens[%d] - expected [%d,%d), got [%d,%d)", i, w.start, w.end, tok.Span.Start, tok.Span.End)
		}
	}

	eof := l.NextToken()
	if eof.Type != EOF {
		t.Fatalf("expected EOF, got %q", eof.Type)
	}
	if eof.Span.Start != len([]rune(input)) {
		t.Fatalf("expected EOF at %d, got %d", len([]rune(input)), eof.Span.Start)
	}
}

func TestTokenSpan_RuneOffsets(t *testing.T) {
	input := `"é" x`

	l := New(input)
	str := l.NextToken()
	if str.Span.End != 3 {
		t.Fatalf("expected string to end at rune 3, got %d", str.Span.End)
	}
	x := l.NextToken()
	if x.Span.Start != 4 || x.Span.Column != 5 {
		t.Fatalf("expected x at rune 4 column 5, got %d column %d", x.Span.Start, x.Span.Column)
	}
}

func TestTokenSpan_Filename(t *testing.T) {
	l := New("x")
	l.SetFilename("geo.sem")

	tok := l.NextToken()
	if tok.Span.Filename != "geo.sem" {
		t.Fatalf("expected filename geo.sem, got %q", tok.Span.Filename)
	}
	if got := tok.Span.String(); got != "geo.sem:1:1" {
		t.Fatalf("expected geo.sem:1:1, got %q", got)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Type: EOF}, "end of input"},
		{Token{Type: IDENT, Raw: "x"}, "`x`"},
		{Token{Type: STRING, Raw: `"s"`}, `string "s"`},
		{Token{Type: SEMICOLON, Raw: ";"}, "`;`"},
		{Token{Type: SEMICOLON}, "`;`"},
	}

	for _, tt := range tests {
		if got := Describe(tt.tok); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.tok, got, tt.want)
		}
	}
}
