package lexer

import (
	"testing"
)

type expectedToken struct {
	expectedType    TokenType
	expectedLiteral string
}

func assertTokens(t *testing.T, input string, tests []expectedToken) {
	t.Helper()

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}

	if len(l.Errors) != 0 {
		t.Fatalf("unexpected lexer errors: %v", l.Errors)
	}
}

func TestNextToken_Basic(t *testing.T) {
	assertTokens(t, `x: int = 10;`, []expectedToken{
		{IDENT, "x"},
		{COLON, ":"},
		{IDENT, "int"},
		{ASSIGN, "="},
		{INT, "10"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestNextToken_Keywords(t *testing.T) {
	input := `alias as class else false if list new return use true while with`

	assertTokens(t, input, []expectedToken{
		{ALIAS, "alias"},
		{AS, "as"},
		{CLASS, "class"},
		{ELSE, "else"},
		{FALSE, "false"},
		{IF, "if"},
		{LIST, "list"},
		{NEW, "new"},
		{RETURN, "return"},
		{USE, "use"},
		{TRUE, "true"},
		{WHILE, "while"},
		{WITH, "with"},
		{EOF, ""},
	})
}

func TestNextToken_KeywordPrefixIsIdentifier(t *testing.T) {
	assertTokens(t, `classes iffy newer _ _x x_1`, []expectedToken{
		{IDENT, "classes"},
		{IDENT, "iffy"},
		{IDENT, "newer"},
		{UNDERSCORE, "_"},
		{IDENT, "_x"},
		{IDENT, "x_1"},
		{EOF, ""},
	})
}

func TestNextToken_Punctuation(t *testing.T) {
	input := `& && = | || } ] ) : , / . == <- >= > # => <= < - != ! { [ ( % + ^ ? ; *`

	assertTokens(t, input, []expectedToken{
		{AMPERSAND, "&"},
		{AND, "&&"},
		{ASSIGN, "="},
		{PIPE, "|"},
		{OR, "||"},
		{RBRACE, "}"},
		{RBRACKET, "]"},
		{RPAREN, ")"},
		{COLON, ":"},
		{COMMA, ","},
		{SLASH, "/"},
		{DOT, "."},
		{EQ, "=="},
		{LARROW, "<-"},
		{GE, ">="},
		{GT, ">"},
		{HASH, "#"},
		{FATARROW, "=>"},
		{LE, "<="},
		{LT, "<"},
		{MINUS, "-"},
		{NOT_EQ, "!="},
		{BANG, "!"},
		{LBRACE, "{"},
		{LBRACKET, "["},
		{LPAREN, "("},
		{PERCENT, "%"},
		{PLUS, "+"},
		{CARET, "^"},
		{QUESTION, "?"},
		{SEMICOLON, ";"},
		{ASTERISK, "*"},
		{EOF, ""},
	})
}

func TestNextToken_MaximalMunch(t *testing.T) {
	assertTokens(t, `a<-b<=c<d`, []expectedToken{
		{IDENT, "a"},
		{LARROW, "<-"},
		{IDENT, "b"},
		{LE, "<="},
		{IDENT, "c"},
		{LT, "<"},
		{IDENT, "d"},
		{EOF, ""},
	})
}

func TestNextToken_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  []expectedToken
	}{
		{"42", []expectedToken{{INT, "42"}, {EOF, ""}}},
		{"-7", []expectedToken{{INT, "-7"}, {EOF, ""}}},
		{"3.14", []expectedToken{{FLOAT, "3.14"}, {EOF, ""}}},
		{"-0.5", []expectedToken{{FLOAT, "-0.5"}, {EOF, ""}}},
		{"1.5e+10", []expectedToken{{FLOAT, "1.5e+10"}, {EOF, ""}}},
		{"1.5E-3", []expectedToken{{FLOAT, "1.5E-3"}, {EOF, ""}}},
		// The exponent sign is mandatory; without it the exponent is not part of the literal.
		{"1.5e3", []expectedToken{{FLOAT, "1.5"}, {IDENT, "e3"}, {EOF, ""}}},
		// A fraction needs digits after the dot.
		{"1.x", []expectedToken{{INT, "1"}, {DOT, "."}, {IDENT, "x"}, {EOF, ""}}},
		{"1-2", []expectedToken{{INT, "1"}, {INT, "-2"}, {EOF, ""}}},
		{"1 - 2", []expectedToken{{INT, "1"}, {MINUS, "-"}, {INT, "2"}, {EOF, ""}}},
		{"--2", []expectedToken{{MINUS, "-"}, {INT, "-2"}, {EOF, ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assertTokens(t, tt.input, tt.want)
		})
	}
}

func TestNextToken_Strings(t *testing.T) {
	input := `"double" 'single' "it's" 'say "hi"' ""`

	l := New(input)
	want := []struct {
		literal string
		raw     string
	}{
		{"double", `"double"`},
		{"single", `'single'`},
		{"it's", `"it's"`},
		{`say "hi"`, `'say "hi"'`},
		{"", `""`},
	}

	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != STRING {
			t.Fatalf("tests[%d] - expected STRING, got %q", i, tok.Type)
		}
		if tok.Literal != w.literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, w.literal, tok.Literal)
		}
		if tok.Raw != w.raw {
			t.Fatalf("tests[%d] - raw wrong. expected=%q, got=%q", i, w.raw, tok.Raw)
		}
	}
}

func TestNextToken_AbsoluteIRI(t *testing.T) {
	assertTokens(t, `http://example.org/geo#`, []expectedToken{
		{IDENT, "http"},
		{COLON, ":"},
		{SLASH, "/"},
		{SLASH, "/"},
		{IDENT, "example"},
		{DOT, "."},
		{IDENT, "org"},
		{SLASH, "/"},
		{IDENT, "geo"},
		{HASH, "#"},
		{EOF, ""},
	})
}

func TestNextToken_UnicodeIdentifiers(t *testing.T) {
	assertTokens(t, `größe: int;`, []expectedToken{
		{IDENT, "größe"},
		{COLON, ":"},
		{IDENT, "int"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestTokenize_EndsWithEOF(t *testing.T) {
	toks, errs := Tokenize("use a;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	if toks[len(toks)-1].Type != EOF {
		t.Fatalf("expected last token EOF, got %q", toks[len(toks)-1].Type)
	}
}

func TestTokenizeFile_AttributesSpans(t *testing.T) {
	toks, errs := TokenizeFile("main.sem", "x $")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Span.Filename != "main.sem" {
		t.Fatalf("expected error attributed to main.sem, got %q", errs[0].Span.Filename)
	}
	for _, tok := range toks {
		if tok.Span.Filename != "main.sem" {
			t.Fatalf("token %q not attributed to main.sem: %q", tok.Type, tok.Span.Filename)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	if got := LookupIdent("while"); got != WHILE {
		t.Fatalf("expected WHILE, got %q", got)
	}
	if got := LookupIdent("whilst"); got != IDENT {
		t.Fatalf("expected IDENT, got %q", got)
	}
	if !IsKeyword(LIST) {
		t.Fatalf("expected LIST to be a keyword")
	}
	if IsKeyword(IDENT) {
		t.Fatalf("IDENT is not a keyword")
	}
}
