package diag

import (
	"fmt"
	"sort"
)

// Stage identifies which front-end phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// LabeledSpan represents a span with an optional label.
type LabeledSpan struct {
	Span  Span   `json:"span"`
	Label string `json:"label,omitempty"`
	Style string `json:"style"` // "primary" or "secondary"
}

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerUnterminatedString Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerIllegalRune        Code = "LEXER_ILLEGAL_RUNE"

	// Syntax errors: a grammar rule was violated.
	CodeSyntaxExpectedToken    Code = "SYNTAX_EXPECTED_TOKEN"
	CodeSyntaxUnexpectedToken  Code = "SYNTAX_UNEXPECTED_TOKEN"
	CodeSyntaxMissingSemicolon Code = "SYNTAX_MISSING_SEMICOLON"
	CodeSyntaxOutOfOrder       Code = "SYNTAX_OUT_OF_ORDER"

	// Structural errors: tokens parsed but the construct is malformed.
	CodeStructuralComprehension Code = "STRUCTURAL_COMPREHENSION"
	CodeStructuralIRI           Code = "STRUCTURAL_IRI"

	// Emitted once when the error limit is reached.
	CodeTooManyErrors Code = "TOO_MANY_ERRORS"
)

// Span represents a location in source code.
type Span struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// SpanOf builds a Span from its parts. Packages that keep their own span
// type use it to avoid importing each other.
func SpanOf(filename string, line, column, start, end int) Span {
	return Span{Filename: filename, Line: line, Column: column, Start: start, End: end}
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a front-end diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage    `json:"stage"`
	Severity Severity `json:"severity"`
	Code     Code     `json:"code,omitempty"`
	Message  string   `json:"message"`
	Span     Span     `json:"span"`
	// Expected and Found are populated for syntax errors.
	Expected     string        `json:"expected,omitempty"`
	Found        string        `json:"found,omitempty"`
	LabeledSpans []LabeledSpan `json:"labels,omitempty"`
	Notes        []string      `json:"notes,omitempty"`
	Help         string        `json:"help,omitempty"`
}

// Error makes a Diagnostic usable as an error value.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message)
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{
		Span:  span,
		Label: label,
		Style: style,
	})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// SortBySpan orders diagnostics by file, then source offset. The sort is
// stable so diagnostics at the same offset keep their emission order.
func SortBySpan(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i].Span, ds[j].Span
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Start < b.Start
	})
}
