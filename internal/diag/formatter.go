package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Formatter formats diagnostics in a Rust-style format with source code snippets.
type Formatter struct {
	out         io.Writer
	sourceCache map[string]string // Cache of source text by filename
}

// NewFormatter creates a formatter that writes to out.
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{
		out:         out,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers in-memory source text for filename so that snippets
// can be rendered without touching the file system.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource returns the source for a file, reading it on first use.
func (f *Formatter) LoadSource(filename string) (string, error) {
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	if filename == "" {
		return "", fmt.Errorf("no source registered for anonymous input")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// FormatAll formats every diagnostic in order.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	for _, d := range ds {
		f.Format(d)
	}
}

// Format formats and prints a diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	spans := f.collectSpans(d)
	if len(spans) == 0 {
		f.formatSimple(d)
		return
	}

	src, err := f.LoadSource(d.Span.Filename)
	if err != nil {
		f.formatSimple(d)
		return
	}

	f.printHeader(d)

	filename := d.Span.Filename
	if filename == "" {
		filename = "<input>"
	}
	f.printFileSpans(filename, src, spans)
	f.printHelp(d)
}

func (f *Formatter) collectSpans(d Diagnostic) []LabeledSpan {
	if len(d.LabeledSpans) > 0 {
		return d.LabeledSpans
	}
	if d.Span.IsValid() {
		return []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	return nil
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
}

// printFileSpans prints source lines with underlines for every span.
// Spans are rune offsets, so the source is split into rune lines.
func (f *Formatter) printFileSpans(filename string, src string, spans []LabeledSpan) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Span.Line != spans[j].Span.Line {
			return spans[i].Span.Line < spans[j].Span.Line
		}
		return spans[i].Span.Column < spans[j].Span.Column
	})

	lines := strings.Split(src, "\n")
	maxLine := len(lines)

	spansByLine := make(map[int][]LabeledSpan)
	for _, span := range spans {
		line := span.Span.Line
		if line > 0 && line <= maxLine {
			spansByLine[line] = append(spansByLine[line], span)
		}
	}
	if len(spansByLine) == 0 {
		return
	}

	startLine := spans[0].Span.Line
	endLine := spans[len(spans)-1].Span.Line
	contextStart := max(1, startLine-1)
	contextEnd := min(maxLine, endLine+1)

	lineNumWidth := len(fmt.Sprintf("%d", contextEnd))
	gutter := strings.Repeat(" ", lineNumWidth)

	fmt.Fprintf(f.out, "  --> %s:%d:%d\n", filename, spans[0].Span.Line, spans[0].Span.Column)
	fmt.Fprintf(f.out, " %s |\n", gutter)

	for lineNum := contextStart; lineNum <= contextEnd; lineNum++ {
		lineContent := []rune(lines[lineNum-1])
		fmt.Fprintf(f.out, " %*d | %s\n", lineNumWidth, lineNum, string(lineContent))

		if lineSpans := spansByLine[lineNum]; len(lineSpans) > 0 {
			f.printUnderlines(gutter, len(lineContent), lineSpans)
		}
	}

	fmt.Fprintf(f.out, " %s |\n", gutter)
}

// printUnderlines marks primary spans with ^ and secondary spans with ~.
func (f *Formatter) printUnderlines(gutter string, width int, spans []LabeledSpan) {
	// One extra column so that spans at end of line (EOF) stay visible.
	underline := []rune(strings.Repeat(" ", width+1))

	mark := func(span LabeledSpan, ch rune, overwrite bool) {
		start := max(0, span.Span.Column-1)
		end := min(len(underline), start+max(1, span.Span.End-span.Span.Start))
		for i := start; i < end; i++ {
			if overwrite || underline[i] == ' ' {
				underline[i] = ch
			}
		}
	}

	var labels []string
	for _, span := range spans {
		if span.Style == "primary" {
			mark(span, '^', true)
		}
	}
	for _, span := range spans {
		if span.Style == "secondary" {
			mark(span, '~', false)
		}
		if span.Label != "" {
			labels = append(labels, span.Label)
		}
	}

	line := strings.TrimRight(string(underline), " ")
	if line == "" {
		return
	}
	if len(labels) > 0 {
		line += " " + strings.Join(labels, "; ")
	}
	fmt.Fprintf(f.out, " %s | %s\n", gutter, line)
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "help: %s\n", d.Help)
	}
}

// formatSimple formats a diagnostic without source code (fallback).
func (f *Formatter) formatSimple(d Diagnostic) {
	f.printHeader(d)
	if d.Span.IsValid() {
		fmt.Fprintf(f.out, "  --> %s\n", d.Span.String())
	}
	f.printHelp(d)
}

// WriteJSON encodes diagnostics as a JSON array, one object per diagnostic.
func WriteJSON(w io.Writer, ds []Diagnostic) error {
	if ds == nil {
		ds = []Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}
