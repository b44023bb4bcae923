package ast

import (
	"strings"

	"github.com/semlang/semlang/internal/lexer"
)

// Iri is either a QName or an AbsoluteIri. Only the lexical structure is
// recorded; nothing is resolved or fetched.
type Iri interface {
	Node
	iriNode()
	String() string
}

// QName represents `prefix:fragment` or `:fragment`.
type QName struct {
	Prefix   *Ident // nil when omitted
	Fragment *Ident
	span     lexer.Span
}

// Span returns the QName span.
func (q *QName) Span() lexer.Span { return q.span }

// NewQName constructs a qualified-name node.
func NewQName(prefix, fragment *Ident, span lexer.Span) *QName {
	return &QName{Prefix: prefix, Fragment: fragment, span: span}
}

func (*QName) iriNode() {}

func (q *QName) String() string {
	prefix := ""
	if q.Prefix != nil {
		prefix = q.Prefix.Name
	}
	return prefix + ":" + q.Fragment.Name
}

// AbsoluteIri represents `scheme://a.b.c/p/q/#frag`.
type AbsoluteIri struct {
	Scheme        *Ident
	Domain        []*Ident
	Path          []*Ident
	TrailingSlash bool
	// Fragment is nil without '#'; a '#' with nothing after it yields an
	// Ident with an empty Name.
	Fragment *Ident
	span     lexer.Span
}

// Span returns the IRI span.
func (a *AbsoluteIri) Span() lexer.Span { return a.span }

// NewAbsoluteIri constructs an absolute IRI node.
func NewAbsoluteIri(scheme *Ident, domain, path []*Ident, trailingSlash bool, fragment *Ident, span lexer.Span) *AbsoluteIri {
	return &AbsoluteIri{
		Scheme:        scheme,
		Domain:        domain,
		Path:          path,
		TrailingSlash: trailingSlash,
		Fragment:      fragment,
		span:          span,
	}
}

func (*AbsoluteIri) iriNode() {}

// HasFragment reports whether the IRI ends in a '#' section.
func (a *AbsoluteIri) HasFragment() bool {
	return a.Fragment != nil
}

func (a *AbsoluteIri) String() string {
	var b strings.Builder
	b.WriteString(a.Scheme.Name)
	b.WriteString("://")
	b.WriteString(joinIdents(a.Domain, "."))
	for _, seg := range a.Path {
		b.WriteByte('/')
		b.WriteString(seg.Name)
	}
	if a.TrailingSlash {
		b.WriteByte('/')
	}
	if a.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(a.Fragment.Name)
	}
	return b.String()
}

func joinIdents(ids []*Ident, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.Name
	}
	return strings.Join(parts, sep)
}
