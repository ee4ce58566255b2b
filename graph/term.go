package graph

import "fmt"

// TermKind distinguishes the three kinds of RDF term a triple position can
// hold.
type TermKind int

const (
	// KindIRI is a full IRI reference
	KindIRI TermKind = iota
	// KindLiteral is a literal value (the lexical form, datatype dropped)
	KindLiteral
	// KindBlank is a blank node identifier
	KindBlank
)

// String returns the string representation of TermKind
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindLiteral:
		return "literal"
	case KindBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Term is one position of a triple. Value holds the IRI string, the literal's
// lexical form, or the blank node label depending on Kind.
type Term struct {
	Kind  TermKind
	Value string
}

// IRI constructs an IRI term.
func IRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

// Literal constructs a literal term.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// Blank constructs a blank node term.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// IsIRI reports whether the term is an IRI.
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool {
	return t.Kind == KindLiteral
}

// String returns the term's value.
func (t Term) String() string {
	return t.Value
}

// key returns an index key that cannot collide across kinds: an IRI and a
// literal with the same characters must index separately.
func (t Term) key() string {
	return fmt.Sprintf("%d|%s", t.Kind, t.Value)
}

// Triple is one (subject, predicate, object) statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// String renders the triple in an N-Triples-like form for logs and test
// failure messages.
func (tr Triple) String() string {
	return fmt.Sprintf("%s %s %s .", render(tr.Subject), render(tr.Predicate), render(tr.Object))
}

func render(t Term) string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	default:
		return fmt.Sprintf("%q", t.Value)
	}
}
