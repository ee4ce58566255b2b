package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermKinds(t *testing.T) {
	iri := IRI("https://brickschema.org/schema/Brick#AHU")
	lit := Literal("21.5")
	blank := Blank("b0")

	assert.True(t, iri.IsIRI())
	assert.False(t, iri.IsLiteral())
	assert.True(t, lit.IsLiteral())
	assert.False(t, blank.IsIRI())

	assert.Equal(t, "iri", iri.Kind.String())
	assert.Equal(t, "literal", lit.Kind.String())
	assert.Equal(t, "blank", blank.Kind.String())
	assert.Equal(t, "unknown", TermKind(9).String())
}

func TestTripleString(t *testing.T) {
	tr := Triple{
		Subject:   IRI("http://example.org/a"),
		Predicate: IRI("http://example.org/p"),
		Object:    Literal("v"),
	}
	assert.Equal(t, `<http://example.org/a> <http://example.org/p> "v" .`, tr.String())

	blank := Triple{Subject: Blank("b0"), Predicate: IRI("p"), Object: IRI("o")}
	assert.Equal(t, `_:b0 <p> <o> .`, blank.String())
}
