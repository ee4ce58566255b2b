package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vincent-Morcilla/buildingdata/errors"
	"github.com/Vincent-Morcilla/buildingdata/graph"
)

const modelDoc = `
@prefix brick: <https://brickschema.org/schema/Brick#> .
@prefix ref:   <https://brickschema.org/schema/Brick/ref#> .
@prefix bldg:  <http://example.org/building/B#> .
@prefix rdfs:  <http://www.w3.org/2000/01/rdf-schema#> .

bldg:AHU1 a brick:AHU ;
    rdfs:label "Air handler 1" ;
    brick:hasPoint bldg:AHU1.SAT ;
    brick:feeds bldg:VAV2 .

bldg:AHU1.SAT a brick:Air_Temperature_Sensor ;
    ref:hasTimeseriesId "s1" .

bldg:VAV2 a brick:VAV ;
    brick:hasPoint bldg:VAV2.DPR ;
    brick:hasPoint bldg:VAV2.ZNT .

bldg:VAV2.DPR a brick:Damper_Position_Sensor ;
    ref:hasTimeseriesId "s2" .

bldg:VAV2.ZNT a brick:Air_Temperature_Sensor ;
    ref:hasTimeseriesId "s3" .
`

func buildModel(t *testing.T) *graph.Store {
	t.Helper()
	st, err := graph.DecodeString(modelDoc)
	require.NoError(t, err)
	return st
}

func TestSelectByClass(t *testing.T) {
	st := buildModel(t)

	sols, err := Exec(`
		SELECT ?point ?id WHERE {
			?point a brick:Air_Temperature_Sensor .
			?point ref:hasTimeseriesId ?id .
		} ORDER BY ?id`, st)
	require.NoError(t, err)

	assert.Equal(t, []string{"point", "id"}, sols.Vars)
	require.Equal(t, 2, sols.Len())
	assert.Equal(t, graph.Literal("s1"), sols.Rows[0]["id"])
	assert.Equal(t, graph.IRI("http://example.org/building/B#AHU1.SAT"), sols.Rows[0]["point"])
	assert.Equal(t, graph.Literal("s3"), sols.Rows[1]["id"])
}

func TestSelectStar(t *testing.T) {
	st := buildModel(t)

	sols, err := Exec(`
		PREFIX bldg: <http://example.org/building/B#>
		SELECT * WHERE {
			<http://example.org/building/B#AHU1> brick:feeds ?vav .
			?vav brick:hasPoint ?point .
		} ORDER BY ?point`, st)
	require.NoError(t, err)

	// Star projects every variable in first-appearance order
	assert.Equal(t, []string{"vav", "point"}, sols.Vars)
	require.Equal(t, 2, sols.Len())
	assert.Equal(t, "http://example.org/building/B#VAV2.DPR", sols.Rows[0]["point"].Value)
}

func TestJoinConsistency(t *testing.T) {
	st := buildModel(t)

	// ?x appears twice; bindings must stay consistent across patterns
	sols, err := Exec(`
		SELECT ?x WHERE {
			?x a brick:VAV .
			?x brick:hasPoint ?p .
			?p a brick:Damper_Position_Sensor .
		}`, st)
	require.NoError(t, err)

	require.Equal(t, 1, sols.Len())
	assert.Equal(t, "http://example.org/building/B#VAV2", sols.Rows[0]["x"].Value)
}

func TestDistinct(t *testing.T) {
	st := buildModel(t)

	without, err := Exec(`SELECT ?x WHERE { ?x brick:hasPoint ?p . }`, st)
	require.NoError(t, err)
	assert.Equal(t, 3, without.Len())

	with, err := Exec(`SELECT DISTINCT ?x WHERE { ?x brick:hasPoint ?p . } ORDER BY ?x`, st)
	require.NoError(t, err)
	require.Equal(t, 2, with.Len())
	assert.Equal(t, "http://example.org/building/B#AHU1", with.Rows[0]["x"].Value)
	assert.Equal(t, "http://example.org/building/B#VAV2", with.Rows[1]["x"].Value)
}

func TestFilter(t *testing.T) {
	st := buildModel(t)

	sols, err := Exec(`
		SELECT ?point ?id WHERE {
			?point ref:hasTimeseriesId ?id .
			FILTER(?id != "s2")
		} ORDER BY ?id`, st)
	require.NoError(t, err)

	require.Equal(t, 2, sols.Len())
	assert.Equal(t, "s1", sols.Rows[0]["id"].Value)
	assert.Equal(t, "s3", sols.Rows[1]["id"].Value)

	sols, err = Exec(`
		SELECT ?point WHERE {
			?point ref:hasTimeseriesId ?id .
			FILTER(?id = "s2")
		}`, st)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())
	assert.Equal(t, "http://example.org/building/B#VAV2.DPR", sols.Rows[0]["point"].Value)
}

func TestNoSolutions(t *testing.T) {
	st := buildModel(t)

	sols, err := Exec(`SELECT ?x WHERE { ?x a brick:Chiller . }`, st)
	require.NoError(t, err)
	assert.Equal(t, 0, sols.Len())
	assert.Empty(t, sols.Table().Rows)
}

func TestDefrag(t *testing.T) {
	st := graph.NewStore()
	st.Add(graph.Triple{
		Subject:   graph.IRI("http://example.org/site/X#Y.Z"),
		Predicate: graph.IRI("http://www.w3.org/2000/01/rdf-schema#label"),
		Object:    graph.Literal("http://still.a/literal#untouched"),
	})

	sols, err := Exec(`SELECT ?s ?o WHERE { ?s rdfs:label ?o . }`, st)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())

	defragged := sols.Defrag()

	// IRI keeps only the suffix after the last '#'
	assert.Equal(t, "Y.Z", defragged.Rows[0]["s"].Value)
	assert.True(t, defragged.Rows[0]["s"].IsIRI())

	// Literals are untouched even when they look like URIs
	assert.Equal(t, "http://still.a/literal#untouched", defragged.Rows[0]["o"].Value)

	// The original result is not mutated
	assert.Equal(t, "http://example.org/site/X#Y.Z", sols.Rows[0]["s"].Value)
}

func TestTable(t *testing.T) {
	st := buildModel(t)

	sols, err := Exec(`
		SELECT ?point ?id WHERE {
			?point ref:hasTimeseriesId ?id .
		} ORDER BY ?id`, st)
	require.NoError(t, err)

	table := sols.Table()

	// Column order equals projection order
	assert.Equal(t, []string{"point", "id"}, table.Columns)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "s1", table.Rows[0][1])

	ids, ok := table.Column("id")
	require.True(t, ok)
	assert.Equal(t, []string{"s1", "s2", "s3"}, ids)

	_, ok = table.Column("nope")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"not a select", "ASK { ?s ?p ?o }"},
		{"missing where", "SELECT ?s ?s2"},
		{"unterminated block", "SELECT ?s WHERE { ?s ?p ?o ."},
		{"unterminated iri", "SELECT ?s WHERE { ?s <http://unterminated ?o . }"},
		{"unterminated literal", `SELECT ?s WHERE { ?s ?p "unterminated . }`},
		{"unknown prefix", "SELECT ?s WHERE { ?s a nope:Thing . }"},
		{"filter against variable", "SELECT ?s WHERE { ?s ?p ?o . FILTER(?o != ?s) }"},
		{"order by nothing", "SELECT ?s WHERE { ?s ?p ?o . } ORDER BY"},
		{"trailing garbage", "SELECT ?s WHERE { ?s ?p ?o . } LIMIT 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
			assert.ErrorIs(t, err, errors.ErrBadQuery)
		})
	}
}

func TestPrefixDeclarationOverridesDefault(t *testing.T) {
	st := graph.NewStore()
	st.Add(graph.Triple{
		Subject:   graph.IRI("http://other.example/ns#Thing"),
		Predicate: graph.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"),
		Object:    graph.IRI("http://other.example/ns#Class"),
	})

	sols, err := Exec(`
		PREFIX brick: <http://other.example/ns#>
		SELECT ?s WHERE { ?s a brick:Class . }`, st)
	require.NoError(t, err)
	require.Equal(t, 1, sols.Len())
	assert.Equal(t, "http://other.example/ns#Thing", sols.Rows[0]["s"].Value)
}
