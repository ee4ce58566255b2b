package graph

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knakk/rdf"

	"github.com/Vincent-Morcilla/buildingdata/errors"
)

// Store is an in-memory triple store with per-position indexes. It is not
// safe for concurrent mutation; the dataset loads it once and reads after.
type Store struct {
	triples []Triple

	bySubject   map[string][]int
	byPredicate map[string][]int
	byObject    map[string][]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		bySubject:   make(map[string][]int),
		byPredicate: make(map[string][]int),
		byObject:    make(map[string][]int),
	}
}

// Decode parses a Turtle document into a new store.
func Decode(r io.Reader) (*Store, error) {
	dec := rdf.NewTripleDecoder(r, rdf.Turtle)
	parsed, err := dec.DecodeAll()
	if err != nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %v", errors.ErrGraphUnparsable, err),
			"graph", "Decode", "parse turtle")
	}

	st := NewStore()
	for _, tr := range parsed {
		st.Add(Triple{
			Subject:   fromRDF(tr.Subj),
			Predicate: fromRDF(tr.Pred),
			Object:    fromRDF(tr.Obj),
		})
	}
	return st, nil
}

// DecodeFile parses a Turtle document from disk into a new store.
func DecodeFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: %s", errors.ErrGraphNotFound, path),
				"graph", "DecodeFile", "open graph file")
		}
		return nil, errors.WrapFatal(err, "graph", "DecodeFile", "open graph file")
	}
	defer f.Close()

	return Decode(f)
}

// DecodeString parses a Turtle document held in memory. Mostly useful for
// tests and the bundled schema snapshot.
func DecodeString(doc string) (*Store, error) {
	return Decode(strings.NewReader(doc))
}

// fromRDF converts an engine term to the package's own representation. Only
// the lexical form of literals is kept; Brick models do not round-trip
// datatypes through this layer.
func fromRDF(t rdf.Term) Term {
	switch t.Type() {
	case rdf.TermIRI:
		return IRI(t.String())
	case rdf.TermBlank:
		return Blank(strings.TrimPrefix(t.String(), "_:"))
	default:
		return Literal(t.String())
	}
}

// Add appends a triple and indexes it. Duplicate triples are kept; RDF graph
// semantics deduplicate at query time where it matters.
func (st *Store) Add(tr Triple) {
	i := len(st.triples)
	st.triples = append(st.triples, tr)
	st.bySubject[tr.Subject.key()] = append(st.bySubject[tr.Subject.key()], i)
	st.byPredicate[tr.Predicate.key()] = append(st.byPredicate[tr.Predicate.key()], i)
	st.byObject[tr.Object.key()] = append(st.byObject[tr.Object.key()], i)
}

// Len returns the number of triples held.
func (st *Store) Len() int {
	return len(st.triples)
}

// Triples returns all triples in load order. The returned slice is the
// store's own backing array; callers must treat it as read-only.
func (st *Store) Triples() []Triple {
	return st.triples
}

// Match returns all triples matching the given pattern in load order. A nil
// position is a wildcard. Match with three wildcards is equivalent to
// Triples.
func (st *Store) Match(s, p, o *Term) []Triple {
	candidates := st.candidates(s, p, o)

	var out []Triple
	for _, i := range candidates {
		tr := st.triples[i]
		if s != nil && tr.Subject != *s {
			continue
		}
		if p != nil && tr.Predicate != *p {
			continue
		}
		if o != nil && tr.Object != *o {
			continue
		}
		out = append(out, tr)
	}
	return out
}

// candidates picks the smallest index posting list among the bound positions,
// falling back to a full scan when every position is a wildcard.
func (st *Store) candidates(s, p, o *Term) []int {
	best := -1
	var list []int

	consider := func(idx map[string][]int, t *Term) {
		if t == nil {
			return
		}
		posting := idx[t.key()]
		if best < 0 || len(posting) < best {
			best = len(posting)
			list = posting
		}
	}

	consider(st.bySubject, s)
	consider(st.byPredicate, p)
	consider(st.byObject, o)

	if best < 0 {
		all := make([]int, len(st.triples))
		for i := range all {
			all[i] = i
		}
		return all
	}
	return list
}

// Subjects returns the distinct subjects of all triples, in first-seen order.
func (st *Store) Subjects() []Term {
	seen := make(map[string]struct{})
	var out []Term
	for _, tr := range st.triples {
		k := tr.Subject.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, tr.Subject)
	}
	return out
}
