package sparql

import (
	"sort"
	"strings"

	"github.com/Vincent-Morcilla/buildingdata/graph"
	"github.com/Vincent-Morcilla/buildingdata/vocabulary"
)

// Row is one solution: variable name to bound term. Variables the store could
// not bind are absent.
type Row map[string]graph.Term

// Solutions is an ordered query result: one Row per solution, with Vars
// holding the projected variables in projection order.
type Solutions struct {
	Vars []string
	Rows []Row
}

// Table is the tabular projection of a result: one column per projected
// variable, one row per solution. Cells hold term values; unbound cells are
// empty strings.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Exec parses and executes a query against a store.
func Exec(text string, st *graph.Store) (*Solutions, error) {
	q, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return q.Exec(st)
}

// Exec executes the query against a store. Execution is a straightforward
// nested-loop join over the basic graph patterns, in query order; dataset
// graphs are small enough that no planning is warranted.
func (q *Query) Exec(st *graph.Store) (*Solutions, error) {
	bindings := []Row{{}}

	for _, pat := range q.patterns {
		var next []Row
		for _, b := range bindings {
			s := resolve(pat.s, b)
			p := resolve(pat.p, b)
			o := resolve(pat.o, b)

			for _, tr := range st.Match(s, p, o) {
				if nb, ok := extend(b, pat, tr); ok {
					next = append(next, nb)
				}
			}
		}
		bindings = next
		if len(bindings) == 0 {
			break
		}
	}

	bindings = q.applyFilters(bindings)

	vars := q.vars
	if q.star {
		vars = q.varOrder
	}

	sols := &Solutions{Vars: vars, Rows: project(bindings, vars)}
	if q.distinct {
		sols.Rows = distinctRows(sols.Rows, vars)
	}
	if len(q.orderBy) > 0 {
		orderRows(sols.Rows, q.orderBy)
	}
	return sols, nil
}

// resolve turns a pattern position into a concrete match term: bound
// variables and fixed terms match exactly, unbound variables are wildcards.
func resolve(pt patternTerm, b Row) *graph.Term {
	if !pt.isVar {
		t := pt.term
		return &t
	}
	if bound, ok := b[pt.name]; ok {
		return &bound
	}
	return nil
}

// extend merges a matched triple into a binding, rejecting the match when a
// variable is already bound to a different term.
func extend(b Row, pat pattern, tr graph.Triple) (Row, bool) {
	nb := make(Row, len(b)+3)
	for k, v := range b {
		nb[k] = v
	}

	for _, pos := range []struct {
		pt   patternTerm
		term graph.Term
	}{
		{pat.s, tr.Subject},
		{pat.p, tr.Predicate},
		{pat.o, tr.Object},
	} {
		if !pos.pt.isVar {
			continue
		}
		if prev, ok := nb[pos.pt.name]; ok {
			if prev != pos.term {
				return nil, false
			}
			continue
		}
		nb[pos.pt.name] = pos.term
	}
	return nb, true
}

func (q *Query) applyFilters(bindings []Row) []Row {
	if len(q.filters) == 0 {
		return bindings
	}

	var out []Row
	for _, b := range bindings {
		keep := true
		for _, f := range q.filters {
			bound, ok := b[f.variable]
			if !ok {
				keep = false
				break
			}
			// Filter literals compare on value, so "..." in a FILTER can
			// name an IRI's full value as well as a plain literal
			equal := bound.Value == f.value.Value &&
				(bound.Kind == f.value.Kind || f.value.IsLiteral())
			if (f.op == opEqual) != equal {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, b)
		}
	}
	return out
}

func project(bindings []Row, vars []string) []Row {
	out := make([]Row, 0, len(bindings))
	for _, b := range bindings {
		row := make(Row, len(vars))
		for _, v := range vars {
			if t, ok := b[v]; ok {
				row[v] = t
			}
		}
		out = append(out, row)
	}
	return out
}

func distinctRows(rows []Row, vars []string) []Row {
	seen := make(map[string]struct{}, len(rows))
	out := rows[:0]
	for _, r := range rows {
		var sb strings.Builder
		for _, v := range vars {
			t := r[v]
			sb.WriteString(t.Kind.String())
			sb.WriteByte('\x1f')
			sb.WriteString(t.Value)
			sb.WriteByte('\x1e')
		}
		key := sb.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

func orderRows(rows []Row, by []string) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, v := range by {
			a, b := rows[i][v].Value, rows[j][v].Value
			if a != b {
				return a < b
			}
		}
		return false
	})
}

// Len returns the number of solutions.
func (s *Solutions) Len() int {
	return len(s.Rows)
}

// Defrag returns a copy of the result with every IRI value rewritten to its
// trailing local name. Literals are left untouched.
func (s *Solutions) Defrag() *Solutions {
	out := &Solutions{Vars: s.Vars, Rows: make([]Row, len(s.Rows))}
	for i, r := range s.Rows {
		nr := make(Row, len(r))
		for k, t := range r {
			if t.IsIRI() {
				t.Value = vocabulary.LocalName(t.Value)
			}
			nr[k] = t
		}
		out.Rows[i] = nr
	}
	return out
}

// Table flattens the result to its tabular projection. Column order equals
// the query's projection order.
func (s *Solutions) Table() *Table {
	t := &Table{
		Columns: append([]string(nil), s.Vars...),
		Rows:    make([][]string, len(s.Rows)),
	}
	for i, r := range s.Rows {
		row := make([]string, len(s.Vars))
		for j, v := range s.Vars {
			row[j] = r[v].Value
		}
		t.Rows[i] = row
	}
	return t
}

// Column returns the values of one column. The second return is false when
// the variable was not projected.
func (t *Table) Column(name string) ([]string, bool) {
	for j, c := range t.Columns {
		if c != name {
			continue
		}
		out := make([]string, len(t.Rows))
		for i, row := range t.Rows {
			out[i] = row[j]
		}
		return out, true
	}
	return nil, false
}
