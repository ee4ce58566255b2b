package sparql

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Vincent-Morcilla/buildingdata/errors"
	"github.com/Vincent-Morcilla/buildingdata/graph"
	"github.com/Vincent-Morcilla/buildingdata/vocabulary"
)

// Query is a parsed SELECT query, ready to execute against any store.
type Query struct {
	distinct bool
	star     bool
	vars     []string // projection, in declaration order
	patterns []pattern
	filters  []filter
	orderBy  []string

	prefixes map[string]string
	varOrder []string // every variable, in first-appearance order
}

// pattern is one triple pattern; each position is either a variable or a
// concrete term.
type pattern struct {
	s, p, o patternTerm
}

type patternTerm struct {
	isVar bool
	name  string     // variable name, without '?'
	term  graph.Term // concrete term when !isVar
}

type filterOp int

const (
	opEqual filterOp = iota
	opNotEqual
)

type filter struct {
	variable string
	op       filterOp
	value    graph.Term
}

// Parse parses a SELECT query. Malformed text returns an ErrBadQuery-classified
// error.
func Parse(text string) (*Query, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, badQuery("Parse", err)
	}

	p := &parser{
		toks: toks,
		q: &Query{
			prefixes: vocabulary.StandardPrefixes(),
		},
	}
	if err := p.parse(); err != nil {
		return nil, badQuery("Parse", err)
	}
	return p.q, nil
}

func badQuery(method string, err error) error {
	return errors.WrapInvalid(
		fmt.Errorf("%w: %v", errors.ErrBadQuery, err),
		"sparql", method, "parse query")
}

// tokens

type tokenKind int

const (
	tokWord tokenKind = iota // keywords, prefixed names, "a"
	tokVar                   // ?name
	tokIRI                   // <...>
	tokLiteral               // "..." or bare number
	tokPunct                 // { } . ( ) = != *
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(text string) ([]token, error) {
	var toks []token
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case r == '<':
			j := i + 1
			for j < len(runes) && runes[j] != '>' {
				if unicode.IsSpace(runes[j]) {
					return nil, fmt.Errorf("whitespace inside IRI at offset %d", i)
				}
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("unterminated IRI at offset %d", i)
			}
			toks = append(toks, token{tokIRI, string(runes[i+1 : j])})
			i = j + 1
		case r == '"':
			j := i + 1
			var sb strings.Builder
			for j < len(runes) && runes[j] != '"' {
				if runes[j] == '\\' && j+1 < len(runes) {
					j++
				}
				sb.WriteRune(runes[j])
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("unterminated literal at offset %d", i)
			}
			toks = append(toks, token{tokLiteral, sb.String()})
			i = j + 1
			// skip any datatype/lang suffix: ^^<...> or @tag
			if i+1 < len(runes) && runes[i] == '^' && runes[i+1] == '^' {
				i += 2
				if i < len(runes) && runes[i] == '<' {
					for i < len(runes) && runes[i] != '>' {
						i++
					}
					i++
				} else {
					for i < len(runes) && !unicode.IsSpace(runes[i]) {
						i++
					}
				}
			} else if i < len(runes) && runes[i] == '@' {
				for i < len(runes) && !unicode.IsSpace(runes[i]) {
					i++
				}
			}
		case r == '?' || r == '$':
			j := i + 1
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			if j == i+1 {
				return nil, fmt.Errorf("empty variable name at offset %d", i)
			}
			toks = append(toks, token{tokVar, string(runes[i+1 : j])})
			i = j
		case r == '!':
			if i+1 < len(runes) && runes[i+1] == '=' {
				toks = append(toks, token{tokPunct, "!="})
				i += 2
			} else {
				return nil, fmt.Errorf("unexpected '!' at offset %d", i)
			}
		case strings.ContainsRune("{}().=*", r):
			toks = append(toks, token{tokPunct, string(r)})
			i++
		case unicode.IsDigit(r) || (r == '-' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			j := i + 1
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.' || runes[j] == 'e' || runes[j] == '-') {
				j++
			}
			toks = append(toks, token{tokLiteral, string(runes[i:j])})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) ||
				runes[j] == '_' || runes[j] == ':' || runes[j] == '-') {
				j++
			}
			toks = append(toks, token{tokWord, string(runes[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", r, i)
		}
	}

	return toks, nil
}

// parser

type parser struct {
	toks []token
	pos  int
	q    *Query
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) expectPunct(text string) error {
	t, ok := p.next()
	if !ok || t.kind != tokPunct || t.text != text {
		return fmt.Errorf("expected %q, got %q", text, t.text)
	}
	return nil
}

func isKeyword(t token, kw string) bool {
	return t.kind == tokWord && strings.EqualFold(t.text, kw)
}

func (p *parser) parse() error {
	if err := p.parsePrologue(); err != nil {
		return err
	}
	if err := p.parseSelect(); err != nil {
		return err
	}
	if err := p.parseWhere(); err != nil {
		return err
	}
	if err := p.parseOrderBy(); err != nil {
		return err
	}
	if t, ok := p.peek(); ok {
		return fmt.Errorf("unexpected trailing token %q", t.text)
	}
	return nil
}

func (p *parser) parsePrologue() error {
	for {
		t, ok := p.peek()
		if !ok || !isKeyword(t, "PREFIX") {
			return nil
		}
		p.pos++

		name, ok := p.next()
		if !ok || name.kind != tokWord || !strings.HasSuffix(name.text, ":") {
			return fmt.Errorf("PREFIX requires a name ending in ':', got %q", name.text)
		}
		iri, ok := p.next()
		if !ok || iri.kind != tokIRI {
			return fmt.Errorf("PREFIX %s requires an IRI", name.text)
		}
		p.q.prefixes[strings.TrimSuffix(name.text, ":")] = iri.text
	}
}

func (p *parser) parseSelect() error {
	t, ok := p.next()
	if !ok || !isKeyword(t, "SELECT") {
		return fmt.Errorf("expected SELECT, got %q", t.text)
	}

	if t, ok := p.peek(); ok && isKeyword(t, "DISTINCT") {
		p.q.distinct = true
		p.pos++
	}

	t, ok = p.peek()
	if !ok {
		return fmt.Errorf("SELECT requires a projection")
	}
	if t.kind == tokPunct && t.text == "*" {
		p.q.star = true
		p.pos++
		return nil
	}

	for {
		t, ok := p.peek()
		if !ok || t.kind != tokVar {
			break
		}
		p.q.vars = append(p.q.vars, t.text)
		p.pos++
	}
	if len(p.q.vars) == 0 {
		return fmt.Errorf("SELECT requires at least one variable or *")
	}
	return nil
}

func (p *parser) parseWhere() error {
	t, ok := p.next()
	if !ok || !isKeyword(t, "WHERE") {
		return fmt.Errorf("expected WHERE, got %q", t.text)
	}
	if err := p.expectPunct("{"); err != nil {
		return err
	}

	for {
		t, ok := p.peek()
		if !ok {
			return fmt.Errorf("unterminated WHERE block")
		}
		if t.kind == tokPunct && t.text == "}" {
			p.pos++
			return nil
		}
		if isKeyword(t, "FILTER") {
			p.pos++
			if err := p.parseFilter(); err != nil {
				return err
			}
		} else {
			if err := p.parseTriplePattern(); err != nil {
				return err
			}
		}
		// '.' separators are optional before '}'
		if t, ok := p.peek(); ok && t.kind == tokPunct && t.text == "." {
			p.pos++
		}
	}
}

func (p *parser) parseTriplePattern() error {
	s, err := p.parsePatternTerm("subject")
	if err != nil {
		return err
	}
	pr, err := p.parsePatternTerm("predicate")
	if err != nil {
		return err
	}
	o, err := p.parsePatternTerm("object")
	if err != nil {
		return err
	}
	p.q.patterns = append(p.q.patterns, pattern{s: s, p: pr, o: o})
	return nil
}

func (p *parser) parsePatternTerm(position string) (patternTerm, error) {
	t, ok := p.next()
	if !ok {
		return patternTerm{}, fmt.Errorf("missing %s in triple pattern", position)
	}

	switch t.kind {
	case tokVar:
		p.noteVar(t.text)
		return patternTerm{isVar: true, name: t.text}, nil
	case tokIRI:
		return patternTerm{term: graph.IRI(t.text)}, nil
	case tokLiteral:
		return patternTerm{term: graph.Literal(t.text)}, nil
	case tokWord:
		if t.text == "a" {
			return patternTerm{term: graph.IRI(vocabulary.RDFType)}, nil
		}
		expanded, ok := vocabulary.Expand(t.text, p.q.prefixes)
		if !ok {
			return patternTerm{}, fmt.Errorf("unknown prefix in %q", t.text)
		}
		return patternTerm{term: graph.IRI(expanded)}, nil
	default:
		return patternTerm{}, fmt.Errorf("unexpected token %q as %s", t.text, position)
	}
}

func (p *parser) parseFilter() error {
	if err := p.expectPunct("("); err != nil {
		return err
	}

	v, ok := p.next()
	if !ok || v.kind != tokVar {
		return fmt.Errorf("FILTER requires a variable, got %q", v.text)
	}
	p.noteVar(v.text)

	op, ok := p.next()
	if !ok || op.kind != tokPunct || (op.text != "=" && op.text != "!=") {
		return fmt.Errorf("FILTER supports only = and !=, got %q", op.text)
	}

	val, err := p.parsePatternTerm("filter value")
	if err != nil {
		return err
	}
	if val.isVar {
		return fmt.Errorf("FILTER comparison against a variable is not supported")
	}

	f := filter{variable: v.text, value: val.term}
	if op.text == "!=" {
		f.op = opNotEqual
	}
	p.q.filters = append(p.q.filters, f)

	return p.expectPunct(")")
}

func (p *parser) parseOrderBy() error {
	t, ok := p.peek()
	if !ok || !isKeyword(t, "ORDER") {
		return nil
	}
	p.pos++

	t, ok = p.next()
	if !ok || !isKeyword(t, "BY") {
		return fmt.Errorf("expected BY after ORDER")
	}

	for {
		t, ok := p.peek()
		if !ok || t.kind != tokVar {
			break
		}
		p.q.orderBy = append(p.q.orderBy, t.text)
		p.pos++
	}
	if len(p.q.orderBy) == 0 {
		return fmt.Errorf("ORDER BY requires at least one variable")
	}
	return nil
}

func (p *parser) noteVar(name string) {
	for _, v := range p.q.varOrder {
		if v == name {
			return
		}
	}
	p.q.varOrder = append(p.q.varOrder, name)
}
