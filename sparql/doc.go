// Package sparql executes SELECT-style triple-pattern queries against a
// graph.Store.
//
// # Supported subset
//
// The engine covers the query surface the dataset's consumers use: PREFIX
// declarations, SELECT with an explicit variable list or *, DISTINCT, basic
// graph patterns (IRIs, prefixed names, the "a" keyword, string and numeric
// literals, variables), FILTER with = and != comparisons, and ORDER BY over
// projected variables. The prefix table is preloaded from
// vocabulary.StandardPrefixes, so brick:/rdf:/rdfs:/skos:/unit: names work
// without declarations. Anything outside the subset is a malformed-query
// error, surfaced synchronously.
//
// # Result shapes
//
// Exec returns Solutions: one Row per solution, variables in projection
// order. Solutions.Table flattens to a tabular structure with one column per
// projected variable; column order equals the projection order of the query,
// which is this engine's native shape (callers that need a deterministic row
// order must use ORDER BY).
//
// # Defragmentation
//
// Solutions.Defrag rewrites every IRI value in the result to its trailing
// local name (after the last '#', else the last '/'); literals are left
// untouched. Raw URIs are building- and site-scoped, and the trailing suffix
// is what analytics code matches against stream identifiers.
package sparql
