// Package graph provides an in-memory RDF triple store parsed from
// Turtle-family documents.
//
// Two independent stores exist per dataset: the building model (instance
// data: equipment, points, stream references) and the Brick schema
// (vocabulary: classes, tags, relationships). Both are loaded once during
// dataset construction and are logically read-only afterwards; Add exists for
// the load path and for test fixtures, not for live mutation.
//
// # Seam around the RDF engine
//
// Parsing is delegated to github.com/knakk/rdf, but its term types do not
// escape this package: every parsed triple is converted to the package's own
// Term/Triple values. The sparql package and the dataset facade depend only on
// Store's surface (Match, Triples, Len), so the underlying engine can be
// swapped without touching callers.
//
// # Default schema
//
// When a dataset is constructed without a schema document, DefaultSchema
// returns a bundled snapshot of the Brick vocabulary (go:embed, parsed lazily
// once and cached process-wide) so querying never fails for lack of a schema.
// The snapshot version is fixed at build time; nothing is fetched at runtime.
package graph
