// Package vocabulary provides the namespace IRIs and naming helpers used
// throughout buildingdata.
//
// # Identifier spaces
//
// The dataset reconciles three independent identifier spaces: archive
// filenames, mapping-table stream IDs, and RDF subject URIs. Inside the module
// everything is keyed by the plain stream identifier string; IRIs appear only
// at the graph boundary. This package owns the translation in both directions:
//
//   - BrickClassIRI turns a mapping-table label ("Air Temperature Sensor")
//     into its Brick class IRI.
//   - LocalName strips namespace scaffolding from an IRI, keeping only the
//     trailing local name. This is the defragmentation primitive used by the
//     sparql package: raw URIs are long and building/site scoped, and the
//     trailing suffix is what analytics code matches against stream IDs.
//
// # Prefixes
//
// StandardPrefixes returns the prefix table (brick, rdf, rdfs, skos, unit,
// owl) that the sparql parser preloads, so common queries work without
// repeating PREFIX declarations.
package vocabulary
