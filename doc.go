// Package buildingdata provides a single, uniform view over the three data
// sources that make up a building-sensor dataset: a zip archive of per-sensor
// time series, a CSV mapping table linking sensor identifiers to Brick class
// labels, and two RDF knowledge graphs (the building model and the Brick
// schema).
//
// # Architecture
//
// The module is an access and indexing layer only. It loads everything once,
// up front, and exposes synchronous in-memory reads behind a small contract:
//
//   - dataset:    the facade analytics code receives. Container-style lookup
//     (Len/Contains/Get/Set/StreamIDs), bulk fetch, label resolution, and
//     SPARQL-style querying of either graph.
//   - archive:    walks the zip archive and deserializes one time series per
//     entry, joining entries to stream identifiers through the mapping table.
//   - mapper:     the CSV mapping table (building, stream ID, filename, Brick
//     label) with optional per-building filtering.
//   - graph:      an in-memory RDF triple store parsed from Turtle documents,
//     with a bundled Brick schema snapshot used when no schema is supplied.
//   - sparql:     a SELECT-style query engine over a graph.Store, returning
//     raw solutions or a tabular projection, with optional URI defragmentation.
//   - vocabulary: Brick and RDF namespace IRIs and local-name helpers.
//
// Supporting packages follow the same layering: errors (classified error
// handling), metric (prometheus instrumentation for the load and query
// phases), and config (dataset source configuration).
//
// # What this module does not do
//
// No statistical analysis, no anomaly detection, no persistence, no dashboard
// or server surface. Those are consumers of this layer, not part of it.
package buildingdata
