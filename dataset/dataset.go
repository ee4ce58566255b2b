// Package dataset ties the building-data inputs together behind one facade:
// the stream archive, the mapping table, the building model graph, and the
// ontology schema graph. A Dataset behaves like an ordered map from stream
// identifier to time series, with the two graphs and a query engine attached.
//
// Construction is strict: every input must load completely or New fails.
// After construction all lookups are cheap in-memory operations; a missing
// stream is a recoverable not-found error, never a panic or a nil series.
package dataset

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Vincent-Morcilla/buildingdata/archive"
	"github.com/Vincent-Morcilla/buildingdata/config"
	"github.com/Vincent-Morcilla/buildingdata/errors"
	"github.com/Vincent-Morcilla/buildingdata/graph"
	"github.com/Vincent-Morcilla/buildingdata/mapper"
	"github.com/Vincent-Morcilla/buildingdata/metric"
	"github.com/Vincent-Morcilla/buildingdata/sparql"
	"github.com/Vincent-Morcilla/buildingdata/timeseries"
)

// Graph selects which of the two attached graphs a query runs against.
type Graph string

const (
	// GraphModel is the building model: instances, points, stream links.
	GraphModel Graph = "model"
	// GraphSchema is the ontology: class hierarchy and property definitions.
	GraphSchema Graph = "schema"
)

// Stream pairs a stream identifier with its series, for bulk operations and
// ordered iteration.
type Stream = archive.Stream

// Config names the dataset inputs and optional observers.
type Config struct {
	ArchivePath string
	MapperPath  string
	ModelPath   string
	SchemaPath  string // empty = bundled ontology snapshot
	Building    string // empty = no mapping-table filter

	Progress archive.Progress
	Metrics  *metric.Metrics
	Logger   *slog.Logger
}

// Dataset is the loaded, queryable collection of streams and graphs.
type Dataset struct {
	ids     []string // insertion order
	streams map[string]timeseries.Series

	table  *mapper.Table
	model  *graph.Store
	schema *graph.Store

	metrics *metric.Metrics
	log     *slog.Logger
}

// New loads every input named by the config and assembles the dataset.
// Any load failure is fatal: a dataset is never constructed from a partial
// archive or an unparsable graph.
func New(cfg Config) (*Dataset, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	var mapperOpts []mapper.Option
	if cfg.Building != "" {
		mapperOpts = append(mapperOpts, mapper.WithBuilding(cfg.Building))
	}
	table, err := mapper.Load(cfg.MapperPath, mapperOpts...)
	if err != nil {
		return nil, err
	}
	log.Debug("mapping table loaded", "rows", table.Len(), "building", cfg.Building)

	model, err := graph.DecodeFile(cfg.ModelPath)
	if err != nil {
		return nil, err
	}

	var schema *graph.Store
	if cfg.SchemaPath != "" {
		schema, err = graph.DecodeFile(cfg.SchemaPath)
	} else {
		schema, err = graph.DefaultSchema()
	}
	if err != nil {
		return nil, err
	}

	archiveOpts := []archive.Option{archive.WithLogger(log)}
	if cfg.Progress != nil {
		archiveOpts = append(archiveOpts, archive.WithProgress(cfg.Progress))
	}
	if cfg.Metrics != nil {
		archiveOpts = append(archiveOpts, archive.WithMetrics(cfg.Metrics))
	}
	streams, err := archive.Load(cfg.ArchivePath, table, archiveOpts...)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		ids:     make([]string, 0, len(streams)),
		streams: make(map[string]timeseries.Series, len(streams)),
		table:   table,
		model:   model,
		schema:  schema,
		metrics: cfg.Metrics,
		log:     log,
	}
	for _, s := range streams {
		d.Set(s.ID, s.Series)
	}

	if d.metrics != nil {
		d.metrics.RecordStreamsLoaded(d.Len())
		d.metrics.RecordGraphTriples(string(GraphModel), model.Len())
		d.metrics.RecordGraphTriples(string(GraphSchema), schema.Len())
	}
	log.Info("dataset ready",
		"streams", d.Len(),
		"model_triples", model.Len(),
		"schema_triples", schema.Len(),
	)

	return d, nil
}

// NewFromConfig assembles a dataset from a loaded configuration file.
func NewFromConfig(cfg *config.Config) (*Dataset, error) {
	if cfg == nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("config is nil"),
			"dataset", "NewFromConfig", "read config")
	}
	return New(Config{
		ArchivePath: cfg.Paths.Archive,
		MapperPath:  cfg.Paths.Mapper,
		ModelPath:   cfg.Paths.Model,
		SchemaPath:  cfg.Paths.Schema,
		Building:    cfg.Building,
	})
}

// Len returns the number of loaded streams.
func (d *Dataset) Len() int {
	return len(d.ids)
}

// Contains reports whether a stream identifier is loaded. A stream with a
// mapping row but no archive entry is not contained.
func (d *Dataset) Contains(streamID string) bool {
	_, ok := d.streams[streamID]
	return ok
}

// StreamIDs returns the loaded identifiers in insertion order.
func (d *Dataset) StreamIDs() []string {
	ids := make([]string, len(d.ids))
	copy(ids, d.ids)
	return ids
}

// Get returns the series for a stream identifier.
func (d *Dataset) Get(streamID string) (timeseries.Series, error) {
	s, ok := d.streams[streamID]
	if !ok {
		return nil, errors.WrapNotFound(
			fmt.Errorf("%w: %q", errors.ErrStreamNotFound, streamID),
			"dataset", "Get", "lookup stream")
	}
	return s, nil
}

// Set stores a series under a stream identifier, replacing any existing one.
// New identifiers append to the iteration order. Set does not consult the
// mapping table: callers may attach streams the table never knew about.
func (d *Dataset) Set(streamID string, s timeseries.Series) {
	if _, ok := d.streams[streamID]; !ok {
		d.ids = append(d.ids, streamID)
	}
	d.streams[streamID] = s
}

// GetMany returns the series for the requested identifiers, best effort:
// unknown identifiers are skipped, and the result preserves the request
// order of the found ones.
func (d *Dataset) GetMany(streamIDs ...string) []Stream {
	found := make([]Stream, 0, len(streamIDs))
	for _, id := range streamIDs {
		if s, ok := d.streams[id]; ok {
			found = append(found, Stream{ID: id, Series: s})
		}
	}
	return found
}

// SetMany stores every given stream, in order.
func (d *Dataset) SetMany(streams []Stream) {
	for _, s := range streams {
		d.Set(s.ID, s.Series)
	}
}

// All returns every stream in insertion order.
func (d *Dataset) All() []Stream {
	all := make([]Stream, 0, len(d.ids))
	for _, id := range d.ids {
		all = append(all, Stream{ID: id, Series: d.streams[id]})
	}
	return all
}

// GetLabel returns the mapping table's Brick class label for a stream. The
// lookup goes to the table, not the loaded series, so labels resolve even
// for mapped streams whose archive entry was absent.
func (d *Dataset) GetLabel(streamID string) (string, error) {
	return d.table.Label(streamID)
}

// Model returns the building model graph.
func (d *Dataset) Model() *graph.Store {
	return d.model
}

// Schema returns the ontology graph.
func (d *Dataset) Schema() *graph.Store {
	return d.schema
}

// QueryOption configures one query invocation.
type QueryOption func(*queryOptions)

type queryOptions struct {
	graph  Graph
	defrag bool
}

// OnGraph selects the graph a query runs against. The default is the
// building model.
func OnGraph(g Graph) QueryOption {
	return func(o *queryOptions) {
		o.graph = g
	}
}

// Defrag shortens every IRI in the results to its local name.
func Defrag() QueryOption {
	return func(o *queryOptions) {
		o.defrag = true
	}
}

// Query runs a SPARQL SELECT query against one of the attached graphs.
func (d *Dataset) Query(text string, opts ...QueryOption) (*sparql.Solutions, error) {
	o := queryOptions{graph: GraphModel}
	for _, opt := range opts {
		opt(&o)
	}

	st, err := d.selectGraph(o.graph)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sols, err := sparql.Exec(text, st)
	if err != nil {
		if d.metrics != nil {
			d.metrics.RecordQueryError(string(o.graph))
		}
		d.log.Debug("query failed", "graph", o.graph, "error", err)
		return nil, err
	}
	if d.metrics != nil {
		d.metrics.RecordQuery(string(o.graph), time.Since(start))
	}

	if o.defrag {
		sols = sols.Defrag()
	}
	return sols, nil
}

// QueryTable runs a query and shapes the solutions as a rectangular table
// whose columns follow the query's projection order.
func (d *Dataset) QueryTable(text string, opts ...QueryOption) (*sparql.Table, error) {
	sols, err := d.Query(text, opts...)
	if err != nil {
		return nil, err
	}
	return sols.Table(), nil
}

func (d *Dataset) selectGraph(g Graph) (*graph.Store, error) {
	switch g {
	case GraphModel:
		return d.model, nil
	case GraphSchema:
		return d.schema, nil
	default:
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %q (want %q or %q)",
				errors.ErrUnknownGraph, string(g), GraphModel, GraphSchema),
			"dataset", "Query", "select graph")
	}
}

// String summarizes the dataset for logs.
func (d *Dataset) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dataset(streams=%d, model=%d triples, schema=%d triples)",
		d.Len(), d.model.Len(), d.schema.Len())
	return b.String()
}
