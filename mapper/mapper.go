// Package mapper loads the CSV mapping table that joins the three identifier
// spaces of a building dataset: archive filenames, stream identifiers, and the
// Brick class labels applied to each stream.
//
// The table is the authority on which archive entries belong to the dataset:
// the archive loader skips any entry whose filename has no row here. When a
// building filter is supplied the table is reduced before the archive is
// walked, so filtered-out entries are never deserialized.
package mapper

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/Vincent-Morcilla/buildingdata/errors"
)

// Required column names. Header matching is case-insensitive and accepts the
// aliases listed per column; the canonical names are those of the source
// dataset's mapping file.
var requiredColumns = map[string][]string{
	"building": {"building"},
	"stream":   {"streamid", "stream_id"},
	"filename": {"filename"},
	"label":    {"strbricklabel", "brick_label", "label"},
}

// unsavedMarker flags mapping rows whose stream was never written to the
// archive. The source dataset records these rather than omitting the row.
const unsavedMarker = "FILE NOT SAVED"

// Record is one row of the mapping table.
type Record struct {
	Building   string
	StreamID   string
	Filename   string
	BrickLabel string
}

// Table is the loaded, optionally building-filtered mapping table.
type Table struct {
	records    []Record
	byFilename map[string]int
	byStream   map[string]int
}

// Option configures table loading.
type Option func(*loadOptions)

type loadOptions struct {
	building string
	filtered bool
}

// WithBuilding retains only rows whose building identifier exactly matches b
// (case-sensitive). The filter is applied during load; it is not a live
// constraint.
func WithBuilding(b string) Option {
	return func(o *loadOptions) {
		o.building = b
		o.filtered = true
	}
}

// Load reads a mapping table from a CSV file. The header row is required and
// must name all four required columns; a malformed table is a fatal load
// error, not a runtime concern.
func Load(path string, opts ...Option) (*Table, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: %s", errors.ErrMapperNotFound, path),
				"mapper", "Load", "open mapping file")
		}
		return nil, errors.WrapFatal(err, "mapper", "Load", "open mapping file")
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %v", errors.ErrMapperMalformed, err),
			"mapper", "Load", "parse CSV")
	}
	if len(rows) == 0 {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: missing header row", errors.ErrMapperMalformed),
			"mapper", "Load", "parse CSV")
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	t := &Table{
		byFilename: make(map[string]int),
		byStream:   make(map[string]int),
	}

	for i, row := range rows[1:] {
		rec := Record{
			Building:   strings.TrimSpace(row[cols["building"]]),
			StreamID:   strings.TrimSpace(row[cols["stream"]]),
			Filename:   strings.TrimSpace(row[cols["filename"]]),
			BrickLabel: strings.TrimSpace(row[cols["label"]]),
		}

		if rec.StreamID == "" || rec.Filename == "" {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: row %d is missing a stream ID or filename",
					errors.ErrMapperMalformed, i+2),
				"mapper", "Load", "validate row")
		}

		if o.filtered && rec.Building != o.building {
			continue
		}

		// Streams never written to the archive carry a marker filename
		if strings.Contains(rec.Filename, unsavedMarker) {
			continue
		}

		t.byFilename[rec.Filename] = len(t.records)
		t.byStream[rec.StreamID] = len(t.records)
		t.records = append(t.records, rec)
	}

	return t, nil
}

// resolveColumns maps the required logical columns onto header positions.
func resolveColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := make(map[string]int, len(requiredColumns))
	for logical, aliases := range requiredColumns {
		found := false
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				cols[logical] = i
				found = true
				break
			}
		}
		if !found {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: required column %q not in header",
					errors.ErrMapperMalformed, logical),
				"mapper", "Load", "resolve header")
		}
	}

	return cols, nil
}

// Len returns the number of retained rows.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the retained rows in file order.
func (t *Table) Records() []Record {
	return t.records
}

// StreamIDByFilename resolves an archive filename to its stream identifier.
// The second return is false when the filename has no row, which the archive
// loader treats as "skip this entry".
func (t *Table) StreamIDByFilename(filename string) (string, bool) {
	i, ok := t.byFilename[filename]
	if !ok {
		return "", false
	}
	return t.records[i].StreamID, true
}

// Label returns the Brick class label for a stream identifier.
func (t *Table) Label(streamID string) (string, error) {
	i, ok := t.byStream[streamID]
	if !ok {
		return "", errors.WrapNotFound(
			fmt.Errorf("%w: %q has no mapping row", errors.ErrStreamNotFound, streamID),
			"mapper", "Label", "lookup label")
	}
	return t.records[i].BrickLabel, nil
}

// Contains reports whether a stream identifier has a mapping row.
func (t *Table) Contains(streamID string) bool {
	_, ok := t.byStream[streamID]
	return ok
}
