// Package timeseries defines the in-memory representation of one sensor
// stream: an ordered sequence of timestamped readings, each carrying the
// stream's Brick class label.
//
// The label is stored per record, not per series, so it survives slicing and
// merging by downstream analytics code. The loader keeps records in archive
// order and never resorts; a stream that arrives unordered stays unordered.
package timeseries

import (
	"strconv"
	"strings"
	"time"
)

// Column names of the tabular view of a series. These match what analytics
// consumers select on.
const (
	ColumnTime       = "time"
	ColumnValue      = "value"
	ColumnBrickClass = "brick_class"
)

// Record is a single reading within a stream.
type Record struct {
	Time       time.Time `json:"time"`
	Value      float64   `json:"value"`
	BrickClass string    `json:"brick_class"`
}

// Series is one stream's ordered sequence of records. It is replaceable
// wholesale through the dataset facade; no partial or append mutation is
// defined.
type Series []Record

// Len returns the number of records in the series.
func (s Series) Len() int {
	return len(s)
}

// Class returns the Brick class label of the series, taken from the first
// record. Returns empty string for an empty series.
func (s Series) Class() string {
	if len(s) == 0 {
		return ""
	}
	return s[0].BrickClass
}

// WithClass returns a copy of the series with every record's class label set.
// The archive loader uses this to decorate deserialized data with the label
// from the mapping table.
func (s Series) WithClass(label string) Series {
	out := make(Series, len(s))
	for i, r := range s {
		r.BrickClass = label
		out[i] = r
	}
	return out
}

// Times returns the timestamp column.
func (s Series) Times() []time.Time {
	out := make([]time.Time, len(s))
	for i, r := range s {
		out[i] = r.Time
	}
	return out
}

// Values returns the reading column.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = r.Value
	}
	return out
}

// ParseTime parses a timestamp cell from an archive payload. Accepted forms,
// tried in order: RFC 3339 (with or without sub-second precision), the
// space-separated variant without zone, and unix epoch seconds (integer or
// fractional).
func ParseTime(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)

	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}

	if secs, err := strconv.ParseFloat(cell, 64); err == nil {
		sec := int64(secs)
		nsec := int64((secs - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec).UTC(), nil
	}

	// Report against the strictest layout so the message names a usable format
	_, err := time.Parse(time.RFC3339, cell)
	return time.Time{}, err
}
