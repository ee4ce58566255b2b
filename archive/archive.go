// Package archive reads the compressed container of per-sensor time series:
// a zip file holding one CSV table per stream.
//
// Filenames inside the archive are opaque keys; the mapping table decides
// which entries belong to the dataset and under which stream identifier each
// one is stored. Entries without a mapping row are skipped silently (the
// table may be building-filtered), but an unreadable archive or a corrupt
// entry aborts the whole load: a partial archive must fail loudly, never
// truncate silently.
package archive

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/Vincent-Morcilla/buildingdata/errors"
	"github.com/Vincent-Morcilla/buildingdata/mapper"
	"github.com/Vincent-Morcilla/buildingdata/metric"
	"github.com/Vincent-Morcilla/buildingdata/timeseries"
)

// Stream is one loaded stream: the mapping table's identifier and the
// deserialized, label-decorated series.
type Stream struct {
	ID     string
	Series timeseries.Series
}

// Progress is the observer invoked after each archive entry is handled,
// with the number of entries processed so far and the total entry count.
// Reporting only; a Progress callback cannot affect the load.
type Progress func(processed, total int)

// Option configures the loader.
type Option func(*loader)

// WithProgress installs a progress observer for the archive walk.
func WithProgress(fn Progress) Option {
	return func(l *loader) {
		l.progress = fn
	}
}

// WithMetrics records load counters on the given metrics.
func WithMetrics(m *metric.Metrics) Option {
	return func(l *loader) {
		l.metrics = m
	}
}

// WithLogger overrides the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *loader) {
		l.log = log
	}
}

type loader struct {
	progress Progress
	metrics  *metric.Metrics
	log      *slog.Logger
}

// Load reads every mapped entry of the archive, in archive order. Each
// entry's payload is deserialized from CSV (timestamp, value columns), the
// Brick label from the mapping table is attached as a constant column, and
// the result is keyed by the table's stream identifier, not by filename.
func Load(archivePath string, table *mapper.Table, opts ...Option) ([]Stream, error) {
	l := &loader{log: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}

	start := time.Now()

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		sentinel := errors.ErrArchiveCorrupt
		if os.IsNotExist(err) {
			sentinel = errors.ErrArchiveNotFound
		}
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %s: %v", sentinel, archivePath, err),
			"archive", "Load", "open archive")
	}
	defer zr.Close()

	total := len(zr.File)
	processed := 0
	skipped := 0
	var streams []Stream

	for _, entry := range zr.File {
		processed++
		if l.progress != nil {
			l.progress(processed, total)
		}

		name := path.Base(entry.Name)
		if entry.FileInfo().IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}

		streamID, ok := table.StreamIDByFilename(name)
		if !ok {
			// No mapping row: not an error, the table may be filtered
			skipped++
			if l.metrics != nil {
				l.metrics.RecordEntrySkipped()
			}
			l.log.Debug("skipping unmapped archive entry", "entry", entry.Name)
			continue
		}

		series, err := readEntry(entry)
		if err != nil {
			return nil, err
		}

		label, err := table.Label(streamID)
		if err != nil {
			return nil, errors.WrapFatal(err, "archive", "Load", "resolve label")
		}

		streams = append(streams, Stream{ID: streamID, Series: series.WithClass(label)})
	}

	elapsed := time.Since(start)
	if l.metrics != nil {
		l.metrics.RecordLoadDuration(elapsed)
	}
	l.log.Info("archive loaded",
		"archive", archivePath,
		"entries", total,
		"streams", len(streams),
		"skipped", skipped,
		"elapsed", elapsed,
	)

	return streams, nil
}

// readEntry deserializes one entry's CSV payload. The first row may be a
// header naming the timestamp and value columns; headerless payloads assume
// (timestamp, value) order.
func readEntry(entry *zip.File) (timeseries.Series, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, corrupt(entry.Name, err)
	}
	defer rc.Close()

	rows, err := csv.NewReader(rc).ReadAll()
	if err != nil {
		return nil, corrupt(entry.Name, err)
	}

	timeCol, valueCol := 0, 1
	if len(rows) > 0 && isHeader(rows[0]) {
		tc, vc, err := resolvePayloadColumns(rows[0])
		if err != nil {
			return nil, corrupt(entry.Name, err)
		}
		timeCol, valueCol = tc, vc
		rows = rows[1:]
	}

	series := make(timeseries.Series, 0, len(rows))
	for i, row := range rows {
		if len(row) <= timeCol || len(row) <= valueCol {
			return nil, corrupt(entry.Name, fmt.Errorf("row %d has %d columns", i+1, len(row)))
		}

		ts, err := timeseries.ParseTime(row[timeCol])
		if err != nil {
			return nil, corrupt(entry.Name, fmt.Errorf("row %d: bad timestamp %q", i+1, row[timeCol]))
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[valueCol]), 64)
		if err != nil {
			return nil, corrupt(entry.Name, fmt.Errorf("row %d: bad value %q", i+1, row[valueCol]))
		}

		series = append(series, timeseries.Record{Time: ts, Value: value})
	}

	return series, nil
}

func corrupt(entryName string, err error) error {
	return errors.WrapFatal(
		fmt.Errorf("%w: entry %s: %v", errors.ErrArchiveCorrupt, entryName, err),
		"archive", "Load", "read entry")
}

// isHeader reports whether the first CSV row looks like a header rather than
// a data row: a header's cells parse as neither timestamps nor numbers.
func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	if _, err := timeseries.ParseTime(row[0]); err == nil {
		return false
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64); err == nil {
		return false
	}
	return true
}

// resolvePayloadColumns finds the timestamp and value columns in a payload
// header. Accepted names: timestamp/time/t and value/v.
func resolvePayloadColumns(header []string) (timeCol, valueCol int, err error) {
	timeCol, valueCol = -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "timestamp", "time", "t":
			timeCol = i
		case "value", "v":
			valueCol = i
		}
	}
	if timeCol < 0 || valueCol < 0 {
		return 0, 0, fmt.Errorf("header %v lacks timestamp/value columns", header)
	}
	return timeCol, valueCol, nil
}
