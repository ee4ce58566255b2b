package graph

import (
	"bytes"
	_ "embed"
	"sync"
)

// Bundled Brick vocabulary snapshot, used when no schema document is supplied
// at dataset construction. The version is fixed at build time.
//
//go:embed schema/brick.ttl
var brickSnapshot []byte

var (
	defaultSchemaOnce sync.Once
	defaultSchema     *Store
	defaultSchemaErr  error
)

// DefaultSchema returns the bundled Brick schema snapshot, parsed lazily once
// and cached process-wide. Repeated dataset construction without a schema
// path shares the same store; per the dataset contract the schema is
// logically read-only, so sharing is safe.
func DefaultSchema() (*Store, error) {
	defaultSchemaOnce.Do(func() {
		defaultSchema, defaultSchemaErr = Decode(bytes.NewReader(brickSnapshot))
	})
	return defaultSchema, defaultSchemaErr
}
