package geonames

import "errors"

// Sentinel errors surfaced by the builder, the store, and the parser. A
// failure of one of these kinds is returned either as the sentinel itself or
// wrapped with fmt.Errorf("%w: ...", ...) so callers can branch on errors.Is;
// other failures (such as a write error while persisting an index) wrap the
// underlying error instead.
var (
	// ErrInputMissing means the raw dump or the built index file could not be read.
	ErrInputMissing = errors.New("geonames: input file not readable")

	// ErrBadFile means the index file is truncated, has an invalid root offset,
	// or could not be memory-mapped.
	ErrBadFile = errors.New("geonames: bad index file")

	// ErrEmptyInput means the builder consumed the dump but no object survived
	// the type filter.
	ErrEmptyInput = errors.New("geonames: no object survived ingest")

	// ErrNotInitialized means Parse was called against a Store that failed to open.
	ErrNotInitialized = errors.New("geonames: store not initialized")

	// ErrAmbiguous means Parse succeeded in finding matches but UniqueOnly
	// rejected a multi-way tie at the maximum score.
	ErrAmbiguous = errors.New("geonames: ambiguous parse")
)
