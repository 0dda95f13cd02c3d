// Package registry manages the header parsers for each picture file dialect.
package registry

import (
	"io"

	"github.com/simonhull/kwpic/internal/types"
)

// HeaderParser is the interface all dialect parsers implement.
type HeaderParser interface {
	// Parse reads the header and provenance records of a file whose
	// dialect has already been detected. The returned PicFile has
	// DataOffset pointing at the first frame.
	Parse(r io.ReaderAt, size int64, path string, dialect types.Dialect) (*types.PicFile, error)
}

// parsers maps dialects to their parsers.
var parsers = make(map[types.Dialect]HeaderParser)

// Register registers a parser for a dialect.
// This is called by dialect packages during initialization (init functions).
func Register(dialect types.Dialect, parser HeaderParser) {
	parsers[dialect] = parser
}

// Get returns the parser for a given dialect.
// Returns nil if no parser is registered for the dialect.
func Get(dialect types.Dialect) HeaderParser {
	return parsers[dialect]
}
