package kwpic

import (
	"errors"

	"github.com/simonhull/kwpic/internal/types"
)

// TruncatedError is an alias to types.TruncatedError.
// The file ended before a header field, provenance record or frame was
// read in full; errors.Is(err, io.ErrUnexpectedEOF) reports true.
type TruncatedError = types.TruncatedError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedFormatError = types.UnsupportedFormatError

// UnsupportedFeatureError is an alias to types.UnsupportedFeatureError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedFeatureError = types.UnsupportedFeatureError

// CorruptedFileError is an alias to types.CorruptedFileError.
// Re-exporting from internal/types to maintain public API.
type CorruptedFileError = types.CorruptedFileError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning

// ErrStreamClosed is returned by Next after Close.
var ErrStreamClosed = errors.New("kwpic: stream closed")

// ErrStop may be returned by the callback passed to Read to stop reading
// early. Read then returns nil.
var ErrStop = errors.New("kwpic: stop")
