package kwpic

import (
	"io"

	"github.com/simonhull/kwpic/internal/types"
)

// Dialect is an alias to types.Dialect.
type Dialect = types.Dialect

// Re-export the dialect constants.
const (
	DialectUnknown   = types.DialectUnknown
	DialectTagged    = types.DialectTagged
	DialectPicPipeBE = types.DialectPicPipeBE
	DialectPicPipeLE = types.DialectPicPipeLE
)

// DetectDialect is a wrapper around types.DetectDialect.
func DetectDialect(r io.ReaderAt, size int64, path string) (Dialect, error) {
	return types.DetectDialect(r, size, path)
}
