package types

import (
	"fmt"
	"io"

	"github.com/simonhull/kwpic/internal/binary"
)

// Dialect identifies which header layout a picture file uses.
type Dialect int

const (
	// DialectUnknown represents an unrecognised file.
	DialectUnknown Dialect = iota
	// DialectTagged is the KW tagged-record header (first byte 0x10).
	DialectTagged
	// DialectPicPipeBE is the fixed-record header with marker "PIC-PIPE".
	DialectPicPipeBE
	// DialectPicPipeLE is the fixed-record header with marker "PIC-pipe".
	DialectPicPipeLE
)

// Leading bytes that identify each dialect.
const (
	TaggedMarker    = 0x10
	PicPipeMarkerBE = "PIC-PIPE"
	PicPipeMarkerLE = "PIC-pipe"
)

// MarkerSize is the number of bytes consumed by a fixed-record marker.
const MarkerSize = 8

// String returns a short name for the dialect.
func (d Dialect) String() string {
	switch d {
	case DialectTagged:
		return "KW"
	case DialectPicPipeBE:
		return "PIC-PIPE"
	case DialectPicPipeLE:
		return "PIC-pipe"
	default:
		return "Unknown"
	}
}

// ByteOrder returns the byte order of multi-byte fields and samples.
func (d Dialect) ByteOrder() binary.Endianness {
	if d == DialectPicPipeBE {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// SwapAxes reports whether samples are stored as (row, component, column)
// rather than (row, column, component).
func (d Dialect) SwapAxes() bool {
	return d == DialectPicPipeBE || d == DialectPicPipeLE
}

// HeaderOffset returns the offset at which the dialect's header parser starts.
func (d Dialect) HeaderOffset() int64 {
	if d == DialectTagged {
		return 1
	}
	return MarkerSize
}

// DetectDialect determines the header dialect by examining the leading bytes.
//
// A single 0x10 byte selects the tagged dialect. Otherwise the first eight
// bytes must spell one of the two case variants of the fixed-record marker;
// the case selects the byte order. Anything else is an UnsupportedFormatError.
func DetectDialect(r io.ReaderAt, size int64, path string) (Dialect, error) {
	if size < 1 {
		return DialectUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file is empty",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	first, err := binary.Read[uint8](sr, 0, "file marker")
	if err != nil {
		return DialectUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file marker",
		}
	}
	if first == TaggedMarker {
		return DialectTagged, nil
	}

	if size < MarkerSize {
		return DialectUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	marker := make([]byte, MarkerSize)
	if err := sr.ReadAt(marker, 0, "file marker"); err != nil {
		return DialectUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file marker",
		}
	}

	switch string(marker) {
	case PicPipeMarkerBE:
		return DialectPicPipeBE, nil
	case PicPipeMarkerLE:
		return DialectPicPipeLE, nil
	}

	return DialectUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: fmt.Sprintf("unrecognised header %q", marker),
	}
}
