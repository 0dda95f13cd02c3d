package kwpic

import "github.com/simonhull/kwpic/internal/types"

// Header is an alias to types.Header.
type Header = types.Header

// Raster is an alias to types.Raster.
type Raster = types.Raster

// DataType is an alias to types.DataType.
type DataType = types.DataType

// Re-export the data type constants.
const (
	DataTypeKW      = types.DataTypeKW
	DataTypeReal    = types.DataTypeReal
	DataTypeBitpipe = types.DataTypeBitpipe
	DataTypeInt     = types.DataTypeInt
	DataTypeShort   = types.DataTypeShort
	DataTypeByte    = types.DataTypeByte
)

// Metadata describes a stream. It is built once when the stream is opened
// and shared read-only by every frame of that stream.
type Metadata struct {
	// Path the stream was opened from
	Path string

	// Header dialect (tagged or fixed-record)
	Dialect Dialect

	// Decoded header fields
	Header Header

	// Provenance lines as stored in the file
	Provenance []string

	// Audit trail reconstructed from Provenance and the reader settings
	Audit string

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []Warning
}

// Frame is one decoded picture.
//
// Frames are owned by the caller once returned; the stream keeps no
// reference to them.
type Frame struct {
	// Samples in (rows, columns, components) order
	Data *Raster

	// Sequence number: 0, 1, 2, ... in delivery order, never reset by looping
	FrameNo int

	// Which frame of the file was decoded. Equal to FrameNo unless looping.
	Index int

	// Picture type code from the header (e.g. "Y", "RGB")
	Type string

	Metadata *Metadata
}
