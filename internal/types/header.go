package types

import "strconv"

// DataType is the sample encoding declared by a picture file.
type DataType int

const (
	// DataTypeKW is the tagged accumulator encoding.
	DataTypeKW DataType = iota // KW
	// DataTypeReal is a floating-point encoding.
	DataTypeReal // REAL
	// DataTypeBitpipe is a packed bit encoding.
	DataTypeBitpipe // BITPIPE
	// DataTypeInt is a 32-bit integer encoding.
	DataTypeInt // INT
	// DataTypeShort is a 16-bit signed encoding.
	DataTypeShort // SHORT
	// DataTypeByte is an 8-bit signed encoding.
	DataTypeByte // BYTE
)

var dataTypeNames = [...]string{"KW", "REAL", "BITPIPE", "INT", "SHORT", "BYTE"}

// String returns the name of the data type.
func (d DataType) String() string {
	if d.Valid() {
		return dataTypeNames[d]
	}
	return "DataType(" + strconv.Itoa(int(d)) + ")"
}

// Valid reports whether d is one of the defined data types.
func (d DataType) Valid() bool {
	return d >= DataTypeKW && d <= DataTypeByte
}

// Header holds the picture geometry and sample encoding of a file.
//
// Field names follow the on-disk record. A Header is built once by the
// dialect parser and not modified afterwards.
type Header struct {
	PicName string
	Code    string

	Comps       int
	Interleave  int
	ChromaPhase int

	FullWidth  int
	FullHeight int
	FieldFreq  int
	Interlace  int

	ActiveWidth  int
	ActiveHeight int
	AspectWidth  int
	AspectHeight int

	AccBits  int
	OverBits int

	MinLum   int
	MaxLum   int
	MinChrom int
	MaxChrom int

	PosX int
	PosY int
	PosZ int

	LenX int
	LenY int
	LenZ int

	DataType  DataType
	Precision int
}

// AccPrecision returns the accumulator bits rounded up to whole bytes.
func (h Header) AccPrecision() int {
	return CeilBytes(h.AccBits) * 8
}

// FrameShape returns (rows, columns, components) of each decoded frame.
func (h Header) FrameShape() (rows, cols, comps int) {
	return h.LenY, h.LenX, h.Comps
}

// CeilBytes rounds a bit count up to whole bytes. Division floors, so
// negative counts round toward minus infinity.
func CeilBytes(bits int) int {
	q := (bits + 7) / 8
	if (bits+7)%8 < 0 {
		q--
	}
	return q
}
