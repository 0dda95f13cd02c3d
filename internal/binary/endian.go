package binary

import "encoding/binary"

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian uses big-endian byte order.
	// Used by: upper-case "PIC-PIPE" fixed-record headers.
	BigEndian Endianness = iota

	// LittleEndian uses little-endian byte order.
	// Used by: tagged KW headers, lower-case "PIC-pipe" fixed-record headers.
	LittleEndian
)

// String returns "big-endian" or "little-endian".
func (e Endianness) String() string {
	if e == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// ByteOrder returns the encoding/binary byte order for e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Integer is the set of fixed-width integers the readers and writers handle.
type Integer interface {
	uint8 | uint16 | uint32 | uint64 | int8 | int16 | int32 | int64
}

// SizeOf returns the encoded width of T in bytes.
func SizeOf[T Integer]() int {
	var zero T
	switch any(zero).(type) {
	case uint8, int8:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32:
		return 4
	default:
		return 8
	}
}

// Decode converts len(b) bytes into T using the given byte order.
//
// len(b) must equal SizeOf[T](). Signed types are sign-extended, so a 0xFF
// byte decodes as -1 for int8.
func Decode[T Integer](b []byte, endian Endianness) T {
	order := endian.ByteOrder()
	switch len(b) {
	case 1:
		return T(b[0])
	case 2:
		return T(order.Uint16(b))
	case 4:
		return T(order.Uint32(b))
	default:
		return T(order.Uint64(b))
	}
}

// ReadLE reads a numeric value of type T at the given offset using little-endian byte order.
//
// This is a convenience wrapper for ReadEndian with LittleEndian.
// Use for the tagged header dialect, which is always little-endian.
//
// Example:
//
//	comps, err := binary.ReadLE[int16](sr, offset, "comps")
func ReadLE[T Integer](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, LittleEndian)
}

// ReadBE reads a numeric value of type T at the given offset using big-endian byte order.
//
// This is a convenience wrapper for ReadEndian with BigEndian.
// Equivalent to Read() but more explicit about byte order.
//
// Example:
//
//	length, err := binary.ReadBE[int32](sr, offset, "record length")
func ReadBE[T Integer](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

// ReadEndian reads a numeric value of type T at the given offset with specified byte order.
//
// This is the low-level function used by Read, ReadLE, and ReadBE.
// Most code should use the convenience wrappers instead.
//
// Example:
//
//	value, err := binary.ReadEndian[int32](sr, offset, "field", binary.LittleEndian)
func ReadEndian[T Integer](sr *SafeReader, off int64, what string, endian Endianness) (T, error) {
	buf := make([]byte, SizeOf[T]())
	if err := sr.ReadAt(buf, off, what); err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](buf, endian), nil
}
