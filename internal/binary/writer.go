package binary

import (
	"io"
)

// SafeWriter wraps io.Writer with position tracking.
type SafeWriter struct {
	w      io.Writer
	offset int64
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{
		w:      w,
		offset: 0,
	}
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	return err
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// WritePadded writes s truncated or NUL-padded to exactly n bytes.
func (sw *SafeWriter) WritePadded(s string, n int) error {
	buf := make([]byte, n)
	copy(buf, s)
	return sw.WriteBytes(buf)
}

// Write writes a value of type T in big-endian byte order.
func Write[T Integer](sw *SafeWriter, val T) error {
	return WriteEndian(sw, val, BigEndian)
}

// WriteLE writes a value of type T in little-endian byte order.
func WriteLE[T Integer](sw *SafeWriter, val T) error {
	return WriteEndian(sw, val, LittleEndian)
}

// WriteEndian writes a value of type T in the given byte order.
func WriteEndian[T Integer](sw *SafeWriter, val T, endian Endianness) error {
	buf := make([]byte, SizeOf[T]())
	order := endian.ByteOrder()
	switch len(buf) {
	case 1:
		buf[0] = byte(val)
	case 2:
		order.PutUint16(buf, uint16(val))
	case 4:
		order.PutUint32(buf, uint32(val))
	default:
		order.PutUint64(buf, uint64(val))
	}

	return sw.WriteBytes(buf)
}
