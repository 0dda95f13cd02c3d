// Package binary provides type-safe binary reading primitives with bounds checking
package binary

import (
	"fmt"
	"io"
)

// TruncatedError is returned when the file ends before a read is satisfied.
//
// It unwraps to io.ErrUnexpectedEOF so callers can test for truncation
// without depending on this type.
type TruncatedError struct {
	Path   string
	What   string
	Offset int64
	Want   int
	Got    int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%s: truncated while reading %s at offset %d: got %d of %d bytes",
		e.Path, e.What, e.Offset, e.Got, e.Want)
}

// Unwrap returns io.ErrUnexpectedEOF.
func (e *TruncatedError) Unwrap() error {
	return io.ErrUnexpectedEOF
}

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the size of the underlying data.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads exactly len(b) bytes at the given offset.
//
// A read that would run past the end of the data fails with *TruncatedError
// before touching the underlying reader.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 {
		return fmt.Errorf("%s: negative offset %d while reading %s", sr.path, off, what)
	}

	if err := sr.Available(off, len(b), what); err != nil {
		return err
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return &TruncatedError{Path: sr.path, What: what, Offset: off, Want: len(b), Got: n}
	}

	return nil
}

// Available reports a *TruncatedError if n bytes at off would run past the
// end of the data. Callers use it to validate lengths read from the file
// before allocating buffers for them.
func (sr *SafeReader) Available(off int64, n int, what string) error {
	if off < 0 || n < 0 {
		return fmt.Errorf("%s: invalid range %d+%d while reading %s", sr.path, off, n, what)
	}
	if off > sr.size || int64(n) > sr.size-off {
		got := sr.size - off
		if got < 0 {
			got = 0
		}
		return &TruncatedError{Path: sr.path, What: what, Offset: off, Want: n, Got: int(got)}
	}
	return nil
}

// Read reads a value of type T from the given offset in big-endian order.
func Read[T Integer](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

// Reader provides sequential reading with automatic offset tracking.
type Reader struct {
	*SafeReader
	offset int64
	endian Endianness
}

// NewReader creates a new Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64, endian Endianness) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
		endian:     endian,
	}
}

// ReadValue reads a numeric value in the reader's byte order and advances the offset.
func ReadValue[T Integer](r *Reader, what string) (T, error) {
	val, err := ReadEndian[T](r.SafeReader, r.offset, what, r.endian)
	if err != nil {
		var zero T
		return zero, err
	}

	r.offset += int64(SizeOf[T]())
	return val, nil
}

// ReadBytes reads n bytes and advances the offset.
func (r *Reader) ReadBytes(n int, what string) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s: negative length %d while reading %s", r.path, n, what)
	}
	if err := r.Available(r.offset, n, what); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := r.SafeReader.ReadAt(buf, r.offset, what); err != nil {
		return nil, err
	}

	r.offset += int64(n)
	return buf, nil
}

// ReadString reads a string of the given length and advances the offset.
func (r *Reader) ReadString(length int, what string) (string, error) {
	buf, err := r.ReadBytes(length, what)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Skip advances the offset by n bytes.
func (r *Reader) Skip(n int64) {
	r.offset += n
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Endian returns the byte order used by ReadValue.
func (r *Reader) Endian() Endianness {
	return r.endian
}

// ChainReader allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// ReadChained reads a value with deferred error checking.
// If a previous read failed, returns zero value without attempting read.
func ReadChained[T Integer](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadValue[T](cr.Reader, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}

	return val
}

// Bytes reads n raw bytes, accumulating any error.
func (cr *ChainReader) Bytes(n int, what string) []byte {
	if cr.err != nil {
		return nil
	}

	val, err := cr.Reader.ReadBytes(n, what)
	if err != nil {
		cr.err = err
		return nil
	}

	return val
}

// String reads a string, accumulating any error.
func (cr *ChainReader) String(length int, what string) string {
	if cr.err != nil {
		return ""
	}

	val, err := cr.Reader.ReadString(length, what)
	if err != nil {
		cr.err = err
		return ""
	}

	return val
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
