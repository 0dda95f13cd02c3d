// Package types provides core data structures for picture file decoding.
//
// This package defines the Header, DataType, Dialect, PicFile and Raster
// types shared by both header dialects and the sample decoder.
package types

import (
	"fmt"

	"github.com/simonhull/kwpic/internal/binary"
)

// PicFile is the result of parsing a picture file header.
//
// It carries everything the sample decoder needs: the normalised header,
// the byte order and sample layout of the pixel data, and where the pixel
// data starts.
type PicFile struct {
	Path       string
	Provenance []string
	Warnings   []Warning
	Header     Header
	Dialect    Dialect

	// DataOffset is the file offset of the first frame.
	DataOffset int64
}

// ByteOrder returns the byte order of the pixel data.
func (f *PicFile) ByteOrder() binary.Endianness {
	return f.Dialect.ByteOrder()
}

// SwapAxes reports whether samples are stored as (row, component, column).
func (f *PicFile) SwapAxes() bool {
	return f.Dialect.SwapAxes()
}

// Warn appends a warning.
func (f *PicFile) Warn(stage string, offset int64, format string, args ...any) {
	f.Warnings = append(f.Warnings, Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
	})
}
