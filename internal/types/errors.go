package types

import (
	"fmt"

	"github.com/simonhull/kwpic/internal/binary"
)

// TruncatedError is returned when the file ends before a header field,
// provenance record, or frame has been read in full.
type TruncatedError = binary.TruncatedError

// UnsupportedFormatError is returned when the leading bytes match neither
// header dialect.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// UnsupportedFeatureError is returned when a header is well formed but
// describes data this decoder cannot produce frames for.
type UnsupportedFeatureError struct {
	Path    string
	Feature string // "interleave", "data type", "bytes per sample"
	Value   string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("%s: cannot read %s %s", e.Path, e.Feature, e.Value)
}

// CorruptedFileError is returned when file structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate problems that don't prevent frames being decoded but
// may indicate corrupted or unusual data. Examples include:
//   - Unknown tagged record types
//   - Unknown (sub-tag, count) pairs
//   - Oversized fixed-record headers
//
// Warnings are collected in PicFile.Warnings during parsing.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "header", "provenance"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
