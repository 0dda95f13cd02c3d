package kwpic

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncatedError_Error(t *testing.T) {
	err := &TruncatedError{
		Path:   "clip.kw",
		What:   "frame 3",
		Offset: 4096,
		Want:   1024,
		Got:    100,
	}

	msg := err.Error()
	for _, substr := range []string{"clip.kw", "frame 3", "offset 4096", "100 of 1024"} {
		assert.Contains(t, msg, substr)
	}
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestUnsupportedFormatError_Error(t *testing.T) {
	err := &UnsupportedFormatError{
		Path:   "photo.jpg",
		Reason: `unrecognised header "\xff\xd8\xff\xe0JFIF"`,
	}

	assert.Contains(t, err.Error(), "photo.jpg")
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestUnsupportedFeatureError_Error(t *testing.T) {
	err := &UnsupportedFeatureError{
		Path:    "clip.kw",
		Feature: "interleave",
		Value:   "2",
	}

	assert.Equal(t, "clip.kw: cannot read interleave 2", err.Error())
}

func TestCorruptedFileError_Error(t *testing.T) {
	err := &CorruptedFileError{
		Path:   "broken.pic",
		Offset: 8,
		Reason: "header record length 100, need at least 188",
	}

	msg := err.Error()
	assert.Contains(t, msg, "broken.pic")
	assert.Contains(t, msg, "offset 8")
	assert.Contains(t, msg, "corrupted file")
}
