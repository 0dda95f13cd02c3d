package types

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/kwpic/internal/binary"
)

func TestDetectDialect(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		want      Dialect
		order     binary.Endianness
		swapAxes  bool
		headerOff int64
	}{
		{
			name:      "tagged",
			data:      []byte{0x10, 0x20},
			want:      DialectTagged,
			order:     binary.LittleEndian,
			headerOff: 1,
		},
		{
			name:      "tagged single byte",
			data:      []byte{0x10},
			want:      DialectTagged,
			order:     binary.LittleEndian,
			headerOff: 1,
		},
		{
			name:      "pic-pipe big-endian",
			data:      []byte("PIC-PIPE\x00\x00\x00\xbc"),
			want:      DialectPicPipeBE,
			order:     binary.BigEndian,
			swapAxes:  true,
			headerOff: 8,
		},
		{
			name:      "pic-pipe little-endian",
			data:      []byte("PIC-pipe\xbc\x00\x00\x00"),
			want:      DialectPicPipeLE,
			order:     binary.LittleEndian,
			swapAxes:  true,
			headerOff: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectDialect(bytes.NewReader(tt.data), int64(len(tt.data)), "test")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.order, got.ByteOrder())
			assert.Equal(t, tt.swapAxes, got.SwapAxes())
			assert.Equal(t, tt.headerOff, got.HeaderOffset())
		})
	}
}

func TestDetectDialect_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		reason string
	}{
		{name: "empty", data: nil, reason: "file is empty"},
		{name: "too small", data: []byte("PIC"), reason: "file too small"},
		{name: "mixed case marker", data: []byte("Pic-Pipe"), reason: "unrecognised header"},
		{name: "other format", data: []byte("\x89PNG\r\n\x1a\n"), reason: "unrecognised header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectDialect(bytes.NewReader(tt.data), int64(len(tt.data)), "bad.pic")
			require.Error(t, err)
			assert.Equal(t, DialectUnknown, got)

			var ufe *UnsupportedFormatError
			require.True(t, errors.As(err, &ufe), "expected UnsupportedFormatError, got %T", err)
			assert.Contains(t, ufe.Reason, tt.reason)
			assert.Equal(t, "bad.pic", ufe.Path)
		})
	}
}

func TestDialect_String(t *testing.T) {
	assert.Equal(t, "KW", DialectTagged.String())
	assert.Equal(t, "PIC-PIPE", DialectPicPipeBE.String())
	assert.Equal(t, "PIC-pipe", DialectPicPipeLE.String())
	assert.Equal(t, "Unknown", DialectUnknown.String())
}
