package binary

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWriter_WriteInt32BE(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	require.NoError(t, Write[int32](sw, 0x12345678))
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, buf.Bytes())
}

func TestSafeWriter_Offset(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	assert.Equal(t, int64(0), sw.Offset())

	steps := []struct {
		write func() error
		want  int64
	}{
		{func() error { return Write[uint8](sw, 0x01) }, 1},
		{func() error { return WriteLE[int16](sw, -1) }, 3},
		{func() error { return Write[int32](sw, 0x04050607) }, 7},
		{func() error { return Write[uint64](sw, 0x08090A0B0C0D0E0F) }, 15},
	}
	for i, step := range steps {
		require.NoError(t, step.write(), "step %d", i)
		assert.Equal(t, step.want, sw.Offset(), "step %d", i)
	}
}

func TestSafeWriter_WriteLENegative(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	require.NoError(t, WriteLE[int16](sw, -2))
	assert.Equal(t, []byte{0xFE, 0xFF}, buf.Bytes())
}

func TestSafeWriter_WritePadded(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	require.NoError(t, sw.WritePadded("YUV", 4))
	require.NoError(t, sw.WritePadded("toolong", 3))
	assert.Equal(t, []byte{'Y', 'U', 'V', 0, 't', 'o', 'o'}, buf.Bytes())
}

func TestSafeWriter_RoundTrip(t *testing.T) {
	for _, endian := range []Endianness{BigEndian, LittleEndian} {
		t.Run(endian.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			sw := NewSafeWriter(buf)
			require.NoError(t, WriteEndian[int32](sw, -123456, endian))
			require.NoError(t, WriteEndian[int16](sw, -7, endian))
			require.NoError(t, sw.WriteString("AB"))

			data := buf.Bytes()
			r := NewReader(NewSafeReader(bytes.NewReader(data), int64(len(data)), "rt"), 0, endian)

			v32, err := ReadValue[int32](r, "int32")
			require.NoError(t, err)
			assert.Equal(t, int32(-123456), v32)

			v16, err := ReadValue[int16](r, "int16")
			require.NoError(t, err)
			assert.Equal(t, int16(-7), v16)

			s, err := r.ReadString(2, "text")
			require.NoError(t, err)
			assert.Equal(t, "AB", s)
		})
	}
}
