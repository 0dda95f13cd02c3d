package sample

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/kwpic/internal/binary"
	"github.com/simonhull/kwpic/internal/kwtest"
	"github.com/simonhull/kwpic/internal/types"
)

func header(comps, cols, rows int, dt types.DataType) types.Header {
	return types.Header{
		Comps:      comps,
		Interleave: 1,
		LenX:       cols,
		LenY:       rows,
		LenZ:       1,
		DataType:   dt,
	}
}

func TestNewDecoder_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(h *types.Header)
		feature string
	}{
		{"interleave 2", func(h *types.Header) { h.Interleave = 2 }, "interleave"},
		{"interleave 0", func(h *types.Header) { h.Interleave = 0 }, "interleave"},
		{"real", func(h *types.Header) { h.DataType = types.DataTypeReal }, "data type"},
		{"bitpipe", func(h *types.Header) { h.DataType = types.DataTypeBitpipe }, "data type"},
		{"int", func(h *types.Header) { h.DataType = types.DataTypeInt }, "data type"},
		{"wide accumulator", func(h *types.Header) {
			h.DataType = types.DataTypeKW
			h.AccBits, h.OverBits = 16, 0
		}, "bytes per sample"},
		{"overflow bits", func(h *types.Header) {
			h.DataType = types.DataTypeKW
			h.AccBits, h.OverBits = 8, 8
		}, "bytes per sample"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := header(1, 2, 2, types.DataTypeByte)
			tt.mutate(&h)

			_, err := NewDecoder(h, binary.LittleEndian, false, "x.kw")
			var fe *types.UnsupportedFeatureError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tt.feature, fe.Feature)
			assert.Equal(t, "x.kw", fe.Path)
		})
	}
}

func TestNewDecoder_NegativeSize(t *testing.T) {
	h := header(1, -2, 2, types.DataTypeByte)
	_, err := NewDecoder(h, binary.LittleEndian, false, "x.kw")

	var ce *types.CorruptedFileError
	assert.True(t, errors.As(err, &ce), "got %v", err)
}

func TestNewDecoder_SizeOverflow(t *testing.T) {
	tests := []struct {
		name              string
		comps, cols, rows int
	}{
		{"wraps negative", 8, 1 << 30, 1 << 30},
		{"wraps to zero", 1 << 20, 1 << 22, 1 << 22},
		{"sample width overflows", 1 << 30, 1 << 30, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := header(tt.comps, tt.cols, tt.rows, types.DataTypeShort)
			_, err := NewDecoder(h, binary.LittleEndian, true, "big.pic")

			var ce *types.CorruptedFileError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Contains(t, ce.Reason, "overflows")
		})
	}
}

func TestNewDecoder_ZeroDimensionWithHugeOthers(t *testing.T) {
	d, err := NewDecoder(header(1<<30, 0, 1<<30, types.DataTypeByte), binary.BigEndian, false, "x")
	require.NoError(t, err)
	assert.Equal(t, 0, d.FrameSize())
}

func TestBytesPerSample(t *testing.T) {
	tests := []struct {
		dt        types.DataType
		acc, over int
		want      int
	}{
		{types.DataTypeByte, 0, 0, 1},
		{types.DataTypeShort, 0, 0, 2},
		{types.DataTypeKW, 0, 0, 1},
		{types.DataTypeKW, 8, 0, 2},
		{types.DataTypeKW, 12, 0, 3},
		{types.DataTypeKW, 8, 2, 3},
		{types.DataTypeKW, -8, 0, 0},
	}
	for _, tt := range tests {
		h := types.Header{DataType: tt.dt, AccBits: tt.acc, OverBits: tt.over}
		got, err := BytesPerSample(h)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s acc=%d over=%d", tt.dt, tt.acc, tt.over)
	}

	_, err := BytesPerSample(types.Header{DataType: types.DataTypeReal})
	assert.Error(t, err)
}

func TestDecode_ByteWithOffset(t *testing.T) {
	d, err := NewDecoder(header(1, 3, 1, types.DataTypeByte), binary.BigEndian, false, "x")
	require.NoError(t, err)
	assert.Equal(t, 3, d.FrameSize())

	r, err := d.Decode(kwtest.Int8Samples(-128, 0, 127))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 128, 255}, r.Pix)
	assert.True(t, r.Normalized)
}

func TestDecode_TwoComponentsNoOffset(t *testing.T) {
	d, err := NewDecoder(header(2, 2, 1, types.DataTypeByte), binary.BigEndian, false, "x")
	require.NoError(t, err)

	r, err := d.Decode(kwtest.Int8Samples(-5, 5, -1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{-5, 5, -1, 1}, r.Pix)
	assert.False(t, r.Normalized)
}

func TestDecode_PrecisionScaling(t *testing.T) {
	h := header(1, 2, 1, types.DataTypeKW)
	h.AccBits = 8
	h.Precision = 8

	for _, order := range []binary.Endianness{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			d, err := NewDecoder(h, order, false, "x")
			require.NoError(t, err)
			assert.Equal(t, 2, d.BytesPerSample())

			r, err := d.Decode(kwtest.Int16Samples(order, 512, -256))
			require.NoError(t, err)
			assert.Equal(t, []float64{130, 127}, r.Pix)
		})
	}
}

func TestDecode_ShortComps2ScaledNoOffset(t *testing.T) {
	h := header(2, 1, 1, types.DataTypeShort)
	h.Precision = 2
	d, err := NewDecoder(h, binary.LittleEndian, false, "x")
	require.NoError(t, err)

	r, err := d.Decode(kwtest.Int16Samples(binary.LittleEndian, 6, -10))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2.5}, r.Pix)
	assert.True(t, r.Normalized)
}

func TestDecode_SwapAxes(t *testing.T) {
	// 2 rows, 3 columns, 2 components stored as (rows, comps, cols).
	d, err := NewDecoder(header(2, 3, 2, types.DataTypeByte), binary.BigEndian, true, "x")
	require.NoError(t, err)

	stored := kwtest.Int8Samples(
		0, 1, 2, // y0 c0
		10, 11, 12, // y0 c1
		20, 21, 22, // y1 c0
		30, 31, 32, // y1 c1
	)
	r, err := d.Decode(stored)
	require.NoError(t, err)

	rows, cols, comps := r.Shape()
	assert.Equal(t, [3]int{2, 3, 2}, [3]int{rows, cols, comps})
	for y := range 2 {
		for x := range 3 {
			assert.Equal(t, float64(20*y+x), r.At(y, x, 0), "y=%d x=%d c=0", y, x)
			assert.Equal(t, float64(20*y+10+x), r.At(y, x, 1), "y=%d x=%d c=1", y, x)
		}
	}
}

func TestDecode_WrongLength(t *testing.T) {
	d, err := NewDecoder(header(1, 2, 2, types.DataTypeByte), binary.BigEndian, false, "x")
	require.NoError(t, err)

	_, err = d.Decode(make([]byte, 3))
	assert.Error(t, err)
}

func TestDecode_EmptyFrame(t *testing.T) {
	d, err := NewDecoder(header(1, 0, 4, types.DataTypeByte), binary.BigEndian, false, "x")
	require.NoError(t, err)
	assert.Equal(t, 0, d.FrameSize())

	r, err := d.Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, r.Pix)
}

func BenchmarkDecode(b *testing.B) {
	h := header(3, 720, 576, types.DataTypeShort)
	h.Precision = 4
	d, err := NewDecoder(h, binary.BigEndian, true, "bench")
	if err != nil {
		b.Fatal(err)
	}
	raw := make([]byte, d.FrameSize())

	b.SetBytes(int64(len(raw)))
	b.ResetTimer()
	for b.Loop() {
		if _, err := d.Decode(raw); err != nil {
			b.Fatal(err)
		}
	}
}
