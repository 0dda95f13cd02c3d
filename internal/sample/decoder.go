// Package sample turns the raw bytes of one frame into a float64 raster.
package sample

import (
	"fmt"
	"math"
	"strconv"

	"github.com/simonhull/kwpic/internal/binary"
	"github.com/simonhull/kwpic/internal/types"
)

// levelOffset is added to every sample of a frame whose component count is
// not 2 (luminance and RGB data are stored relative to mid-grey).
const levelOffset = 128.0

// Decoder converts frames described by one header. It holds no per-frame
// state and may be reused for every frame of a stream.
type Decoder struct {
	order    binary.Endianness
	swapAxes bool

	bps       int
	rows      int
	cols      int
	comps     int
	frameSize int

	precision int
	offset    bool
}

// NewDecoder validates h and returns a decoder for its frames.
//
// The interleave, data type and resulting bytes per sample are checked here
// so that unsupported files fail before any frame is read. order is the
// byte order of 16-bit samples; swapAxes is set for data stored as
// (rows, components, columns).
func NewDecoder(h types.Header, order binary.Endianness, swapAxes bool, path string) (*Decoder, error) {
	if h.Interleave != 1 {
		return nil, &types.UnsupportedFeatureError{
			Path:    path,
			Feature: "interleave",
			Value:   strconv.Itoa(h.Interleave),
		}
	}

	bps, err := BytesPerSample(h)
	if err != nil {
		return nil, &types.UnsupportedFeatureError{
			Path:    path,
			Feature: "data type",
			Value:   h.DataType.String(),
		}
	}
	if bps != 1 && bps != 2 {
		return nil, &types.UnsupportedFeatureError{
			Path:    path,
			Feature: "bytes per sample",
			Value:   strconv.Itoa(bps),
		}
	}

	rows, cols, comps := h.FrameShape()
	if rows < 0 || cols < 0 || comps < 0 || h.LenZ < 0 {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Reason: fmt.Sprintf("negative picture size %dx%dx%d, %d frames", cols, rows, comps, h.LenZ),
		}
	}

	frameSize, ok := product(rows, cols, comps, bps)
	if !ok {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Reason: fmt.Sprintf("picture size %dx%dx%d overflows the frame size", cols, rows, comps),
		}
	}

	return &Decoder{
		order:     order,
		swapAxes:  swapAxes,
		bps:       bps,
		rows:      rows,
		cols:      cols,
		comps:     comps,
		frameSize: frameSize,
		precision: h.Precision,
		offset:    comps != 2,
	}, nil
}

// product multiplies non-negative factors. ok is false when the result
// does not fit in an int.
func product(factors ...int) (n int, ok bool) {
	n = 1
	for _, f := range factors {
		if f == 0 {
			return 0, true
		}
	}
	for _, f := range factors {
		if n > math.MaxInt/f {
			return 0, false
		}
		n *= f
	}
	return n, true
}

// BytesPerSample returns the stored width of one sample.
func BytesPerSample(h types.Header) (int, error) {
	switch h.DataType {
	case types.DataTypeKW:
		return types.CeilBytes(h.OverBits) + 1 + types.CeilBytes(h.AccBits), nil
	case types.DataTypeByte:
		return 1, nil
	case types.DataTypeShort:
		return 2, nil
	default:
		return 0, fmt.Errorf("no sample width for data type %s", h.DataType)
	}
}

// FrameSize returns the number of bytes one frame occupies on disk.
func (d *Decoder) FrameSize() int {
	return d.frameSize
}

// BytesPerSample returns the validated sample width, 1 or 2.
func (d *Decoder) BytesPerSample() int {
	return d.bps
}

// Decode converts exactly FrameSize bytes into a raster.
func (d *Decoder) Decode(raw []byte) (*types.Raster, error) {
	if len(raw) != d.frameSize {
		return nil, fmt.Errorf("decode frame: got %d bytes, want %d", len(raw), d.frameSize)
	}

	r := types.NewRaster(d.rows, d.cols, d.comps)
	for i := range r.Pix {
		r.Pix[i] = d.sample(raw, d.storedIndex(i))
	}
	d.normalize(r)
	return r, nil
}

// storedIndex maps an output sample index in (rows, cols, comps) order to
// its position in the stored frame.
func (d *Decoder) storedIndex(i int) int {
	if !d.swapAxes {
		return i
	}
	c := i % d.comps
	x := (i / d.comps) % d.cols
	y := i / (d.comps * d.cols)
	return (y*d.comps+c)*d.cols + x
}

func (d *Decoder) sample(raw []byte, i int) float64 {
	if d.bps == 1 {
		return float64(int8(raw[i]))
	}
	return float64(binary.Decode[int16](raw[2*i:2*i+2], d.order))
}

func (d *Decoder) normalize(r *types.Raster) {
	if d.precision > 0 {
		for i, v := range r.Pix {
			r.Pix[i] = math.Ldexp(v, -d.precision)
		}
		r.Normalized = true
	}
	if d.offset {
		for i := range r.Pix {
			r.Pix[i] += levelOffset
		}
		r.Normalized = true
	}
}
