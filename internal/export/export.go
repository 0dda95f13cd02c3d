// Package export encodes picture streams as CBOR message sequences.
//
// A sequence is one start message, one image message per frame and one end
// message. Frame samples travel as an RFC 8746 multi-dimensional array
// (tag 40) wrapping a little-endian float64 typed array (tag 86), so any
// CBOR consumer that understands typed arrays can rebuild the raster
// without knowing this package.
package export

import (
	stdbinary "encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/simonhull/kwpic"
	"github.com/simonhull/kwpic/internal/types"
)

const (
	tagMultiDimArray = 40
	tagFloat64LE     = 86
)

// Message types.
const (
	TypeStart = "start"
	TypeImage = "image"
	TypeEnd   = "end"
)

// PixelsKey is the key of the raster inside an image message's data map.
const PixelsKey = "pixels"

// HeaderFields is the wire form of a picture header.
type HeaderFields struct {
	PicName      string `cbor:"pic_name"`
	Code         string `cbor:"code"`
	Comps        int    `cbor:"comps"`
	Interleave   int    `cbor:"interleave"`
	ChromaPhase  int    `cbor:"chroma_phase"`
	FullWidth    int    `cbor:"full_width"`
	FullHeight   int    `cbor:"full_height"`
	FieldFreq    int    `cbor:"field_freq"`
	Interlace    int    `cbor:"interlace"`
	ActiveWidth  int    `cbor:"active_width"`
	ActiveHeight int    `cbor:"active_height"`
	AspectWidth  int    `cbor:"aspect_width"`
	AspectHeight int    `cbor:"aspect_height"`
	AccBits      int    `cbor:"acc_bits"`
	OverBits     int    `cbor:"over_bits"`
	MinLum       int    `cbor:"min_lum"`
	MaxLum       int    `cbor:"max_lum"`
	MinChrom     int    `cbor:"min_chrom"`
	MaxChrom     int    `cbor:"max_chrom"`
	PosX         int    `cbor:"pos_x"`
	PosY         int    `cbor:"pos_y"`
	PosZ         int    `cbor:"pos_z"`
	LenX         int    `cbor:"len_x"`
	LenY         int    `cbor:"len_y"`
	LenZ         int    `cbor:"len_z"`
	DataType     string `cbor:"data_type"`
	Precision    int    `cbor:"precision"`
}

// StartMessage opens a sequence.
type StartMessage struct {
	Type     string       `cbor:"type"`
	Path     string       `cbor:"path"`
	Dialect  string       `cbor:"dialect"`
	Audit    string       `cbor:"audit"`
	Header   HeaderFields `cbor:"header"`
	Warnings []string     `cbor:"warnings,omitempty"`
}

// ImageMessage carries one frame.
type ImageMessage struct {
	Type        string              `cbor:"type"`
	ImageID     int                 `cbor:"image_id"`
	FrameType   string              `cbor:"frame_type"`
	SourceIndex int                 `cbor:"source_index"`
	Data        map[string]cbor.Tag `cbor:"data"`
}

// EndMessage closes a sequence.
type EndMessage struct {
	Type   string `cbor:"type"`
	Frames int    `cbor:"frames"`
}

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// Marshal encodes a message with deterministic (core) encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Start builds the start message for a stream's metadata.
func Start(meta *kwpic.Metadata) StartMessage {
	msg := StartMessage{
		Type:    TypeStart,
		Path:    meta.Path,
		Dialect: meta.Dialect.String(),
		Audit:   meta.Audit,
		Header:  headerFields(meta.Header),
	}
	for _, w := range meta.Warnings {
		msg.Warnings = append(msg.Warnings, w.String())
	}
	return msg
}

// Image builds the image message for a frame.
func Image(f *kwpic.Frame) ImageMessage {
	return ImageMessage{
		Type:        TypeImage,
		ImageID:     f.FrameNo,
		FrameType:   f.Type,
		SourceIndex: f.Index,
		Data:        map[string]cbor.Tag{PixelsKey: EncodeRaster(f.Data)},
	}
}

// End builds the end message after frames images.
func End(frames int) EndMessage {
	return EndMessage{Type: TypeEnd, Frames: frames}
}

func headerFields(h types.Header) HeaderFields {
	return HeaderFields{
		PicName:      h.PicName,
		Code:         h.Code,
		Comps:        h.Comps,
		Interleave:   h.Interleave,
		ChromaPhase:  h.ChromaPhase,
		FullWidth:    h.FullWidth,
		FullHeight:   h.FullHeight,
		FieldFreq:    h.FieldFreq,
		Interlace:    h.Interlace,
		ActiveWidth:  h.ActiveWidth,
		ActiveHeight: h.ActiveHeight,
		AspectWidth:  h.AspectWidth,
		AspectHeight: h.AspectHeight,
		AccBits:      h.AccBits,
		OverBits:     h.OverBits,
		MinLum:       h.MinLum,
		MaxLum:       h.MaxLum,
		MinChrom:     h.MinChrom,
		MaxChrom:     h.MaxChrom,
		PosX:         h.PosX,
		PosY:         h.PosY,
		PosZ:         h.PosZ,
		LenX:         h.LenX,
		LenY:         h.LenY,
		LenZ:         h.LenZ,
		DataType:     h.DataType.String(),
		Precision:    h.Precision,
	}
}

// EncodeRaster wraps r as a tag 40 multi-dimensional array of shape
// [rows, cols, comps] holding a tag 86 float64 little-endian typed array.
func EncodeRaster(r *types.Raster) cbor.Tag {
	buf := make([]byte, 8*len(r.Pix))
	for i, v := range r.Pix {
		stdbinary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return cbor.Tag{
		Number: tagMultiDimArray,
		Content: []any{
			[]int{r.Rows, r.Cols, r.Comps},
			cbor.Tag{Number: tagFloat64LE, Content: buf},
		},
	}
}

// DecodeRaster rebuilds a raster from a tag produced by EncodeRaster.
func DecodeRaster(tag cbor.Tag) (*types.Raster, error) {
	if tag.Number != tagMultiDimArray {
		return nil, fmt.Errorf("expected multidim tag 40, got %d", tag.Number)
	}

	items, ok := tag.Content.([]any)
	if !ok || len(items) != 2 {
		return nil, errors.New("invalid multidim array content")
	}

	dimsRaw, ok := items[0].([]any)
	if !ok || len(dimsRaw) != 3 {
		return nil, errors.New("invalid multidim dimensions")
	}
	var dims [3]int
	for i, d := range dimsRaw {
		n, err := toInt(d)
		if err != nil {
			return nil, err
		}
		dims[i] = n
	}

	typed, ok := items[1].(cbor.Tag)
	if !ok || typed.Number != tagFloat64LE {
		return nil, errors.New("expected float64 little-endian typed array")
	}
	data, ok := typed.Content.([]byte)
	if !ok {
		return nil, fmt.Errorf("unsupported typed array content %T", typed.Content)
	}

	if len(data)%8 != 0 || !dimsMatch(dims, len(data)/8) {
		return nil, fmt.Errorf("dimension mismatch: %v for %d bytes", dims, len(data))
	}

	r := types.NewRaster(dims[0], dims[1], dims[2])
	for i := range r.Pix {
		r.Pix[i] = math.Float64frombits(stdbinary.LittleEndian.Uint64(data[i*8:]))
	}
	return r, nil
}

// dimsMatch reports whether dims are non-negative and multiply to n
// without overflow.
func dimsMatch(dims [3]int, n int) bool {
	for _, d := range dims {
		if d < 0 {
			return false
		}
		if d == 0 {
			return n == 0
		}
	}
	total := 1
	for _, d := range dims {
		if total > n/d {
			return false
		}
		total *= d
	}
	return total == n
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if int64(int(n)) != n {
			return 0, fmt.Errorf("dimension %d out of range", n)
		}
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("dimension %d out of range", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("unsupported int type %T", v)
	}
}

// Writer writes a CBOR message sequence.
type Writer struct {
	enc    *cbor.Encoder
	frames int
}

// NewWriter returns a Writer encoding to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: encMode.NewEncoder(w)}
}

// WriteStart writes the start message.
func (w *Writer) WriteStart(meta *kwpic.Metadata) error {
	return w.enc.Encode(Start(meta))
}

// WriteFrame writes one image message.
func (w *Writer) WriteFrame(f *kwpic.Frame) error {
	if err := w.enc.Encode(Image(f)); err != nil {
		return fmt.Errorf("encode frame %d: %w", f.FrameNo, err)
	}
	w.frames++
	return nil
}

// WriteEnd writes the end message with the number of frames written.
func (w *Writer) WriteEnd() error {
	return w.enc.Encode(End(w.frames))
}

// Stream writes the whole of s as a message sequence and returns the number
// of frames written. A positive limit stops after that many frames; looping
// streams need one to end.
func Stream(out io.Writer, s *kwpic.Stream, limit int) (int, error) {
	w := NewWriter(out)
	if err := w.WriteStart(s.Metadata()); err != nil {
		return 0, err
	}
	for frame, err := range s.Frames() {
		if err != nil {
			return w.frames, err
		}
		if err := w.WriteFrame(frame); err != nil {
			return w.frames, err
		}
		if limit > 0 && w.frames >= limit {
			break
		}
	}
	return w.frames, w.WriteEnd()
}
