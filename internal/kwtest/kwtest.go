// Package kwtest builds synthetic picture files for tests and tools.
//
// The encoders here write just enough of each dialect to exercise the
// decoder; they are not a general purpose writer.
package kwtest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/kwpic/internal/binary"
	"github.com/simonhull/kwpic/internal/types"
)

// IntRecord encodes a tagged integer-group record.
func IntRecord(sub byte, vals ...int16) []byte {
	buf := &bytes.Buffer{}
	sw := binary.NewSafeWriter(buf)
	_ = sw.WriteBytes([]byte{types.RecordIntGroup, sub, byte(len(vals))})
	for _, v := range vals {
		_ = binary.WriteLE(sw, v)
	}
	return buf.Bytes()
}

// StringRecord encodes a tagged string record.
func StringRecord(sub byte, s string) []byte {
	return append([]byte{types.RecordString, sub, byte(len(s))}, s...)
}

// HeaderRecords returns the tagged records describing h, in the order the
// legacy tools wrote them.
func HeaderRecords(h types.Header) [][]byte {
	return [][]byte{
		StringRecord(types.SubTagName, h.PicName),
		StringRecord(types.SubTagCode, h.Code),
		IntRecord(types.SubTagComps, int16(h.Comps), int16(h.Interleave)),
		IntRecord(types.SubTagChromaPhase, int16(h.ChromaPhase)),
		IntRecord(types.SubTagFullSize, int16(h.FullWidth), int16(h.FullHeight), int16(h.FieldFreq), int16(h.Interlace)),
		IntRecord(types.SubTagActiveSize, int16(h.ActiveWidth), int16(h.ActiveHeight), int16(h.AspectWidth), int16(h.AspectHeight)),
		IntRecord(types.SubTagBits, int16(h.OverBits), int16(h.AccBits)),
		IntRecord(types.SubTagLevels, int16(h.MinLum), int16(h.MaxLum), int16(h.MinChrom), int16(h.MaxChrom)),
		IntRecord(types.SubTagPosition, int16(h.PosX), int16(h.PosY), int16(h.PosZ)),
		IntRecord(types.SubTagLength, int16(h.LenX), int16(h.LenY), int16(h.LenZ)),
	}
}

// EncodeTagged returns a tagged-dialect file: the marker, the given
// records, one string record per provenance line, the end marker, and data.
func EncodeTagged(records [][]byte, provenance []string, data []byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteByte(types.TaggedMarker)
	for _, r := range records {
		buf.Write(r)
	}
	for _, line := range provenance {
		buf.Write(StringRecord(types.SubTagAudit, line))
	}
	buf.WriteByte(types.RecordEnd)
	buf.Write(data)
	return buf.Bytes()
}

// EncodePicPipe returns a fixed-record file in the given byte order.
func EncodePicPipe(h types.Header, provenance []string, data []byte, order binary.Endianness) []byte {
	return EncodePicPipeRecord(h, provenance, data, order, 0)
}

// EncodePicPipeRecord is EncodePicPipe with extra zero bytes appended to
// the header record, for exercising oversize records.
func EncodePicPipeRecord(h types.Header, provenance []string, data []byte, order binary.Endianness, extra int) []byte {
	buf := &bytes.Buffer{}
	sw := binary.NewSafeWriter(buf)

	if order == binary.BigEndian {
		_ = sw.WriteString(types.PicPipeMarkerBE)
	} else {
		_ = sw.WriteString(types.PicPipeMarkerLE)
	}
	_ = binary.WriteEndian(sw, int32(types.PicRecordSize+4+extra), order)
	_ = sw.WriteBytes(make([]byte, 4))

	for _, v := range []int{
		h.Comps, h.Interleave, h.ChromaPhase,
		h.FullWidth, h.FullHeight, h.FieldFreq, h.Interlace,
		h.ActiveWidth, h.ActiveHeight, h.AspectWidth, h.AspectHeight,
		h.AccBits, h.OverBits,
		h.MinLum, h.MaxLum, h.MinChrom, h.MaxChrom,
		h.PosX, h.PosY, h.PosZ,
		h.LenX, h.LenY, h.LenZ,
	} {
		_ = binary.WriteEndian(sw, int32(v), order)
	}
	_ = sw.WritePadded(h.PicName, types.PicNameSize)
	_ = sw.WritePadded(h.Code, types.PicCodeSize)
	_ = binary.WriteEndian(sw, int32(h.DataType), order)
	_ = binary.WriteEndian(sw, int32(h.Precision), order)
	_ = sw.WriteBytes(make([]byte, extra))

	for _, line := range provenance {
		_ = binary.WriteEndian(sw, int32(len(line)), order)
		_ = sw.WritePadded(line, types.PicAuditLineSize)
	}
	_ = binary.WriteEndian(sw, int32(0), order)
	_ = sw.WriteBytes(data)
	return buf.Bytes()
}

// Int8Samples packs signed bytes.
func Int8Samples(vals ...int8) []byte {
	out := make([]byte, len(vals))
	for i, v := range vals {
		out[i] = byte(v)
	}
	return out
}

// Int16Samples packs signed 16-bit samples in the given byte order.
func Int16Samples(order binary.Endianness, vals ...int16) []byte {
	buf := &bytes.Buffer{}
	sw := binary.NewSafeWriter(buf)
	for _, v := range vals {
		_ = binary.WriteEndian(sw, v, order)
	}
	return buf.Bytes()
}

// WriteFile writes data to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatal(err)
	}
	return path
}
