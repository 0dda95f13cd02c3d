// Package tagged parses the KW tagged-record header dialect.
//
// A tagged header is a sequence of variable-length records, each introduced
// by a record type byte:
//
//	0x18 sub count int16le...   integer group
//	0x1C sub len   ascii...     string
//	0x20                        end of header
//
// All multi-byte values are little-endian.
package tagged

import (
	"fmt"
	"io"

	"github.com/simonhull/kwpic/internal/binary"
	"github.com/simonhull/kwpic/internal/registry"
	"github.com/simonhull/kwpic/internal/types"
)

// parser implements registry.HeaderParser for tagged files
type parser struct{}

func init() {
	registry.Register(types.DialectTagged, &parser{})
}

// fieldKey identifies an integer group by sub-tag and value count.
type fieldKey struct {
	sub   byte
	count byte
}

// intFields maps each known integer group to the header fields it sets.
var intFields = map[fieldKey]func(h *types.Header, v []int16){
	{types.SubTagReserved, 1}: func(*types.Header, []int16) {},
	{types.SubTagComps, 2}: func(h *types.Header, v []int16) {
		h.Comps, h.Interleave = int(v[0]), int(v[1])
	},
	{types.SubTagChromaPhase, 1}: func(h *types.Header, v []int16) {
		h.ChromaPhase = int(v[0])
	},
	{types.SubTagFullSize, 4}: func(h *types.Header, v []int16) {
		h.FullWidth, h.FullHeight = int(v[0]), int(v[1])
		h.FieldFreq, h.Interlace = int(v[2]), int(v[3])
	},
	{types.SubTagActiveSize, 4}: func(h *types.Header, v []int16) {
		h.ActiveWidth, h.ActiveHeight = int(v[0]), int(v[1])
		h.AspectWidth, h.AspectHeight = int(v[2]), int(v[3])
	},
	{types.SubTagBits, 2}: func(h *types.Header, v []int16) {
		h.OverBits, h.AccBits = int(v[0]), int(v[1])
	},
	{types.SubTagLevels, 4}: func(h *types.Header, v []int16) {
		h.MinLum, h.MaxLum = int(v[0]), int(v[1])
		h.MinChrom, h.MaxChrom = int(v[2]), int(v[3])
	},
	{types.SubTagPosition, 3}: func(h *types.Header, v []int16) {
		h.PosX, h.PosY, h.PosZ = int(v[0]), int(v[1]), int(v[2])
	},
	{types.SubTagLength, 3}: func(h *types.Header, v []int16) {
		h.LenX, h.LenY, h.LenZ = int(v[0]), int(v[1]), int(v[2])
	},
}

// Parse reads tagged records until the end marker.
func (p *parser) Parse(r io.ReaderAt, size int64, path string, dialect types.Dialect) (*types.PicFile, error) {
	sr := binary.NewSafeReader(r, size, path)
	rd := binary.NewReader(sr, dialect.HeaderOffset(), binary.LittleEndian)

	file := &types.PicFile{
		Path:    path,
		Dialect: types.DialectTagged,
	}

	for {
		offset := rd.Offset()
		tag, err := binary.ReadValue[uint8](rd, "record type")
		if err != nil {
			return nil, fmt.Errorf("read KW header: %w", err)
		}

		switch tag {
		case types.RecordIntGroup:
			err = parseIntGroup(rd, file, offset)
		case types.RecordString:
			err = parseString(rd, file, offset)
		case types.RecordEnd:
			file.Header.DataType = types.DataTypeKW
			file.Header.Precision = file.Header.AccPrecision()
			file.DataOffset = rd.Offset()
			return file, nil
		default:
			file.Warn("header", offset, "unrecognised KW tag %d", tag)
		}
		if err != nil {
			return nil, fmt.Errorf("read KW header: %w", err)
		}
	}
}

// parseIntGroup reads one integer group and assigns it through intFields.
// Unknown (sub-tag, count) pairs are skipped by their declared length.
func parseIntGroup(rd *binary.Reader, file *types.PicFile, offset int64) error {
	cr := binary.NewChainReader(rd)
	sub := binary.ReadChained[uint8](cr, "int group sub-tag")
	count := binary.ReadChained[uint8](cr, "int group count")
	vals := make([]int16, count)
	for i := range vals {
		vals[i] = binary.ReadChained[int16](cr, "int group value")
	}
	if err := cr.Error(); err != nil {
		return err
	}

	assign, ok := intFields[fieldKey{sub, count}]
	if !ok {
		file.Warn("header", offset, "unrecognised KW int code %d or count %d", sub, count)
		return nil
	}
	assign(&file.Header, vals)
	return nil
}

// parseString reads one string record.
func parseString(rd *binary.Reader, file *types.PicFile, offset int64) error {
	cr := binary.NewChainReader(rd)
	sub := binary.ReadChained[uint8](cr, "string sub-tag")
	length := binary.ReadChained[uint8](cr, "string length")
	text := cr.String(int(length), "string value")
	if err := cr.Error(); err != nil {
		return err
	}

	switch sub {
	case types.SubTagAudit:
		file.Provenance = append(file.Provenance, text)
	case types.SubTagName:
		file.Header.PicName = text
	case types.SubTagCode:
		file.Header.Code = text
	default:
		file.Warn("header", offset, "unrecognised KW string code %d", sub)
	}
	return nil
}
