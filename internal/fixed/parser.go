// Package fixed parses the fixed-record "PIC-pipe" header dialect.
//
// After the 8-byte marker the header is a length-prefixed record of
// 23 int32 geometry fields, an 80-byte name, a 4-byte code, and the data
// type and precision as int32. Provenance lines follow as (int32 length,
// 80 bytes) pairs ending with a zero length. The marker's case selects the
// byte order of every multi-byte value in the file.
package fixed

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/kwpic/internal/binary"
	"github.com/simonhull/kwpic/internal/registry"
	"github.com/simonhull/kwpic/internal/types"
)

// parser implements registry.HeaderParser for fixed-record files
type parser struct{}

func init() {
	registry.Register(types.DialectPicPipeBE, &parser{})
	registry.Register(types.DialectPicPipeLE, &parser{})
}

// Parse reads the header record and the provenance lines.
func (p *parser) Parse(r io.ReaderAt, size int64, path string, dialect types.Dialect) (*types.PicFile, error) {
	order := dialect.ByteOrder()
	sr := binary.NewSafeReader(r, size, path)
	rd := binary.NewReader(sr, dialect.HeaderOffset(), order)

	file := &types.PicFile{
		Path:    path,
		Dialect: dialect,
	}

	lengthOffset := rd.Offset()
	length, err := binary.ReadValue[int32](rd, "header record length")
	if err != nil {
		return nil, fmt.Errorf("read PIC-pipe header: %w", err)
	}
	if _, err := rd.ReadBytes(4, "reserved header bytes"); err != nil {
		return nil, fmt.Errorf("read PIC-pipe header: %w", err)
	}

	bodySize := int(length) - 4
	if bodySize < types.PicRecordSize {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Offset: lengthOffset,
			Reason: fmt.Sprintf("header record length %d, need at least %d", length, types.PicRecordSize+4),
		}
	}

	bodyOffset := rd.Offset()
	body, err := rd.ReadBytes(bodySize, "header record")
	if err != nil {
		return nil, fmt.Errorf("read PIC-pipe header: %w", err)
	}
	if bodySize > types.PicRecordSize {
		file.Warn("header", bodyOffset, "header record has %d unused bytes", bodySize-types.PicRecordSize)
	}

	header, err := unpackHeader(body, order, path)
	if err != nil {
		return nil, err
	}
	if !header.DataType.Valid() {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Offset: bodyOffset + types.PicRecordSize - 8,
			Reason: fmt.Sprintf("unknown data type %d", int(header.DataType)),
		}
	}
	file.Header = header

	if err := parseProvenance(rd, file); err != nil {
		return nil, err
	}

	file.DataOffset = rd.Offset()
	return file, nil
}

// unpackHeader decodes the fixed header record body.
func unpackHeader(body []byte, order binary.Endianness, path string) (types.Header, error) {
	sr := binary.NewSafeReader(bytes.NewReader(body), int64(len(body)), path)
	cr := binary.NewChainReader(binary.NewReader(sr, 0, order))

	var ints [types.PicRecordInts]int
	for i := range ints {
		ints[i] = int(binary.ReadChained[int32](cr, "header field"))
	}
	name := cr.Bytes(types.PicNameSize, "picture name")
	code := cr.Bytes(types.PicCodeSize, "type code")
	dataType := binary.ReadChained[int32](cr, "data type")
	precision := binary.ReadChained[int32](cr, "precision")
	if err := cr.Error(); err != nil {
		return types.Header{}, fmt.Errorf("unpack PIC-pipe header: %w", err)
	}

	return types.Header{
		Comps:        ints[0],
		Interleave:   ints[1],
		ChromaPhase:  ints[2],
		FullWidth:    ints[3],
		FullHeight:   ints[4],
		FieldFreq:    ints[5],
		Interlace:    ints[6],
		ActiveWidth:  ints[7],
		ActiveHeight: ints[8],
		AspectWidth:  ints[9],
		AspectHeight: ints[10],
		AccBits:      ints[11],
		OverBits:     ints[12],
		MinLum:       ints[13],
		MaxLum:       ints[14],
		MinChrom:     ints[15],
		MaxChrom:     ints[16],
		PosX:         ints[17],
		PosY:         ints[18],
		PosZ:         ints[19],
		LenX:         ints[20],
		LenY:         ints[21],
		LenZ:         ints[22],
		PicName:      trimNUL(name),
		Code:         trimNUL(code),
		DataType:     types.DataType(dataType),
		Precision:    int(precision),
	}, nil
}

// parseProvenance reads (length, text) records until a zero length.
func parseProvenance(rd *binary.Reader, file *types.PicFile) error {
	for {
		offset := rd.Offset()
		length, err := binary.ReadValue[int32](rd, "audit line length")
		if err != nil {
			return fmt.Errorf("read PIC-pipe audit: %w", err)
		}
		if length == 0 {
			return nil
		}
		if length < 0 {
			return &types.CorruptedFileError{
				Path:   file.Path,
				Offset: offset,
				Reason: fmt.Sprintf("negative audit line length %d", length),
			}
		}

		text, err := rd.ReadBytes(types.PicAuditLineSize, "audit line")
		if err != nil {
			return fmt.Errorf("read PIC-pipe audit: %w", err)
		}
		if int(length) < len(text) {
			text = text[:length]
		}
		file.Provenance = append(file.Provenance, string(text))
	}
}

// trimNUL strips NUL padding from both ends of a fixed-width text field.
func trimNUL(b []byte) string {
	return strings.Trim(string(b), "\x00")
}
