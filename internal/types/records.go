package types

// Tagged dialect record types.
const (
	RecordIntGroup = 0x18
	RecordString   = 0x1C
	RecordEnd      = 0x20
)

// Tagged dialect integer-group sub-tags.
const (
	SubTagReserved    = 33 // 1 value, ignored
	SubTagComps       = 34 // comps, interleave
	SubTagChromaPhase = 35 // chroma_phase
	SubTagFullSize    = 36 // full_width, full_height, field_freq, interlace
	SubTagActiveSize  = 37 // active_width, active_height, aspect_width, aspect_height
	SubTagBits        = 38 // over_bits, acc_bits
	SubTagLevels      = 39 // min_lum, max_lum, min_chrom, max_chrom
	SubTagPosition    = 40 // pos_x, pos_y, pos_z
	SubTagLength      = 41 // len_x, len_y, len_z
)

// Tagged dialect string sub-tags.
const (
	SubTagAudit = 97
	SubTagName  = 98
	SubTagCode  = 99
)

// Fixed-record dialect layout.
const (
	// PicRecordInts is the number of int32 geometry fields before the name.
	PicRecordInts = 23
	// PicNameSize is the width of the NUL-padded picture name.
	PicNameSize = 80
	// PicCodeSize is the width of the NUL-padded type code.
	PicCodeSize = 4
	// PicRecordSize is the encoded size of the header record body.
	PicRecordSize = PicRecordInts*4 + PicNameSize + PicCodeSize + 2*4
	// PicAuditLineSize is the fixed width of each provenance record.
	PicAuditLineSize = 80
)
