// Package kwpic reads multi-frame picture files written by the Kingswood
// video tools.
//
// Two header layouts are supported and detected automatically:
//
//   - KW tagged files, starting with the byte 0x10, whose header is a
//     sequence of little-endian tagged records.
//   - PIC-pipe files, starting with "PIC-PIPE" (big-endian) or "PIC-pipe"
//     (little-endian), whose header is a fixed record. Their samples are
//     stored component-planar within each row.
//
// Both decode to the same Header and to frames in (rows, columns,
// components) order.
//
// # Quick Start
//
//	s, err := kwpic.Open("clip.kw")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close()
//
//	fmt.Print(s.Metadata().Audit)
//	for frame, err := range s.Frames() {
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(frame.FrameNo, frame.Data.At(0, 0, 0))
//	}
//
// # Sample values
//
// Integer samples are widened to float64. When the header precision is
// positive they are divided by 2^precision, and unless the picture has
// exactly two components (colour difference data) 128 is added.
//
// # Streams
//
// A Stream is pull-based and holds one frame in flight. The file is closed
// when the last frame has been read, on the first error, on Close, or when
// a range over Frames is left early. Read wraps the whole sequence:
//
//	err := kwpic.Read("clip.pic", func(f *kwpic.Frame) error {
//		return sink.Put(f)
//	}, kwpic.WithLooping(kwpic.LoopRepeat))
//
// # Error Handling
//
// Fatal errors stop the stream: unrecognised files (UnsupportedFormatError),
// headers describing data that cannot be decoded (UnsupportedFeatureError),
// structurally invalid headers (CorruptedFileError) and short reads
// (TruncatedError). Unknown header records are not fatal; they are
// collected in Metadata.Warnings and logged through WithLogger.
package kwpic
