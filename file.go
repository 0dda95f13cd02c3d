package kwpic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/kwpic/internal/audit"
	"github.com/simonhull/kwpic/internal/binary"
	"github.com/simonhull/kwpic/internal/registry"
	"github.com/simonhull/kwpic/internal/sample"
	"github.com/simonhull/kwpic/internal/types"
)

// Stream reads the frames of one picture file in order.
//
// A Stream holds the file open from Open until the last frame has been
// read, an error occurs, or Close is called, whichever comes first. It is
// not safe for concurrent use; independent streams share no state.
//
//	s, err := kwpic.Open("clip.kw")
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	for frame, err := range s.Frames() {
//		if err != nil {
//			return err
//		}
//		process(frame.Data)
//	}
type Stream struct {
	meta    *Metadata
	decoder *sample.Decoder
	looping Looping
	logger  *slog.Logger

	// nil once released
	reader *binary.SafeReader
	closer io.Closer

	dataOffset int64
	frameNo    int

	// sticky terminal state: io.EOF, ErrStreamClosed or a read failure
	err error
}

// Open opens a picture file, parses its header and prepares to decode
// frames.
//
// Open fails without producing a stream when the file matches neither
// header dialect, the header is truncated or corrupt, or the header
// describes data that cannot be decoded (interleave other than 1, or an
// unsupported data type or sample width). The file is closed in every
// failure case.
//
// Example:
//
//	s, err := kwpic.Open("clip.kw", kwpic.WithLooping(kwpic.LoopRepeat))
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	fmt.Println(s.Metadata().Audit)
func Open(path string, opts ...Option) (*Stream, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	s, err := openReader(f, stat.Size(), path, options)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// openReader builds a stream over an io.ReaderAt (internal, for testing).
// The caller owns r and attaches a closer if it has one.
func openReader(r io.ReaderAt, size int64, path string, options *openOptions) (*Stream, error) {
	if options.looping < LoopOff || options.looping > LoopReverse {
		return nil, fmt.Errorf("%s: %w", path, errInvalidLooping(options.looping))
	}

	file, err := parseHeader(r, size, path, options)
	if err != nil {
		return nil, err
	}

	decoder, err := sample.NewDecoder(file.Header, file.ByteOrder(), file.SwapAxes(), path)
	if err != nil {
		return nil, err
	}

	s := &Stream{
		meta:       newMetadata(file, options),
		decoder:    decoder,
		looping:    options.looping,
		logger:     options.logger,
		reader:     binary.NewSafeReader(r, size, path),
		dataOffset: file.DataOffset,
	}
	s.logger.Debug("stream opened",
		"path", path,
		"dialect", file.Dialect.String(),
		"frames", file.Header.LenZ,
		"looping", options.looping.String(),
	)
	return s, nil
}

// parseHeader selects the dialect and runs its header parser.
func parseHeader(r io.ReaderAt, size int64, path string, options *openOptions) (*types.PicFile, error) {
	dialect, err := types.DetectDialect(r, size, path)
	if err != nil {
		return nil, err
	}

	parser := registry.Get(dialect)
	if parser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for dialect %s", dialect),
		}
	}

	file, err := parser.Parse(r, size, path, dialect)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", dialect, err)
	}

	if options.ignoreWarnings {
		file.Warnings = nil
	}
	for _, w := range file.Warnings {
		options.logger.Warn("header warning",
			"path", path,
			"stage", w.Stage,
			"offset", w.Offset,
			"message", w.Message,
		)
	}
	if options.strictParsing && len(file.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", file.Warnings[0].Message)
	}

	return file, nil
}

func newMetadata(file *types.PicFile, options *openOptions) *Metadata {
	trail := audit.Build(filepath.Base(file.Path), file.Provenance,
		audit.Setting{Key: "path", Value: file.Path},
		audit.Setting{Key: "looping", Value: options.looping.String()},
	)
	return &Metadata{
		Path:       file.Path,
		Dialect:    file.Dialect,
		Header:     file.Header,
		Provenance: file.Provenance,
		Audit:      trail,
		Warnings:   file.Warnings,
	}
}

func errInvalidLooping(l Looping) error {
	return fmt.Errorf("invalid looping mode %s", l)
}

// Metadata returns the stream metadata. It is available before the first
// frame and remains valid after Close.
func (s *Stream) Metadata() *Metadata {
	return s.meta
}

// Next decodes the next frame.
//
// After the last frame Next returns io.EOF and releases the file. A read or
// decode failure also releases the file; every later call returns the same
// error. After Close, Next returns ErrStreamClosed.
func (s *Stream) Next() (*Frame, error) {
	if s.err != nil {
		return nil, s.err
	}

	index, ok := frameIndex(s.looping, s.meta.Header.LenZ, s.frameNo)
	if !ok {
		s.release(io.EOF)
		return nil, io.EOF
	}

	size := s.decoder.FrameSize()
	offset := frameOffset(s.dataOffset, index, size)
	what := fmt.Sprintf("frame %d", index)
	raw, err := s.readFrame(offset, size, what)
	if err != nil {
		err = fmt.Errorf("read %s: %w", what, err)
		s.release(err)
		return nil, err
	}

	data, err := s.decoder.Decode(raw)
	if err != nil {
		err = fmt.Errorf("%s: frame %d: %w", s.meta.Path, index, err)
		s.release(err)
		return nil, err
	}

	frame := &Frame{
		Data:     data,
		FrameNo:  s.frameNo,
		Index:    index,
		Type:     s.meta.Header.Code,
		Metadata: s.meta,
	}
	s.frameNo++
	return frame, nil
}

func (s *Stream) readFrame(offset int64, size int, what string) ([]byte, error) {
	if err := s.reader.Available(offset, size, what); err != nil {
		return nil, err
	}
	raw := make([]byte, size)
	if err := s.reader.ReadAt(raw, offset, what); err != nil {
		return nil, err
	}
	return raw, nil
}

// frameOffset returns where frame index starts. Offsets past math.MaxInt64
// saturate, which the bounds check then reports as truncation.
func frameOffset(dataOffset int64, index, size int) int64 {
	if size > 0 && int64(index) > (math.MaxInt64-dataOffset)/int64(size) {
		return math.MaxInt64
	}
	return dataOffset + int64(index)*int64(size)
}

// Frames returns an iterator over the remaining frames.
//
// Iteration stops after the last frame, or after yielding the first error.
// Breaking out of the loop closes the stream.
func (s *Stream) Frames() iter.Seq2[*Frame, error] {
	return func(yield func(*Frame, error) bool) {
		for {
			frame, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(frame, nil) {
				s.Close()
				return
			}
		}
	}
}

// Close releases the file. It is safe to call in any state and more than
// once.
func (s *Stream) Close() error {
	if s.err == nil {
		return s.release(ErrStreamClosed)
	}
	return nil
}

// FrameSize returns the number of bytes one frame occupies in the file.
func (s *Stream) FrameSize() int {
	return s.decoder.FrameSize()
}

// BytesPerSample returns the stored width of one sample, 1 or 2.
func (s *Stream) BytesPerSample() int {
	return s.decoder.BytesPerSample()
}

// Delivered returns the number of frames returned so far.
func (s *Stream) Delivered() int {
	return s.frameNo
}

// release moves the stream to its terminal state and closes the file.
func (s *Stream) release(reason error) error {
	s.err = reason
	s.reader = nil

	var err error
	if s.closer != nil {
		err = s.closer.Close()
		s.closer = nil
	}
	s.logger.Debug("stream closed",
		"path", s.meta.Path,
		"frames", s.frameNo,
		"reason", reason.Error(),
	)
	return err
}

// frameIndex maps a delivery sequence number to a frame of the file.
// ok is false when the stream is exhausted.
func frameIndex(mode Looping, frames, frameNo int) (index int, ok bool) {
	if frames <= 0 {
		return 0, false
	}
	switch mode {
	case LoopRepeat:
		return frameNo % frames, true
	case LoopReverse:
		if frames == 1 {
			return 0, true
		}
		period := 2 * (frames - 1)
		p := frameNo % period
		if p >= frames {
			p = period - p
		}
		return p, true
	default:
		return frameNo, frameNo < frames
	}
}

// Read opens path, calls fn for every frame and closes the file before
// returning, whatever happens.
//
// If fn returns ErrStop, Read stops and returns nil. Any other error from
// fn is returned as is.
//
// Example:
//
//	err := kwpic.Read("clip.kw", func(f *kwpic.Frame) error {
//		fmt.Println(f.FrameNo, f.Data.At(0, 0, 0))
//		return nil
//	})
func Read(path string, fn func(*Frame) error, opts ...Option) error {
	s, err := Open(path, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	for frame, err := range s.Frames() {
		if err != nil {
			return err
		}
		if err := fn(frame); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// ReadHeader parses the header of path and closes the file.
//
// Unlike Open, ReadHeader does not check that frames can be decoded, so it
// also describes files with unsupported interleave or data types.
func ReadHeader(path string, opts ...Option) (*Metadata, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	file, err := parseHeader(f, stat.Size(), path, options)
	if err != nil {
		return nil, err
	}
	return newMetadata(file, options), nil
}

// OpenContext opens a file with context support for cancellation.
//
// The context is checked before the file is opened. Header parsing reads a
// few hundred bytes and is not interrupted.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	s, err := kwpic.OpenContext(ctx, "clip.kw")
func OpenContext(ctx context.Context, path string, opts ...Option) (*Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple picture files concurrently.
//
// Headers are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. opts apply to
// every stream. Each stream is then read on its own, as with Open.
//
// If any file fails to open, all successfully opened streams are closed
// and an error is returned.
//
// Example:
//
//	streams, err := kwpic.OpenMany(ctx, paths, kwpic.WithStrictParsing())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, s := range streams {
//			s.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*Stream, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Stream, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			s, err := Open(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, s := range results {
			if s != nil {
				s.Close()
			}
		}
		return nil, err
	}

	return results, nil
}
