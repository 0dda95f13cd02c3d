// Command kw-dump prints the header, warnings and audit trail of picture
// files, and optionally per-frame sample statistics.
//
//	kw-dump [-frames N] [-audit=false] file...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/simonhull/kwpic"
)

func main() {
	var (
		frames  = flag.Int("frames", 0, "Print statistics for the first N frames of each file")
		showAud = flag.Bool("audit", true, "Print the audit trail")
		headers = flag.Bool("header-only", false, "Only parse headers; also describes files that cannot be decoded")
		verbose = flag.Bool("v", false, "Log parse warnings and stream events to stderr")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: kw-dump [flags] <file.kw|file.pic>...")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var opts []kwpic.Option
	if *verbose {
		opts = append(opts, kwpic.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	if *headers {
		for _, path := range flag.Args() {
			meta, err := kwpic.ReadHeader(path, opts...)
			if err != nil {
				log.Printf("%s: %v", path, err)
				continue
			}
			printMetadata(meta, *showAud)
		}
		return
	}

	streams, err := kwpic.OpenMany(context.Background(), flag.Args(), opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		for _, s := range streams {
			s.Close()
		}
	}()

	for _, s := range streams {
		printMetadata(s.Metadata(), *showAud)
		fmt.Printf("  frame bytes: %d, %d per sample\n", s.FrameSize(), s.BytesPerSample())
		for i := 0; i < *frames; i++ {
			frame, err := s.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Printf("%s: %v", s.Metadata().Path, err)
				}
				break
			}
			printFrame(frame)
		}
		fmt.Println()
	}
}

func printMetadata(meta *kwpic.Metadata, showAudit bool) {
	h := meta.Header
	fmt.Printf("%s (%s)\n", meta.Path, meta.Dialect)
	fmt.Printf("  name:        %q\n", h.PicName)
	fmt.Printf("  code:        %q\n", h.Code)
	fmt.Printf("  data type:   %s, precision %d\n", h.DataType, h.Precision)
	fmt.Printf("  size:        %dx%d, %d comps, %d frames\n", h.LenX, h.LenY, h.Comps, h.LenZ)
	fmt.Printf("  interleave:  %d, chroma phase %d\n", h.Interleave, h.ChromaPhase)
	fmt.Printf("  full:        %dx%d @ %d, interlace %d\n", h.FullWidth, h.FullHeight, h.FieldFreq, h.Interlace)
	fmt.Printf("  active:      %dx%d, aspect %d:%d\n", h.ActiveWidth, h.ActiveHeight, h.AspectWidth, h.AspectHeight)
	fmt.Printf("  bits:        acc %d, over %d\n", h.AccBits, h.OverBits)
	fmt.Printf("  levels:      lum %d..%d, chrom %d..%d\n", h.MinLum, h.MaxLum, h.MinChrom, h.MaxChrom)
	fmt.Printf("  position:    %d,%d,%d\n", h.PosX, h.PosY, h.PosZ)
	for _, w := range meta.Warnings {
		fmt.Printf("  warning:     %s\n", w)
	}
	if showAudit {
		fmt.Println("  audit:")
		fmt.Print(meta.Audit)
	}
}

func printFrame(f *kwpic.Frame) {
	lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, v := range f.Data.Pix {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}
	mean := 0.0
	if n := len(f.Data.Pix); n > 0 {
		mean = sum / float64(n)
	}
	rows, cols, comps := f.Data.Shape()
	fmt.Printf("  frame %d: %dx%dx%d min %.3f max %.3f mean %.3f\n", f.FrameNo, rows, cols, comps, lo, hi, mean)
}
