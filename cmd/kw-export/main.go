// Command kw-export writes the frames of a picture file as a CBOR message
// sequence.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"

	"github.com/simonhull/kwpic"
	"github.com/simonhull/kwpic/internal/export"
)

func main() {
	var (
		path    = flag.String("path", "", "Picture file to read")
		out     = flag.String("out", "", "Output file (default stdout)")
		looping = flag.String("looping", "off", "Looping mode: off, repeat or reverse")
		limit   = flag.Int("limit", 0, "Stop after N frames (required when looping)")
	)
	flag.Parse()

	if *path == "" {
		log.Fatal("path is required")
	}
	mode, err := kwpic.ParseLooping(*looping)
	if err != nil {
		log.Fatal(err)
	}
	if mode != kwpic.LoopOff && *limit <= 0 {
		log.Fatal("limit is required when looping")
	}

	s, err := kwpic.Open(*path, kwpic.WithLooping(mode))
	if err != nil {
		log.Fatalf("open %s: %v", *path, err)
	}
	defer s.Close()

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	bw := bufio.NewWriter(w)
	n, err := export.Stream(bw, s, *limit)
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	if err := bw.Flush(); err != nil {
		log.Fatalf("write output: %v", err)
	}
	log.Printf("exported %d frames from %s", n, *path)
}
