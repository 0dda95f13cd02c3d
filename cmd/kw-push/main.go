// Command kw-push sends the frames of a picture file to a ZeroMQ PULL
// socket as CBOR messages.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simonhull/kwpic"
	"github.com/simonhull/kwpic/internal/publish"
)

func main() {
	var (
		path     = flag.String("path", "", "Picture file to read")
		endpoint = flag.String("endpoint", "tcp://localhost:31001", "ZMQ endpoint")
		bind     = flag.Bool("bind", false, "Bind the endpoint instead of connecting")
		looping  = flag.String("looping", "off", "Looping mode: off, repeat or reverse")
		limit    = flag.Int("limit", 0, "Stop after N frames (0 = until the stream ends)")
		linger   = flag.Duration("linger", 2*time.Second, "Time to wait before exit so queued messages are delivered")
		debug    = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *path == "" {
		log.Fatal("path is required")
	}
	mode, err := kwpic.ParseLooping(*looping)
	if err != nil {
		log.Fatal(err)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := kwpic.Open(*path, kwpic.WithLooping(mode), kwpic.WithLogger(logger))
	if err != nil {
		log.Fatalf("open %s: %v", *path, err)
	}
	defer s.Close()

	pub, err := publish.Dial(*endpoint, *bind, logger)
	if err != nil {
		log.Fatalf("publisher: %v", err)
	}
	defer pub.Close()

	n, err := pub.Publish(ctx, s, *limit)
	if err != nil && ctx.Err() == nil {
		log.Fatalf("publish: %v", err)
	}
	logger.Info("pushed frames", "path", *path, "endpoint", *endpoint, "frames", n)

	select {
	case <-time.After(*linger):
	case <-ctx.Done():
	}
}
