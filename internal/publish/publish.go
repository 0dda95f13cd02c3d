// Package publish pushes decoded frames to a ZeroMQ endpoint.
//
// Each ZMQ message is one CBOR message from package export, so a PULL
// socket sees the same start, image and end sequence that kw-export writes
// to disk.
package publish

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pebbe/zmq4"

	"github.com/simonhull/kwpic"
	"github.com/simonhull/kwpic/internal/export"
)

// Sender is the part of a ZMQ socket the publisher needs.
type Sender interface {
	SendBytes(data []byte, flags zmq4.Flag) (int, error)
	Close() error
}

// Publisher sends picture streams over a PUSH socket.
type Publisher struct {
	socket Sender
	logger *slog.Logger
}

// Dial creates a PUSH socket and connects it to endpoint, or binds it when
// bind is set.
func Dial(endpoint string, bind bool, logger *slog.Logger) (*Publisher, error) {
	socket, err := zmq4.NewSocket(zmq4.PUSH)
	if err != nil {
		return nil, err
	}
	if bind {
		err = socket.Bind(endpoint)
	} else {
		err = socket.Connect(endpoint)
	}
	if err != nil {
		_ = socket.Close()
		return nil, fmt.Errorf("zmq %s: %w", endpoint, err)
	}
	return New(socket, logger), nil
}

// New wraps an existing socket.
func New(socket Sender, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Publisher{socket: socket, logger: logger}
}

// Send encodes msg and sends it as one ZMQ message.
func (p *Publisher) Send(msg any) error {
	payload, err := export.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := p.socket.SendBytes(payload, 0); err != nil {
		return fmt.Errorf("zmq send: %w", err)
	}
	return nil
}

// Publish sends the start message, then frames from s until the stream ends,
// limit frames have been sent (when positive) or ctx is done, then the end
// message. It returns the number of frames sent.
func (p *Publisher) Publish(ctx context.Context, s *kwpic.Stream, limit int) (int, error) {
	meta := s.Metadata()
	if err := p.Send(export.Start(meta)); err != nil {
		return 0, err
	}

	sent := 0
	for frame, err := range s.Frames() {
		if err != nil {
			return sent, err
		}
		if err := p.Send(export.Image(frame)); err != nil {
			return sent, err
		}
		sent++
		if sent%100 == 0 {
			p.logger.Info("publish progress", "path", meta.Path, "frames", sent)
		}
		if limit > 0 && sent >= limit {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	if err := p.Send(export.End(sent)); err != nil {
		return sent, err
	}
	p.logger.Debug("publish done", "path", meta.Path, "frames", sent)
	return sent, ctx.Err()
}

// Close closes the socket.
func (p *Publisher) Close() error {
	return p.socket.Close()
}
