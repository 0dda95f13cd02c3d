package kwpic

import (
	"fmt"
	"log/slog"
)

// Looping selects what a stream does after its last frame.
type Looping int

const (
	// LoopOff ends the stream with io.EOF after the last frame.
	LoopOff Looping = iota
	// LoopRepeat restarts from the first frame forever.
	LoopRepeat
	// LoopReverse plays backwards to the first frame, then forwards
	// again, forever. The end frames are not repeated.
	LoopReverse
)

var loopingNames = [...]string{"off", "repeat", "reverse"}

// String returns the configuration name of the mode.
func (l Looping) String() string {
	if l >= LoopOff && l <= LoopReverse {
		return loopingNames[l]
	}
	return fmt.Sprintf("Looping(%d)", int(l))
}

// ParseLooping converts "off", "repeat" or "reverse" to a Looping mode.
func ParseLooping(s string) (Looping, error) {
	for i, name := range loopingNames {
		if s == name {
			return Looping(i), nil
		}
	}
	return LoopOff, fmt.Errorf("invalid looping mode %q (want off, repeat or reverse)", s)
}

// Option configures behavior when opening picture files.
//
// Example:
//
//	s, err := kwpic.Open("clip.kw",
//	    kwpic.WithLooping(kwpic.LoopRepeat),
//	    kwpic.WithStrictParsing(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	looping        Looping
	logger         *slog.Logger
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Suppress all warnings
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		looping: LoopOff,
		logger:  slog.New(slog.DiscardHandler),
	}
}

// WithLooping sets what happens after the last frame. The default is
// LoopOff.
//
// Looping streams never end on their own; stop them with Close, a break
// out of Frames, or ErrStop from a Read callback.
func WithLooping(mode Looping) Option {
	return func(o *openOptions) {
		o.looping = mode
	}
}

// WithLogger sets the logger used for parse warnings and stream lifecycle
// events. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, kwpic continues when it meets unknown header records or an
// oversized fixed header, returning warnings alongside the metadata.
//
// Example:
//
//	s, err := kwpic.Open("clip.kw", kwpic.WithStrictParsing())
//	// err != nil if ANY issue is encountered
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Metadata.Warnings will always be empty and nothing is logged for them.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}
