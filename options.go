package bumparena

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type config struct {
	mem  Allocator
	zero bool
	out  io.Writer
	log  logrus.FieldLogger
}

// Option configures an Arena.
type Option func(*config)

// WithAllocator sets the memory manager the arena takes its buffer from.
// Defaults to DefaultAllocator.
func WithAllocator(m Allocator) Option {
	return func(c *config) {
		if m != nil {
			c.mem = m
		}
	}
}

// WithZeroing controls whether Alloc clears the returned region. Enabled by
// default. Buffers fresh from growth are always zero; with zeroing disabled a
// region may hold bytes written before the last Reset.
func WithZeroing(zero bool) Option {
	return func(c *config) { c.zero = zero }
}

// WithOutput sets where PrintStats writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.out = w
		}
	}
}

// WithLogger sets the logger for lifecycle and growth events.
// By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func newConfig(opts []Option) config {
	c := config{
		mem:  DefaultAllocator,
		zero: true,
		out:  os.Stdout,
		log:  discardLogger,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
