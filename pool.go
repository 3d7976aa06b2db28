package bumparena

import (
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Pool hands out arenas so that each task owns one for its lifetime and
// returns it when done. Returned arenas are reset and kept for reuse.
// Pool methods are goroutine-safe; the arenas it hands out are not.
type Pool struct {
	mu     sync.Mutex
	idle   []*Arena
	closed bool

	size     int
	capacity int
	opts     []Option
	log      logrus.FieldLogger
}

// NewPool creates a pool that keeps up to size idle arenas, each created
// with the given initial capacity and options.
// If size <= 0, GOMAXPROCS is used. If capacity <= 0, DefaultCapacity is used.
func NewPool(size, capacity int, opts ...Option) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Pool{
		idle:     make([]*Arena, 0, size),
		size:     size,
		capacity: capacity,
		opts:     opts,
		log:      newConfig(opts).log,
	}
}

// Get returns an idle arena, or a new one if none is idle.
func (p *Pool) Get() (*Arena, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if n := len(p.idle); n > 0 {
		a := p.idle[n-1]
		a.pooled = false
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return a, nil
	}
	p.mu.Unlock()
	return New(p.capacity, p.opts...)
}

// Put resets a and keeps it for the next Get. If the pool is full or closed
// the arena is released instead. The caller must not use a afterwards.
// Putting an arena that is already idle returns ErrAlreadyPooled.
func (p *Pool) Put(a *Arena) error {
	if a == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if a.pooled {
		return ErrAlreadyPooled
	}
	if err := a.Reset(); err != nil {
		return errors.Wrap(err, "put arena")
	}
	if p.closed || len(p.idle) >= p.size {
		return a.Release()
	}
	a.pooled = true
	p.idle = append(p.idle, a)
	return nil
}

// Idle returns the number of arenas waiting for reuse.
func (p *Pool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// Close releases every idle arena. Arenas still checked out are released
// when they are Put back.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.closed = true
	idle := p.idle
	p.idle = nil
	p.mu.Unlock()

	var errs error
	for _, a := range idle {
		a.pooled = false
		errs = errors.CombineErrors(errs, a.Release())
	}
	p.log.WithField("released", len(idle)).Debug("arena pool closed")
	return errs
}
