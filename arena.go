package bumparena

import (
	"math"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// DefaultCapacity is the initial capacity of arenas created by a Pool
// when no capacity is given (64 KiB).
const DefaultCapacity = 1 << 16

var arenaSeq atomic.Uint64

// Arena is a linear allocator over a single contiguous, growable buffer.
// Not goroutine-safe: give each goroutine its own arena, or take them from a Pool.
type Arena struct {
	id  uint64
	gen uint64 // bumped by Reset
	buf []byte // len(buf) is the capacity
	off int    // next free byte
	cfg config

	peak   int
	grows  int
	resets int
	allocs int

	released bool
	pooled   bool // idle in a Pool
}

// New creates an arena with initialCapacity bytes of backing memory.
// A capacity of 0 is allowed; the first allocation grows the buffer.
func New(initialCapacity int, opts ...Option) (*Arena, error) {
	if initialCapacity < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "initial capacity %d", initialCapacity)
	}
	cfg := newConfig(opts)
	buf, err := cfg.mem.Allocate(initialCapacity)
	if err != nil {
		cfg.log.WithError(err).WithField("capacity", initialCapacity).Warn("arena allocation failed")
		return nil, errors.Mark(errors.Wrapf(err, "allocate %d byte arena", initialCapacity), ErrAllocationFailed)
	}
	a := &Arena{id: arenaSeq.Add(1), buf: buf, cfg: cfg}
	a.log().Debug("arena created")
	return a, nil
}

// Alloc reserves size bytes aligned to alignment and returns a handle to them.
// The region is zeroed unless the arena was created with WithZeroing(false).
// If the buffer is too small it is grown once, by at least
// max(2*capacity+padding, used+padding+size) bytes.
func (a *Arena) Alloc(size, alignment int) (Block, error) {
	if a.released {
		return Block{}, ErrReleased
	}
	if size < 0 {
		return Block{}, errors.Wrapf(ErrInvalidSize, "alloc %d bytes", size)
	}
	if !validAlignment(alignment) {
		return Block{}, errors.Wrapf(ErrInvalidAlignment, "alignment %d", alignment)
	}

	pad := padding(a.off, alignment)
	if size > len(a.buf)-a.off-pad {
		if err := a.growFor(pad, size); err != nil {
			return Block{}, err
		}
	}

	start := a.off + pad
	if a.cfg.zero {
		clear(a.buf[start : start+size])
	}
	a.off = start + size
	a.peak = max(a.peak, a.off)
	a.allocs++
	return Block{arena: a.id, gen: a.gen, off: start, size: size}, nil
}

// AllocBytes is Alloc followed by Bytes. The slice is only valid until the
// next growth, Reset or Release; keep the Block to reach the region after that.
func (a *Arena) AllocBytes(size, alignment int) ([]byte, Block, error) {
	b, err := a.Alloc(size, alignment)
	if err != nil {
		return nil, Block{}, err
	}
	return a.buf[b.off : b.off+b.size : b.off+b.size], b, nil
}

// Copy allocates len(src) bytes and copies src into them.
func (a *Arena) Copy(src []byte) (Block, error) {
	dst, b, err := a.AllocBytes(len(src), 1)
	if err != nil {
		return Block{}, err
	}
	copy(dst, src)
	return b, nil
}

// Bytes returns the region b refers to. The slice aliases the current buffer
// and must not be used after the next growth, Reset or Release.
func (a *Arena) Bytes(b Block) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}
	if b.arena != a.id {
		return nil, ErrForeignBlock
	}
	if b.gen != a.gen {
		return nil, ErrStaleBlock
	}
	return a.buf[b.off : b.off+b.size : b.off+b.size], nil
}

// Grow enlarges the backing buffer by additional bytes. Used bytes and all
// live Blocks are preserved. On failure the arena is unchanged.
func (a *Arena) Grow(additional int) error {
	if a.released {
		return ErrReleased
	}
	if additional < 0 {
		return errors.Wrapf(ErrInvalidSize, "grow by %d bytes", additional)
	}
	if additional == 0 {
		return nil
	}
	capacity := len(a.buf)
	if additional > math.MaxInt-capacity {
		return errors.Wrapf(ErrReallocationFailed, "growing %d bytes by %d overflows", capacity, additional)
	}
	buf, err := a.cfg.mem.Reallocate(capacity+additional, a.buf)
	if err != nil {
		a.log().WithError(err).WithField("additional", additional).Warn("arena growth failed")
		return errors.Mark(errors.Wrapf(err, "grow arena from %d to %d bytes", capacity, capacity+additional), ErrReallocationFailed)
	}
	a.buf = buf
	a.grows++
	a.log().WithField("from", capacity).Debug("arena grown")
	return nil
}

// growFor grows the buffer so that pad+size more bytes fit after the cursor.
func (a *Arena) growFor(pad, size int) error {
	if size > math.MaxInt-a.off-pad {
		return errors.Wrapf(ErrAllocationFailed, "alloc %d bytes at offset %d overflows", size, a.off+pad)
	}
	capacity := len(a.buf)
	need := a.off + pad + size
	additional := need
	if capacity <= (math.MaxInt-pad)/2 {
		additional = max(capacity*2+pad, need)
	}
	if additional > math.MaxInt-capacity {
		additional = need
	}
	if err := a.Grow(additional); err != nil {
		return errors.Mark(errors.Wrapf(err, "alloc %d bytes", size), ErrAllocationFailed)
	}
	return nil
}

// Reset rewinds the cursor to the start of the buffer. Capacity and buffer
// contents are kept; every Block handed out so far becomes stale.
func (a *Arena) Reset() error {
	if a.released {
		return ErrReleased
	}
	a.off = 0
	a.gen++
	a.resets++
	return nil
}

// Release hands the buffer back to the allocator and makes the arena unusable.
// Any subsequent operation returns ErrReleased.
func (a *Arena) Release() error {
	if a.released {
		return ErrReleased
	}
	a.log().Debug("arena released")
	a.cfg.mem.Free(a.buf)
	a.buf = nil
	a.off = 0
	a.released = true
	return nil
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a.released
}

func (a *Arena) log() *logrus.Entry {
	return a.cfg.log.WithFields(logrus.Fields{
		"arena":    a.id,
		"capacity": len(a.buf),
		"used":     a.off,
	})
}

// validAlignment reports whether n is a power of two.
func validAlignment(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// padding returns how many bytes advance off to the next multiple of align.
func padding(off, align int) int {
	return -off & (align - 1)
}
