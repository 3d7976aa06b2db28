package bumparena

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// baseAlignment is the address alignment of every buffer returned by
// GoAllocator. Offsets aligned to any power of two up to this value are
// therefore aligned in memory as well.
const baseAlignment = 64

// maxAllocSize bounds a single GoAllocator buffer, padding included. make
// panics above the runtime's own limit (2^48 bytes on 64-bit platforms).
const maxAllocSize = 1 << (30 + 17*(^uint(0)>>63))

// Allocator is the memory manager an Arena obtains its backing buffer from.
// Offsets are aligned relative to the buffer start, so an Allocator used with
// NewRef or NewSlice should return buffers aligned to at least 8 bytes.
type Allocator interface {
	// Allocate returns a zeroed buffer of exactly size bytes.
	Allocate(size int) ([]byte, error)

	// Reallocate returns a buffer of size bytes that starts with the contents
	// of b. On success b is consumed and will not be passed to Free; on error
	// b must be left untouched and remain valid.
	Reallocate(size int, b []byte) ([]byte, error)

	// Free is called exactly once for every buffer the arena stops using.
	Free(b []byte)
}

// DefaultAllocator is used by arenas created without WithAllocator.
// It is safe to use from multiple goroutines.
var DefaultAllocator Allocator = NewGoAllocator(0)

// GoAllocator allocates from the Go heap. Freed buffers are left to the
// garbage collector.
type GoAllocator struct {
	limit int
}

// NewGoAllocator returns an allocator that refuses single buffers larger than
// limit bytes. If limit <= 0, only sizes above maxAllocSize are refused.
func NewGoAllocator(limit int) *GoAllocator {
	return &GoAllocator{limit: limit}
}

func (g *GoAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 || size > maxAllocSize-baseAlignment {
		return nil, errors.Wrapf(ErrOutOfMemory, "cannot allocate %d bytes", size)
	}
	if g.limit > 0 && size > g.limit {
		return nil, errors.Wrapf(ErrOutOfMemory, "%d bytes exceeds limit of %d", size, g.limit)
	}
	buf := make([]byte, size+baseAlignment)
	shift := int(-uintptr(unsafe.Pointer(unsafe.SliceData(buf))) & (baseAlignment - 1))
	return buf[shift : shift+size : shift+size], nil
}

func (g *GoAllocator) Reallocate(size int, b []byte) ([]byte, error) {
	if size == len(b) {
		return b, nil
	}
	nb, err := g.Allocate(size)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	return nb, nil
}

func (g *GoAllocator) Free(b []byte) {}
