package bumparena

import "github.com/cockroachdb/errors"

var (
	// ErrAllocationFailed is reported when the allocator cannot provide the
	// initial buffer or the growth an allocation needs.
	ErrAllocationFailed = errors.New("arena: allocation failed")
	// ErrReallocationFailed is reported when the backing buffer cannot be
	// resized. The arena is left exactly as it was.
	ErrReallocationFailed = errors.New("arena: reallocation failed")
	// ErrOutOfMemory is returned by an Allocator that cannot serve a size.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrInvalidAlignment rejects alignments that are not a power of two.
	ErrInvalidAlignment = errors.New("arena: alignment must be a power of two")
	// ErrInvalidSize rejects negative sizes, capacities and counts.
	ErrInvalidSize = errors.New("arena: size must not be negative")
	// ErrReleased is returned by every operation on a released arena.
	ErrReleased = errors.New("arena: use after Release()")
	// ErrStaleBlock means the block was allocated before the last Reset.
	ErrStaleBlock = errors.New("arena: block was invalidated by Reset()")
	// ErrForeignBlock means the block was not allocated by this arena.
	ErrForeignBlock = errors.New("arena: block belongs to another arena")
	// ErrPointerType rejects typed allocations of types holding Go pointers.
	ErrPointerType = errors.New("arena: type contains pointers")
	// ErrTypeMismatch means a typed handle's block does not have the size or
	// alignment of its element type.
	ErrTypeMismatch = errors.New("arena: block does not match handle type")
	// ErrPoolClosed is returned by Get and Close after Close.
	ErrPoolClosed = errors.New("arena: pool is closed")
	// ErrAlreadyPooled is returned when an arena is Put while already idle.
	ErrAlreadyPooled = errors.New("arena: arena is already in the pool")
)
