// Package bumparena implements a linear (bump) allocator over one contiguous,
// growable buffer.
//
// # Overview
//
// An arena hands out aligned sub-blocks of its buffer by advancing a cursor.
// Individual blocks are never freed; instead everything allocated since the
// last Reset is reclaimed at once. This suits groups of objects that share a
// lifetime:
//
//   - Request-scoped scratch data
//   - Parsers and encoders building short-lived intermediate structures
//   - Batch jobs that discard all state between batches
//
// # Basic Usage
//
//	a, err := bumparena.New(4096)
//	if err != nil {
//		return err
//	}
//	defer a.Release()
//
//	// Allocate 100 zeroed bytes aligned to 8
//	blk, err := a.Alloc(100, 8)
//	buf, err := a.Bytes(blk)
//
//	// Typed values (pointer-free types only)
//	ref, err := bumparena.NewRef[Header](a)
//	h, err := ref.Get(a)
//
//	// Reclaim everything (O(1))
//	a.Reset()
//
// # Handles and Growth
//
// When an allocation does not fit, the buffer is reallocated and may move.
// Alloc therefore returns a Block, an offset-based handle, instead of a
// pointer. Blocks stay valid across growth; slices and pointers obtained from
// Bytes or Get do not, and must be fetched again after any later Alloc.
// Reset and Release invalidate Blocks, and Bytes reports ErrStaleBlock or
// ErrReleased when an old one is used.
//
// # Errors
//
// Allocator failures surface as ErrAllocationFailed (creation, Alloc) and
// ErrReallocationFailed (Grow). A failed growth leaves the arena untouched.
// Programming errors such as a non power of two alignment or use after
// Release return their own sentinel errors rather than panicking.
//
// # Thread Safety
//
// An Arena is not goroutine-safe. Give each goroutine its own arena, for
// example by taking one from a Pool:
//
//	p := bumparena.NewPool(0, 64<<10)
//	defer p.Close()
//
//	a, err := p.Get()
//	...
//	p.Put(a)
//
// # Statistics
//
//	s := a.Stats()
//	fmt.Printf("Utilization: %.2f%%\n", s.Utilization*100)
//	a.PrintStats() // table on stdout
package bumparena
