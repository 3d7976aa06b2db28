package bumparena

// Block is a handle to a region allocated from an Arena. It holds an offset
// rather than an address, so it survives growth of the backing buffer.
// Reset and Release invalidate it; Arena.Bytes reports ErrStaleBlock or
// ErrReleased instead of returning reused memory.
type Block struct {
	arena uint64
	gen   uint64
	off   int
	size  int
}

// Offset is the position of the region from the start of the arena's buffer.
func (b Block) Offset() int { return b.off }

// Len is the size of the region in bytes.
func (b Block) Len() int { return b.size }

// End is the offset one past the last byte of the region.
func (b Block) End() int { return b.off + b.size }
