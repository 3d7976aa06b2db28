package bumparena

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Used returns the number of bytes between the start of the buffer and the
// cursor, alignment padding included. After Release it returns 0; check
// Released to tell a released arena from an empty one.
func (a *Arena) Used() int {
	return a.off
}

// Capacity returns the size of the backing buffer in bytes, or 0 once the
// arena is released.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Available returns how many bytes can be allocated without growing,
// ignoring any padding a future alignment may need. A released arena has
// nothing available.
func (a *Arena) Available() int {
	return len(a.buf) - a.off
}

// Utilization returns the ratio of used bytes to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity, which includes a released arena.
func (a *Arena) Utilization() float64 {
	if len(a.buf) == 0 {
		return 0
	}
	return float64(a.off) / float64(len(a.buf))
}

// Peak returns the highest cursor position reached. It survives Reset but
// not Release.
func (a *Arena) Peak() int {
	if a.released {
		return 0
	}
	return a.peak
}

// Stats contains statistical information about an arena.
type Stats struct {
	Capacity    int     // Size of the backing buffer in bytes
	Used        int     // Bytes before the cursor, padding included
	Available   int     // Capacity - Used
	Peak        int     // High-water mark of Used
	Utilization float64 // Used / Capacity (0.0-1.0)
	Allocs      int     // Successful Alloc calls
	Grows       int     // Successful growths
	Resets      int     // Reset calls
}

// Stats returns a snapshot of arena statistics.
// A released arena reports the zero Stats.
func (a *Arena) Stats() Stats {
	if a.released {
		return Stats{}
	}
	return Stats{
		Capacity:    a.Capacity(),
		Used:        a.Used(),
		Available:   a.Available(),
		Peak:        a.peak,
		Utilization: a.Utilization(),
		Allocs:      a.allocs,
		Grows:       a.grows,
		Resets:      a.resets,
	}
}

// PrintStats writes a statistics table to the arena's output (os.Stdout
// unless set with WithOutput). It is a diagnostic aid only.
func (a *Arena) PrintStats() error {
	return a.WriteStats(a.cfg.out)
}

// WriteStats writes a statistics table to w.
func (a *Arena) WriteStats(w io.Writer) error {
	if a.released {
		return ErrReleased
	}
	s := a.Stats()
	table := tablewriter.NewWriter(w)
	table.SetCaption(true, fmt.Sprintf("arena #%d", a.id))
	table.SetHeader([]string{"Stat", "Value"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.AppendBulk([][]string{
		{"Total size", bytesString(s.Capacity)},
		{"Used", bytesString(s.Used)},
		{"Available", bytesString(s.Available)},
		{"Utilization", strconv.FormatFloat(s.Utilization*100, 'f', 2, 64) + "%"},
		{"Peak", bytesString(s.Peak)},
		{"Allocations", strconv.Itoa(s.Allocs)},
		{"Grows", strconv.Itoa(s.Grows)},
		{"Resets", strconv.Itoa(s.Resets)},
	})
	table.Render()
	return nil
}

func bytesString(n int) string {
	return strconv.Itoa(n) + " bytes"
}
