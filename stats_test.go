package bumparena

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	a := mustNew(t, 8)

	assert.Equal(t, Stats{Capacity: 8, Available: 8}, a.Stats())

	_, err := a.Alloc(10, 1)
	require.NoError(t, err)

	s := a.Stats()
	assert.Equal(t, 24, s.Capacity)
	assert.Equal(t, 10, s.Used)
	assert.Equal(t, 14, s.Available)
	assert.Equal(t, 10, s.Peak)
	assert.InDelta(t, 10.0/24.0, s.Utilization, 1e-9)
	assert.Equal(t, 1, s.Allocs)
	assert.Equal(t, 1, s.Grows)
	assert.Equal(t, 0, s.Resets)
}

func TestStatsAfterReset(t *testing.T) {
	a := mustNew(t, 1024)

	_, err := a.Alloc(500, 8)
	require.NoError(t, err)
	assert.NotZero(t, a.Utilization())

	require.NoError(t, a.Reset())
	assert.Equal(t, 0, a.Used())
	assert.Zero(t, a.Utilization())
	assert.Equal(t, 1024, a.Capacity())
	assert.Equal(t, 500, a.Peak(), "peak survives Reset")
	assert.Equal(t, 1, a.Stats().Resets)
}

func TestStatsAfterRelease(t *testing.T) {
	a := mustNew(t, 1024)
	_, err := a.Alloc(100, 1)
	require.NoError(t, err)
	require.NoError(t, a.Release())

	assert.Equal(t, Stats{}, a.Stats())
	assert.Equal(t, 0, a.Peak())
}

func TestUtilizationBounds(t *testing.T) {
	a := mustNew(t, 0)
	assert.Zero(t, a.Utilization())

	full := mustNew(t, 100)
	_, err := full.Alloc(100, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, full.Utilization())
}

func TestPrintStats(t *testing.T) {
	var out bytes.Buffer
	a := mustNew(t, 8, WithOutput(&out))
	_, err := a.Alloc(10, 1)
	require.NoError(t, err)

	require.NoError(t, a.PrintStats())
	report := out.String()
	for _, want := range []string{
		"Total size", "24 bytes",
		"Used", "10 bytes",
		"Available", "14 bytes",
		"Utilization", "41.67%",
		"Grows",
	} {
		assert.Contains(t, report, want)
	}
}

func TestWriteStatsLeavesArenaUnchanged(t *testing.T) {
	a := mustNew(t, 64)
	_, err := a.Alloc(10, 4)
	require.NoError(t, err)
	before := a.Stats()

	var out bytes.Buffer
	require.NoError(t, a.WriteStats(&out))
	assert.NotEmpty(t, out.String())
	assert.Equal(t, before, a.Stats())
}

func BenchmarkStats(b *testing.B) {
	a := mustNew(b, 1<<20)
	for i := 0; i < 100; i++ {
		_, _ = a.Alloc(1000, 8)
	}

	b.Run("Used", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			a.Used()
		}
	})

	b.Run("Utilization", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			a.Utilization()
		}
	})

	b.Run("Stats", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			a.Stats()
		}
	})
}
