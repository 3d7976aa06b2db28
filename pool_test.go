package bumparena

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewPoolDefaults(t *testing.T) {
	p := NewPool(0, 0)
	defer p.Close()

	assert.Positive(t, p.size)
	assert.Equal(t, DefaultCapacity, p.capacity)

	a, err := p.Get()
	require.NoError(t, err)
	assert.Equal(t, DefaultCapacity, a.Capacity())
}

func TestPoolReuse(t *testing.T) {
	p := NewPool(1, 128)
	defer p.Close()

	a, err := p.Get()
	require.NoError(t, err)
	_, err = a.Alloc(100, 8)
	require.NoError(t, err)
	require.NoError(t, p.Put(a))
	assert.Equal(t, 1, p.Idle())

	b, err := p.Get()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 0, b.Used())
	assert.Equal(t, 0, p.Idle())
}

func TestPoolPutWhenFull(t *testing.T) {
	p := NewPool(1, 64)
	defer p.Close()

	a1, err := p.Get()
	require.NoError(t, err)
	a2, err := p.Get()
	require.NoError(t, err)
	require.NotSame(t, a1, a2)

	require.NoError(t, p.Put(a1))
	require.NoError(t, p.Put(a2))
	assert.False(t, a1.Released())
	assert.True(t, a2.Released())
	assert.Equal(t, 1, p.Idle())
}

func TestPoolPutTwice(t *testing.T) {
	p := NewPool(2, 64)
	defer p.Close()

	a, err := p.Get()
	require.NoError(t, err)
	require.NoError(t, p.Put(a))
	requireIs(t, p.Put(a), ErrAlreadyPooled)
	assert.Equal(t, 1, p.Idle())

	first, err := p.Get()
	require.NoError(t, err)
	second, err := p.Get()
	require.NoError(t, err)
	assert.Same(t, a, first)
	assert.NotSame(t, first, second)

	// Back in the owner's hands, the arena can be returned again.
	require.NoError(t, p.Put(first))
}

func TestPoolPutReleased(t *testing.T) {
	p := NewPool(2, 64)
	defer p.Close()

	a, err := p.Get()
	require.NoError(t, err)
	require.NoError(t, a.Release())

	requireIs(t, p.Put(a), ErrReleased)
	assert.Equal(t, 0, p.Idle())
	require.NoError(t, p.Put(nil))
}

func TestPoolClose(t *testing.T) {
	p := NewPool(4, 64)

	var arenas []*Arena
	for i := 0; i < 3; i++ {
		a, err := p.Get()
		require.NoError(t, err)
		arenas = append(arenas, a)
	}
	require.NoError(t, p.Put(arenas[0]))
	require.NoError(t, p.Put(arenas[1]))

	require.NoError(t, p.Close())
	assert.True(t, arenas[0].Released())
	assert.True(t, arenas[1].Released())
	assert.False(t, arenas[2].Released(), "checked out arenas belong to their owner")

	_, err := p.Get()
	requireIs(t, err, ErrPoolClosed)
	requireIs(t, p.Close(), ErrPoolClosed)

	require.NoError(t, p.Put(arenas[2]))
	assert.True(t, arenas[2].Released())
}

func TestPoolArenaPerGoroutine(t *testing.T) {
	p := NewPool(4, 256)
	defer p.Close()

	var g errgroup.Group
	for w := 0; w < 16; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < 100; i++ {
				a, err := p.Get()
				if err != nil {
					return err
				}
				msg := []byte(fmt.Sprintf("worker %d round %d", w, i))
				b, err := a.Copy(msg)
				if err != nil {
					return err
				}
				// may grow the buffer between write and read
				if _, err := a.Alloc(1024, 64); err != nil {
					return err
				}
				got, err := a.Bytes(b)
				if err != nil {
					return err
				}
				if !bytes.Equal(got, msg) {
					return fmt.Errorf("worker %d: got %q, want %q", w, got, msg)
				}
				if err := p.Put(a); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, p.Idle(), 4)
}
