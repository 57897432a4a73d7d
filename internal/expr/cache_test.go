package expr

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Load(t *testing.T) {
	c := NewCache()

	a, err := c.Load("z * z")
	require.NoError(t, err)
	b, err := c.Load("  z * z ")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, c.Len())

	_, err = c.Load("z +")
	assert.ErrorIs(t, err, ErrCompile)
	assert.Equal(t, 1, c.Len(), "failed compiles are not cached")
}

func TestCache_EvictAndClear(t *testing.T) {
	c := NewCache()
	_, err := c.Load("z")
	require.NoError(t, err)
	_, err = c.Load("1 / z")
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	c.Evict(" z ")
	assert.Equal(t, 1, c.Len())
	c.Evict("not cached")
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	results := make([]*Function, 8)
	for k := range results {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			fn, err := c.Load("cmplx.Log(z)")
			if err == nil {
				results[k] = fn
			}
		}(k)
	}
	wg.Wait()

	for _, fn := range results {
		require.NotNil(t, fn)
		assert.Same(t, results[0], fn)
	}
	assert.Equal(t, 1, c.Len())
}
