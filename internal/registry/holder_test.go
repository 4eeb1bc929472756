package registry

import (
	"sync"
	"testing"

	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_Lifecycle(t *testing.T) {
	h := NewHolder()
	assert.False(t, h.Ready())
	assert.Nil(t, h.Current())

	first := sampleRegistry(t)
	assert.Nil(t, h.Swap(first))
	assert.True(t, h.Ready())
	assert.Same(t, first, h.Current())

	second := sampleRegistry(t)
	assert.Same(t, first, h.Swap(second))
	assert.Same(t, second, h.Current())
}

func TestHolder_SwapNilPanics(t *testing.T) {
	assert.Panics(t, func() { NewHolder().Swap(nil) })
}

// TestHolder_ConcurrentReadersDuringSwap checks that readers always see a
// complete registry while a writer keeps replacing it.
func TestHolder_ConcurrentReadersDuringSwap(t *testing.T) {
	h := NewHolder()
	h.Swap(sampleRegistry(t))

	const readers = 50
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				r := h.Current()
				id, ok := r.IDByName(content.Tile, "core:stone")
				if !ok {
					t.Errorf("core:stone missing from a live registry")
					return
				}
				if _, err := r.Get(content.Tile, id); err != nil {
					t.Errorf("lookup failed: %v", err)
					return
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		require.NotNil(t, h.Swap(sampleRegistry(t)))
	}
	wg.Wait()
}
