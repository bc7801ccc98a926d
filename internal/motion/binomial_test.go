package motion

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinomialCache_Rows(t *testing.T) {
	cache := newBinomialCache()

	assert.Equal(t, []float64{1}, cache.row(0))
	assert.Equal(t, []float64{1, 1}, cache.row(1))
	assert.Equal(t, []float64{1, 4, 6, 4, 1}, cache.row(4))
	// Degree 7 covers the maximum curve the engine builds (6 knots + 2 endpoints).
	assert.Equal(t, []float64{1, 7, 21, 35, 35, 21, 7, 1}, cache.row(7))
}

func TestBinomialCache_OutOfOrderRequests(t *testing.T) {
	cache := newBinomialCache()

	// Request a high row first, then verify the intermediate rows were
	// filled in by the recurrence.
	high := cache.row(6)
	require.Len(t, high, 7)
	assert.Equal(t, []float64{1, 3, 3, 1}, cache.row(3))
	assert.Equal(t, []float64{1, 6, 15, 20, 15, 6, 1}, high)
}

func TestBinomialCache_NegativeDegree(t *testing.T) {
	cache := newBinomialCache()
	assert.Equal(t, []float64{1}, cache.row(-3))
}

func TestBinomialCache_ConcurrentAccess(t *testing.T) {
	cache := newBinomialCache()

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for degree := 1; degree <= 7; degree++ {
				row := cache.row(degree)
				if len(row) != degree+1 {
					t.Errorf("degree %d: got row of length %d", degree, len(row))
				}
			}
		}(g)
	}
	wg.Wait()

	// Sanity check one row after the concurrent churn.
	assert.Equal(t, []float64{1, 5, 10, 10, 5, 1}, cache.row(5))
}
