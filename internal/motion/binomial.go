package motion

import "sync"

// binomialCache memoizes rows of Pascal's triangle keyed by curve degree.
// Row n holds C(n, 0) .. C(n, n), the coefficients of the degree-n
// Bernstein basis. Each engine owns one cache so tests never leak state
// across instances; a race to insert the same row twice would be benign
// anyway, since rows are pure values.
type binomialCache struct {
	mu   sync.Mutex
	rows map[int][]float64
}

func newBinomialCache() *binomialCache {
	return &binomialCache{rows: map[int][]float64{0: {1}}}
}

// row returns the cached coefficient row for the given degree, computing
// and caching any missing lower rows via the additive recurrence
// C(n, k) = C(n-1, k-1) + C(n-1, k). The returned slice is shared; callers
// must not mutate it.
func (c *binomialCache) row(degree int) []float64 {
	if degree < 0 {
		degree = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.rows[degree]; ok {
		return r
	}

	// Walk down to the highest row we already have, then build upward.
	base := degree
	for base > 0 {
		if _, ok := c.rows[base]; ok {
			break
		}
		base--
	}
	prev := c.rows[base]
	for n := base + 1; n <= degree; n++ {
		next := make([]float64, n+1)
		next[0], next[n] = 1, 1
		for k := 1; k < n; k++ {
			next[k] = prev[k-1] + prev[k]
		}
		c.rows[n] = next
		prev = next
	}
	return prev
}
