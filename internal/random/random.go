// Package random holds the injectable random source used for recipient and
// fallback selection.
package random

import "math/rand/v2"

// Source picks an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Global uses the process-wide math/rand/v2 source, which is safe for concurrent use.
var Global Source = globalSource{}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// Fixed always returns the same index, clamped into range
type Fixed int

func (f Fixed) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(f)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
