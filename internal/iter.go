package internal

import (
	"iter"
)

// Span yields the integers from lo to hi inclusive, in ascending order.
// It yields nothing when hi < lo.
func Span(lo, hi int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for n := lo; n <= hi; n++ {
			if !yield(n) {
				return // Stop if the consumer stops
			}
		}
	}
}
