package internal

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]int{2, 3, 4, 5}, slices.Collect(Span(2, 5)))
	assert.Equal([]int{2}, slices.Collect(Span(2, 2)))
	assert.Empty(slices.Collect(Span(2, 1)))
	assert.Empty(slices.Collect(Span(2, 0)))

	for n := range Span(1, 100) {
		if n == 3 {
			break
		}
	}
}
