package go2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/arrange/lib/go2"
)

func TestMinMax(t *testing.T) {
	assert.Equal(t, 1, go2.Min(1, 2))
	assert.Equal(t, 2.5, go2.Max(1.0, 2.5))
	assert.Equal(t, "a", go2.Min("b", "a"))
}

func TestMapSum(t *testing.T) {
	evens := []int{2, 4}
	doubled := go2.Map(evens, func(i int) float64 { return float64(i) * 2 })
	assert.Equal(t, []float64{4, 8}, doubled)
	assert.Equal(t, 12.0, go2.Sum(doubled))
	assert.True(t, go2.Contains(evens, 4))
	assert.False(t, go2.Contains(evens, 3))
}
