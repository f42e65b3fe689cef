package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 1024, 1 << 30} {
		assert.True(t, IsPowerOfTwo(n), "%d", n)
	}

	for _, n := range []int{-4, -1, 0, 3, 6, 12, 1023, 1<<30 + 1} {
		assert.False(t, IsPowerOfTwo(n), "%d", n)
	}
}

// TestTraceHeights covers the heights the trace builder pads to: one
// boundary row plus one row per executed instruction.
func TestTraceHeights(t *testing.T) {
	tests := []struct {
		instructions int
		height       int
		depth        int
	}{
		{0, 1, 0},
		{1, 2, 1},
		{2, 4, 2},
		{3, 4, 2},
		{5, 8, 3},
		{7, 8, 3},
		{8, 16, 4},
		{99, 128, 7},
		{1023, 1024, 10},
	}

	for _, tt := range tests {
		height := NextPowerOfTwo(tt.instructions + 1)
		assert.Equal(t, tt.height, height, "%d instructions", tt.instructions)
		// authentication paths into the row commitment have log2(height) nodes
		assert.Equal(t, tt.depth, Log2(height), "%d instructions", tt.instructions)
	}
}

func TestLog2RejectsNonPowers(t *testing.T) {
	for _, n := range []int{-8, 0, 3, 100} {
		assert.Equal(t, -1, Log2(n), "%d", n)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	assert.Equal(t, 1, NextPowerOfTwo(-5))
	assert.Equal(t, 1, NextPowerOfTwo(0))

	for n := 1; n <= 2048; n++ {
		next := NextPowerOfTwo(n)
		assert.True(t, IsPowerOfTwo(next), "%d", n)
		assert.GreaterOrEqual(t, next, n)
		assert.Less(t, next/2, n, "%d is not the smallest power above %d", next, n)
		assert.Equal(t, next, 1<<Log2(next))
	}
}

func BenchmarkNextPowerOfTwo(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NextPowerOfTwo(1000)
	}
}
