// Package utils holds configuration, the Fiat-Shamir channel and small
// numeric helpers shared across the VM packages.
package utils

import "math/bits"

// IsPowerOfTwo checks if a number is a power of 2
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Log2 returns k for n = 2^k, or -1 if n is not a power of two.
func Log2(n int) int {
	if !IsPowerOfTwo(n) {
		return -1
	}

	return bits.TrailingZeros(uint(n))
}

// NextPowerOfTwo returns the smallest power of 2 >= n (1 for n <= 1)
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}
