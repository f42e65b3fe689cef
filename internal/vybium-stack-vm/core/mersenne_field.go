package core

import (
	"encoding/binary"
	"math/big"
	"strconv"
)

// M31Modulus is the Mersenne prime 2^31 - 1
const M31Modulus uint32 = (1 << 31) - 1

// M31 is an element of the Mersenne field GF(2^31 - 1), always held in
// canonical form [0, p).
type M31 uint32

// NewM31 reduces value modulo 2^31 - 1
func NewM31(value uint64) M31 {
	return M31(value % uint64(M31Modulus))
}

// Add adds two Mersenne field elements
func (x M31) Add(y M31) M31 {
	// both operands < 2^31 so the sum fits in 32 bits
	sum := uint32(x) + uint32(y)
	if sum >= M31Modulus {
		sum -= M31Modulus
	}

	return M31(sum)
}

// Sub subtracts two Mersenne field elements
func (x M31) Sub(y M31) M31 {
	if x >= y {
		return x - y
	}

	return M31(uint32(x) + M31Modulus - uint32(y))
}

// Mul multiplies two Mersenne field elements using the 2^31 ≡ 1 folding
func (x M31) Mul(y M31) M31 {
	product := uint64(x) * uint64(y)
	folded := (product & uint64(M31Modulus)) + (product >> 31)
	folded = (folded & uint64(M31Modulus)) + (folded >> 31)

	if folded >= uint64(M31Modulus) {
		folded -= uint64(M31Modulus)
	}

	return M31(folded)
}

// Inverse computes x^(p-2) by Fermat's little theorem; zero maps to zero.
func (x M31) Inverse() M31 {
	if x == 0 {
		return 0
	}

	return x.Exp(uint64(M31Modulus) - 2)
}

// Exp computes x^e by square-and-multiply
func (x M31) Exp(e uint64) M31 {
	result := M31(1)
	base := x

	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		e >>= 1
	}

	return result
}

// IsZero checks if the element is zero
func (x M31) IsZero() bool {
	return x == 0
}

// IsOne checks if the element is one
func (x M31) IsOne() bool {
	return x == 1
}

// Equal checks if two elements are equal
func (x M31) Equal(y M31) bool {
	return x == y
}

// SetUint64 returns the element congruent to val
func (x M31) SetUint64(val uint64) M31 {
	return NewM31(val)
}

// SetBytes interprets b as a big-endian integer and reduces it
func (x M31) SetBytes(b []byte) M31 {
	var acc uint64

	for _, c := range b {
		acc = ((acc << 8) | uint64(c)) % uint64(M31Modulus)
	}

	return M31(acc)
}

// Bytes returns the 4 byte big-endian encoding
func (x M31) Bytes() []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(x))

	return out
}

// Uint64 returns the canonical value
func (x M31) Uint64() uint64 {
	return uint64(x)
}

// Modulus returns the field modulus
func (x M31) Modulus() *big.Int {
	return new(big.Int).SetUint64(uint64(M31Modulus))
}

func (x M31) String() string {
	return strconv.FormatUint(uint64(x), 10)
}
