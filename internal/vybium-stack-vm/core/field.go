// Package core provides the prime-field arithmetic and commitment primitives
// shared by the executor, the trace builder and the reference proving engine.
package core

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvertZero is returned when dividing by the additive identity.
var ErrInvertZero = errors.New("cannot invert zero")

// Element is an element of a prime-order field. Implementations are value
// types whose zero value is the additive identity.
type Element[F any] interface {
	fmt.Stringer
	// Add returns x + y
	Add(y F) F
	// Sub returns x - y
	Sub(y F) F
	// Mul returns x * y
	Mul(y F) F
	// Inverse returns x⁻¹, or 0 if x = 0.
	Inverse() F
	// IsZero checks whether this value is zero
	IsZero() bool
	// IsOne checks whether this value is one
	IsOne() bool
	// Equal checks whether x = y
	Equal(y F) bool
	// SetUint64 returns the element congruent to val
	SetUint64(val uint64) F
	// SetBytes returns the element congruent to the big-endian value b
	SetBytes(b []byte) F
	// Bytes returns the canonical big-endian encoding of x
	Bytes() []byte
	// Modulus returns the field characteristic
	Modulus() *big.Int
}

// Zero returns the additive identity
func Zero[F Element[F]]() F {
	var element F
	//
	return element
}

// One returns the multiplicative identity
func One[F Element[F]]() F {
	var element F
	//
	return element.SetUint64(1)
}

// Uint64 constructs a field element from a given uint64
func Uint64[F Element[F]](val uint64) F {
	var element F
	//
	return element.SetUint64(val)
}

// Neg returns -x
func Neg[F Element[F]](x F) F {
	return Zero[F]().Sub(x)
}

// Div returns x / y, or ErrInvertZero when y = 0.
func Div[F Element[F]](x, y F) (F, error) {
	if y.IsZero() {
		return Zero[F](), ErrInvertZero
	}

	return x.Mul(y.Inverse()), nil
}

// Sum returns the sum of all given elements
func Sum[F Element[F]](elems ...F) F {
	acc := Zero[F]()
	for _, e := range elems {
		acc = acc.Add(e)
	}

	return acc
}

// ByteWidth returns the length of the canonical encoding of elements of F.
func ByteWidth[F Element[F]]() int {
	return len(Zero[F]().Bytes())
}

// Field names accepted by ParseFieldName.
const (
	FieldM31        = "m31"
	FieldGoldilocks = "goldilocks"
	FieldBLS12377   = "bls12-377"
)

// ParseFieldName normalises a user supplied field name.
func ParseFieldName(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "m31", "mersenne31", "mersenne-31":
		return FieldM31, nil
	case "goldilocks", "gl64":
		return FieldGoldilocks, nil
	case "bls12-377", "bls12_377", "bls12377":
		return FieldBLS12377, nil
	default:
		return "", fmt.Errorf("unknown field %q (expected %q, %q or %q)", name, FieldM31, FieldGoldilocks, FieldBLS12377)
	}
}
