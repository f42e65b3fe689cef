package core

import (
	"encoding/binary"
	"math/big"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// Goldilocks wraps field.Element (p = 2^64 - 2^32 + 1) to conform to the
// Element interface. The zero value of field.Element is zero in Montgomery
// form, so the zero value of Goldilocks is the additive identity.
type Goldilocks struct {
	field.Element
}

// Add x + y
func (x Goldilocks) Add(y Goldilocks) Goldilocks {
	return Goldilocks{x.Element.Add(y.Element)}
}

// Sub x - y
func (x Goldilocks) Sub(y Goldilocks) Goldilocks {
	return Goldilocks{x.Element.Sub(y.Element)}
}

// Mul x * y
func (x Goldilocks) Mul(y Goldilocks) Goldilocks {
	return Goldilocks{x.Element.Mul(y.Element)}
}

// Inverse x⁻¹, or 0 if x = 0.
func (x Goldilocks) Inverse() Goldilocks {
	// field.Element panics on zero
	if x.Element.IsZero() {
		return Goldilocks{}
	}

	return Goldilocks{x.Element.Inverse()}
}

// IsZero implementation for the Element interface
func (x Goldilocks) IsZero() bool {
	return x.Element.IsZero()
}

// IsOne implementation for the Element interface
func (x Goldilocks) IsOne() bool {
	return x.Element.IsOne()
}

// Equal implementation for the Element interface
func (x Goldilocks) Equal(y Goldilocks) bool {
	return x.Element.Equal(y.Element)
}

// SetUint64 implementation for the Element interface
func (x Goldilocks) SetUint64(val uint64) Goldilocks {
	if val >= field.P {
		val -= field.P
	}

	return Goldilocks{field.New(val)}
}

// SetBytes reduces the big-endian value b into the field
func (x Goldilocks) SetBytes(b []byte) Goldilocks {
	return Goldilocks{field.NewFromBigInt(new(big.Int).SetBytes(b))}
}

// Bytes returns the canonical value as 8 big-endian bytes
func (x Goldilocks) Bytes() []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], x.Element.Value())

	return buf[:]
}

// Modulus returns p = 2^64 - 2^32 + 1
func (x Goldilocks) Modulus() *big.Int {
	return new(big.Int).SetUint64(field.P)
}

func (x Goldilocks) String() string {
	return x.Element.String()
}
