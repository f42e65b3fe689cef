package core

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// BLS12377 wraps fr.Element (the scalar field of BLS12-377) to conform to
// the Element interface.
type BLS12377 struct {
	fr.Element
}

// Add x + y
func (x BLS12377) Add(y BLS12377) BLS12377 {
	var res fr.Element
	//
	res.Add(&x.Element, &y.Element)
	//
	return BLS12377{res}
}

// Sub x - y
func (x BLS12377) Sub(y BLS12377) BLS12377 {
	var res fr.Element
	//
	res.Sub(&x.Element, &y.Element)
	//
	return BLS12377{res}
}

// Mul x * y
func (x BLS12377) Mul(y BLS12377) BLS12377 {
	var res fr.Element
	//
	res.Mul(&x.Element, &y.Element)
	//
	return BLS12377{res}
}

// Inverse x⁻¹, or 0 if x = 0.
func (x BLS12377) Inverse() BLS12377 {
	var res fr.Element
	//
	res.Inverse(&x.Element)
	//
	return BLS12377{res}
}

// IsZero implementation for the Element interface
func (x BLS12377) IsZero() bool {
	return x.Element.IsZero()
}

// IsOne implementation for the Element interface
func (x BLS12377) IsOne() bool {
	return x.Element.IsOne()
}

// Equal implementation for the Element interface
func (x BLS12377) Equal(y BLS12377) bool {
	return x.Element.Equal(&y.Element)
}

// SetUint64 implementation for the Element interface
func (x BLS12377) SetUint64(val uint64) BLS12377 {
	return BLS12377{fr.NewElement(val)}
}

// SetBytes reduces the big-endian value b into the field
func (x BLS12377) SetBytes(b []byte) BLS12377 {
	var res fr.Element
	//
	res.SetBytes(b)
	//
	return BLS12377{res}
}

// Bytes returns the big-endian encoded value, possibly with leading zeros.
func (x BLS12377) Bytes() []byte {
	return x.Marshal()
}

// Modulus returns the scalar field modulus
func (x BLS12377) Modulus() *big.Int {
	return fr.Modulus()
}

func (x BLS12377) String() string {
	return x.Element.String()
}
