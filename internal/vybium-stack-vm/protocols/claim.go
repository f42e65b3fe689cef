package protocols

import (
	"bytes"
	"fmt"

	"github.com/Salvionied/cbor/v2"
)

// CurrentVersion is the version of the stack VM ISA and proof format.
// It changes whenever either of them changes.
const CurrentVersion uint32 = 1

// Claim contains the public information of a verifiably correct computation.
// A corresponding Proof is needed to verify the computation.
type Claim struct {
	// ProgramDigest ties the proof to a specific program
	ProgramDigest uint64 `cbor:"1,keyasint"`

	// Version of the ISA and proof format
	Version uint32 `cbor:"2,keyasint"`

	// Field names the prime field the trace is defined over
	Field string `cbor:"3,keyasint"`

	// Output is the final stack, top first, in canonical field encoding
	Output [][]byte `cbor:"4,keyasint"`
}

// NewClaim creates a claim at the current version
func NewClaim(programDigest uint64, fieldName string) *Claim {
	return &Claim{
		ProgramDigest: programDigest,
		Version:       CurrentVersion,
		Field:         fieldName,
		Output:        make([][]byte, 0),
	}
}

// WithOutput sets the claimed final stack
func (c *Claim) WithOutput(output [][]byte) *Claim {
	c.Output = output
	return c
}

// Validate checks if the claim is well-formed
func (c *Claim) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported claim version %d, expected %d", c.Version, CurrentVersion)
	}

	if c.Field == "" {
		return fmt.Errorf("claim does not name a field")
	}

	return nil
}

// Encode returns the canonical CBOR encoding absorbed by the Fiat-Shamir
// channel
func (c *Claim) Encode() ([]byte, error) {
	data, err := cbor.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode claim: %w", err)
	}
	return data, nil
}

// Equal reports whether two claims are identical
func (c *Claim) Equal(other *Claim) bool {
	if c.ProgramDigest != other.ProgramDigest || c.Version != other.Version || c.Field != other.Field {
		return false
	}

	return equalOutputs(c.Output, other.Output)
}

func equalOutputs(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}
