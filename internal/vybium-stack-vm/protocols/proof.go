package protocols

import (
	"fmt"

	"github.com/Salvionied/cbor/v2"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
)

// Proof contains the cryptographic information to verify a computation.
// Should be used together with a Claim.
//
// The trace is committed row by row in a Merkle tree. The proof opens the
// first row (boundary), the last row (final stack) and, for every sampled
// index i, rows i and i+1.
type Proof struct {
	Claim Claim `cbor:"1,keyasint"`

	// Height is the padded trace height, a power of two
	Height int `cbor:"2,keyasint"`

	// TraceRoot is the Merkle root over the encoded rows
	TraceRoot []byte `cbor:"3,keyasint"`

	Boundary RowOpening `cbor:"4,keyasint"`
	Final    RowOpening `cbor:"5,keyasint"`

	Queries []QueryOpening `cbor:"6,keyasint"`
}

// RowOpening reveals one committed row with its authentication path
type RowOpening struct {
	Index int              `cbor:"1,keyasint"`
	Row   []byte           `cbor:"2,keyasint"`
	Path  []core.ProofNode `cbor:"3,keyasint"`
}

// QueryOpening is the answer to one sampled index. Next is absent when the
// sampled row is the last one.
type QueryOpening struct {
	Current RowOpening  `cbor:"1,keyasint"`
	Next    *RowOpening `cbor:"2,keyasint,omitempty"`
}

// wireProof has the fields of Proof but none of its methods, so the CBOR
// encoder does not route back through MarshalBinary
type wireProof Proof

// MarshalBinary encodes the proof as CBOR
func (p *Proof) MarshalBinary() ([]byte, error) {
	data, err := cbor.Marshal((*wireProof)(p))
	if err != nil {
		return nil, fmt.Errorf("failed to encode proof: %w", err)
	}
	return data, nil
}

// UnmarshalProof decodes a CBOR proof and checks it is well-formed
func UnmarshalProof(data []byte) (*Proof, error) {
	var p Proof
	if err := cbor.Unmarshal(data, (*wireProof)(&p)); err != nil {
		return nil, fmt.Errorf("failed to decode proof: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks if the proof is well-formed
func (p *Proof) Validate() error {
	if p.Height <= 0 {
		return fmt.Errorf("proof must contain a positive trace height, got %d", p.Height)
	}

	if len(p.TraceRoot) == 0 {
		return fmt.Errorf("proof must contain a trace root")
	}

	if len(p.Queries) == 0 {
		return fmt.Errorf("proof must contain at least one query")
	}

	return nil
}

// Size returns the approximate size of the proof in bytes
func (p *Proof) Size() int {
	size := len(p.TraceRoot) + 8
	size += p.Boundary.size() + p.Final.size()

	for _, q := range p.Queries {
		size += q.Current.size()
		if q.Next != nil {
			size += q.Next.size()
		}
	}

	return size
}

func (o *RowOpening) size() int {
	size := len(o.Row) + 8
	for _, node := range o.Path {
		size += len(node.Hash) + 1
	}
	return size
}

// String returns a human-readable representation of the proof
func (p *Proof) String() string {
	return fmt.Sprintf("Proof{Height: %d, Queries: %d, Size: %d bytes}", p.Height, len(p.Queries), p.Size())
}
