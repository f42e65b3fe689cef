package protocols

import (
	"bytes"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/utils"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/vm"
)

// ErrProofRejected wraps every reason a well-formed proof fails to verify
var ErrProofRejected = errors.New("proof rejected")

// maxHeight bounds the trace height accepted from a proof
const maxHeight = 1 << 30

// Verifier checks proofs produced by Prover.
//
// Verification:
// 1. Validate the claim and the proof shape
// 2. Reconstruct the Fiat-Shamir state and the query indices
// 3. Verify every opened row against the trace root
// 4. Check the boundary on row 0 and the claimed output on the last row
// 5. Check the transition constraints on every opened pair
type Verifier[F core.Element[F]] struct {
	config *utils.Config
	air    *AIR[F]
}

// NewVerifier creates a new verifier with the given configuration
func NewVerifier[F core.Element[F]](config *utils.Config) (*Verifier[F], error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Verifier[F]{
		config: config.Clone(),
		air:    NewAIR[F](),
	}, nil
}

// Verify verifies a proof. Returns nil if the proof is valid; rejections
// wrap ErrProofRejected.
func (v *Verifier[F]) Verify(proof *Proof) error {
	if err := v.verify(proof); err != nil {
		log.WithError(err).Info("proof rejected")
		return err
	}

	log.WithField("height", proof.Height).Info("proof verified")

	return nil
}

func (v *Verifier[F]) verify(proof *Proof) error {
	// Step 1: Validate inputs
	if err := proof.Validate(); err != nil {
		return reject("invalid proof: %v", err)
	}

	if err := proof.Claim.Validate(); err != nil {
		return reject("invalid claim: %v", err)
	}

	if proof.Claim.Field != v.config.Field {
		return reject("proof is over field %s, expected %s", proof.Claim.Field, v.config.Field)
	}

	height := proof.Height
	if height > maxHeight || !utils.IsPowerOfTwo(height) {
		return reject("trace height %d is not a supported power of two", height)
	}

	if len(proof.Queries) != v.config.NumQueries {
		return reject("proof answers %d queries, expected %d", len(proof.Queries), v.config.NumQueries)
	}

	// Step 2: Reconstruct challenges
	channel, err := newTranscript(v.config.HashFunction, &proof.Claim, height, proof.TraceRoot)
	if err != nil {
		return err
	}

	indices, err := channel.SampleIndices(height, v.config.NumQueries)
	if err != nil {
		return fmt.Errorf("failed to sample query indices: %w", err)
	}

	depth := utils.Log2(height)

	// Step 3 and 4: boundary and final rows
	first, err := v.openRow(proof, &proof.Boundary, 0, depth)
	if err != nil {
		return err
	}

	if err := v.air.CheckBoundary(first); err != nil {
		return reject("%v", err)
	}

	last, err := v.openRow(proof, &proof.Final, height-1, depth)
	if err != nil {
		return err
	}

	if !equalOutputs(proof.Claim.Output, StackOutput(last)) {
		return reject("final stack does not match the claimed output")
	}

	// Step 5: transitions on every opened pair
	for q, i := range indices {
		query := &proof.Queries[q]

		cur, err := v.openRow(proof, &query.Current, i, depth)
		if err != nil {
			return err
		}

		if i+1 >= height {
			if query.Next != nil {
				return reject("query %d opens a row past the end of the trace", q)
			}
			continue
		}

		if query.Next == nil {
			return reject("query %d is missing row %d", q, i+1)
		}

		next, err := v.openRow(proof, query.Next, i+1, depth)
		if err != nil {
			return err
		}

		if err := v.air.CheckTransition(i, cur, next); err != nil {
			return reject("%v", err)
		}
	}

	return nil
}

// openRow authenticates an opening at the expected index and decodes it
func (v *Verifier[F]) openRow(proof *Proof, opening *RowOpening, index, depth int) ([]F, error) {
	if opening.Index != index {
		return nil, reject("opening for row %d found at index %d", index, opening.Index)
	}

	if len(opening.Path) != depth {
		return nil, reject("authentication path for row %d has length %d, expected %d", index, len(opening.Path), depth)
	}

	if !core.VerifyProof(proof.TraceRoot, opening.Row, opening.Path, index) {
		return nil, reject("row %d is not committed under the trace root", index)
	}

	row, err := DecodeRow[F](opening.Row)
	if err != nil {
		return nil, reject("row %d: %v", index, err)
	}

	return row, nil
}

// DecodeRow parses the canonical encoding of a trace row, rejecting
// non-canonical field encodings
func DecodeRow[F core.Element[F]](data []byte) ([]F, error) {
	width := core.ByteWidth[F]()
	if len(data) != width*vm.TraceWidth {
		return nil, fmt.Errorf("encoded row has %d bytes, expected %d", len(data), width*vm.TraceWidth)
	}

	row := make([]F, vm.TraceWidth)
	for j := range row {
		chunk := data[j*width : (j+1)*width]
		row[j] = core.Zero[F]().SetBytes(chunk)

		if !bytes.Equal(row[j].Bytes(), chunk) {
			return nil, fmt.Errorf("column %d is not canonically encoded", j)
		}
	}

	return row, nil
}

func reject(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrProofRejected, fmt.Sprintf(format, args...))
}
