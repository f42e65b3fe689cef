package protocols

import (
	"fmt"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/utils"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/vm"
)

// Engine is the boundary between the VM and a proof system. It consumes the
// padded trace together with the AIR and produces or checks a proof.
type Engine[F core.Element[F]] interface {
	Prove(claim *Claim, trace *vm.TraceMatrix[F]) (*Proof, error)
	Verify(proof *Proof) error
}

// TraceCommitmentEngine is the reference Engine: a Merkle commitment to the
// rows with Fiat-Shamir sampled openings. It is sound only up to the number
// of queries; it does not compress the trace the way a FRI based STARK does.
type TraceCommitmentEngine[F core.Element[F]] struct {
	*Prover[F]
	*Verifier[F]
}

var _ Engine[core.M31] = (*TraceCommitmentEngine[core.M31])(nil)

// NewEngine creates the reference engine for the given configuration
func NewEngine[F core.Element[F]](config *utils.Config) (*TraceCommitmentEngine[F], error) {
	prover, err := NewProver[F](config)
	if err != nil {
		return nil, fmt.Errorf("failed to create prover: %w", err)
	}

	verifier, err := NewVerifier[F](config)
	if err != nil {
		return nil, fmt.Errorf("failed to create verifier: %w", err)
	}

	return &TraceCommitmentEngine[F]{Prover: prover, Verifier: verifier}, nil
}
