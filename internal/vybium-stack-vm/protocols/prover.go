package protocols

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/utils"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/vm"
)

// Prover commits to execution traces and answers Fiat-Shamir queries.
//
// The Prover implements the following workflow:
// 1. Checks the trace shape and every AIR constraint
// 2. Commits to the rows in a Merkle tree
// 3. Absorbs the claim, height and root into the channel
// 4. Samples query indices and opens the queried row pairs
// 5. Packages everything into a Proof
type Prover[F core.Element[F]] struct {
	config *utils.Config
	air    *AIR[F]
}

// NewProver creates a new prover with the given configuration
func NewProver[F core.Element[F]](config *utils.Config) (*Prover[F], error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Prover[F]{
		config: config.Clone(),
		air:    NewAIR[F](),
	}, nil
}

// Prove generates a proof that trace satisfies the AIR under claim. The
// claim's Output must match the final stack held by the trace.
func (p *Prover[F]) Prove(claim *Claim, trace *vm.TraceMatrix[F]) (*Proof, error) {
	if err := claim.Validate(); err != nil {
		return nil, fmt.Errorf("invalid claim: %w", err)
	}

	if claim.Field != p.config.Field {
		return nil, fmt.Errorf("claim field %s does not match configured field %s", claim.Field, p.config.Field)
	}

	// Step 1: refuse to prove anything the verifier would reject
	if err := p.air.Check(trace); err != nil {
		return nil, fmt.Errorf("trace does not satisfy constraints: %w", err)
	}

	height := trace.Height()
	if !equalOutputs(claim.Output, StackOutput(trace.Row(height-1))) {
		return nil, fmt.Errorf("claimed output does not match the final stack")
	}

	// Step 2: commit to the rows
	tree, leaves, err := CommitTrace(trace)
	if err != nil {
		return nil, err
	}

	// Step 3: Fiat-Shamir
	channel, err := newTranscript(p.config.HashFunction, claim, height, tree.Root())
	if err != nil {
		return nil, err
	}

	// Step 4: open the sampled row pairs
	indices, err := channel.SampleIndices(height, p.config.NumQueries)
	if err != nil {
		return nil, fmt.Errorf("failed to sample query indices: %w", err)
	}

	open := func(i int) (RowOpening, error) {
		path, err := tree.Proof(i)
		if err != nil {
			return RowOpening{}, fmt.Errorf("failed to open row %d: %w", i, err)
		}
		return RowOpening{Index: i, Row: leaves[i], Path: path}, nil
	}

	proof := &Proof{
		Claim:     *claim,
		Height:    height,
		TraceRoot: tree.Root(),
		Queries:   make([]QueryOpening, 0, len(indices)),
	}

	if proof.Boundary, err = open(0); err != nil {
		return nil, err
	}

	if proof.Final, err = open(height - 1); err != nil {
		return nil, err
	}

	for _, i := range indices {
		var query QueryOpening

		if query.Current, err = open(i); err != nil {
			return nil, err
		}

		if i+1 < height {
			next, err := open(i + 1)
			if err != nil {
				return nil, err
			}
			query.Next = &next
		}

		proof.Queries = append(proof.Queries, query)
	}

	log.WithFields(log.Fields{
		"height":  height,
		"queries": len(proof.Queries),
		"size":    proof.Size(),
	}).Info("generated proof")

	return proof, nil
}

// CommitTrace builds the Merkle tree over the encoded rows of trace and
// returns it with its leaves
func CommitTrace[F core.Element[F]](trace *vm.TraceMatrix[F]) (*core.MerkleTree, [][]byte, error) {
	leaves := make([][]byte, trace.Height())
	for i := range leaves {
		leaves[i] = trace.RowBytes(i)
	}

	tree, err := core.NewMerkleTree(leaves)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to commit to trace: %w", err)
	}

	return tree, leaves, nil
}

// StackOutput extracts the canonical encoding of the stack columns of row
func StackOutput[F core.Element[F]](row []F) [][]byte {
	output := make([][]byte, vm.StackDepth)
	for i := range output {
		output[i] = row[vm.ColStack0+i].Bytes()
	}
	return output
}

// newTranscript seeds a channel with everything the verifier can recompute
func newTranscript(hashFunc string, claim *Claim, height int, root []byte) (*utils.Channel, error) {
	encoded, err := claim.Encode()
	if err != nil {
		return nil, err
	}

	channel := utils.NewChannel(hashFunc)
	channel.Send(encoded)
	channel.SendUint64(uint64(height))
	channel.Send(root)

	return channel, nil
}
