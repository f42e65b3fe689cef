package vybiumstackvm

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/protocols"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/vm"
)

// Prove executes program and returns the encoded proof of its trace
func Prove(config *Config, program *Program) ([]byte, error) {
	config, err := checkConfig(config)
	if err != nil {
		return nil, err
	}

	switch config.Field {
	case core.FieldGoldilocks:
		return prove[core.Goldilocks](config, program)
	case core.FieldBLS12377:
		return prove[core.BLS12377](config, program)
	default:
		return prove[core.M31](config, program)
	}
}

func prove[F core.Element[F]](config *Config, program *Program) ([]byte, error) {
	internal, err := lowerProgram[F](program)
	if err != nil {
		return nil, err
	}

	trace, err := vm.NewExecutorForProgram(internal).ExecuteAndTrace()
	if err != nil {
		return nil, &VMError{Code: ErrVMExecution, Message: "VM execution failed", Cause: err}
	}

	prover, err := protocols.NewProver[F](config)
	if err != nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "invalid configuration", Cause: err}
	}

	claim := protocols.NewClaim(vm.ProgramDigest(internal), config.Field).
		WithOutput(protocols.StackOutput(trace.Row(trace.Height() - 1)))

	proof, err := prover.Prove(claim, trace)
	if err != nil {
		return nil, &VMError{Code: ErrProofGeneration, Message: "failed to generate proof", Cause: err}
	}

	data, err := proof.MarshalBinary()
	if err != nil {
		return nil, &VMError{Code: ErrProofGeneration, Message: "failed to encode proof", Cause: err}
	}

	return data, nil
}

// Verify checks an encoded proof against program. Besides the proof itself,
// program is re-executed and its trace commitment must equal the proof's
// trace root. A proof that decodes but fails verification yields a result
// with Valid unset and a nil error.
func Verify(config *Config, program *Program, proofBytes []byte) (*ProofVerificationResult, error) {
	config, err := checkConfig(config)
	if err != nil {
		return nil, err
	}

	switch config.Field {
	case core.FieldGoldilocks:
		return verify[core.Goldilocks](config, program, proofBytes)
	case core.FieldBLS12377:
		return verify[core.BLS12377](config, program, proofBytes)
	default:
		return verify[core.M31](config, program, proofBytes)
	}
}

func verify[F core.Element[F]](config *Config, program *Program, proofBytes []byte) (*ProofVerificationResult, error) {
	start := time.Now()

	internal, err := lowerProgram[F](program)
	if err != nil {
		return nil, err
	}

	proof, err := protocols.UnmarshalProof(proofBytes)
	if err != nil {
		return nil, &VMError{Code: ErrInvalidProof, Message: "malformed proof", Cause: err}
	}

	verifier, err := protocols.NewVerifier[F](config)
	if err != nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "invalid configuration", Cause: err}
	}

	result := &ProofVerificationResult{Valid: true}

	if digest := vm.ProgramDigest(internal); proof.Claim.ProgramDigest != digest {
		result.Valid = false
		result.Error = fmt.Sprintf("proof is for program %x, expected %x", proof.Claim.ProgramDigest, digest)
	} else if err := verifier.Verify(proof); err != nil {
		if !errors.Is(err, protocols.ErrProofRejected) {
			return nil, &VMError{Code: ErrProofVerification, Message: "verification failed", Cause: err}
		}
		result.Valid = false
		result.Error = err.Error()
	} else if err := checkTraceBinding(internal, proof); err != nil {
		result.Valid = false
		result.Error = err.Error()
	}

	result.VerificationTimeMs = time.Since(start).Milliseconds()

	return result, nil
}

// checkTraceBinding re-executes program and requires the proof to commit to
// exactly its trace. The digest in the claim is chosen by the prover; only
// the trace root ties the opened rows to program.
func checkTraceBinding[F core.Element[F]](program *vm.Program[F], proof *protocols.Proof) error {
	trace, err := vm.NewExecutorForProgram(program).ExecuteAndTrace()
	if err != nil {
		return fmt.Errorf("program does not execute: %w", err)
	}

	if trace.Height() != proof.Height {
		return fmt.Errorf("proof commits to %d rows, program produces %d", proof.Height, trace.Height())
	}

	tree, _, err := protocols.CommitTrace(trace)
	if err != nil {
		return err
	}

	if !bytes.Equal(tree.Root(), proof.TraceRoot) {
		return fmt.Errorf("proof does not commit to the trace of this program")
	}

	return nil
}

// DecodeClaim returns the claim carried by an encoded proof without verifying it
func DecodeClaim(proofBytes []byte) (*Claim, error) {
	proof, err := protocols.UnmarshalProof(proofBytes)
	if err != nil {
		return nil, &VMError{Code: ErrInvalidProof, Message: "malformed proof", Cause: err}
	}
	return &proof.Claim, nil
}

// checkConfig validates config and returns a copy naming its field canonically
func checkConfig(config *Config) (*Config, error) {
	if config == nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "configuration cannot be nil"}
	}

	if err := config.Validate(); err != nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "invalid configuration", Cause: err}
	}

	fieldName, err := core.ParseFieldName(config.Field)
	if err != nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "unknown field", Cause: err}
	}

	return config.Clone().WithField(fieldName), nil
}
