package vybiumstackvm

import (
	"fmt"
	"math/big"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/protocols"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/utils"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/vm"
)

// Proof represents a trace commitment proof
type Proof = protocols.Proof

// Claim represents public information about a computation
type Claim = protocols.Claim

// Config represents configuration for execution, proving and verification
type Config = utils.Config

// ExecutionError reports the instruction a run aborted on
type ExecutionError = vm.ExecutionError

// ErrDivisionByZero is returned (wrapped) when Div meets a zero divisor
var ErrDivisionByZero = vm.ErrDivisionByZero

// DefaultConfig returns the default configuration over the Mersenne-31 field
func DefaultConfig() *Config {
	return utils.DefaultConfig()
}

// Opcode identifies a VM operation
type Opcode = vm.Opcode

// Instruction set
const (
	OpPush = vm.Push
	OpAdd  = vm.Add
	OpSub  = vm.Sub
	OpMul  = vm.Mul
	OpDiv  = vm.Div
)

// Program represents a stack VM program
type Program struct {
	Instructions []Instruction
}

// Instruction represents a single VM instruction. Argument is the pushed
// literal and is ignored for every opcode but Push.
type Instruction struct {
	Opcode   Opcode
	Argument uint64
}

// Push returns Push(value)
func Push(value uint64) Instruction {
	return Instruction{Opcode: OpPush, Argument: value}
}

// Add returns Add
func Add() Instruction {
	return Instruction{Opcode: OpAdd}
}

// Sub returns Sub
func Sub() Instruction {
	return Instruction{Opcode: OpSub}
}

// Mul returns Mul
func Mul() Instruction {
	return Instruction{Opcode: OpMul}
}

// Div returns Div
func Div() Instruction {
	return Instruction{Opcode: OpDiv}
}

// String renders the instruction as "Push(42)", "Add", ...
func (i Instruction) String() string {
	if i.Opcode == OpPush {
		return fmt.Sprintf("Push(%d)", i.Argument)
	}

	inst, err := lowerInstruction[core.M31](i)
	if err != nil {
		return i.Opcode.String()
	}
	return inst.String()
}

// NewProgram creates a program from the given instructions
func NewProgram(instructions ...Instruction) *Program {
	return &Program{Instructions: append([]Instruction(nil), instructions...)}
}

// ExecutionTrace represents the arithmetized run of a program
type ExecutionTrace struct {
	// Trace holds the padded rows, 11 columns each
	Trace [][]*big.Int

	// Stack is the final stack, top first
	Stack []*big.Int

	// UnpaddedHeight is the boundary row plus one row per instruction
	UnpaddedHeight int

	// CycleCount is the number of executed instructions
	CycleCount int

	// ProgramDigest binds proofs to this program
	ProgramDigest uint64
}

// Height returns the padded trace height
func (t *ExecutionTrace) Height() int {
	return len(t.Trace)
}

// VMState represents the state of the VM after its last run (read-only)
type VMState struct {
	// Instruction pointer
	InstructionPointer int

	// Cycle count
	CycleCount int

	// Halted flag
	Halted bool

	// Stack, top first
	Stack []*big.Int
}

// ProofVerificationResult represents the result of proof verification
type ProofVerificationResult struct {
	// Whether the proof is valid
	Valid bool

	// Error message if verification failed
	Error string

	// Verification time in milliseconds
	VerificationTimeMs int64
}
