package vybiumstackvm

import (
	"fmt"
	"math/big"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/vm"
)

// VM is the public interface for the stack VM
type VM interface {
	// Execute runs a program on the VM and returns the execution trace
	Execute(program *Program) (*ExecutionTrace, error)

	// GetState returns the state left by the last run
	GetState() *VMState
}

// vmImpl is the internal implementation of VM
type vmImpl struct {
	config *Config
	state  *VMState
}

// NewVM creates a new stack VM with the given configuration
func NewVM(config *Config) (VM, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, &VMError{
			Code:    ErrInvalidConfig,
			Message: "invalid configuration",
			Cause:   err,
		}
	}

	return &vmImpl{config: config.Clone()}, nil
}

// Execute runs a program with the default configuration
func Execute(program *Program) (*ExecutionTrace, error) {
	machine, err := NewVM(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return machine.Execute(program)
}

// Execute runs a program on the VM and returns the execution trace. A
// failed run still updates the state returned by GetState.
func (v *vmImpl) Execute(program *Program) (*ExecutionTrace, error) {
	fieldName, err := core.ParseFieldName(v.config.Field)
	if err != nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "unknown field", Cause: err}
	}

	switch fieldName {
	case core.FieldGoldilocks:
		return execute[core.Goldilocks](v, program)
	case core.FieldBLS12377:
		return execute[core.BLS12377](v, program)
	default:
		return execute[core.M31](v, program)
	}
}

func execute[F core.Element[F]](v *vmImpl, program *Program) (*ExecutionTrace, error) {
	internal, err := lowerProgram[F](program)
	if err != nil {
		return nil, err
	}

	executor := vm.NewExecutorForProgram(internal)
	trace, err := executor.ExecuteAndTrace()
	v.state = stateOf(executor)
	if err != nil {
		return nil, &VMError{
			Code:    ErrVMExecution,
			Message: "VM execution failed",
			Cause:   err,
		}
	}

	rows := make([][]*big.Int, trace.Height())
	for i := range rows {
		rows[i] = toBig(trace.Row(i))
	}

	return &ExecutionTrace{
		Trace:          rows,
		Stack:          toBig(executor.Stack().Values()),
		UnpaddedHeight: trace.UnpaddedHeight(),
		CycleCount:     executor.CycleCount(),
		ProgramDigest:  vm.ProgramDigest(internal),
	}, nil
}

// GetState returns the state left by the last run
func (v *vmImpl) GetState() *VMState {
	if v.state == nil {
		return &VMState{}
	}

	state := *v.state
	return &state
}

func stateOf[F core.Element[F]](executor *vm.Executor[F]) *VMState {
	return &VMState{
		InstructionPointer: executor.InstructionPointer(),
		CycleCount:         executor.CycleCount(),
		Halted:             executor.Halted(),
		Stack:              toBig(executor.Stack().Values()),
	}
}

// ParseProgram reads a program in the textual form ("Push(42)" per line) or
// as JSON {"instructions": [...]}.
func ParseProgram(data []byte) (*Program, error) {
	// parse over BLS12-377 so that every uint64 literal survives unreduced
	internal, err := vm.ParseUnsignedProgram[core.BLS12377](data)
	if err != nil {
		return nil, &VMError{Code: ErrInvalidInput, Message: "invalid program", Cause: err}
	}

	program := &Program{Instructions: make([]Instruction, 0, internal.Len())}
	for _, inst := range internal.Instructions {
		program.Instructions = append(program.Instructions, Instruction{
			Opcode:   inst.Opcode(),
			Argument: new(big.Int).SetBytes(inst.Literal().Bytes()).Uint64(),
		})
	}

	return program, nil
}

// lowerProgram converts the public program into field F
func lowerProgram[F core.Element[F]](program *Program) (*vm.Program[F], error) {
	if program == nil {
		return nil, &VMError{Code: ErrInvalidInput, Message: "program cannot be nil"}
	}

	internal := vm.NewProgram[F]()
	for i, inst := range program.Instructions {
		lowered, err := lowerInstruction[F](inst)
		if err != nil {
			return nil, &VMError{
				Code:    ErrInvalidInput,
				Message: fmt.Sprintf("invalid instruction %d", i),
				Cause:   err,
			}
		}
		internal.AddInstruction(lowered)
	}

	return internal, nil
}

func lowerInstruction[F core.Element[F]](inst Instruction) (vm.Instruction[F], error) {
	if inst.Opcode == OpPush {
		return vm.PushOp(core.Uint64[F](inst.Argument)), nil
	}
	return vm.NewInstruction[F](inst.Opcode, nil)
}

// toBig converts canonical field elements to integers
func toBig[F core.Element[F]](values []F) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = new(big.Int).SetBytes(v.Bytes())
	}
	return out
}
