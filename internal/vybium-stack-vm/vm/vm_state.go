package vm

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
)

// Snapshot records the VM after one instruction: the resulting stack, the
// instruction itself and its auxiliary witness (the Div remainder, zero
// otherwise).
type Snapshot[F core.Element[F]] struct {
	Stack       Stack[F]
	Instruction Instruction[F]
	Aux         F
}

// Executor runs a program against the 4-slot stack and records one snapshot
// per executed instruction. It owns its stack and history exclusively.
type Executor[F core.Element[F]] struct {
	instructions []Instruction[F]
	stack        Stack[F]
	ip           int
	snapshots    []Snapshot[F]
}

// NewExecutor creates an executor over a copy of the given instructions.
// An empty sequence is valid.
func NewExecutor[F core.Element[F]](instructions []Instruction[F]) *Executor[F] {
	return &Executor[F]{
		instructions: append([]Instruction[F](nil), instructions...),
		snapshots:    make([]Snapshot[F], 0, len(instructions)),
	}
}

// NewExecutorForProgram creates an executor for a Program
func NewExecutorForProgram[F core.Element[F]](program *Program[F]) *Executor[F] {
	return NewExecutor(program.Instructions)
}

// Run executes the remaining instructions in order. The first failure is
// returned as an *ExecutionError; the failing instruction leaves neither a
// snapshot nor a stack change behind and the instruction pointer stays on it.
func (e *Executor[F]) Run() error {
	for e.ip < len(e.instructions) {
		if err := e.Step(); err != nil {
			return err
		}
	}

	log.WithField("cycles", len(e.snapshots)).Debug("execution completed")

	return nil
}

// Step executes the instruction at the instruction pointer
func (e *Executor[F]) Step() error {
	if e.Halted() {
		return nil
	}

	inst := e.instructions[e.ip]

	aux, err := e.ExecuteInstruction(inst)
	if err != nil {
		log.WithFields(log.Fields{
			"ip":          e.ip,
			"instruction": inst.String(),
		}).Debug("execution aborted")

		return &ExecutionError{IP: e.ip, Instruction: inst.String(), Err: err}
	}

	e.snapshots = append(e.snapshots, Snapshot[F]{
		Stack:       e.stack,
		Instruction: inst,
		Aux:         aux,
	})

	log.WithFields(log.Fields{
		"ip":          e.ip,
		"instruction": inst.String(),
		"top":         e.stack.Top().String(),
	}).Debug("executed instruction")

	e.ip++

	return nil
}

// ExecuteInstruction dispatches to the handler for inst and returns the
// auxiliary witness it produced.
func (e *Executor[F]) ExecuteInstruction(inst Instruction[F]) (F, error) {
	switch inst.opcode {
	case Push:
		return e.execPush(inst)
	case Add:
		return e.execAdd()
	case Sub:
		return e.execSub()
	case Mul:
		return e.execMul()
	case Div:
		return e.execDiv()
	default:
		return core.Zero[F](), fmt.Errorf("unknown instruction: %s", inst.opcode)
	}
}

// Stack returns the current top-4 view
func (e *Executor[F]) Stack() Stack[F] {
	return e.stack
}

// Snapshots returns a copy of the execution history
func (e *Executor[F]) Snapshots() []Snapshot[F] {
	return append([]Snapshot[F](nil), e.snapshots...)
}

// InstructionPointer returns the index of the next instruction to execute
func (e *Executor[F]) InstructionPointer() int {
	return e.ip
}

// CycleCount returns the number of executed instructions
func (e *Executor[F]) CycleCount() int {
	return len(e.snapshots)
}

// Halted reports whether every instruction has been executed
func (e *Executor[F]) Halted() bool {
	return e.ip >= len(e.instructions)
}

// ExecuteAndTrace runs the executor to completion and builds the padded
// trace from its snapshots.
func (e *Executor[F]) ExecuteAndTrace() (*TraceMatrix[F], error) {
	if err := e.Run(); err != nil {
		return nil, err
	}

	return BuildTrace(e.Snapshots()), nil
}
