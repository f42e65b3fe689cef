// Package vm provides the stack VM instruction set, the executor and the
// trace builder that arithmetizes a run.
package vm

import (
	"fmt"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
)

// Opcode identifies one of the five VM operations
type Opcode uint8

// Instruction set. The numbering fixes each opcode's selector column:
// column ColIsPush + opcode.
const (
	// Push pushes a literal onto the stack
	Push Opcode = iota
	// Add replaces the top two elements with a + b
	Add
	// Sub replaces the top two elements with a - b
	Sub
	// Mul replaces the top two elements with a * b
	Mul
	// Div replaces the top two elements with a / b
	Div
)

// InstructionCount is the total number of opcodes
const InstructionCount = 5

// InstructionInfo provides metadata about an opcode
type InstructionInfo struct {
	Opcode      Opcode
	Name        string
	Description string
	HasArg      bool // Whether the instruction carries a literal
}

// AllInstructions returns information about all opcodes
var AllInstructions = map[Opcode]InstructionInfo{
	Push: {Push, "push", "Push literal onto stack", true},
	Add:  {Add, "add", "Add top two elements", false},
	Sub:  {Sub, "sub", "Subtract second element from top", false},
	Mul:  {Mul, "mul", "Multiply top two elements", false},
	Div:  {Div, "div", "Divide top by second element", false},
}

// String returns the name of the opcode
func (op Opcode) String() string {
	if info, ok := AllInstructions[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("unknown(%d)", op)
}

// Info returns metadata about the opcode
func (op Opcode) Info() (InstructionInfo, error) {
	info, ok := AllInstructions[op]
	if !ok {
		return InstructionInfo{}, fmt.Errorf("unknown opcode: %d", op)
	}
	return info, nil
}

// Selector returns the trace column holding this opcode's one-hot flag
func (op Opcode) Selector() int {
	return ColIsPush + int(op)
}

// IsBinary reports whether the opcode consumes the top two stack elements
func (op Opcode) IsBinary() bool {
	return op >= Add && op <= Div
}

// Instruction is an immutable VM instruction over the field F. Only Push
// carries a literal.
type Instruction[F core.Element[F]] struct {
	opcode  Opcode
	literal F
}

// PushOp constructs Push(value)
func PushOp[F core.Element[F]](value F) Instruction[F] {
	return Instruction[F]{opcode: Push, literal: value}
}

// AddOp constructs Add
func AddOp[F core.Element[F]]() Instruction[F] {
	return Instruction[F]{opcode: Add}
}

// SubOp constructs Sub
func SubOp[F core.Element[F]]() Instruction[F] {
	return Instruction[F]{opcode: Sub}
}

// MulOp constructs Mul
func MulOp[F core.Element[F]]() Instruction[F] {
	return Instruction[F]{opcode: Mul}
}

// DivOp constructs Div
func DivOp[F core.Element[F]]() Instruction[F] {
	return Instruction[F]{opcode: Div}
}

// NewInstruction creates an instruction from an opcode and an optional
// literal, rejecting unknown opcodes and misplaced literals.
func NewInstruction[F core.Element[F]](op Opcode, literal *F) (Instruction[F], error) {
	info, err := op.Info()
	if err != nil {
		return Instruction[F]{}, err
	}

	if info.HasArg && literal == nil {
		return Instruction[F]{}, fmt.Errorf("instruction %s requires an argument", op)
	}

	if !info.HasArg && literal != nil {
		return Instruction[F]{}, fmt.Errorf("instruction %s does not take an argument", op)
	}

	inst := Instruction[F]{opcode: op}
	if literal != nil {
		inst.literal = *literal
	}

	return inst, nil
}

// Opcode returns the instruction's opcode
func (i Instruction[F]) Opcode() Opcode {
	return i.opcode
}

// Literal returns the pushed value, or zero for non-Push instructions
func (i Instruction[F]) Literal() F {
	return i.literal
}

// Equal reports whether two instructions are identical
func (i Instruction[F]) Equal(other Instruction[F]) bool {
	return i.opcode == other.opcode && i.literal.Equal(other.literal)
}

// String renders the instruction in the textual form accepted by
// ParseInstruction, e.g. "Push(42)" or "Add".
func (i Instruction[F]) String() string {
	switch i.opcode {
	case Push:
		return fmt.Sprintf("Push(%s)", i.literal)
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	default:
		return i.opcode.String()
	}
}

// Words returns the instruction as two field elements: opcode and literal
func (i Instruction[F]) Words() []F {
	return []F{core.Uint64[F](uint64(i.opcode)), i.literal}
}

// Program is an ordered instruction sequence
type Program[F core.Element[F]] struct {
	Instructions []Instruction[F]
}

// NewProgram creates a program from the given instructions
func NewProgram[F core.Element[F]](instructions ...Instruction[F]) *Program[F] {
	return &Program[F]{
		Instructions: append([]Instruction[F](nil), instructions...),
	}
}

// AddInstruction appends an instruction to the program
func (p *Program[F]) AddInstruction(inst Instruction[F]) {
	p.Instructions = append(p.Instructions, inst)
}

// Len returns the number of instructions
func (p *Program[F]) Len() int {
	return len(p.Instructions)
}

// ToWords converts the program to field elements, two per instruction
func (p *Program[F]) ToWords() []F {
	words := make([]F, 0, 2*len(p.Instructions))
	for _, inst := range p.Instructions {
		words = append(words, inst.Words()...)
	}
	return words
}

// String renders the program one instruction per line
func (p *Program[F]) String() string {
	var out []byte
	for _, inst := range p.Instructions {
		out = append(out, inst.String()...)
		out = append(out, '\n')
	}
	return string(out)
}
