package vm

import "github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"

// execPush pushes the literal, discarding the bottom slot
func (e *Executor[F]) execPush(inst Instruction[F]) (F, error) {
	e.stack.push(inst.literal)
	return core.Zero[F](), nil
}

// execAdd computes a + b
func (e *Executor[F]) execAdd() (F, error) {
	return e.execBinary(func(a, b F) F { return a.Add(b) })
}

// execSub computes a - b
func (e *Executor[F]) execSub() (F, error) {
	return e.execBinary(func(a, b F) F { return a.Sub(b) })
}

// execMul computes a * b
func (e *Executor[F]) execMul() (F, error) {
	return e.execBinary(func(a, b F) F { return a.Mul(b) })
}

// execDiv computes a / b and returns the remainder a - (a/b)*b as witness.
// The stack is left untouched when b = 0.
func (e *Executor[F]) execDiv() (F, error) {
	a, b := e.stack[0], e.stack[1]

	quotient, err := core.Div(a, b)
	if err != nil {
		return core.Zero[F](), ErrDivisionByZero
	}

	remainder := a.Sub(quotient.Mul(b))
	e.stack.collapse(quotient)

	return remainder, nil
}

// execBinary applies op to (slot0, slot1) and collapses the stack
func (e *Executor[F]) execBinary(op func(a, b F) F) (F, error) {
	e.stack.collapse(op(e.stack[0], e.stack[1]))
	return core.Zero[F](), nil
}
