package vm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
)

func m31(v uint64) core.M31 {
	return core.NewM31(v)
}

func stackOf(values ...uint64) Stack[core.M31] {
	var s Stack[core.M31]
	for i, v := range values {
		s[i] = m31(v)
	}
	return s
}

func run(t *testing.T, instructions ...Instruction[core.M31]) *Executor[core.M31] {
	t.Helper()
	exec := NewExecutor(instructions)
	require.NoError(t, exec.Run())
	return exec
}

// TestExecutorCreation tests executor state before running
func TestExecutorCreation(t *testing.T) {
	exec := NewExecutor([]Instruction[core.M31]{PushOp(m31(1))})

	assert.Equal(t, 0, exec.InstructionPointer())
	assert.Equal(t, 0, exec.CycleCount())
	assert.False(t, exec.Halted())
	assert.Empty(t, exec.Snapshots())
	assert.Equal(t, stackOf(), exec.Stack())
}

// TestExecutorEmptyProgram checks that an empty sequence is a valid run
func TestExecutorEmptyProgram(t *testing.T) {
	exec := run(t)

	assert.True(t, exec.Halted())
	assert.Empty(t, exec.Snapshots())
	assert.Equal(t, stackOf(), exec.Stack())
}

// TestBinaryOperations pins the operand order: a is the top (last pushed)
func TestBinaryOperations(t *testing.T) {
	tests := []struct {
		name     string
		op       Instruction[core.M31]
		expected core.M31
	}{
		{"add", AddOp[core.M31](), m31(40)},
		{"sub", SubOp[core.M31](), m31(20)},
		{"mul", MulOp[core.M31](), m31(300)},
		{"div", DivOp[core.M31](), m31(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := run(t, PushOp(m31(10)), PushOp(m31(30)), tt.op)

			assert.Equal(t, stackOf(tt.expected.Uint64()), exec.Stack())

			snaps := exec.Snapshots()
			require.Len(t, snaps, 3)
			assert.True(t, snaps[2].Aux.IsZero())
		})
	}
}

// TestBinaryOperationsRandom checks a op b for random field pairs
func TestBinaryOperationsRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		a := m31(rng.Uint64())
		b := m31(rng.Uint64())
		if b.IsZero() {
			continue
		}

		// push b first so that a ends up on top
		push := []Instruction[core.M31]{PushOp(b), PushOp(a)}

		exec := run(t, append(push, AddOp[core.M31]())...)
		assert.Equal(t, a.Add(b), exec.Stack().Top())

		exec = run(t, append(push, SubOp[core.M31]())...)
		assert.Equal(t, a.Sub(b), exec.Stack().Top())

		exec = run(t, append(push, MulOp[core.M31]())...)
		assert.Equal(t, a.Mul(b), exec.Stack().Top())

		exec = run(t, append(push, DivOp[core.M31]())...)
		q := exec.Stack().Top()
		assert.Equal(t, a, q.Mul(b), "quotient times divisor must give the dividend")
		snaps := exec.Snapshots()
		assert.True(t, snaps[len(snaps)-1].Aux.IsZero(), "field division leaves no remainder")

		for j := 1; j < StackDepth; j++ {
			assert.True(t, exec.Stack()[j].IsZero())
		}
	}
}

// TestPushOverflowDropsBottom checks the hard 4-slot capacity bound
func TestPushOverflowDropsBottom(t *testing.T) {
	exec := run(t,
		PushOp(m31(1)), PushOp(m31(2)), PushOp(m31(3)), PushOp(m31(4)), PushOp(m31(5)),
	)

	assert.Equal(t, stackOf(5, 4, 3, 2), exec.Stack())
}

// TestBinaryShift checks that slots 2..3 move up and slot 3 is cleared
func TestBinaryShift(t *testing.T) {
	exec := run(t,
		PushOp(m31(7)), PushOp(m31(6)), PushOp(m31(5)), PushOp(m31(4)), AddOp[core.M31](),
	)

	assert.Equal(t, stackOf(9, 6, 7, 0), exec.Stack())
}

// TestDivisionByZero checks the single fatal condition
func TestDivisionByZero(t *testing.T) {
	exec := NewExecutor([]Instruction[core.M31]{
		PushOp(m31(0)), PushOp(m31(5)), DivOp[core.M31](), PushOp(m31(9)),
	})

	err := exec.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 2, execErr.IP)
	assert.Equal(t, "Div", execErr.Instruction)
	assert.Contains(t, err.Error(), "ip 2")

	assert.Len(t, exec.Snapshots(), 2, "no snapshot for the failing instruction")
	assert.Equal(t, stackOf(5, 0), exec.Stack(), "stack is untouched")
	assert.Equal(t, 2, exec.InstructionPointer())
	assert.False(t, exec.Halted())

	// rerunning fails deterministically at the same place
	assert.ErrorIs(t, exec.Run(), ErrDivisionByZero)
	assert.Len(t, exec.Snapshots(), 2)

	_, err = exec.ExecuteAndTrace()
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

// TestSnapshots checks one snapshot per instruction with post-state stacks
func TestSnapshots(t *testing.T) {
	exec := run(t, PushOp(m31(1)), PushOp(m31(2)), AddOp[core.M31](), PushOp(m31(3)), MulOp[core.M31]())

	snaps := exec.Snapshots()
	require.Len(t, snaps, 5)

	expected := []Stack[core.M31]{
		stackOf(1),
		stackOf(2, 1),
		stackOf(3),
		stackOf(3, 3),
		stackOf(9),
	}
	for i, snap := range snaps {
		assert.Equal(t, expected[i], snap.Stack, "snapshot %d", i)
	}

	assert.Equal(t, Push, snaps[0].Instruction.Opcode())
	assert.Equal(t, Mul, snaps[4].Instruction.Opcode())
	assert.Equal(t, 5, exec.CycleCount())
	assert.True(t, exec.Halted())

	// the returned history is a copy
	snaps[0].Stack[0] = m31(99)
	assert.Equal(t, stackOf(1), exec.Snapshots()[0].Stack)
}

// TestExecutorOwnsInstructions checks the executor copies its input
func TestExecutorOwnsInstructions(t *testing.T) {
	instructions := []Instruction[core.M31]{PushOp(m31(1)), PushOp(m31(2))}
	exec := NewExecutor(instructions)

	instructions[1] = AddOp[core.M31]()
	require.NoError(t, exec.Run())

	assert.Equal(t, stackOf(2, 1), exec.Stack())
}

// TestStepAfterHalt is a no-op
func TestStepAfterHalt(t *testing.T) {
	exec := run(t, PushOp(m31(1)))
	require.NoError(t, exec.Step())
	assert.Len(t, exec.Snapshots(), 1)
}

// TestExecutorOverBLS12377 runs the same program over a second field
func TestExecutorOverBLS12377(t *testing.T) {
	f := core.Uint64[core.BLS12377]
	exec := NewExecutor([]Instruction[core.BLS12377]{
		PushOp(f(10)), PushOp(f(30)), DivOp[core.BLS12377](),
	})
	require.NoError(t, exec.Run())
	assert.True(t, exec.Stack().Top().Equal(f(3)))
}

// TestExecuteInstructionUnknownOpcode rejects opcodes outside the set
func TestExecuteInstructionUnknownOpcode(t *testing.T) {
	exec := NewExecutor[core.M31](nil)
	_, err := exec.ExecuteInstruction(Instruction[core.M31]{opcode: Opcode(9)})
	assert.Error(t, err)
}
