package vybiumstackvm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decimals renders integers for comparison; big.Int zero values differ in
// internal representation depending on how they were built
func decimals(values []*big.Int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func strs(values ...int64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = big.NewInt(v).String()
	}
	return out
}

func TestVMCreation(t *testing.T) {
	t.Run("NewVM", func(t *testing.T) {
		machine, err := NewVM(nil)
		require.NoError(t, err)
		assert.Equal(t, &VMState{}, machine.GetState())
	})

	t.Run("VMConfiguration", func(t *testing.T) {
		_, err := NewVM(DefaultConfig().WithField("babybear"))
		assert.ErrorIs(t, err, &VMError{Code: ErrInvalidConfig})

		_, err = NewVM(DefaultConfig().WithLogLevel("loud"))
		assert.ErrorIs(t, err, &VMError{Code: ErrInvalidConfig})
	})
}

func TestVMExecution(t *testing.T) {
	t.Run("Execute", func(t *testing.T) {
		trace, err := Execute(NewProgram(Push(1), Push(2), Add(), Push(3), Mul()))
		require.NoError(t, err)

		assert.Equal(t, strs(9, 0, 0, 0), decimals(trace.Stack))
		assert.Equal(t, 5, trace.CycleCount)
		assert.Equal(t, 6, trace.UnpaddedHeight)
		assert.Equal(t, 8, trace.Height())
		assert.Equal(t, strs(3, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0), decimals(trace.Trace[3]))
		assert.Equal(t, strs(9, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0), decimals(trace.Trace[7]))
		assert.NotZero(t, trace.ProgramDigest)
	})

	t.Run("GetState", func(t *testing.T) {
		machine, err := NewVM(DefaultConfig())
		require.NoError(t, err)

		_, err = machine.Execute(NewProgram(Push(7), Push(0), Push(4), Div(), Push(1)))
		require.Error(t, err)

		state := machine.GetState()
		assert.Equal(t, 3, state.InstructionPointer)
		assert.Equal(t, 3, state.CycleCount)
		assert.False(t, state.Halted)
		assert.Equal(t, strs(4, 0, 7, 0), decimals(state.Stack))
	})

	t.Run("DivisionByZero", func(t *testing.T) {
		_, err := Execute(NewProgram(Push(0), Push(5), Div()))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		assert.ErrorIs(t, err, &VMError{Code: ErrVMExecution})

		var execErr *ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, 2, execErr.IP)
	})

	t.Run("Reduction", func(t *testing.T) {
		trace, err := Execute(NewProgram(Push(1<<31), Push(1<<31-1), Add()))
		require.NoError(t, err)
		assert.Equal(t, strs(1, 0, 0, 0), decimals(trace.Stack))
	})

	t.Run("BLS12377", func(t *testing.T) {
		machine, err := NewVM(DefaultConfig().WithField("bls12-377"))
		require.NoError(t, err)

		trace, err := machine.Execute(NewProgram(Push(1<<31), Push(1<<31-1), Add()))
		require.NoError(t, err)
		assert.Equal(t, strs(1<<32-1, 0, 0, 0), decimals(trace.Stack))
	})

	t.Run("InvalidInstruction", func(t *testing.T) {
		_, err := Execute(&Program{Instructions: []Instruction{{Opcode: Opcode(7)}}})
		assert.ErrorIs(t, err, &VMError{Code: ErrInvalidInput})

		_, err = Execute(nil)
		assert.ErrorIs(t, err, &VMError{Code: ErrInvalidInput})
	})
}
