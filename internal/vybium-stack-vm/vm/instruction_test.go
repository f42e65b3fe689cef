package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
)

// TestInstructionConstruction tests constructors and argument checks
func TestInstructionConstruction(t *testing.T) {
	t.Run("Push carries literal", func(t *testing.T) {
		inst := PushOp(m31(42))
		assert.Equal(t, Push, inst.Opcode())
		assert.Equal(t, m31(42), inst.Literal())
		assert.Equal(t, "Push(42)", inst.String())
	})

	t.Run("binary ops have zero literal", func(t *testing.T) {
		for _, inst := range []Instruction[core.M31]{AddOp[core.M31](), SubOp[core.M31](), MulOp[core.M31](), DivOp[core.M31]()} {
			assert.True(t, inst.Literal().IsZero())
			assert.True(t, inst.Opcode().IsBinary())
		}
		assert.False(t, Push.IsBinary())
	})

	t.Run("NewInstruction", func(t *testing.T) {
		v := m31(5)

		inst, err := NewInstruction(Push, &v)
		require.NoError(t, err)
		assert.True(t, inst.Equal(PushOp(v)))

		_, err = NewInstruction[core.M31](Push, nil)
		assert.Error(t, err)

		_, err = NewInstruction(Add, &v)
		assert.Error(t, err)

		_, err = NewInstruction[core.M31](Opcode(42), nil)
		assert.Error(t, err)
	})
}

// TestSelectors checks the one-hot column of every opcode
func TestSelectors(t *testing.T) {
	assert.Equal(t, ColIsPush, Push.Selector())
	assert.Equal(t, ColIsAdd, Add.Selector())
	assert.Equal(t, ColIsSub, Sub.Selector())
	assert.Equal(t, ColIsMul, Mul.Selector())
	assert.Equal(t, ColIsDiv, Div.Selector())
	assert.Len(t, AllInstructions, InstructionCount)
}

// TestProgram tests program helpers
func TestProgram(t *testing.T) {
	program := NewProgram(PushOp(m31(3)), PushOp(m31(4)))
	program.AddInstruction(MulOp[core.M31]())

	assert.Equal(t, 3, program.Len())
	assert.Equal(t, "Push(3)\nPush(4)\nMul\n", program.String())
	assert.Equal(t, []core.M31{m31(0), m31(3), m31(0), m31(4), m31(3), m31(0)}, program.ToWords())
}

// TestParseInstruction tests the accepted textual forms
func TestParseInstruction(t *testing.T) {
	tests := []struct {
		input    string
		expected Instruction[core.M31]
	}{
		{"Push(42)", PushOp(m31(42))},
		{"push 42", PushOp(m31(42))},
		{"  PUSH ( 7 ) ", PushOp(m31(7))},
		{"Push(-1)", PushOp(m31(uint64(core.M31Modulus) - 1))},
		{"Push(2147483648)", PushOp(m31(1))},
		{"Add", AddOp[core.M31]()},
		{"sub", SubOp[core.M31]()},
		{"MUL", MulOp[core.M31]()},
		{"div", DivOp[core.M31]()},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			inst, err := ParseInstruction[core.M31](tt.input)
			require.NoError(t, err)
			assert.True(t, inst.Equal(tt.expected), "got %s", inst)
		})
	}

	for _, bad := range []string{"", "Pop", "Push", "Push()", "Push(x)", "Add(3)", "jump 4"} {
		t.Run("reject "+bad, func(t *testing.T) {
			_, err := ParseInstruction[core.M31](bad)
			assert.Error(t, err)
		})
	}
}

// TestParseInstructionRoundTrip checks String output parses back
func TestParseInstructionRoundTrip(t *testing.T) {
	for _, inst := range []Instruction[core.M31]{PushOp(m31(123456)), AddOp[core.M31](), DivOp[core.M31]()} {
		parsed, err := ParseInstruction[core.M31](inst.String())
		require.NoError(t, err)
		assert.True(t, parsed.Equal(inst))
	}
}

// TestParseProgram tests the text and JSON program forms
func TestParseProgram(t *testing.T) {
	expected := NewProgram(PushOp(m31(1)), PushOp(m31(2)), AddOp[core.M31]())

	t.Run("text", func(t *testing.T) {
		src := "# adds two numbers\npush 1\n\n// second operand\nPush(2) ; top\nadd\n"
		program, err := ParseProgram[core.M31]([]byte(src))
		require.NoError(t, err)
		assert.Equal(t, expected.String(), program.String())
	})

	t.Run("json", func(t *testing.T) {
		src := `{"instructions": ["Push(1)", "Push(2)", "Add"]}`
		program, err := ParseProgram[core.M31]([]byte(src))
		require.NoError(t, err)
		assert.Equal(t, expected.String(), program.String())
	})

	t.Run("empty", func(t *testing.T) {
		program, err := ParseProgram[core.M31](nil)
		require.NoError(t, err)
		assert.Equal(t, 0, program.Len())
	})

	t.Run("line number in error", func(t *testing.T) {
		_, err := ParseProgram[core.M31]([]byte("push 1\nfoo\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "instruction 2")
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := ParseProgram[core.M31]([]byte(`{"instructions": [`))
		assert.Error(t, err)
	})

	t.Run("unsigned", func(t *testing.T) {
		program, err := ParseUnsignedProgram[core.M31]([]byte("push 1\nPush(2)\nadd\n"))
		require.NoError(t, err)
		assert.Equal(t, expected.String(), program.String())

		wide, err := ParseUnsignedProgram[core.BLS12377]([]byte("Push(18446744073709551615)"))
		require.NoError(t, err)
		assert.Equal(t, "Push(18446744073709551615)\n", wide.String())

		_, err = ParseUnsignedProgram[core.M31]([]byte("push 1\nPush(-1)\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNegativeLiteral)
		assert.Contains(t, err.Error(), "instruction 2")
		assert.Contains(t, err.Error(), "negative literal: -1")

		_, err = ParseUnsignedProgram[core.BLS12377]([]byte("Push(18446744073709551616)"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not fit in 64 bits")
	})
}

// TestProgramDigest checks the digest is deterministic and binds every
// instruction
func TestProgramDigest(t *testing.T) {
	a := NewProgram(PushOp(m31(1)), PushOp(m31(2)), AddOp[core.M31]())
	b := NewProgram(PushOp(m31(1)), PushOp(m31(2)), AddOp[core.M31]())

	assert.Equal(t, ProgramDigest(a), ProgramDigest(b))

	variants := []*Program[core.M31]{
		NewProgram(PushOp(m31(1)), PushOp(m31(2)), SubOp[core.M31]()),
		NewProgram(PushOp(m31(1)), PushOp(m31(3)), AddOp[core.M31]()),
		NewProgram(PushOp(m31(1)), PushOp(m31(2))),
		NewProgram[core.M31](),
	}
	for i, v := range variants {
		assert.NotEqual(t, ProgramDigest(a), ProgramDigest(v), "variant %d", i)
	}

	f := core.Uint64[core.BLS12377]
	bls := NewProgram(PushOp(f(1)), PushOp(f(2)), AddOp[core.BLS12377]())
	assert.Equal(t, ProgramDigest(bls), ProgramDigest(NewProgram(PushOp(f(1)), PushOp(f(2)), AddOp[core.BLS12377]())))
}

// TestSplitWords checks 7 byte packing
func TestSplitWords(t *testing.T) {
	words := splitWords([]byte{0, 0, 0, 5})
	require.Len(t, words, 1)
	assert.Equal(t, uint64(5), words[0].Value())

	words = splitWords([]byte{1, 0, 0, 0, 0, 0, 0, 2})
	require.Len(t, words, 2)
	assert.Equal(t, uint64(1), words[0].Value())
	assert.Equal(t, uint64(2), words[1].Value())
}
