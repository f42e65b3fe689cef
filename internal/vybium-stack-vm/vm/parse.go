package vm

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
)

// ProgramInput is the JSON program form: {"instructions": ["Push(1)", "Add"]}
type ProgramInput struct {
	Instructions []string `json:"instructions"`
}

// ErrNegativeLiteral is returned by the unsigned parsers for "Push(-1)"
var ErrNegativeLiteral = errors.New("negative literal")

// ParseInstruction parses the textual instruction forms "Push(42)",
// "push 42", "Add", "sub", ... Literals are decimal and may be negative;
// they are reduced into F.
func ParseInstruction[F core.Element[F]](text string) (Instruction[F], error) {
	return parseInstruction(text, ParseLiteral[F])
}

func parseInstruction[F core.Element[F]](text string, parseLiteral func(string) (F, error)) (Instruction[F], error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Instruction[F]{}, fmt.Errorf("empty instruction")
	}

	name, arg, hasArg := splitMnemonic(s)

	var op Opcode
	switch strings.ToLower(name) {
	case "push":
		op = Push
	case "add":
		op = Add
	case "sub":
		op = Sub
	case "mul":
		op = Mul
	case "div":
		op = Div
	default:
		return Instruction[F]{}, fmt.Errorf("unknown instruction: %s", name)
	}

	if !hasArg {
		return NewInstruction[F](op, nil)
	}

	literal, err := parseLiteral(arg)
	if err != nil {
		return Instruction[F]{}, fmt.Errorf("invalid argument for %s: %w", name, err)
	}

	return NewInstruction(op, &literal)
}

// splitMnemonic separates "Push(42)" or "push 42" into name and argument
func splitMnemonic(s string) (name, arg string, hasArg bool) {
	if open := strings.IndexByte(s, '('); open >= 0 {
		name = strings.TrimSpace(s[:open])
		arg = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s[open+1:]), ")"))
		return name, arg, true
	}

	fields := strings.Fields(s)
	if len(fields) == 1 {
		return fields[0], "", false
	}

	return fields[0], strings.Join(fields[1:], " "), true
}

// ParseLiteral parses a decimal integer and reduces it into F
func ParseLiteral[F core.Element[F]](s string) (F, error) {
	value, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return core.Zero[F](), fmt.Errorf("not a decimal integer: %q", s)
	}

	magnitude := core.Zero[F]().SetBytes(new(big.Int).Abs(value).Bytes())
	if value.Sign() < 0 {
		return core.Neg(magnitude), nil
	}

	return magnitude, nil
}

// ParseUnsignedLiteral parses a decimal integer in [0, 2^64) and converts it
// into F. Negative literals fail with ErrNegativeLiteral.
func ParseUnsignedLiteral[F core.Element[F]](s string) (F, error) {
	value, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return core.Zero[F](), fmt.Errorf("not a decimal integer: %q", s)
	}

	if value.Sign() < 0 {
		return core.Zero[F](), fmt.Errorf("%w: %s", ErrNegativeLiteral, value)
	}

	if !value.IsUint64() {
		return core.Zero[F](), fmt.Errorf("literal %s does not fit in 64 bits", value)
	}

	return core.Uint64[F](value.Uint64()), nil
}

// ParseProgram reads a program either as JSON (ProgramInput) or as text with
// one instruction per line. Blank lines and lines starting with '#' or "//"
// are ignored, as is anything after a ';'.
func ParseProgram[F core.Element[F]](data []byte) (*Program[F], error) {
	return parseProgram(data, ParseLiteral[F])
}

// ParseUnsignedProgram is ParseProgram restricted to literals that fit in a
// uint64; see ParseUnsignedLiteral.
func ParseUnsignedProgram[F core.Element[F]](data []byte) (*Program[F], error) {
	return parseProgram(data, ParseUnsignedLiteral[F])
}

func parseProgram[F core.Element[F]](data []byte, parseLiteral func(string) (F, error)) (*Program[F], error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var input ProgramInput
		if err := json.Unmarshal(trimmed, &input); err != nil {
			return nil, fmt.Errorf("failed to parse program: %w", err)
		}
		return parseLines(input.Instructions, parseLiteral)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	return parseLines(lines, parseLiteral)
}

func parseLines[F core.Element[F]](lines []string, parseLiteral func(string) (F, error)) (*Program[F], error) {
	program := NewProgram[F]()

	for i, line := range lines {
		if idx := strings.IndexByte(line, ';'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		inst, err := parseInstruction(line, parseLiteral)
		if err != nil {
			return nil, fmt.Errorf("failed to parse instruction %d (%s): %w", i+1, line, err)
		}
		program.AddInstruction(inst)
	}

	return program, nil
}
