package vm

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
)

// literals are split into 7 byte words so each fits below the Goldilocks
// modulus without reduction
const digestWordSize = 7

// ProgramDigest computes the Poseidon digest binding a proof to the program
// that produced its trace. The encoding is the instruction count followed by
// each opcode and the word-split canonical bytes of its literal.
func ProgramDigest[F core.Element[F]](program *Program[F]) uint64 {
	width := (core.ByteWidth[F]() + digestWordSize - 1) / digestWordSize
	elements := make([]field.Element, 0, 1+len(program.Instructions)*(1+width))
	elements = append(elements, field.New(uint64(len(program.Instructions))))

	for _, inst := range program.Instructions {
		elements = append(elements, field.New(uint64(inst.opcode)))
		elements = append(elements, splitWords(inst.literal.Bytes())...)
	}

	return hash.PoseidonHash(elements).Value()
}

// splitWords packs big-endian bytes into 7 byte field words, most
// significant first
func splitWords(b []byte) []field.Element {
	words := make([]field.Element, 0, (len(b)+digestWordSize-1)/digestWordSize)

	for end := len(b); end > 0; end -= digestWordSize {
		start := end - digestWordSize
		if start < 0 {
			start = 0
		}

		var w uint64
		for _, c := range b[start:end] {
			w = w<<8 | uint64(c)
		}
		words = append([]field.Element{field.New(w)}, words...)
	}

	return words
}
