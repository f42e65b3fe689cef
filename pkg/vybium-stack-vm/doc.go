// Package vybiumstackvm provides an arithmetized 4-slot stack VM.
//
// The VM runs straight-line programs of Push, Add, Sub, Mul and Div over a
// prime field and records one snapshot per instruction. The run is turned
// into an 11-column execution trace whose height is a power of two, and the
// trace is checked against an AIR (algebraic intermediate representation):
// one boundary constraint on the first row and seven transition constraints
// between consecutive rows.
//
// # Features
//
// - Field-generic executor over Mersenne-31 (default), Goldilocks and BLS12-377
// - Execution trace with boundary row and power-of-two padding
// - AIR constraint evaluation with named violations
// - Reference proof engine: Merkle trace commitment with Fiat-Shamir queries
// - CBOR proof encoding and Poseidon program digests
//
// # Quick Start
//
// Executing a program:
//
//	program := vybiumstackvm.NewProgram(
//		vybiumstackvm.Push(1),
//		vybiumstackvm.Push(2),
//		vybiumstackvm.Add(),
//		vybiumstackvm.Push(3),
//		vybiumstackvm.Mul(),
//	)
//
//	trace, err := vybiumstackvm.Execute(program)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(trace.Stack[0]) // 9
//
// Proving and verifying:
//
//	config := vybiumstackvm.DefaultConfig()
//	proof, err := vybiumstackvm.Prove(config, program)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := vybiumstackvm.Verify(config, program, proof)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if result.Valid {
//		fmt.Println("Proof is valid!")
//	}
//
// # Semantics
//
// The stack has exactly four slots, slot 0 being the top. Push shifts every
// slot down and drops the bottom one. A binary operation computes a op b with
// a = slot 0 and b = slot 1, moves slots 2 and 3 up and clears slot 3. Div is
// field division; dividing by zero aborts the run with ErrDivisionByZero.
//
// # Architecture
//
// - pkg/vybium-stack-vm/: Public API (this package)
// - internal/vybium-stack-vm/: Private implementation (not importable)
//
// Implementation details in internal/ can be refactored without breaking the public API.
package vybiumstackvm
