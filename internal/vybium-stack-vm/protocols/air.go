package protocols

import (
	"fmt"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/vm"
)

// AIR is the algebraic intermediate representation of the stack VM: one
// boundary constraint on the first row and seven transition constraints over
// each pair of consecutive rows. Every transition is gated by a selector of
// the next row, so padding rows (all selectors zero) satisfy them trivially.
type AIR[F core.Element[F]] struct {
	constraints *AIRConstraints[F]
}

// ConstraintViolation reports the first nonzero constraint found in a trace.
// Row is the first row the constraint reads; transitions also read Row+1.
type ConstraintViolation struct {
	Row        int
	Constraint string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint %s violated at row %d", e.Constraint, e.Row)
}

// NewAIR creates the stack VM constraint system
func NewAIR[F core.Element[F]]() *AIR[F] {
	return &AIR[F]{constraints: CreateProcessorConstraints[F]()}
}

// CreateProcessorConstraints builds the processor table constraints
func CreateProcessorConstraints[F core.Element[F]]() *AIRConstraints[F] {
	air := NewAIRConstraints[F]()

	// The first row is all zero up to the selectors. Boundary rows only come
	// from the trace builder, so the sum is a sufficient check.
	air.AddInitialConstraint("boundary_zero", 1, func(row []F) F {
		return core.Sum(row[vm.ColStack0 : vm.ColIsDiv+1]...)
	})

	air.AddTransitionConstraint("add_result", 2, func(cur, next []F) F {
		return next[vm.ColIsAdd].Mul(next[vm.ColStack0].Sub(cur[vm.ColStack0]).Sub(cur[vm.ColStack1]))
	})

	air.AddTransitionConstraint("add_shift", 2, func(cur, next []F) F {
		return next[vm.ColIsAdd].Mul(next[vm.ColStack1].Sub(cur[vm.ColStack2]))
	})

	air.AddTransitionConstraint("sub_result", 2, func(cur, next []F) F {
		return next[vm.ColIsSub].Mul(cur[vm.ColStack0].Sub(cur[vm.ColStack1]).Sub(next[vm.ColStack0]))
	})

	air.AddTransitionConstraint("mul_result", 3, func(cur, next []F) F {
		return next[vm.ColIsMul].Mul(cur[vm.ColStack0].Mul(cur[vm.ColStack1]).Sub(next[vm.ColStack0]))
	})

	// quotient * b + remainder = a
	air.AddTransitionConstraint("div_result", 3, func(cur, next []F) F {
		q := cur[vm.ColStack1].Mul(next[vm.ColStack0]).Add(next[vm.ColAux])
		return next[vm.ColIsDiv].Mul(q.Sub(cur[vm.ColStack0]))
	})

	// the new top is the literal and slots 0..2 move down by one
	air.AddTransitionConstraint("push_shift", 2, func(cur, next []F) F {
		sum := core.Sum(
			next[vm.ColStack0].Sub(next[vm.ColLiteral]),
			cur[vm.ColStack0].Sub(next[vm.ColStack1]),
			cur[vm.ColStack1].Sub(next[vm.ColStack2]),
			cur[vm.ColStack2].Sub(next[vm.ColStack3]),
		)
		return next[vm.ColIsPush].Mul(sum)
	})

	air.AddTransitionConstraint("binary_shift", 2, func(cur, next []F) F {
		gate := core.Sum(next[vm.ColIsAdd], next[vm.ColIsSub], next[vm.ColIsMul], next[vm.ColIsDiv])
		return gate.Mul(next[vm.ColStack1].Sub(cur[vm.ColStack2]))
	})

	return air
}

// Width returns the number of trace columns the constraints read
func (a *AIR[F]) Width() int {
	return vm.TraceWidth
}

// Constraints returns the underlying constraint system
func (a *AIR[F]) Constraints() *AIRConstraints[F] {
	return a.constraints
}

// EvalBoundary evaluates the boundary constraint on the first row
func (a *AIR[F]) EvalBoundary(row []F) (F, error) {
	if len(row) != vm.TraceWidth {
		return core.Zero[F](), fmt.Errorf("row width %d, expected %d", len(row), vm.TraceWidth)
	}

	return a.constraints.EvaluateInitial(row)[0], nil
}

// EvalTransition evaluates the transition constraints on a pair of
// consecutive rows, in declaration order
func (a *AIR[F]) EvalTransition(cur, next []F) ([]F, error) {
	if len(cur) != vm.TraceWidth || len(next) != vm.TraceWidth {
		return nil, fmt.Errorf("row widths %d and %d, expected %d", len(cur), len(next), vm.TraceWidth)
	}

	return a.constraints.EvaluateTransition(cur, next), nil
}

// CheckBoundary returns a *ConstraintViolation unless row is a valid first row
func (a *AIR[F]) CheckBoundary(row []F) error {
	value, err := a.EvalBoundary(row)
	if err != nil {
		return err
	}

	if !value.IsZero() {
		return &ConstraintViolation{Row: 0, Constraint: a.constraints.InitialConstraints()[0].Name}
	}

	return nil
}

// CheckTransition returns a *ConstraintViolation naming the first nonzero
// transition constraint between rows i and i+1
func (a *AIR[F]) CheckTransition(i int, cur, next []F) error {
	values, err := a.EvalTransition(cur, next)
	if err != nil {
		return err
	}

	for j, v := range values {
		if !v.IsZero() {
			return &ConstraintViolation{Row: i, Constraint: a.constraints.TransitionConstraints()[j].Name}
		}
	}

	return nil
}

// Check evaluates the boundary on row 0 and every transition (i, i+1) for
// i + 1 < height. There is no wrap-around pair.
func (a *AIR[F]) Check(trace *vm.TraceMatrix[F]) error {
	if err := trace.ValidateShape(); err != nil {
		return err
	}

	if err := a.CheckBoundary(trace.Row(0)); err != nil {
		return err
	}

	for i := 0; i+1 < trace.Height(); i++ {
		if err := a.CheckTransition(i, trace.Row(i), trace.Row(i+1)); err != nil {
			return err
		}
	}

	return nil
}
