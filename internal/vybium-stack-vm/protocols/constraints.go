package protocols

import "github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"

// AIRConstraints is a named constraint system over a row-major trace.
//
// Constraints are divided into two kinds:
// 1. Initial: constraints on the first row (boundary conditions)
// 2. Transition: constraints between consecutive rows (state transitions)
//
// Each constraint is an evaluator that must return zero on a valid trace.
type AIRConstraints[F core.Element[F]] struct {
	// Initial constraints (applied to first row)
	initialConstraints []*ConstraintPolynomial[F]

	// Transition constraints (applied to consecutive rows)
	transitionConstraints []*TransitionConstraintPolynomial[F]
}

// ConstraintPolynomial represents a constraint over a single row
type ConstraintPolynomial[F core.Element[F]] struct {
	// Name for debugging
	Name string

	// Degree of this constraint polynomial
	Degree int

	// Evaluator takes a row of values and returns the constraint value.
	// The constraint is satisfied if this evaluates to zero.
	Evaluator func(row []F) F
}

// TransitionConstraintPolynomial represents a constraint over two consecutive rows
type TransitionConstraintPolynomial[F core.Element[F]] struct {
	// Name for debugging
	Name string

	// Degree of this constraint polynomial
	Degree int

	// Evaluator takes current and next rows and returns the constraint value.
	// The constraint is satisfied if this evaluates to zero.
	Evaluator func(currentRow, nextRow []F) F
}

// NewAIRConstraints creates an empty constraint system
func NewAIRConstraints[F core.Element[F]]() *AIRConstraints[F] {
	return &AIRConstraints[F]{
		initialConstraints:    make([]*ConstraintPolynomial[F], 0),
		transitionConstraints: make([]*TransitionConstraintPolynomial[F], 0),
	}
}

// AddInitialConstraint adds an initial (boundary) constraint
func (air *AIRConstraints[F]) AddInitialConstraint(name string, degree int,
	eval func(row []F) F,
) {
	air.initialConstraints = append(air.initialConstraints, &ConstraintPolynomial[F]{
		Name:      name,
		Degree:    degree,
		Evaluator: eval,
	})
}

// AddTransitionConstraint adds a transition constraint
func (air *AIRConstraints[F]) AddTransitionConstraint(name string, degree int,
	eval func(currentRow, nextRow []F) F,
) {
	air.transitionConstraints = append(air.transitionConstraints, &TransitionConstraintPolynomial[F]{
		Name:      name,
		Degree:    degree,
		Evaluator: eval,
	})
}

// InitialConstraints returns the boundary constraints in evaluation order
func (air *AIRConstraints[F]) InitialConstraints() []*ConstraintPolynomial[F] {
	return air.initialConstraints
}

// TransitionConstraints returns the transition constraints in evaluation order
func (air *AIRConstraints[F]) TransitionConstraints() []*TransitionConstraintPolynomial[F] {
	return air.transitionConstraints
}

// EvaluateInitial evaluates every initial constraint on row
func (air *AIRConstraints[F]) EvaluateInitial(row []F) []F {
	values := make([]F, len(air.initialConstraints))
	for i, c := range air.initialConstraints {
		values[i] = c.Evaluator(row)
	}
	return values
}

// EvaluateTransition evaluates every transition constraint on (current, next)
func (air *AIRConstraints[F]) EvaluateTransition(currentRow, nextRow []F) []F {
	values := make([]F, len(air.transitionConstraints))
	for i, c := range air.transitionConstraints {
		values[i] = c.Evaluator(currentRow, nextRow)
	}
	return values
}

// MaxDegree returns the maximum degree across all constraints
func (air *AIRConstraints[F]) MaxDegree() int {
	maxDeg := 0

	for _, c := range air.initialConstraints {
		if c.Degree > maxDeg {
			maxDeg = c.Degree
		}
	}

	for _, c := range air.transitionConstraints {
		if c.Degree > maxDeg {
			maxDeg = c.Degree
		}
	}

	return maxDeg
}

// NumConstraints returns the total number of constraints
func (air *AIRConstraints[F]) NumConstraints() int {
	return len(air.initialConstraints) + len(air.transitionConstraints)
}
