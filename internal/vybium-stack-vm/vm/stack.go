package vm

import "github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"

// StackDepth is the fixed number of stack slots. Constraint correctness
// depends on this width; it never grows.
const StackDepth = 4

// Stack is the fixed-capacity operand stack, index 0 = top.
type Stack[F core.Element[F]] [StackDepth]F

// Top returns slot 0
func (s Stack[F]) Top() F {
	return s[0]
}

// push shifts every slot down by one and stores v on top. The previous
// bottom value is discarded.
func (s *Stack[F]) push(v F) {
	for i := StackDepth - 1; i > 0; i-- {
		s[i] = s[i-1]
	}
	s[0] = v
}

// collapse replaces the top two slots with result, shifting slots 2..3 up
// into 1..2 and zeroing the bottom slot.
func (s *Stack[F]) collapse(result F) {
	for i := 2; i < StackDepth; i++ {
		s[i-1] = s[i]
	}
	s[0] = result
	s[StackDepth-1] = core.Zero[F]()
}

// Values returns the slots as a slice, top first
func (s Stack[F]) Values() []F {
	out := make([]F, StackDepth)
	copy(out, s[:])
	return out
}

// Equal reports whether both stacks hold the same values
func (s Stack[F]) Equal(other Stack[F]) bool {
	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
