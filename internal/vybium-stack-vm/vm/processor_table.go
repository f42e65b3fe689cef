package vm

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/core"
	"github.com/vybium/vybium-stack-vm/internal/vybium-stack-vm/utils"
)

// Processor table columns
const (
	ColStack0 = iota
	ColStack1
	ColStack2
	ColStack3
	// ColLiteral holds the pushed value on Push rows
	ColLiteral
	ColIsPush
	ColIsAdd
	ColIsSub
	ColIsMul
	ColIsDiv
	// ColAux holds the Div remainder witness
	ColAux

	// TraceWidth is the number of columns per row
	TraceWidth
)

// TraceMatrix is the padded execution trace in row-major order. It is built
// once per run and never mutated afterwards.
type TraceMatrix[F core.Element[F]] struct {
	values   []F
	height   int
	unpadded int
}

// NewTraceMatrix wraps row-major values of the given width-11 rows. It is
// used to rebuild a claimed trace; no shape requirement beyond the width is
// enforced here.
func NewTraceMatrix[F core.Element[F]](values []F) (*TraceMatrix[F], error) {
	if len(values)%TraceWidth != 0 {
		return nil, fmt.Errorf("trace length %d is not a multiple of width %d", len(values), TraceWidth)
	}

	height := len(values) / TraceWidth

	return &TraceMatrix[F]{
		values:   append([]F(nil), values...),
		height:   height,
		unpadded: height,
	}, nil
}

// BuildTrace arithmetizes a run: an all-zero boundary row, one row per
// snapshot, then padding up to a power-of-two height. Padding rows repeat
// the last row's stack and literal columns with every selector and the aux
// column zeroed, so no transition constraint fires on them.
func BuildTrace[F core.Element[F]](snapshots []Snapshot[F]) *TraceMatrix[F] {
	unpadded := len(snapshots) + 1
	height := utils.NextPowerOfTwo(unpadded)
	values := make([]F, height*TraceWidth)

	// row 0 is the boundary row and stays zero
	for i, snap := range snapshots {
		row := values[(i+1)*TraceWidth : (i+2)*TraceWidth]
		copy(row[ColStack0:ColLiteral], snap.Stack[:])

		if snap.Instruction.opcode == Push {
			row[ColLiteral] = snap.Instruction.literal
		}
		row[snap.Instruction.opcode.Selector()] = core.One[F]()
		row[ColAux] = snap.Aux
	}

	last := values[(unpadded-1)*TraceWidth : unpadded*TraceWidth]
	for r := unpadded; r < height; r++ {
		copy(values[r*TraceWidth:r*TraceWidth+ColIsPush], last[:ColIsPush])
	}

	log.WithFields(log.Fields{
		"rows":    unpadded,
		"height":  height,
		"padding": height - unpadded,
	}).Debug("built execution trace")

	return &TraceMatrix[F]{
		values:   values,
		height:   height,
		unpadded: unpadded,
	}
}

// Width returns the number of columns
func (t *TraceMatrix[F]) Width() int {
	return TraceWidth
}

// Height returns the number of rows
func (t *TraceMatrix[F]) Height() int {
	return t.height
}

// UnpaddedHeight returns the boundary row plus one row per instruction
func (t *TraceMatrix[F]) UnpaddedHeight() int {
	return t.unpadded
}

// IsPadding reports whether row i was appended to reach a power of two
func (t *TraceMatrix[F]) IsPadding(i int) bool {
	return i >= t.unpadded && i < t.height
}

// Row returns a copy of row i
func (t *TraceMatrix[F]) Row(i int) []F {
	return append([]F(nil), t.row(i)...)
}

// At returns the value at row i, column j
func (t *TraceMatrix[F]) At(i, j int) F {
	return t.values[i*TraceWidth+j]
}

// Values returns a copy of the row-major values
func (t *TraceMatrix[F]) Values() []F {
	return append([]F(nil), t.values...)
}

// RowBytes returns the canonical encoding of row i, columns concatenated
func (t *TraceMatrix[F]) RowBytes(i int) []byte {
	var out []byte
	for _, v := range t.row(i) {
		out = append(out, v.Bytes()...)
	}
	return out
}

// Equal reports whether both traces hold identical rows
func (t *TraceMatrix[F]) Equal(other *TraceMatrix[F]) bool {
	if t.height != other.height || len(t.values) != len(other.values) {
		return false
	}
	for i := range t.values {
		if !t.values[i].Equal(other.values[i]) {
			return false
		}
	}
	return true
}

// ValidateShape checks the export contract: width 11 and power-of-two height
func (t *TraceMatrix[F]) ValidateShape() error {
	if len(t.values) != t.height*TraceWidth {
		return fmt.Errorf("trace holds %d values, expected %d x %d", len(t.values), t.height, TraceWidth)
	}
	if !utils.IsPowerOfTwo(t.height) {
		return fmt.Errorf("trace height %d is not a power of two", t.height)
	}
	return nil
}

func (t *TraceMatrix[F]) row(i int) []F {
	return t.values[i*TraceWidth : (i+1)*TraceWidth]
}
