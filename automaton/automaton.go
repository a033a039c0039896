// Package automaton implements a 2-D binary cellular automaton over a
// toroidal matrix. The transition rule is symmetric: a cell's next state
// depends only on its own state and the count of alive Moore neighbors.
package automaton

import (
	"strings"

	"github.com/BackendStack21/talos-go/matrix"
)

// Characters used when rendering an automaton state as text.
const (
	TrueChar  = '#'
	FalseChar = '.'
)

// Rule defines how an Automaton changes from one generation to the next,
// indexed by the count (0-8) of alive Moore neighbors.
type Rule struct {
	// Born: if Born[i] is true, a dead cell with i alive neighbors becomes
	// alive.
	Born [9]bool
	// Dies: if Dies[i] is true, a living cell with i alive neighbors dies.
	Dies [9]bool
}

// Automaton is a binary cellular automaton whose cell-space wraps around
// both axes. It owns its state matrix and a scratch buffer of identical
// shape, allocated once and ping-ponged each generation.
type Automaton struct {
	rule    Rule
	state   matrix.Matrix
	scratch matrix.Matrix
}

// New creates an Automaton from an initial state and a rule. The automaton
// takes ownership of state.
func New(state matrix.Matrix, rule Rule) *Automaton {
	return &Automaton{rule: rule, state: state, scratch: state.Clone()}
}

// Iterate advances the automaton n generations. Each generation reads only
// the current state and writes only the scratch buffer; the two are swapped
// once the full grid has been computed, so evaluation order never leaks into
// the result. Iterate(a) followed by Iterate(b) is equivalent to
// Iterate(a+b).
func (a *Automaton) Iterate(n int) {
	rows, cols := a.state.Rows(), a.state.Cols()
	for g := 0; g < n; g++ {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				idx := matrix.Index{Row: r, Col: c}
				alive := a.AliveNeighbors(idx)
				if a.state.At(idx) {
					a.scratch.Set(idx, !a.rule.Dies[alive])
				} else {
					a.scratch.Set(idx, a.rule.Born[alive])
				}
			}
		}
		a.state, a.scratch = a.scratch, a.state
	}
}

// AliveNeighbors counts the alive Moore neighbors of idx: the 8 toroidally
// wrapped cells surrounding it, excluding the cell itself. On a grid with a
// dimension of 1 the enumeration revisits physical cells, so the center's
// own state contributes to the count; that is the Moore formula on a
// degenerate torus, not a condition to guard against.
func (a *Automaton) AliveNeighbors(idx matrix.Index) int {
	sum := 0
	for r := idx.Row - 1; r <= idx.Row+1; r++ {
		for c := idx.Col - 1; c <= idx.Col+1; c++ {
			if a.state.At(matrix.Index{Row: r, Col: c}) {
				sum++
			}
		}
	}
	if a.state.At(idx) {
		sum--
	}
	return sum
}

// State returns the automaton's current state matrix. The cipher layer reads
// keystream bits from it; mutating it mutates the automaton.
func (a *Automaton) State() matrix.Matrix { return a.state }

// ReadCell returns the current state of the cell at idx.
func (a *Automaton) ReadCell(idx matrix.Index) bool {
	return a.state.At(idx)
}

// WriteCell sets the cell at idx to value, returning the prior value. Used
// for temporal seeding.
func (a *Automaton) WriteCell(idx matrix.Index, value bool) bool {
	return a.state.Set(idx, value)
}

// Popcount returns the number of alive cells in the current state.
func (a *Automaton) Popcount() int { return a.state.Popcount() }

// String renders the current state one row per line, with '#' for alive and
// '.' for dead cells.
func (a *Automaton) String() string {
	rows, cols := a.state.Rows(), a.state.Cols()
	var b strings.Builder
	b.Grow((cols + 1) * rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if a.state.At(matrix.Index{Row: r, Col: c}) {
				b.WriteRune(TrueChar)
			} else {
				b.WriteRune(FalseChar)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
