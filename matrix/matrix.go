// Package matrix implements rectangular binary matrices on a genus-1 torus.
// Indices wrap around both axes via Euclidean-remainder canonicalization, so
// every (row, col) pair addresses a cell regardless of sign or magnitude.
//
// Two interchangeable backings are provided: BoolMatrix stores one bool per
// cell and BitMatrix packs cells into the bits of an unsigned word type. Both
// produce identical results for every operation.
package matrix

import "errors"

var (
	// ErrEmptyTable is returned when a matrix is constructed from a table
	// with zero rows or any zero-length row. Takes precedence over
	// ErrRaggedTable when a table is both empty and ragged.
	ErrEmptyTable = errors.New("empty table")
	// ErrRaggedTable is returned when a matrix is constructed from a table
	// whose rows have differing lengths.
	ErrRaggedTable = errors.New("ragged table")
	// ErrInvalidStorage is returned by the FromStorage constructors when the
	// storage length does not fit the requested shape.
	ErrInvalidStorage = errors.New("invalid storage")
	// ErrDifferentShapes is returned by elementwise operations on matrices
	// whose row or column counts differ.
	ErrDifferentShapes = errors.New("different shapes")
)

// Index addresses a matrix cell. Row and Col may be negative or exceed the
// matrix bounds ("noncanonical"); every operation canonicalizes per axis
// before touching storage.
type Index struct {
	Row, Col int
}

// Matrix is a rectangular grid of booleans on a torus. Row and column counts
// are positive and fixed at construction.
type Matrix interface {
	// Rows returns the number of rows.
	Rows() int
	// Cols returns the number of columns.
	Cols() int
	// NumElements returns Rows() * Cols().
	NumElements() int
	// At returns the value of the cell addressed by idx after
	// canonicalization.
	At(idx Index) bool
	// Set writes value to the cell addressed by idx after canonicalization
	// and returns the cell's prior value.
	Set(idx Index, value bool) bool
	// XOR performs an elementwise in-place XOR with other. It returns
	// ErrDifferentShapes if the shapes differ, in which case the receiver is
	// unchanged.
	XOR(other Matrix) error
	// SwapEntries exchanges the values of two cells.
	SwapEntries(a, b Index)
	// SwapRows exchanges every cell of row r1 with the corresponding cell of
	// row r2. Both indices are canonicalized.
	SwapRows(r1, r2 int)
	// SwapCols exchanges every cell of column c1 with the corresponding cell
	// of column c2. Both indices are canonicalized.
	SwapCols(c1, c2 int)
	// Popcount returns the number of true cells.
	Popcount() int
	// Clone returns a deep copy with the same backing.
	Clone() Matrix
}

// euclidMod returns x mod n with the result always in [0, n). Unlike Go's %
// operator, the result is non-negative for negative x, which is what toroidal
// wraparound requires (on a 3-row matrix, row -1 is row 2).
func euclidMod(x, n int) int {
	r := x % n
	if r < 0 {
		r += n
	}
	return r
}

// CanonRow canonicalizes a row index against m's row count.
func CanonRow(m Matrix, row int) int {
	return euclidMod(row, m.Rows())
}

// CanonCol canonicalizes a column index against m's column count.
func CanonCol(m Matrix, col int) int {
	return euclidMod(col, m.Cols())
}

// Canon canonicalizes both axes of idx, returning a row in [0, Rows()) and a
// column in [0, Cols()).
func Canon(m Matrix, idx Index) (row, col int) {
	return CanonRow(m, idx.Row), CanonCol(m, idx.Col)
}

// validateTable checks the construction criteria shared by both backings and
// returns the table's shape. The empty check precedes the ragged check.
func validateTable(table [][]bool) (rows, cols int, err error) {
	rows = len(table)
	if rows == 0 {
		return 0, 0, ErrEmptyTable
	}
	for _, row := range table {
		if len(row) == 0 {
			return 0, 0, ErrEmptyTable
		}
	}
	cols = len(table[0])
	for _, row := range table {
		if len(row) != cols {
			return 0, 0, ErrRaggedTable
		}
	}
	return rows, cols, nil
}

func swapEntries(m Matrix, a, b Index) {
	prev := m.Set(a, m.At(b))
	m.Set(b, prev)
}

func swapRowsByEntry(m Matrix, r1, r2 int) {
	for c := 0; c < m.Cols(); c++ {
		swapEntries(m, Index{Row: r1, Col: c}, Index{Row: r2, Col: c})
	}
}

func swapColsByEntry(m Matrix, c1, c2 int) {
	for r := 0; r < m.Rows(); r++ {
		swapEntries(m, Index{Row: r, Col: c1}, Index{Row: r, Col: c2})
	}
}

// xorByEntry is the cross-backing XOR fallback. Shape equality has already
// been checked by the caller.
func xorByEntry(dst, src Matrix) {
	for r := 0; r < dst.Rows(); r++ {
		for c := 0; c < dst.Cols(); c++ {
			idx := Index{Row: r, Col: c}
			dst.Set(idx, dst.At(idx) != src.At(idx))
		}
	}
}

func sameShape(a, b Matrix) bool {
	return a.Rows() == b.Rows() && a.Cols() == b.Cols()
}
