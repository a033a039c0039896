package matrix

// BoolMatrix is a Matrix backed by one bool per cell in row-major order. It
// trades memory density for direct per-cell access, which suits the small
// 16x16 matrices the cipher transform works on.
type BoolMatrix struct {
	rows, cols int
	storage    []bool
}

// NewBoolMatrix builds a BoolMatrix from a rectangular table of booleans.
// table[row][col] becomes the cell at (row, col). Returns ErrEmptyTable or
// ErrRaggedTable for malformed tables.
func NewBoolMatrix(table [][]bool) (*BoolMatrix, error) {
	rows, cols, err := validateTable(table)
	if err != nil {
		return nil, err
	}
	storage := make([]bool, 0, rows*cols)
	for _, row := range table {
		storage = append(storage, row...)
	}
	return &BoolMatrix{rows: rows, cols: cols, storage: storage}, nil
}

// BoolMatrixFromStorage builds a BoolMatrix directly from row-major storage.
// The matrix takes ownership of the slice. Returns ErrEmptyTable for a
// non-positive shape and ErrInvalidStorage when len(storage) != rows*cols.
func BoolMatrixFromStorage(rows, cols int, storage []bool) (*BoolMatrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyTable
	}
	if len(storage) != rows*cols {
		return nil, ErrInvalidStorage
	}
	return &BoolMatrix{rows: rows, cols: cols, storage: storage}, nil
}

// Rows returns the number of rows.
func (m *BoolMatrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *BoolMatrix) Cols() int { return m.cols }

// NumElements returns the total cell count.
func (m *BoolMatrix) NumElements() int { return m.rows * m.cols }

// Storage returns the row-major backing slice. Mutating it mutates the
// matrix.
func (m *BoolMatrix) Storage() []bool { return m.storage }

// At returns the cell at idx after canonicalization.
func (m *BoolMatrix) At(idx Index) bool {
	row, col := Canon(m, idx)
	return m.storage[row*m.cols+col]
}

// Set writes value to the cell at idx after canonicalization, returning the
// prior value.
func (m *BoolMatrix) Set(idx Index, value bool) bool {
	row, col := Canon(m, idx)
	i := row*m.cols + col
	prev := m.storage[i]
	m.storage[i] = value
	return prev
}

// XOR performs an elementwise in-place XOR with other.
func (m *BoolMatrix) XOR(other Matrix) error {
	if !sameShape(m, other) {
		return ErrDifferentShapes
	}
	if o, ok := other.(*BoolMatrix); ok {
		for i := range m.storage {
			m.storage[i] = m.storage[i] != o.storage[i]
		}
		return nil
	}
	xorByEntry(m, other)
	return nil
}

// SwapEntries exchanges the values of two cells.
func (m *BoolMatrix) SwapEntries(a, b Index) {
	swapEntries(m, a, b)
}

// SwapRows exchanges rows r1 and r2 by swapping their storage ranges
// directly.
func (m *BoolMatrix) SwapRows(r1, r2 int) {
	o1 := CanonRow(m, r1) * m.cols
	o2 := CanonRow(m, r2) * m.cols
	if o1 == o2 {
		return
	}
	for i := 0; i < m.cols; i++ {
		m.storage[o1+i], m.storage[o2+i] = m.storage[o2+i], m.storage[o1+i]
	}
}

// SwapCols exchanges columns c1 and c2.
func (m *BoolMatrix) SwapCols(c1, c2 int) {
	swapColsByEntry(m, c1, c2)
}

// Popcount returns the number of true cells.
func (m *BoolMatrix) Popcount() int {
	n := 0
	for _, v := range m.storage {
		if v {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (m *BoolMatrix) Clone() Matrix {
	storage := make([]bool, len(m.storage))
	copy(storage, m.storage)
	return &BoolMatrix{rows: m.rows, cols: m.cols, storage: storage}
}
