package matrix

import "github.com/BackendStack21/talos-go/bits"

// BitMatrix is a Matrix generic over an unsigned word type; each cell
// occupies exactly one bit, with successive row-major cells packed densely
// into successive words. Suited to large automaton grids where memory
// density and bulk word-level XOR matter.
//
// Invariant: bits beyond rows*cols in the final word are always zero, so
// Popcount and word-level XOR never see stray state.
type BitMatrix[T bits.Word] struct {
	rows, cols int
	storage    []T
}

// NewBitMatrix builds a BitMatrix from a rectangular table of booleans.
// Returns ErrEmptyTable or ErrRaggedTable for malformed tables.
func NewBitMatrix[T bits.Word](table [][]bool) (*BitMatrix[T], error) {
	rows, cols, err := validateTable(table)
	if err != nil {
		return nil, err
	}
	perWord := bits.Size[T]()
	words := (rows*cols + perWord - 1) / perWord
	m := &BitMatrix[T]{rows: rows, cols: cols, storage: make([]T, words)}
	for r, row := range table {
		for c, v := range row {
			m.Set(Index{Row: r, Col: c}, v)
		}
	}
	return m, nil
}

// BitMatrixFromStorage builds a BitMatrix directly from packed row-major
// storage. The matrix takes ownership of the slice; unused bits at the end
// of the final word are zeroed. Returns ErrEmptyTable for a non-positive
// shape or empty storage, and ErrInvalidStorage when the word count does not
// match ceil(rows*cols / bits-per-word).
func BitMatrixFromStorage[T bits.Word](rows, cols int, storage []T) (*BitMatrix[T], error) {
	if rows <= 0 || cols <= 0 || len(storage) == 0 {
		return nil, ErrEmptyTable
	}
	perWord := bits.Size[T]()
	nBits := rows * cols
	if (nBits+perWord-1)/perWord != len(storage) {
		return nil, ErrInvalidStorage
	}
	if used := nBits - (len(storage)-1)*perWord; used < perWord {
		storage[len(storage)-1] &= ^(^T(0) << uint(used))
	}
	return &BitMatrix[T]{rows: rows, cols: cols, storage: storage}, nil
}

// Rows returns the number of rows.
func (m *BitMatrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *BitMatrix[T]) Cols() int { return m.cols }

// NumElements returns the total cell count.
func (m *BitMatrix[T]) NumElements() int { return m.rows * m.cols }

// Storage returns the packed backing slice. Mutating it mutates the matrix.
func (m *BitMatrix[T]) Storage() []T { return m.storage }

// wordBitIndex translates a canonical (row, col) into the word holding the
// cell and the bit within that word.
func (m *BitMatrix[T]) wordBitIndex(row, col int) (word, bit int) {
	flat := row*m.cols + col
	perWord := bits.Size[T]()
	return flat / perWord, flat % perWord
}

// At returns the cell at idx after canonicalization.
func (m *BitMatrix[T]) At(idx Index) bool {
	row, col := Canon(m, idx)
	word, bit := m.wordBitIndex(row, col)
	v, _ := bits.Get(m.storage[word], bit)
	return v
}

// Set writes value to the cell at idx after canonicalization, returning the
// prior value.
func (m *BitMatrix[T]) Set(idx Index, value bool) bool {
	row, col := Canon(m, idx)
	word, bit := m.wordBitIndex(row, col)
	prev, _ := bits.Set(&m.storage[word], bit, value)
	return prev
}

// XOR performs an elementwise in-place XOR with other. Two BitMatrix values
// of the same word type XOR a word at a time.
func (m *BitMatrix[T]) XOR(other Matrix) error {
	if !sameShape(m, other) {
		return ErrDifferentShapes
	}
	if o, ok := other.(*BitMatrix[T]); ok {
		for i := range m.storage {
			m.storage[i] ^= o.storage[i]
		}
		return nil
	}
	xorByEntry(m, other)
	return nil
}

// SwapEntries exchanges the values of two cells.
func (m *BitMatrix[T]) SwapEntries(a, b Index) {
	swapEntries(m, a, b)
}

// SwapRows exchanges rows r1 and r2. When rows fall on word boundaries the
// swap runs a word at a time; otherwise it falls back to per-cell swaps.
func (m *BitMatrix[T]) SwapRows(r1, r2 int) {
	c1 := CanonRow(m, r1)
	c2 := CanonRow(m, r2)
	if c1 == c2 {
		return
	}
	perWord := bits.Size[T]()
	if m.cols%perWord == 0 {
		wordsPerRow := m.cols / perWord
		o1 := c1 * wordsPerRow
		o2 := c2 * wordsPerRow
		for i := 0; i < wordsPerRow; i++ {
			m.storage[o1+i], m.storage[o2+i] = m.storage[o2+i], m.storage[o1+i]
		}
		return
	}
	swapRowsByEntry(m, c1, c2)
}

// SwapCols exchanges columns c1 and c2.
func (m *BitMatrix[T]) SwapCols(c1, c2 int) {
	swapColsByEntry(m, c1, c2)
}

// Popcount returns the number of true cells.
func (m *BitMatrix[T]) Popcount() int {
	n := 0
	for _, w := range m.storage {
		n += bits.Count(w)
	}
	return n
}

// Clone returns a deep copy.
func (m *BitMatrix[T]) Clone() Matrix {
	storage := make([]T, len(m.storage))
	copy(storage, m.storage)
	return &BitMatrix[T]{rows: m.rows, cols: m.cols, storage: storage}
}
