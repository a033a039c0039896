package matrix

import (
	"errors"
	"math/rand"
	"testing"
)

// constructors for running the same test across both backings.
var backings = []struct {
	name string
	new  func([][]bool) (Matrix, error)
}{
	{"bool", func(t [][]bool) (Matrix, error) { return NewBoolMatrix(t) }},
	{"bit8", func(t [][]bool) (Matrix, error) { return NewBitMatrix[uint8](t) }},
	{"bit32", func(t [][]bool) (Matrix, error) { return NewBitMatrix[uint32](t) }},
	{"bit64", func(t [][]bool) (Matrix, error) { return NewBitMatrix[uint64](t) }},
}

func randomTable(rng *rand.Rand, rows, cols int) [][]bool {
	table := make([][]bool, rows)
	for r := range table {
		table[r] = make([]bool, cols)
		for c := range table[r] {
			table[r][c] = rng.Intn(2) == 1
		}
	}
	return table
}

func TestNewShapes(t *testing.T) {
	table := [][]bool{
		{false, false, false},
		{false, false, true},
	}
	for _, b := range backings {
		m, err := b.new(table)
		if err != nil {
			t.Fatalf("%s: construction failed: %v", b.name, err)
		}
		if m.Rows() != 2 || m.Cols() != 3 || m.NumElements() != 6 {
			t.Errorf("%s: shape = %dx%d (%d), want 2x3 (6)", b.name, m.Rows(), m.Cols(), m.NumElements())
		}
		if !m.At(Index{Row: 1, Col: 2}) || m.At(Index{Row: 0, Col: 0}) {
			t.Errorf("%s: cell values do not match the table", b.name)
		}
	}
}

func TestNewEmpty(t *testing.T) {
	cases := [][][]bool{
		{},
		{{}, {}},
		{{false}, {false, true}, {}}, // empty takes precedence over ragged
	}
	for _, b := range backings {
		for i, table := range cases {
			if _, err := b.new(table); !errors.Is(err, ErrEmptyTable) {
				t.Errorf("%s case %d: err = %v, want ErrEmptyTable", b.name, i, err)
			}
		}
	}
}

func TestNewRagged(t *testing.T) {
	table := [][]bool{{false}, {false, true}}
	for _, b := range backings {
		if _, err := b.new(table); !errors.Is(err, ErrRaggedTable) {
			t.Errorf("%s: err = %v, want ErrRaggedTable", b.name, err)
		}
	}
}

func TestCanonicalization(t *testing.T) {
	m, err := NewBoolMatrix(randomTable(rand.New(rand.NewSource(1)), 3, 5))
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		in       Index
		row, col int
	}{
		{Index{Row: 1, Col: 3}, 1, 3},
		{Index{Row: -1, Col: -1}, 2, 4},
		{Index{Row: -2, Col: 15}, 1, 0},
		{Index{Row: 5, Col: -12}, 2, 3},
		{Index{Row: 3, Col: 5}, 0, 0},
	}
	for _, c := range cases {
		row, col := Canon(m, c.in)
		if row != c.row || col != c.col {
			t.Errorf("Canon(%v) = (%d, %d), want (%d, %d)", c.in, row, col, c.row, c.col)
		}
		// idempotent on already-canonical results
		again, againCol := Canon(m, Index{Row: row, Col: col})
		if again != row || againCol != col {
			t.Errorf("Canon not idempotent for %v", c.in)
		}
	}
}

func TestAtSetWraparound(t *testing.T) {
	for _, b := range backings {
		m, err := b.new(randomTable(rand.New(rand.NewSource(2)), 4, 7))
		if err != nil {
			t.Fatal(err)
		}
		prev := m.Set(Index{Row: -1, Col: -1}, true)
		if m.At(Index{Row: 3, Col: 6}) != true {
			t.Errorf("%s: Set at (-1,-1) did not write (3,6)", b.name)
		}
		if m.Set(Index{Row: 3, Col: 6}, prev) != true {
			t.Errorf("%s: Set did not report the prior value", b.name)
		}
	}
}

func TestXORSelfInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, b := range backings {
		table := randomTable(rng, 6, 9)
		a, _ := b.new(table)
		other, _ := b.new(randomTable(rng, 6, 9))
		want := a.Clone()
		if err := a.XOR(other); err != nil {
			t.Fatalf("%s: XOR failed: %v", b.name, err)
		}
		if err := a.XOR(other); err != nil {
			t.Fatalf("%s: XOR failed: %v", b.name, err)
		}
		if !equal(t, a, want) {
			t.Errorf("%s: XOR twice did not restore the matrix", b.name)
		}
	}
}

func TestXORDifferentShapes(t *testing.T) {
	a, _ := NewBoolMatrix(randomTable(rand.New(rand.NewSource(4)), 2, 2))
	c, _ := NewBitMatrix[uint8](randomTable(rand.New(rand.NewSource(5)), 2, 3))
	if err := a.XOR(c); !errors.Is(err, ErrDifferentShapes) {
		t.Errorf("err = %v, want ErrDifferentShapes", err)
	}
}

func TestXORCrossBacking(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	tableA := randomTable(rng, 5, 11)
	tableB := randomTable(rng, 5, 11)

	dense, _ := NewBoolMatrix(tableA)
	packed, _ := NewBitMatrix[uint32](tableA)
	denseOther, _ := NewBoolMatrix(tableB)
	packedOther, _ := NewBitMatrix[uint32](tableB)

	if err := dense.XOR(packedOther); err != nil {
		t.Fatal(err)
	}
	if err := packed.XOR(denseOther); err != nil {
		t.Fatal(err)
	}
	if !equal(t, dense, packed) {
		t.Error("cross-backing XOR results differ between backings")
	}
}

func TestSwapRowsAndCols(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	table := randomTable(rng, 6, 6)
	for _, b := range backings {
		m, _ := b.new(table)
		want := m.Clone()

		m.SwapRows(1, -2) // -2 canonicalizes to 4
		for c := 0; c < 6; c++ {
			if m.At(Index{Row: 1, Col: c}) != want.At(Index{Row: 4, Col: c}) ||
				m.At(Index{Row: 4, Col: c}) != want.At(Index{Row: 1, Col: c}) {
				t.Fatalf("%s: SwapRows(1, -2) wrong at col %d", b.name, c)
			}
		}
		m.SwapRows(1, 4) // swap back

		m.SwapCols(0, 11) // 11 canonicalizes to 5
		for r := 0; r < 6; r++ {
			if m.At(Index{Row: r, Col: 0}) != want.At(Index{Row: r, Col: 5}) ||
				m.At(Index{Row: r, Col: 5}) != want.At(Index{Row: r, Col: 0}) {
				t.Fatalf("%s: SwapCols(0, 11) wrong at row %d", b.name, r)
			}
		}
		m.SwapCols(0, 5)

		m.SwapRows(2, 8) // same row after canonicalization, must be a no-op
		if !equal(t, m, want) {
			t.Errorf("%s: swap round trip did not restore the matrix", b.name)
		}
	}
}

func TestSwapRowsUnalignedBitMatrix(t *testing.T) {
	// 6 columns with 8-bit words exercises the per-cell fallback path.
	rng := rand.New(rand.NewSource(8))
	table := randomTable(rng, 4, 6)
	packed, _ := NewBitMatrix[uint8](table)
	dense, _ := NewBoolMatrix(table)
	packed.SwapRows(0, 3)
	dense.SwapRows(0, 3)
	if !equal(t, packed, dense) {
		t.Error("unaligned SwapRows differs from dense backing")
	}
}

func TestPopcount(t *testing.T) {
	table := [][]bool{
		{true, false, true},
		{false, false, false},
		{true, true, true},
	}
	for _, b := range backings {
		m, _ := b.new(table)
		if got := m.Popcount(); got != 5 {
			t.Errorf("%s: Popcount() = %d, want 5", b.name, got)
		}
	}
}

func TestBoolMatrixFromStorage(t *testing.T) {
	if _, err := BoolMatrixFromStorage(0, 1, nil); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("err = %v, want ErrEmptyTable", err)
	}
	if _, err := BoolMatrixFromStorage(2, 2, make([]bool, 3)); !errors.Is(err, ErrInvalidStorage) {
		t.Errorf("err = %v, want ErrInvalidStorage", err)
	}
	m, err := BoolMatrixFromStorage(2, 2, []bool{true, false, false, true})
	if err != nil {
		t.Fatal(err)
	}
	if !m.At(Index{Row: 0, Col: 0}) || !m.At(Index{Row: 1, Col: 1}) {
		t.Error("storage order not row-major")
	}
}

func TestBitMatrixFromStorage(t *testing.T) {
	storage := []uint32{0, 0, 0}
	if _, err := BitMatrixFromStorage(3, 32, append([]uint32(nil), storage...)); err != nil {
		t.Errorf("3x32 over 3 words should construct: %v", err)
	}
	if _, err := BitMatrixFromStorage(31, 3, append([]uint32(nil), storage...)); err != nil {
		t.Errorf("31x3 over 3 words should construct: %v", err)
	}
	if _, err := BitMatrixFromStorage(0, 0, storage); !errors.Is(err, ErrEmptyTable) {
		t.Error("zero shape should be ErrEmptyTable")
	}
	if _, err := BitMatrixFromStorage[uint32](1, 1, nil); !errors.Is(err, ErrEmptyTable) {
		t.Error("empty storage should be ErrEmptyTable")
	}
	if _, err := BitMatrixFromStorage(64, 1, append([]uint32(nil), storage...)); !errors.Is(err, ErrInvalidStorage) {
		t.Error("64 bits over 3 words should be ErrInvalidStorage")
	}
	if _, err := BitMatrixFromStorage(97, 1, append([]uint32(nil), storage...)); !errors.Is(err, ErrInvalidStorage) {
		t.Error("97 bits over 3 words should be ErrInvalidStorage")
	}
}

func TestBitMatrixFromStorageZeroesExcessBits(t *testing.T) {
	// 3x3 = 9 bits over two 8-bit words: the top 7 bits of word 1 are unused.
	m, err := BitMatrixFromStorage(3, 3, []uint8{0xFF, 0xFF})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Popcount(); got != 9 {
		t.Errorf("Popcount() = %d, want 9 after masking excess bits", got)
	}
	if m.Storage()[1] != 0x01 {
		t.Errorf("final word = %#x, want 0x01", m.Storage()[1])
	}
}

func TestBackingEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	table := randomTable(rng, 7, 13)
	dense, _ := NewBoolMatrix(table)
	packed8, _ := NewBitMatrix[uint8](table)
	packed64, _ := NewBitMatrix[uint64](table)

	if dense.Popcount() != packed8.Popcount() || dense.Popcount() != packed64.Popcount() {
		t.Fatal("popcount differs between backings")
	}
	if !equal(t, dense, packed8) || !equal(t, dense, packed64) {
		t.Fatal("cell states differ between backings")
	}
}

func equal(t *testing.T, a, b Matrix) bool {
	t.Helper()
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	for r := 0; r < a.Rows(); r++ {
		for c := 0; c < a.Cols(); c++ {
			idx := Index{Row: r, Col: c}
			if a.At(idx) != b.At(idx) {
				return false
			}
		}
	}
	return true
}
