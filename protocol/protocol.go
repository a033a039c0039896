// Package protocol implements the Talos block transform: two key-seeded
// cellular automata drive a row-transposition network and an XOR mask over
// 256-bit message blocks.
package protocol

import (
	"github.com/BackendStack21/talos-go/automaton"
	"github.com/BackendStack21/talos-go/grid"
	"github.com/BackendStack21/talos-go/matrix"
)

const (
	// BlockSize is the cipher block size in bytes.
	BlockSize = 32

	blockBits = BlockSize * 8
	blockDim  = 16

	// Generations advanced before and after the key-bit overwrite during
	// temporal seeding, and before each block transform.
	seedGenerations  = 8
	blockGenerations = 11
)

// Protocol holds the two automata of an initialized Talos instance. The
// shift automaton drives the scramble permutation; the transpose automaton
// provides the XOR mask. Both advance monotonically across blocks, so block
// k is transformed at generation 11k+16 of each.
//
// A Protocol is stateful: one instance encrypts (or decrypts) one message.
// It is not safe for concurrent use.
type Protocol struct {
	shift     *automaton.Automaton
	transpose *automaton.Automaton
}

// New builds a Protocol from the default rule and initial grids, derives
// both automata from key, and applies temporal seeding.
func New(key uint32) (*Protocol, error) {
	return NewCustom(key, DefaultRule, SInitGrid, TInitGrid)
}

// NewCustom builds a Protocol from an explicit rule and initial grid texts.
// Both grids are parsed with the per-key character map; each automaton is
// then temporally seeded: advanced 8 generations, overwritten with key bits
// at the positions where each alphabet symbol appears in the original grid
// text, and advanced 8 more, binding key material into the state through
// one-way diffusion before any block is processed.
func NewCustom(key uint32, rule automaton.Rule, sGrid, tGrid string) (*Protocol, error) {
	charMap := grid.CharMap(key)

	shift, err := deriveAutomaton(sGrid, charMap, rule, key)
	if err != nil {
		return nil, err
	}
	transpose, err := deriveAutomaton(tGrid, charMap, rule, key)
	if err != nil {
		return nil, err
	}
	return &Protocol{shift: shift, transpose: transpose}, nil
}

func deriveAutomaton(gridText string, charMap map[rune]bool, rule automaton.Rule, key uint32) (*automaton.Automaton, error) {
	table, err := grid.ParseTable(gridText, charMap)
	if err != nil {
		return nil, err
	}
	state, err := matrix.NewBoolMatrix(table)
	if err != nil {
		return nil, err
	}
	a := automaton.New(state, rule)
	temporalSeed(a, key, grid.SeedMap(gridText))
	return a, nil
}

// temporalSeed binds key material into an automaton. seedPositions[i] holds
// the grid positions of alphabet symbol i in the original grid text; each is
// overwritten with the value of key bit i between two 8-generation advances.
func temporalSeed(a *automaton.Automaton, key uint32, seedPositions [][]matrix.Index) {
	a.Iterate(seedGenerations)
	for bit, positions := range seedPositions {
		value := key>>uint(bit)&1 != 0
		for _, idx := range positions {
			a.WriteCell(idx, value)
		}
	}
	a.Iterate(seedGenerations)
}

// Read4Bits reads the cells at four toroidal positions of m and packs them
// little-endian: position i contributes 2^i.
func Read4Bits(m matrix.Matrix, idx0, idx1, idx2, idx3 matrix.Index) uint8 {
	var result uint8
	for i, idx := range [4]matrix.Index{idx0, idx1, idx2, idx3} {
		if m.At(idx) {
			result |= 1 << uint(i)
		}
	}
	return result
}

// Per-phase slot orders of the scramble network. In the row phase the slot
// index selects the row within the band and the value selects the column
// offset within a column band; the column phase is the transpose reading.
var (
	rowPhaseOrder = [4]int{0, 2, 1, 3}
	colPhaseOrder = [4]int{3, 0, 2, 1}
)

// scramble256 applies the keyed transposition network V to a 16x16 message
// matrix, driven by the shift automaton's state. The matrix is processed as
// four 4-row bands and four 4-column bands; each slot reads 4 driver bits
// into a swap target and transposes two rows.
//
// Note the second phase computes its swap target from column-indexed reads
// but still swaps rows. That is the protocol as deployed: both phases
// permute via row transpositions, and the inverse replays the identical
// sequence, so the round trip is exact. Changing either phase to column
// swaps would define a different (incompatible) cipher.
func scramble256(message, driver matrix.Matrix) {
	for band := 0; band < 4; band++ {
		offset := 4 * band
		for rowOffset, colOffset := range rowPhaseOrder {
			message.SwapRows(offset, rowPhaseTarget(driver, offset, rowOffset, colOffset))
		}
	}
	for band := 0; band < 4; band++ {
		offset := 4 * band
		for colOffset, rowOffset := range colPhaseOrder {
			message.SwapRows(offset, colPhaseTarget(driver, offset, rowOffset, colOffset))
		}
	}
}

// unscramble256 applies V^-1: every swap of scramble256 is a self-inverse
// transposition, so replaying the computed swaps in exactly reverse order
// restores the original arrangement.
func unscramble256(message, driver matrix.Matrix) {
	for band := 3; band >= 0; band-- {
		offset := 4 * band
		for i := 3; i >= 0; i-- {
			message.SwapRows(offset, colPhaseTarget(driver, offset, colPhaseOrder[i], i))
		}
	}
	for band := 3; band >= 0; band-- {
		offset := 4 * band
		for i := 3; i >= 0; i-- {
			message.SwapRows(offset, rowPhaseTarget(driver, offset, i, rowPhaseOrder[i]))
		}
	}
}

func rowPhaseTarget(driver matrix.Matrix, offset, rowOffset, colOffset int) int {
	return int(Read4Bits(driver,
		matrix.Index{Row: offset + rowOffset, Col: colOffset},
		matrix.Index{Row: offset + rowOffset, Col: 4 + colOffset},
		matrix.Index{Row: offset + rowOffset, Col: 8 + colOffset},
		matrix.Index{Row: offset + rowOffset, Col: 12 + colOffset},
	))
}

func colPhaseTarget(driver matrix.Matrix, offset, rowOffset, colOffset int) int {
	return int(Read4Bits(driver,
		matrix.Index{Row: rowOffset, Col: offset + colOffset},
		matrix.Index{Row: 4 + rowOffset, Col: offset + colOffset},
		matrix.Index{Row: 8 + rowOffset, Col: offset + colOffset},
		matrix.Index{Row: 12 + rowOffset, Col: offset + colOffset},
	))
}

// encryptBlock transforms one 256-bit plaintext block in place. block must
// hold exactly 256 bits in row-major order.
func (p *Protocol) encryptBlock(block []bool) []bool {
	m, err := matrix.BoolMatrixFromStorage(blockDim, blockDim, block)
	if err != nil {
		panic("protocol: malformed block: " + err.Error())
	}
	p.shift.Iterate(blockGenerations)
	p.transpose.Iterate(blockGenerations)

	scramble256(m, p.shift.State())
	if err := m.XOR(p.transpose.State()); err != nil {
		panic("protocol: mask shape mismatch: " + err.Error())
	}
	return m.Storage()
}

// decryptBlock is the exact mirror of encryptBlock: unmask first, then
// invert the scramble.
func (p *Protocol) decryptBlock(block []bool) []bool {
	m, err := matrix.BoolMatrixFromStorage(blockDim, blockDim, block)
	if err != nil {
		panic("protocol: malformed block: " + err.Error())
	}
	p.shift.Iterate(blockGenerations)
	p.transpose.Iterate(blockGenerations)

	if err := m.XOR(p.transpose.State()); err != nil {
		panic("protocol: mask shape mismatch: " + err.Error())
	}
	unscramble256(m, p.shift.State())
	return m.Storage()
}

// Encrypt splits message into 32-byte blocks, zero-padding the final block,
// and runs each through the block transform with both automata advancing
// across blocks. The output length is len(message) rounded up to a multiple
// of BlockSize.
func (p *Protocol) Encrypt(message []byte) []byte {
	return p.transform(message, p.encryptBlock)
}

// Decrypt runs the mirror transform over ciphertext blocks. The output
// length equals the input length rounded up to a multiple of BlockSize;
// trailing pad bytes are not stripped, so callers who know the true
// plaintext length truncate themselves.
func (p *Protocol) Decrypt(ciphertext []byte) []byte {
	return p.transform(ciphertext, p.decryptBlock)
}

func (p *Protocol) transform(data []byte, blockFn func([]bool) []bool) []byte {
	nBlocks := (len(data) + BlockSize - 1) / BlockSize
	out := make([]byte, 0, nBlocks*BlockSize)
	for start := 0; start < len(data); start += BlockSize {
		end := min(start+BlockSize, len(data))
		block := make([]bool, blockBits)
		copy(block, grid.ExplodeBytes(data[start:end]))
		out = append(out, grid.ConcatBits(blockFn(block))...)
	}
	return out
}
