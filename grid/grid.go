// Package grid parses the text format describing an automaton's initial
// state and provides the byte/bit framing helpers used by the cipher.
//
// A grid text has one line per row and one character per column. Characters
// are drawn from a 32-symbol alphabet whose boolean value is assigned per
// key (symbol i takes the value of key bit i), plus two literal symbols:
// '#' is always true and '.' is always false.
package grid

import (
	"fmt"
	"strings"

	"github.com/BackendStack21/talos-go/matrix"
)

// Base32Digits is the grid alphabet. The character at index i is the base-32
// representation of i, so 'A' maps to key bit 0 and '7' to key bit 31.
const Base32Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// Literal symbols carrying a fixed value regardless of key.
const (
	TrueChar  = '#'
	FalseChar = '.'
)

// InvalidCharacterError reports a grid-text character outside the accepted
// alphabet.
type InvalidCharacterError struct {
	Char rune
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character: %q", e.Char)
}

// CharMap builds the per-key character map: alphabet symbol i maps to the
// value of bit i of key, and the two literal symbols map to their fixed
// values.
func CharMap(key uint32) map[rune]bool {
	m := make(map[rune]bool, len(Base32Digits)+2)
	for i, c := range Base32Digits {
		m[c] = key>>uint(i)&1 != 0
	}
	m[TrueChar] = true
	m[FalseChar] = false
	return m
}

// ParseTable reads a grid text into a table of booleans using charMap. Every
// character must be a key of charMap; the first offender is reported as an
// *InvalidCharacterError. Shape validation (empty, ragged) is left to the
// matrix constructors.
func ParseTable(text string, charMap map[rune]bool) ([][]bool, error) {
	var table [][]bool
	for _, line := range splitLines(text) {
		row := make([]bool, 0, len(line))
		for _, ch := range line {
			v, ok := charMap[ch]
			if !ok {
				return nil, &InvalidCharacterError{Char: ch}
			}
			row = append(row, v)
		}
		table = append(table, row)
	}
	return table, nil
}

// SeedMap locates every alphabet symbol in a grid text. Entry i of the
// result holds the positions of symbol i, in row-major order. The cipher's
// temporal seeding overwrites those positions with the corresponding key
// bit; the positions come from the static text, never from a live automaton
// state.
func SeedMap(text string) [][]matrix.Index {
	result := make([][]matrix.Index, 0, len(Base32Digits))
	lines := splitLines(text)
	for _, symbol := range Base32Digits {
		var positions []matrix.Index
		for row, line := range lines {
			for col, ch := range line {
				if ch == symbol {
					positions = append(positions, matrix.Index{Row: row, Col: col})
				}
			}
		}
		result = append(result, positions)
	}
	return result
}

// ExplodeBytes expands a byte sequence into its bits, least significant bit
// of each byte first.
func ExplodeBytes(data []byte) []bool {
	result := make([]bool, 0, len(data)*8)
	for _, b := range data {
		for i := 0; i < 8; i++ {
			result = append(result, b>>uint(i)&1 == 1)
		}
	}
	return result
}

// ConcatBits packs a bit sequence back into bytes, the inverse of
// ExplodeBytes. A trailing partial byte is zero-extended.
func ConcatBits(bitstring []bool) []byte {
	result := make([]byte, 0, (len(bitstring)+7)/8)
	for start := 0; start < len(bitstring); start += 8 {
		var b byte
		for i := 0; i < 8 && start+i < len(bitstring); i++ {
			if bitstring[start+i] {
				b |= 1 << uint(i)
			}
		}
		result = append(result, b)
	}
	return result
}

// splitLines splits on newlines, dropping a trailing empty line so that a
// text ending in '\n' does not grow a phantom row.
func splitLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
