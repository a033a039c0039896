// Package bits provides bit-level access to generic unsigned integer words.
// It backs the bit-packed toroidal matrix, where each grid cell occupies one
// bit of a caller-chosen word type.
package bits

import mathbits "math/bits"

// Word is the set of unsigned integer types usable as bit-packed storage.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Size returns the number of bits in the word type T.
func Size[T Word]() int {
	n := 0
	for v := T(1); v != 0; v <<= 1 {
		n++
	}
	return n
}

// Get returns the value of bit i of w. Indexing is "shift right by i, mask
// one": bit 0 is the least significant bit. ok is false when i is out of
// range for the word type.
func Get[T Word](w T, i int) (bit, ok bool) {
	if i < 0 || i >= Size[T]() {
		return false, false
	}
	return getUnchecked(w, i), true
}

// Set sets bit i of w to v and reports the bit's prior value. ok is false
// and w is left unchanged when i is out of range for the word type.
func Set[T Word](w *T, i int, v bool) (prev, ok bool) {
	if i < 0 || i >= Size[T]() {
		return false, false
	}
	return setUnchecked(w, i, v), true
}

// Count returns the number of set bits in w.
func Count[T Word](w T) int {
	return mathbits.OnesCount64(uint64(w))
}

func getUnchecked[T Word](w T, i int) bool {
	return w&(T(1)<<uint(i)) != 0
}

func setUnchecked[T Word](w *T, i int, v bool) bool {
	mask := T(1) << uint(i)
	prev := *w&mask != 0
	if v {
		*w |= mask
	} else {
		*w &^= mask
	}
	return prev
}
