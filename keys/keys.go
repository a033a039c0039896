// Package keys produces the 32-bit keys consumed by the Talos protocol.
// The protocol's only contract with this package is "produces one uint32":
// keys may be supplied directly, derived from a passphrase, or generated
// randomly.
package keys

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// FromPassphrase derives a key from an arbitrary passphrase: the first four
// bytes of the SHA3-256 digest, read little-endian.
func FromPassphrase(passphrase string) uint32 {
	digest := sha3.Sum256([]byte(passphrase))
	return binary.LittleEndian.Uint32(digest[:4])
}

// Random generates a uniformly random key from the platform CSPRNG.
func Random() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Parse interprets s as a key: a decimal unsigned integer fitting 32 bits is
// used directly, anything else is treated as a passphrase.
func Parse(s string) uint32 {
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint32(n)
	}
	return FromPassphrase(s)
}
