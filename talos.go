// Package talos implements the Talos experimental symmetric block cipher.
// Talos derives its keystream-like structure from two independent 2-D binary
// cellular automata evolving on toroidal grids: a "shift" automaton driving a
// keyed row-transposition network and a "transpose" automaton providing the
// XOR mask applied to each 256-bit block.
//
// WARNING: This is an experimental cryptographic construction that has NOT
// been formally verified by academic peer review. DO NOT use in production
// systems protecting sensitive data.
package talos

// Version of the Talos Go implementation.
const Version = "1.0.0"

// API summary:
//
// Cipher protocol:
//   - protocol.New(key) - Build the two automata and temporally seed them
//   - (*protocol.Protocol).Encrypt(message) - Encrypt a byte message
//   - (*protocol.Protocol).Decrypt(ciphertext) - Decrypt a byte message
//
// Keys:
//   - keys.FromPassphrase(s) - Derive a 32-bit key from a passphrase
//   - keys.Random() - Generate a random 32-bit key
//   - keys.Parse(s) - Interpret a string as a number or a passphrase
//
// Building blocks:
//   - matrix.NewBoolMatrix(table) - Dense toroidal binary matrix
//   - matrix.NewBitMatrix(table) - Bit-packed toroidal binary matrix
//   - automaton.New(state, rule) - Cellular automaton over either backing
//   - grid.ParseTable(text, charMap) - Parse an initial-state grid text
