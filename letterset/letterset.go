// Package letterset defines the 26-bit letter mask and the small
// byte-indexed letter type shared by every DAWG and enumeration
// package in this module.
package letterset

import (
	"fmt"
	"math/bits"
)

// Size is the number of legal letters, 'a' through 'z'. This module
// carries no Unicode or blank-tile support; see spec Non-goals.
const Size = 26

// Mask is a 26-bit value; bit k is set iff letter k ('a'+k) is legal.
type Mask uint32

// Full is the mask with every one of the 26 letters set.
const Full Mask = (1 << Size) - 1

// Letter is a decoded letter index in [0, Size).
type Letter byte

// ByteToLetter converts an ASCII byte to a Letter, rejecting anything
// outside 'a'-'z'.
func ByteToLetter(b byte) (Letter, error) {
	if b < 'a' || b > 'z' {
		return 0, fmt.Errorf("letterset: byte %q is not a lowercase a-z letter", b)
	}
	return Letter(b - 'a'), nil
}

// Byte returns the ASCII byte for this letter.
func (l Letter) Byte() byte {
	return byte(l) + 'a'
}

// Bit returns the single-bit mask for this letter.
func (l Letter) Bit() Mask {
	return 1 << Mask(l)
}

// Set reports whether letter l is legal under m.
func (m Mask) Set(l Letter) bool {
	return m&l.Bit() != 0
}

// With returns m with letter l added.
func (m Mask) With(l Letter) Mask {
	return m | l.Bit()
}

// PopCount returns the number of legal letters in m. This is the
// decisive performance primitive named in the design notes: it must
// be constant time, which math/bits guarantees via a hardware
// POPCNT instruction on every platform Go targets.
func (m Mask) PopCount() int {
	return bits.OnesCount32(uint32(m))
}

// Rank returns the number of legal letters strictly below l, i.e. the
// index l would occupy among m's set bits in letter order. This is
// the child-lookup index: children[mask.Rank(letter)].
func (m Mask) Rank(l Letter) int {
	below := Mask((1 << uint(l)) - 1)
	return (m & below).PopCount()
}

// TrailingZeros returns the index of the lowest set bit of m, or 32
// if m is zero. Used by the enumerator to pick the next legal letter
// at or after a given starting point in constant time.
func (m Mask) TrailingZeros() int {
	return bits.TrailingZeros32(uint32(m))
}

// Empty reports whether no letter is legal under m.
func (m Mask) Empty() bool {
	return m == 0
}
