// Package bitmap provides utilities for operating on densely-packed
// arrays of booleans.
package bitmap

import (
	"fmt"
	"math/bits"
)

const byteSize = 8

// BytesFor returns the number of bytes necessary to hold the provided
// number of bits.
func BytesFor(bits int) int {
	return (bits + byteSize - 1) / byteSize
}

// FromString converts a string of '1's and '0's to a Dense, ignoring
// spaces. The leftmost character becomes bit 0.
func FromString(s string) (Dense, error) {
	d := Dense{}
	for _, c := range s {
		switch c {
		case '1':
			d.AppendBit(true)
		case '0':
			d.AppendBit(false)
		case ' ':
			continue
		default:
			return Dense{}, fmt.Errorf("invalid bitmap string rep: %s", s)
		}
	}
	return d, nil
}

// Parity returns the overall parity of d, with true corresponding to 1
// and false to 0.
func Parity(d Dense) bool {
	var sum byte
	for _, b := range d.bits {
		sum ^= b
	}
	return bits.OnesCount8(sum)%2 == 1
}

// CountOnes returns the total number of bits set in d.
func CountOnes(d Dense) int {
	var sum int
	for _, b := range d.bits {
		sum += bits.OnesCount8(b)
	}
	return sum
}

// Equal returns true iff a and b have the same length and contain the
// same bits.
func Equal(a, b Dense) bool {
	return a.len == b.len && CountOnes(XOr(a, b)) == 0
}
