package bb84

import (
	"fmt"

	"github.com/MuhammadYoushay/BB84/bb84/bitmap"
)

// A toeplitz represents a matrix whose diagonals are all constant. It
// operates in F_2, i.e. all of its scalars are 0 or 1. Multiplication
// by a random toeplitz matrix is a universal hash family, which is what
// privacy amplification requires.
type toeplitz struct {
	// The diagonal constants for this toeplitz matrix, starting from
	// the bottom left and ending with the top right.
	diags bitmap.Dense

	m int
	n int
}

// Mul computes the matrix product Av between the toeplitz matrix t and
// the provided vector.
func (t toeplitz) Mul(vec bitmap.Dense) (bitmap.Dense, error) {
	if t.diags.Size() < t.m+t.n-1 {
		return bitmap.Dense{}, fmt.Errorf("improper toeplitz construction, has %d diagonals, needs %d", t.diags.Size(), t.m+t.n-1)
	}
	if t.n != vec.Size() {
		return bitmap.Dense{}, fmt.Errorf("multiplying %dx%d matrix into %d-dim vector", t.m, t.n, vec.Size())
	}

	r := bitmap.Empty()
	for off := t.m - 1; off >= 0; off-- {
		row, err := bitmap.Slice(t.diags, off, off+t.n)
		if err != nil {
			return bitmap.Empty(), err
		}
		r.AppendBit(bitmap.Parity(bitmap.And(row, vec)))
	}
	return r, nil
}
