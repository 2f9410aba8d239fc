package bb84

import (
	"testing"

	"github.com/MuhammadYoushay/BB84/bb84/bitmap"
)

func TestToeplitzMul(t *testing.T) {
	tcs := []struct {
		mat  toeplitz
		vec  bitmap.Dense
		eout bitmap.Dense
	}{
		{
			// (0 1 0)
			// (0 0 1)
			// (1 0 0)
			mat: toeplitz{
				diags: bitmap.NewDense([]byte{0b01001}, 5),
				m:     3,
				n:     3,
			},
			// (0 1 1)^T
			vec: bitmap.NewDense([]byte{0b110}, 3),
			// (1 1 0)^T
			eout: bitmap.NewDense([]byte{0b011}, 3),
		}, {
			// (0 0)
			// (1 0)
			// (0 1)
			// (1 0)
			mat: toeplitz{
				diags: bitmap.NewDense([]byte{0b00101}, 5),
				m:     4,
				n:     2,
			},
			// (1 0)^T
			vec: bitmap.NewDense([]byte{0b01}, 2),
			// (0 1 0 1)^T
			eout: bitmap.NewDense([]byte{0b1010}, 4),
		}, {
			// (1 1 1 0)
			// (0 1 1 1)
			mat: toeplitz{
				diags: bitmap.NewDense([]byte{0b01110}, 5),
				m:     2,
				n:     4,
			},
			// (0 1 0 1)^T
			vec: bitmap.NewDense([]byte{0b01}, 4),
			// (1 0)^T
			eout: bitmap.NewDense([]byte{0b01}, 2),
		},
	}

	for _, tc := range tcs {
		out, err := tc.mat.Mul(tc.vec)
		if err != nil {
			t.Fatalf("Mul: %v", err)
		}
		if !bitmap.Equal(out, tc.eout) {
			t.Errorf("Mul(%v) == %v, want %v", tc.vec, out, tc.eout)
		}
	}
}

func TestToeplitzMulErrors(t *testing.T) {
	short := toeplitz{
		diags: bitmap.NewDense([]byte{0b011}, 3),
		m:     3,
		n:     3,
	}
	if _, err := short.Mul(bitmap.NewDense([]byte{0b110}, 3)); err == nil {
		t.Errorf("Mul with too few diagonals succeeded, want error")
	}
	mat := toeplitz{
		diags: bitmap.NewDense([]byte{0b01001}, 5),
		m:     3,
		n:     3,
	}
	if _, err := mat.Mul(bitmap.NewDense([]byte{0b10}, 2)); err == nil {
		t.Errorf("Mul with mismatched vector dimension succeeded, want error")
	}
}
