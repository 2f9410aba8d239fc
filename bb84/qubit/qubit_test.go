package qubit

import (
	"math/rand"
	"testing"
)

func TestPrepare(t *testing.T) {
	tcs := []struct {
		name  string
		bit   bool
		basis Basis
		eout  State
	}{
		{"rectilinear 0", false, Rectilinear, Zero},
		{"rectilinear 1", true, Rectilinear, One},
		{"diagonal 0", false, Diagonal, Plus},
		{"diagonal 1", true, Diagonal, Minus},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := Prepare(tc.bit, tc.basis)
			if got != tc.eout {
				t.Errorf("Prepare(%v, %v) == %v, want %v", tc.bit, tc.basis, got, tc.eout)
			}
			if got.Bit() != tc.bit {
				t.Errorf("%v.Bit() == %v, want %v", got, got.Bit(), tc.bit)
			}
			if got.Basis() != tc.basis {
				t.Errorf("%v.Basis() == %v, want %v", got, got.Basis(), tc.basis)
			}
		})
	}
}

func TestMeasureMatchingBasisIsCertain(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, s := range []State{Zero, One, Plus, Minus} {
		for i := 0; i < 100; i++ {
			bit, collapsed := Measure(s, s.Basis(), rnd)
			if bit != s.Bit() {
				t.Fatalf("Measure(%v, %v) == %v, want %v", s, s.Basis(), bit, s.Bit())
			}
			if collapsed != s {
				t.Fatalf("matching-basis measurement collapsed %v to %v", s, collapsed)
			}
		}
	}
}

func TestMeasureMismatchedBasisIsFair(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	const draws = 10000
	ones := 0
	for i := 0; i < draws; i++ {
		bit, _ := Measure(Plus, Rectilinear, rnd)
		if bit {
			ones++
		}
	}
	// Binomial(10000, 0.5) lands in [4600, 5400] except with
	// vanishingly small probability.
	if ones < 4600 || ones > 5400 {
		t.Errorf("mismatched-basis measurement gave %d/%d ones, want ~5000", ones, draws)
	}
}

func TestMeasureCollapses(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		// An intercept-resend chain: measuring in the wrong basis
		// collapses the state, and every subsequent measurement in that
		// basis reproduces the first outcome with certainty.
		bit, collapsed := Measure(Zero, Diagonal, rnd)
		if got := collapsed.Basis(); got != Diagonal {
			t.Fatalf("collapsed state %v in basis %v, want %v", collapsed, got, Diagonal)
		}
		again, _ := Measure(collapsed, Diagonal, rnd)
		if again != bit {
			t.Fatalf("re-measuring collapsed state gave %v, want %v", again, bit)
		}
	}
}

func TestFlip(t *testing.T) {
	tcs := []struct {
		s, eout State
	}{
		{Zero, One},
		{One, Zero},
		{Plus, Minus},
		{Minus, Plus},
	}
	for _, tc := range tcs {
		if got := Flip(tc.s); got != tc.eout {
			t.Errorf("Flip(%v) == %v, want %v", tc.s, got, tc.eout)
		}
	}
}

func TestInvalidValuesPanic(t *testing.T) {
	tcs := []struct {
		name string
		f    func()
	}{
		{"bad basis string", func() { _ = Basis(7).String() }},
		{"bad state basis", func() { State(7).Basis() }},
		{"bad state bit", func() { State(7).Bit() }},
		{"prepare bad basis", func() { Prepare(false, Basis(7)) }},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("no panic on invalid value")
				}
			}()
			tc.f()
		})
	}
}
