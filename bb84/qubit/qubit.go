// Package qubit models single-qubit preparation and measurement in the
// four canonical BB84 states. States are represented closed-form rather
// than as amplitude vectors: the Born-rule probabilities for the
// rectilinear/diagonal state pairs are either 1 or 1/2, so an enum plus
// a coin flip reproduces the exact statistics of a circuit simulator.
package qubit

import (
	"fmt"
	"math/rand"
)

// A Basis identifies one of the two conjugate BB84 preparation and
// measurement frames.
type Basis uint8

const (
	// Rectilinear is the computational (+) basis, spanning |0⟩ and |1⟩.
	Rectilinear Basis = iota
	// Diagonal is the Hadamard (×) basis, spanning |+⟩ and |−⟩.
	Diagonal
)

func (b Basis) String() string {
	switch b {
	case Rectilinear:
		return "+"
	case Diagonal:
		return "x"
	}
	panic(fmt.Sprintf("unknown basis value: %d", uint8(b)))
}

// A State is one of the four BB84 polarization states. A State value is
// transient: it exists between preparation and the measurement that
// collapses it, and is never shared between rounds.
type State uint8

const (
	Zero State = iota // |0⟩
	One               // |1⟩
	Plus              // |+⟩
	Minus             // |−⟩
)

func (s State) String() string {
	switch s {
	case Zero:
		return "|0>"
	case One:
		return "|1>"
	case Plus:
		return "|+>"
	case Minus:
		return "|->"
	}
	panic(fmt.Sprintf("unknown state value: %d", uint8(s)))
}

// Basis returns the basis in which s is an eigenstate.
func (s State) Basis() Basis {
	switch s {
	case Zero, One:
		return Rectilinear
	case Plus, Minus:
		return Diagonal
	}
	panic(fmt.Sprintf("unknown state value: %d", uint8(s)))
}

// Bit returns the logical bit s encodes within its own basis.
func (s State) Bit() bool {
	switch s {
	case Zero, Plus:
		return false
	case One, Minus:
		return true
	}
	panic(fmt.Sprintf("unknown state value: %d", uint8(s)))
}

// Prepare encodes a logical bit in the given basis:
//
//	Rectilinear: 0 ↦ |0⟩, 1 ↦ |1⟩
//	Diagonal:    0 ↦ |+⟩, 1 ↦ |−⟩
func Prepare(bit bool, basis Basis) State {
	switch basis {
	case Rectilinear:
		if bit {
			return One
		}
		return Zero
	case Diagonal:
		if bit {
			return Minus
		}
		return Plus
	}
	panic(fmt.Sprintf("unknown basis value: %d", uint8(basis)))
}

// Measure performs a projective measurement of s in the given basis,
// drawing from rnd when the outcome is probabilistic. A matching basis
// yields the encoded bit with certainty and leaves the state unchanged;
// a mismatched basis yields a fair coin flip and collapses the state to
// the eigenstate of (bit, basis). Any further measurement of the same
// physical qubit must use the collapsed state, not the original: that is
// the mechanism by which an intercept-resend attack becomes visible
// downstream.
func Measure(s State, basis Basis, rnd *rand.Rand) (bit bool, collapsed State) {
	if s.Basis() == basis {
		return s.Bit(), s
	}
	bit = rnd.Intn(2) == 1
	return bit, Prepare(bit, basis)
}

// Flip applies a logical bit flip to s within its own basis, i.e.
// |0⟩↔|1⟩ and |+⟩↔|−⟩. It models a channel error on the in-flight
// qubit.
func Flip(s State) State {
	return Prepare(!s.Bit(), s.Basis())
}
