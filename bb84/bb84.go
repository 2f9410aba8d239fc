// Package bb84 simulates the BB84 quantum key distribution protocol: a
// sender and receiver establish a shared secret bit string over a
// simulated quantum channel, detect eavesdropping via the error rate it
// induces, and reconcile a final key. The package is an in-process
// simulation library; it exchanges no messages and performs no I/O.
package bb84

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/MuhammadYoushay/BB84/bb84/bitmap"
	"github.com/MuhammadYoushay/BB84/bb84/qubit"
)

var (
	// DefaultSampleFraction is the proportion of sifted bits spent on
	// error estimation when Options.SampleFraction is unset.
	DefaultSampleFraction = 0.25

	// DefaultAcceptanceThreshold is the QBER above which a run is
	// rejected when Options.Threshold is unset. 0.11 is the
	// conventional literature value: comfortably below the ~0.25
	// induced by a full intercept-resend attack, with margin for
	// detection confidence. It is a tuning convention, not a law.
	DefaultAcceptanceThreshold = 0.11

	// DefaultEpsilon is the privacy-amplification security parameter
	// when AmplifyOpts.Epsilon is unset.
	DefaultEpsilon = 1e-12
)

// A Verdict is the outcome of a run's eavesdropping decision.
type Verdict int

const (
	// Undetermined means the run produced too little data to estimate
	// an error rate (empty sifted key or empty sample set).
	Undetermined Verdict = iota
	// Accepted means the observed QBER was consistent with the
	// no-eavesdropping hypothesis.
	Accepted
	// Rejected means the observed QBER exceeded the acceptance
	// threshold, i.e. eavesdropping was detected.
	Rejected
)

func (v Verdict) String() string {
	switch v {
	case Undetermined:
		return "undetermined"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	}
	panic(fmt.Sprintf("unknown verdict value: %d", int(v)))
}

// A Round records one qubit exchange. Rounds are immutable once the
// receiver has measured.
type Round struct {
	SenderBit   bool
	SenderBasis qubit.Basis

	// Intercepted reports whether the eavesdropper measured this
	// round's qubit. EveBasis and EveBit are meaningful only when it is
	// set.
	Intercepted bool
	EveBasis    qubit.Basis
	EveBit      bool

	ReceiverBasis qubit.Basis
	ReceiverBit   bool
}

// An AmplifyOpts enables privacy amplification of accepted keys: the
// final key is compressed through a random Toeplitz matrix whose output
// dimension discounts the information plausibly leaked to an
// eavesdropper.
type AmplifyOpts struct {
	// Epsilon specifies the statistical distance from uniform we are
	// willing to tolerate our final extracted key being. Defaults to
	// DefaultEpsilon.
	Epsilon float64
}

// An Options packages together the arguments necessary to construct a
// new Simulation. The zero value of Rounds is not useful (it yields an
// Undetermined run), but it is not an error: a degenerate run must
// still complete.
type Options struct {
	// Rounds is the number of qubits to exchange. Must be
	// non-negative.
	Rounds int

	// InterceptProb is the per-round probability that the eavesdropper
	// measures the qubit in flight. 0 disables interception and 1
	// intercepts every round. Must be in [0, 1].
	InterceptProb float64

	// NoiseRate is the per-round probability that the channel flips
	// the in-flight qubit's logical bit within its own basis,
	// independent of interception. Must be in [0, 1).
	NoiseRate float64

	// SampleFraction is the proportion of the sifted key publicly
	// compared for error estimation; those positions are spent and
	// excluded from the final key. Must be in (0, 1). Defaults to
	// DefaultSampleFraction.
	SampleFraction float64

	// Threshold is the acceptance threshold on the observed QBER. Must
	// be in (0, 1). Defaults to DefaultAcceptanceThreshold.
	Threshold float64

	// Seed fixes all randomness in the run. Two simulations with equal
	// Options produce identical Results.
	Seed int64

	// Workers bounds the number of goroutines used for the per-round
	// fan-out. Defaults to GOMAXPROCS.
	Workers int

	// Amplify, if non-nil, enables privacy amplification of accepted
	// keys.
	Amplify *AmplifyOpts
}

// A Result is the outcome of a single protocol run.
type Result struct {
	// Verdict is the eavesdropping decision.
	Verdict Verdict

	// QBER is the observed mismatch rate in the compared sample, or
	// NaN when the run was Undetermined.
	QBER float64

	// Confidence is the probability of observing at least Mismatches
	// errors in the sample under the no-eavesdropping hypothesis
	// (channel noise only). NaN when the run was Undetermined. It is
	// reported for downstream consumers and plays no part in the
	// verdict.
	Confidence float64

	// FinalKey holds the sender's bits at the sifted positions that
	// were not spent on error estimation. For an Undetermined run it
	// is the whole sifted key.
	FinalKey bitmap.Dense

	// Insufficient marks an Undetermined run: there was no data to
	// estimate an error rate from.
	Insufficient bool

	// Sifted, Sampled, and Mismatches are the sizes of the sifted key
	// and sample set and the mismatch count within the sample.
	Sifted     int
	Sampled    int
	Mismatches int

	// Trace is the full per-round record of the run, for diagnostic
	// consumers.
	Trace []Round
}

// A Simulation executes BB84 protocol runs for a fixed configuration.
type Simulation struct {
	opts       Options
	sampleProp float64
	threshold  float64
	workers    int
	epsilon    float64
}

// NewSimulation returns a new Simulation, configured in accordance with
// opts, or an error if the options are nonsensical. Validation happens
// here, before any randomness is drawn; out-of-range values are never
// clamped.
func NewSimulation(opts Options) (*Simulation, error) {
	if opts.Rounds < 0 {
		return nil, fmt.Errorf("negative round count: %d", opts.Rounds)
	}
	if opts.InterceptProb < 0 || opts.InterceptProb > 1 {
		return nil, fmt.Errorf("interception probability outside [0, 1]: %v", opts.InterceptProb)
	}
	if opts.NoiseRate < 0 || opts.NoiseRate >= 1 {
		return nil, fmt.Errorf("noise rate outside [0, 1): %v", opts.NoiseRate)
	}
	sampleProp := opts.SampleFraction
	if sampleProp == 0 {
		sampleProp = DefaultSampleFraction
	}
	if sampleProp <= 0 || sampleProp >= 1 {
		return nil, fmt.Errorf("sample fraction outside (0, 1): %v", opts.SampleFraction)
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultAcceptanceThreshold
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("acceptance threshold outside (0, 1): %v", opts.Threshold)
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("negative worker count: %d", opts.Workers)
	}
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	epsilon := DefaultEpsilon
	if opts.Amplify != nil && opts.Amplify.Epsilon != 0 {
		epsilon = opts.Amplify.Epsilon
	}
	if epsilon <= 0 || epsilon >= 1 {
		return nil, errors.New("amplification epsilon outside (0, 1)")
	}
	return &Simulation{
		opts:       opts,
		sampleProp: sampleProp,
		threshold:  threshold,
		workers:    workers,
		epsilon:    epsilon,
	}, nil
}

// sampleSize returns the number of sifted bits to spend on error
// estimation: ⌈fraction·n⌉, which is zero only when the sifted key
// itself is empty.
func sampleSize(fraction float64, n int) int {
	return int(math.Ceil(fraction * float64(n)))
}
