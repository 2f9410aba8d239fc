package bb84

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/MuhammadYoushay/BB84/bb84/bitmap"
)

// An estimate is the outcome of public error-rate estimation over a
// sifted key.
type estimate struct {
	qber       float64
	mismatches int
	// finalKey holds the sender's bits at the unsampled positions. The
	// receiver's bits there are assumed, not verified, to agree when
	// the run is accepted; that is the protocol's trust model.
	finalKey bitmap.Dense
}

// estimateQBER publicly compares k sifted positions, chosen without
// replacement by shuffling both halves of the sifted key under
// identically seeded sources, and returns the observed mismatch rate.
// The compared positions are spent: they are excluded from the final
// key. k must be in [1, siftedA.Size()].
func estimateQBER(siftedA, siftedB bitmap.Dense, k int, seed int64) (estimate, error) {
	n := siftedA.Size()
	siftedA.Shuffle(rand.New(rand.NewSource(seed)))
	siftedB.Shuffle(rand.New(rand.NewSource(seed)))
	finalKey, err := bitmap.Slice(siftedA, 0, n-k)
	if err != nil {
		return estimate{}, err
	}
	sampledA, err := bitmap.Slice(siftedA, n-k, n)
	if err != nil {
		return estimate{}, err
	}
	sampledB, err := bitmap.Slice(siftedB, n-k, n)
	if err != nil {
		return estimate{}, err
	}
	mismatches := bitmap.CountOnes(bitmap.XOr(sampledA, sampledB))
	return estimate{
		qber:       float64(mismatches) / float64(k),
		mismatches: mismatches,
		finalKey:   finalKey,
	}, nil
}

// sampleConfidence returns the probability of observing at least the
// given number of mismatches in a k-bit sample under the
// no-eavesdropping hypothesis, where each compared bit independently
// errs with the channel noise rate. Small values indicate the noise
// model alone does not explain the observed errors.
func sampleConfidence(mismatches, k int, noise float64) float64 {
	if mismatches == 0 {
		return 1
	}
	if noise <= 0 {
		return 0
	}
	bin := distuv.Binomial{N: float64(k), P: noise}
	return 1 - bin.CDF(float64(mismatches-1))
}
