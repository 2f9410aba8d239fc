package bb84

import (
	"math"
	"math/rand"
	"sync"

	"github.com/MuhammadYoushay/BB84/bb84/bitmap"
	"github.com/MuhammadYoushay/BB84/bb84/qubit"
)

// Stream tags for deriving the independent randomness streams of a run
// from the master seed. Rounds use their own index; the aggregation
// phases use tags that no round index can collide with.
const (
	sampleStream  = ^uint64(0)
	amplifyStream = ^uint64(0) - 1
)

// Run executes one protocol run: generate and transmit all rounds, sift
// on matching bases, estimate the error rate from a public sample, and
// decide the verdict. It never fails on degenerate data (zero rounds,
// empty sifted key); those runs complete with an Undetermined verdict.
func (s *Simulation) Run() (Result, error) {
	trace := s.transmit()
	aBits, aBases, bBits, bBases := splitTrace(trace)
	siftMask := bitmap.XNor(aBases, bBases)
	siftedA := bitmap.Select(aBits, siftMask)
	siftedB := bitmap.Select(bBits, siftMask)

	res := Result{
		Verdict:    Undetermined,
		QBER:       math.NaN(),
		Confidence: math.NaN(),
		FinalKey:   siftedA,
		Sifted:     siftedA.Size(),
		Trace:      trace,
	}
	k := sampleSize(s.sampleProp, siftedA.Size())
	if k == 0 {
		res.Insufficient = true
		return res, nil
	}

	est, err := estimateQBER(siftedA, siftedB, k, mixSeed(s.opts.Seed, sampleStream))
	if err != nil {
		return Result{}, err
	}
	res.QBER = est.qber
	res.Sampled = k
	res.Mismatches = est.mismatches
	res.Confidence = sampleConfidence(est.mismatches, k, s.opts.NoiseRate)
	res.FinalKey = est.finalKey
	if est.qber <= s.threshold {
		res.Verdict = Accepted
	} else {
		res.Verdict = Rejected
	}

	if res.Verdict == Accepted && s.opts.Amplify != nil {
		rnd := rand.New(rand.NewSource(mixSeed(s.opts.Seed, amplifyStream)))
		key, err := amplify(res.FinalKey, est.qber, k, s.epsilon, rnd)
		if err != nil {
			return Result{}, err
		}
		res.FinalKey = key
	}
	return res, nil
}

// transmit plays every round of the exchange. Rounds are independent
// trials: workers write to disjoint slots of a pre-sized slice, and
// each round derives its own rand source from (seed, index), so the
// outcome does not depend on scheduling order.
func (s *Simulation) transmit() []Round {
	n := s.opts.Rounds
	trace := make([]Round, n)
	if n == 0 {
		return trace
	}
	workers := s.workers
	if workers > n {
		workers = n
	}
	var wg sync.WaitGroup
	idx := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				rnd := rand.New(rand.NewSource(mixSeed(s.opts.Seed, uint64(i))))
				trace[i] = s.playRound(rnd)
			}
		}()
	}
	for i := 0; i < n; i++ {
		idx <- i
	}
	close(idx)
	wg.Wait()
	return trace
}

// playRound simulates a single qubit exchange: the sender encodes a
// random bit in a random basis, the eavesdropper optionally intercepts
// and re-prepares, the channel optionally flips, and the receiver
// measures in its own random basis.
func (s *Simulation) playRound(rnd *rand.Rand) Round {
	r := Round{
		SenderBit:   rnd.Intn(2) == 1,
		SenderBasis: randomBasis(rnd),
	}
	state := qubit.Prepare(r.SenderBit, r.SenderBasis)

	if s.opts.InterceptProb > 0 && rnd.Float64() < s.opts.InterceptProb {
		r.Intercepted = true
		r.EveBasis = randomBasis(rnd)
		// Measuring collapses the state to the eigenstate of Eve's
		// outcome in her basis, which is exactly the qubit she
		// re-prepares and forwards.
		r.EveBit, state = qubit.Measure(state, r.EveBasis, rnd)
	}
	if s.opts.NoiseRate > 0 && rnd.Float64() < s.opts.NoiseRate {
		state = qubit.Flip(state)
	}

	r.ReceiverBasis = randomBasis(rnd)
	r.ReceiverBit, _ = qubit.Measure(state, r.ReceiverBasis, rnd)
	return r
}

func randomBasis(rnd *rand.Rand) qubit.Basis {
	if rnd.Intn(2) == 1 {
		return qubit.Diagonal
	}
	return qubit.Rectilinear
}

// splitTrace packs the per-round records into column bitmaps, with
// Diagonal encoded as 1, so that sifting reduces to an XNOR mask and a
// Select.
func splitTrace(trace []Round) (aBits, aBases, bBits, bBases bitmap.Dense) {
	for _, r := range trace {
		aBits.AppendBit(r.SenderBit)
		aBases.AppendBit(r.SenderBasis == qubit.Diagonal)
		bBits.AppendBit(r.ReceiverBit)
		bBases.AppendBit(r.ReceiverBasis == qubit.Diagonal)
	}
	return aBits, aBases, bBits, bBases
}

// mixSeed derives an independent stream seed from the master seed and a
// stream tag, using the splitmix64 finalizer.
func mixSeed(seed int64, stream uint64) int64 {
	z := uint64(seed) + 0x9e3779b97f4a7c15*(stream+1)
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z)
}
