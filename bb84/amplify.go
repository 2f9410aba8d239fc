package bb84

import (
	"math"
	"math/rand"

	"github.com/MuhammadYoushay/BB84/bb84/bitmap"
)

// maxEveInfo returns a theoretical bound on the number of bits of
// information that an eavesdropper could have discerned from a quantum
// communication of n kept qubits, given that an error rate of qber was
// observed over a k-bit sample.
//
// See also, https://link.springer.com/article/10.1007/BF00191318
func maxEveInfo(qber, eps float64, n, k int) float64 {
	// Inflate the observed rate to a high-confidence bound on the true
	// rate; see https://arxiv.org/abs/1506.08458, lemma 6.
	A := float64(n*k*k) / float64((n+k)*(k+1))
	nu := math.Sqrt(0.5 * math.Log(1/eps) / A)
	qberPessimistic := qber + nu

	return 2 * math.Sqrt(2) * qberPessimistic * float64(n)
}

// amplify compresses an accepted final key through a random Toeplitz
// matrix, discounting the bits of information plausibly leaked during
// public comparison of the k-bit sample plus a 2·log2(1/eps) safety
// margin. It returns an empty key when the leakage bound consumes the
// whole key.
func amplify(key bitmap.Dense, qber float64, k int, eps float64, rnd *rand.Rand) (bitmap.Dense, error) {
	n := key.Size()
	if n == 0 {
		return bitmap.Empty(), nil
	}
	leaked := maxEveInfo(qber, eps, n, k)
	m := n - int(math.Ceil(leaked+2*math.Log2(1/eps)))
	if m <= 0 {
		return bitmap.Empty(), nil
	}
	diags := make([]byte, bitmap.BytesFor(m+n-1))
	rnd.Read(diags)
	t := toeplitz{
		diags: bitmap.NewDense(diags, m+n-1),
		m:     m,
		n:     n,
	}
	return t.Mul(key)
}
