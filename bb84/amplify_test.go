package bb84

import (
	"math/rand"
	"testing"

	"github.com/MuhammadYoushay/BB84/bb84/bitmap"
)

func randomKey(rnd *rand.Rand, bits int) bitmap.Dense {
	buf := make([]byte, bitmap.BytesFor(bits))
	rnd.Read(buf)
	return bitmap.NewDense(buf, bits)
}

func TestAmplifyEmptyKey(t *testing.T) {
	out, err := amplify(bitmap.Empty(), 0, 0, 1e-12, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	if out.Size() != 0 {
		t.Errorf("amplify(empty) produced %d bits, want 0", out.Size())
	}
}

func TestAmplifyShrinksKey(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	key := randomKey(rnd, 1600)
	out, err := amplify(key, 0.01, 400, 1e-12, rnd)
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	if out.Size() == 0 {
		t.Fatalf("amplification consumed a 1600-bit key")
	}
	if out.Size() >= key.Size() {
		t.Errorf("amplified key has %d bits, want < %d", out.Size(), key.Size())
	}
}

func TestAmplifyIsDeterministic(t *testing.T) {
	key := randomKey(rand.New(rand.NewSource(3)), 1600)
	a, err := amplify(key, 0.02, 400, 1e-12, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	b, err := amplify(key, 0.02, 400, 1e-12, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	if !bitmap.Equal(a, b) {
		t.Errorf("identically seeded amplifications diverged")
	}
}

func TestAmplifyConsumesLeakyKey(t *testing.T) {
	// At a 25% error rate the leakage bound exceeds a short key's
	// length entirely.
	key := randomKey(rand.New(rand.NewSource(5)), 32)
	out, err := amplify(key, 0.25, 32, 1e-12, rand.New(rand.NewSource(6)))
	if err != nil {
		t.Fatalf("amplify: %v", err)
	}
	if out.Size() != 0 {
		t.Errorf("amplify of a fully leaked key produced %d bits, want 0", out.Size())
	}
}
