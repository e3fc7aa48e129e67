package engine

import (
	crand "crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Rand is the minimal random source the simulation engines draw from.
// *math/rand.Rand satisfies it; tests inject seeded or scripted sources
// to make runs reproducible.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source. The same seed produces the same draw
// sequence, which is what reproducible simulations and tests rely on.
func NewRand(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

// RandomSeed returns a seed drawn from the OS entropy pool, for sessions
// that don't need reproducibility.
func RandomSeed() int64 {
	n, err := crand.Int(crand.Reader, big.NewInt(1<<62))
	if err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// a fixed seed keeps the simulator usable.
		return 1
	}
	return n.Int64()
}
