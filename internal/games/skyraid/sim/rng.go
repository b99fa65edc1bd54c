package sim

// SimpleRNG is a deterministic pseudo-random number generator.
// It is a value type so cloning a State clones the generator with it.
type SimpleRNG struct {
	State uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return SimpleRNG{State: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.State = r.State*6364136223846793005 + 1442695040888963407
	return r.State
}

// Intn returns a random int in [0, n). Returns 0 for n <= 0.
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is positive
}

// Float64 returns a random float in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a random float in [lo, hi).
func (r *SimpleRNG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
