package match3

// RNG is a deterministic pseudo-random number generator (xorshift64).
// A board owns exactly one; copying the value forks the sequence.
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed. The seed is mixed with a
// splitmix64 step, which is a bijection, so distinct seeds start distinct
// sequences. xorshift has no zero state, so the single seed that mixes to
// zero shares the state of the seed after it.
func NewRNG(seed uint64) *RNG {
	state := splitmix64(seed)
	if state == 0 {
		state = splitmix64(seed + 1)
	}
	return &RNG{state: state}
}

func splitmix64(x uint64) uint64 {
	z := x + 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Next returns the next random uint64.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a uniformly random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	bound := uint64(n)
	// The lowest 2^64 mod n values would favour small residues.
	threshold := -bound % bound
	for {
		if v := r.Next(); v >= threshold {
			return int(v % bound)
		}
	}
}

// Shuffle permutes n elements with Fisher-Yates, calling swap for each
// exchange.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
