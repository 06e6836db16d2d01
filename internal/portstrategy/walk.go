package portstrategy

import "math/rand"

// gcd returns the greatest common divisor of a and b.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// additiveWalk is a full-period additive walk over Z/NZ: starting at a
// random x0, it yields x0, x0+s, x0+2s, ... mod N, visiting every
// residue exactly once before terminating — O(1) state instead of a
// materialized Fisher-Yates shuffle.
type additiveWalk struct {
	n, step, x, start int
	emitted           int
}

// newAdditiveWalk picks a step coprime with n (trying up to 10
// candidates in [n/4, 3n/4) before falling back to n-1, which is
// always coprime) and a uniformly random starting offset.
func newAdditiveWalk(n int, rng *rand.Rand) *additiveWalk {
	if n <= 0 {
		return &additiveWalk{n: 0}
	}
	if n == 1 {
		return &additiveWalk{n: 1, step: 1, x: 0, start: 0}
	}

	lo := n / 4
	hi := (3 * n) / 4
	if hi <= lo {
		hi = lo + 1
	}

	step := n - 1
	for i := 0; i < 10; i++ {
		candidate := lo + rng.Intn(hi-lo)
		if candidate == 0 {
			candidate = 1
		}
		if gcd(candidate, n) == 1 {
			step = candidate
			break
		}
	}

	x0 := rng.Intn(n)
	return &additiveWalk{n: n, step: step, x: x0, start: x0}
}

// next returns the next residue in the walk and whether the walk has
// more to emit.
func (w *additiveWalk) next() (int, bool) {
	if w.n == 0 || w.emitted >= w.n {
		return 0, false
	}
	x := w.x
	w.emitted++
	w.x = (w.x + w.step) % w.n
	return x, true
}
