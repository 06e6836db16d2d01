package portstrategy

import (
	"math/rand"
	"testing"
)

func TestGCD(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{12, 8, 4},
		{17, 5, 1},
		{0, 5, 5},
		{9, 9, 9},
	}
	for _, c := range cases {
		if got := gcd(c.a, c.b); got != c.want {
			t.Errorf("gcd(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestAdditiveWalkFullPeriod(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, n := range []int{1, 2, 5, 16, 65536} {
		w := newAdditiveWalk(n, rng)
		seen := make(map[int]bool, n)
		count := 0
		for {
			x, ok := w.next()
			if !ok {
				break
			}
			if seen[x] {
				t.Fatalf("n=%d: value %d emitted twice", n, x)
			}
			seen[x] = true
			count++
		}
		if count != n {
			t.Fatalf("n=%d: emitted %d values, want %d", n, count, n)
		}
	}
}

func TestAdditiveWalkStepCoprime(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		n := 100 + i
		w := newAdditiveWalk(n, rng)
		if gcd(w.step, n) != 1 {
			t.Fatalf("n=%d: step %d is not coprime", n, w.step)
		}
	}
}
