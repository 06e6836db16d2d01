// Package portstrategy builds port iterators from explicit lists or
// ranges, in serial or pseudo-randomized order.
package portstrategy

import (
	"math/rand"

	"github.com/arclight-net/swiftscan/internal/model"
)

// Order selects serial or pseudo-random port iteration.
type Order int

const (
	Serial Order = iota
	Random
)

// Strategy iterates a configured port set exactly once per port, in an
// order determined by the variant and Order. It is safe to call Next
// only from a single goroutine — the socket iterator that wraps it is
// the sole consumer.
type Strategy interface {
	// Next returns the next port in the set, or ok=false once every
	// port has been emitted exactly once.
	Next() (port model.Port, ok bool)
}

// NewManual builds a Strategy over an explicit, non-empty port list.
// In Serial order the list is walked as given; in Random order it is
// shuffled once at construction with a uniform random permutation.
func NewManual(ports []model.Port, order Order, rng *rand.Rand) Strategy {
	list := make([]model.Port, len(ports))
	copy(list, ports)
	if order == Random {
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
	}
	return &manualStrategy{ports: list}
}

type manualStrategy struct {
	ports []model.Port
	i     int
}

func (s *manualStrategy) Next() (model.Port, bool) {
	if s.i >= len(s.ports) {
		return 0, false
	}
	p := s.ports[s.i]
	s.i++
	return p, true
}

// NewRange builds a Strategy over the union of one or more port
// ranges. In Random order the ranges are normalized (sorted, merged)
// and walked with the full-period additive walk. In Serial order the
// ranges are walked in the order given, deduplicating overlaps on the
// fly with a 65536-bit membership set.
func NewRange(ranges []model.PortRange, order Order, rng *rand.Rand) Strategy {
	if order == Random {
		merged, prefix := normalizeRanges(ranges)
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		return &randomRangeStrategy{
			merged: merged,
			prefix: prefix,
			walk:   newAdditiveWalk(total(prefix), rng),
		}
	}
	return &serialRangeStrategy{ranges: ranges}
}

type randomRangeStrategy struct {
	merged []model.PortRange
	prefix []int
	walk   *additiveWalk
}

func (s *randomRangeStrategy) Next() (model.Port, bool) {
	idx, ok := s.walk.next()
	if !ok {
		return 0, false
	}
	return portAt(s.merged, s.prefix, idx), true
}

// serialRangeStrategy walks possibly-overlapping ranges in their
// original input order, deduplicating with a bitset so the multiset
// invariant (each port emitted exactly once) holds even across
// overlapping ranges.
type serialRangeStrategy struct {
	ranges  []model.PortRange
	ri      int
	cur     int // avoids uint16 wraparound when a range ends at 65535
	started bool
	seen    portBitset
}

func (s *serialRangeStrategy) Next() (model.Port, bool) {
	for s.ri < len(s.ranges) {
		r := s.ranges[s.ri]
		if !s.started {
			s.cur = int(r.Start)
			s.started = true
		}
		for s.cur <= int(r.End) {
			p := model.Port(s.cur)
			s.cur++
			if s.seen.test(p) {
				continue
			}
			s.seen.set(p)
			return p, true
		}
		s.ri++
		s.started = false
	}
	return 0, false
}
