package portstrategy

import (
	"sort"

	"github.com/arclight-net/swiftscan/internal/model"
)

// portBitset tracks which of the 65536 possible port values have been
// seen, used to deduplicate ports emitted while walking ranges in
// their original (non-normalized) input order.
type portBitset [1024]uint64 // 1024 * 64 = 65536 bits

func (b *portBitset) test(p model.Port) bool {
	return b[p>>6]&(1<<(p&63)) != 0
}

func (b *portBitset) set(p model.Port) {
	b[p>>6] |= 1 << (p & 63)
}

// normalizeRanges sorts ranges by start and merges overlapping or
// adjacent ones, returning the merged ranges alongside a prefix-sum
// index P where P[i] is the cumulative port count before merged
// range i. P has len(merged)+1 entries; P[len(merged)] is the total
// port count.
func normalizeRanges(ranges []model.PortRange) (merged []model.PortRange, prefix []int) {
	if len(ranges) == 0 {
		return nil, []int{0}
	}

	sorted := make([]model.PortRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged = append(merged, sorted[0])
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if int(r.Start) <= int(last.End)+1 {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}

	prefix = make([]int, len(merged)+1)
	for i, r := range merged {
		prefix[i+1] = prefix[i] + r.Len()
	}
	return merged, prefix
}

// portAt maps a global index in [0, total) to the port it denotes,
// using binary search over the prefix-sum index.
func portAt(merged []model.PortRange, prefix []int, index int) model.Port {
	// Find the largest i such that prefix[i] <= index.
	i := sort.Search(len(prefix), func(i int) bool { return prefix[i] > index }) - 1
	offset := index - prefix[i]
	return merged[i].Start + model.Port(offset)
}

// total returns the number of distinct ports covered by prefix.
func total(prefix []int) int {
	return prefix[len(prefix)-1]
}
