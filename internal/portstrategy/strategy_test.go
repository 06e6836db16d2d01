package portstrategy

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/arclight-net/swiftscan/internal/model"
)

func drain(s Strategy) []model.Port {
	var out []model.Port
	for {
		p, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, p)
	}
	return out
}

func mustRange(t *testing.T, start, end int) model.PortRange {
	t.Helper()
	r, err := model.NewPortRange(start, end)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// S3 — serial range ordering is exactly [1,2,3,4,5].
func TestSerialRangeOrder(t *testing.T) {
	s := NewRange([]model.PortRange{mustRange(t, 1, 5)}, Serial, nil)
	got := drain(s)
	want := []model.Port{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

// S3 — random range, sorted, reproduces the full ordered range; raw
// order need not be monotonic.
func TestRandomRangeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewRange([]model.PortRange{mustRange(t, 1, 5)}, Random, rng)
	got := drain(s)
	if len(got) != 5 {
		t.Fatalf("expected 5 ports, got %d", len(got))
	}
	sorted := append([]model.Port(nil), got...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, p := range sorted {
		if int(p) != i+1 {
			t.Fatalf("sorted emission mismatch: %v", sorted)
		}
	}
}

// S6 — multi-range union, serial: {1..15} U {100,101,102}, each port
// exactly once.
func TestMultiRangeUnionSerial(t *testing.T) {
	ranges := []model.PortRange{
		mustRange(t, 1, 10),
		mustRange(t, 5, 15),
		mustRange(t, 100, 102),
	}
	s := NewRange(ranges, Serial, nil)
	got := drain(s)

	seen := map[model.Port]bool{}
	for _, p := range got {
		if seen[p] {
			t.Fatalf("port %d emitted more than once", p)
		}
		seen[p] = true
	}

	want := map[model.Port]bool{}
	for p := 1; p <= 15; p++ {
		want[model.Port(p)] = true
	}
	want[100], want[101], want[102] = true, true, true

	if len(seen) != len(want) {
		t.Fatalf("got %d distinct ports, want %d (%v)", len(seen), len(want), got)
	}
	for p := range want {
		if !seen[p] {
			t.Fatalf("missing port %d", p)
		}
	}
}

func TestMultiRangeUnionRandom(t *testing.T) {
	ranges := []model.PortRange{
		mustRange(t, 1, 10),
		mustRange(t, 5, 15),
		mustRange(t, 100, 102),
	}
	rng := rand.New(rand.NewSource(7))
	s := NewRange(ranges, Random, rng)
	got := drain(s)
	if len(got) != 18 {
		t.Fatalf("expected 18 distinct ports, got %d: %v", len(got), got)
	}
}

func TestManualSerialPreservesOrder(t *testing.T) {
	ports := []model.Port{80, 22, 443, 8080}
	s := NewManual(ports, Serial, nil)
	got := drain(s)
	for i, p := range ports {
		if got[i] != p {
			t.Fatalf("got %v want %v", got, ports)
		}
	}
}

func TestManualRandomIsPermutation(t *testing.T) {
	ports := []model.Port{80, 22, 443, 8080, 21, 25}
	rng := rand.New(rand.NewSource(3))
	s := NewManual(ports, Random, rng)
	got := drain(s)

	seen := map[model.Port]bool{}
	for _, p := range got {
		seen[p] = true
	}
	if len(seen) != len(ports) {
		t.Fatalf("expected a permutation of %v, got %v", ports, got)
	}
}

// S4 — exclusion is applied by the caller after ordering; verify the
// strategy itself still emits the full unfiltered set so the socket
// iterator can filter deterministically.
func TestFullRangeBeforeExclusion(t *testing.T) {
	s := NewRange([]model.PortRange{mustRange(t, 1, 10)}, Serial, nil)
	got := drain(s)
	if len(got) != 10 {
		t.Fatalf("expected 10 ports before exclusion filtering, got %d", len(got))
	}
}
