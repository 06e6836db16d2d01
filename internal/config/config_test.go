package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewAppliesDefaults(t *testing.T) {
	s, err := New([]string{"10.0.0.1"})
	if err != nil {
		t.Fatal(err)
	}
	if s.BatchSize != 4500 {
		t.Fatalf("expected default batch_size 4500, got %d", s.BatchSize)
	}
	if s.Timeout != 1500*time.Millisecond {
		t.Fatalf("expected default timeout 1500ms, got %s", s.Timeout)
	}
	if s.Tries != 1 {
		t.Fatalf("expected default tries 1, got %d", s.Tries)
	}
	if s.ScanOrder != OrderSerial {
		t.Fatalf("expected default Serial order")
	}
	if len(s.PortRanges) != 1 || s.PortRanges[0].Start != 1 || s.PortRanges[0].End != 65535 {
		t.Fatalf("expected default full port range, got %+v", s.PortRanges)
	}
}

func TestNewRejectsEmptyAddresses(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected an error for an empty address list")
	}
}

func TestNewExplicitPortsTakePrecedence(t *testing.T) {
	s, err := New([]string{"10.0.0.1"}, WithPorts([]int{80, 443}), WithPortRanges([][2]int{{1, 1000}}))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Ports) != 2 {
		t.Fatalf("expected explicit ports preserved, got %+v", s.Ports)
	}
	if len(s.PortRanges) != 1 {
		t.Fatalf("expected the explicit range still recorded alongside ports, got %+v", s.PortRanges)
	}
}

func TestNewRejectsInvalidBatchSize(t *testing.T) {
	if _, err := New([]string{"10.0.0.1"}, WithBatchSize(0)); err == nil {
		t.Fatal("expected an error for batch_size < 1")
	}
}

func TestNewRejectsInvalidPort(t *testing.T) {
	if _, err := New([]string{"10.0.0.1"}, WithPorts([]int{70000})); err == nil {
		t.Fatal("expected an error for an out-of-range port")
	}
}

func TestNewRejectsGreppableAndAccessibleTogether(t *testing.T) {
	if _, err := New([]string{"10.0.0.1"}, WithGreppable(true), WithAccessible(true)); err == nil {
		t.Fatal("expected an error when both output modes are requested")
	}
}

func TestLoadFileProducesEquivalentScan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.yaml")
	content := "addresses:\n  - 10.0.0.0/30\nports:\n  - 22\n  - 80\nbatch_size: 100\ntimeout_ms: 250\ntries: 2\nudp: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Addresses) != 1 || s.Addresses[0] != "10.0.0.0/30" {
		t.Fatalf("unexpected addresses: %v", s.Addresses)
	}
	if len(s.Ports) != 2 {
		t.Fatalf("expected 2 explicit ports, got %+v", s.Ports)
	}
	if s.BatchSize != 100 || s.Timeout != 250*time.Millisecond || s.Tries != 2 {
		t.Fatalf("unexpected scan settings: %+v", s)
	}
}

func TestResolverConfigHonorsExplicitList(t *testing.T) {
	s, err := New([]string{"10.0.0.1"}, WithResolver("9.9.9.9,1.1.1.1"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := s.ResolverConfig()
	if cfg.DoT {
		t.Fatalf("expected an explicit resolver list to take precedence over DNS-over-TLS, got %+v", cfg)
	}
	if len(cfg.Servers) != 2 {
		t.Fatalf("expected 2 resolver servers, got %+v", cfg.Servers)
	}
}
