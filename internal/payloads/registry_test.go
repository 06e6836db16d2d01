package payloads

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arclight-net/swiftscan/internal/model"
)

func TestDefaultRegistryKnownPort(t *testing.T) {
	reg := Default()
	if len(reg.Payload(53)) == 0 {
		t.Fatal("expected a non-empty payload for port 53")
	}
}

func TestRegistryUnknownPortIsEmpty(t *testing.T) {
	reg := Default()
	if p := reg.Payload(54321); len(p) != 0 {
		t.Fatalf("expected empty payload for unregistered port, got %d bytes", len(p))
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payloads.yaml")
	content := "payloads:\n  - ports: [9999]\n    hex: \"deadbeef\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := reg.Payload(model.Port(9999))
	if len(got) != 4 {
		t.Fatalf("expected 4-byte payload, got %d bytes", len(got))
	}
}
