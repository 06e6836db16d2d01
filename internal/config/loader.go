package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileScan is the on-disk shape of a YAML batch file, grounded in the
// teacher's config.go load/applyDefaults pattern. It is intentionally
// a flat, non-persistent document: every field maps 1:1 onto a
// config.Scan option, and LoadFile re-validates through New exactly as
// the CLI flag path does.
type fileScan struct {
	Addresses        []string `yaml:"addresses"`
	ExcludeAddresses []string `yaml:"exclude_addresses"`
	Ports            []int    `yaml:"ports"`
	PortRanges       [][2]int `yaml:"port_ranges"`
	ExcludePorts     []int    `yaml:"exclude_ports"`
	BatchSize        int      `yaml:"batch_size"`
	TimeoutMS        int      `yaml:"timeout_ms"`
	Tries            int      `yaml:"tries"`
	Random           bool     `yaml:"random_order"`
	UDP              bool     `yaml:"udp"`
	Greppable        bool     `yaml:"greppable"`
	Accessible       bool     `yaml:"accessible"`
	Resolver         string   `yaml:"resolver"`
}

// LoadFile reads a YAML batch file for unattended/programmatic
// invocations — not persistent scan state, just an alternate way to
// specify the same one-shot configuration the CLI flags specify — and
// produces the same validated *Scan New would.
func LoadFile(path string) (*Scan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading batch file %s: %w", path, err)
	}

	var fs fileScan
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("config: parsing batch file %s: %w", path, err)
	}

	opts := []Option{
		WithExcludeAddresses(fs.ExcludeAddresses),
		WithExcludePorts(fs.ExcludePorts),
	}
	if len(fs.Ports) > 0 {
		opts = append(opts, WithPorts(fs.Ports))
	}
	if len(fs.PortRanges) > 0 {
		opts = append(opts, WithPortRanges(fs.PortRanges))
	}
	if fs.BatchSize > 0 {
		opts = append(opts, WithBatchSize(fs.BatchSize))
	}
	if fs.TimeoutMS > 0 {
		opts = append(opts, WithTimeout(time.Duration(fs.TimeoutMS)*time.Millisecond))
	}
	if fs.Tries > 0 {
		opts = append(opts, WithTries(fs.Tries))
	}
	if fs.Random {
		opts = append(opts, WithScanOrder(OrderRandom))
	}
	opts = append(opts,
		WithUDP(fs.UDP),
		WithGreppable(fs.Greppable),
		WithAccessible(fs.Accessible),
		WithResolver(fs.Resolver),
	)

	return New(fs.Addresses, opts...)
}
