// Package config builds the immutable, validated scan configuration:
// a config.Scan is built once via functional options and never
// changes for the lifetime of a scan.
package config

import (
	"fmt"
	"time"

	"github.com/arclight-net/swiftscan/internal/model"
)

// Order mirrors portstrategy.Order without importing it, so config
// does not depend on portstrategy; cmd/swiftscan converts between the
// two.
type Order int

const (
	OrderSerial Order = iota
	OrderRandom
)

// Scan is the fully validated, immutable configuration for a single
// scan run. Every field corresponds to one row of the
// options table; defaults match the table exactly.
type Scan struct {
	Addresses        []string
	ExcludeAddresses []string
	Ports            []model.Port
	PortRanges       []model.PortRange
	ExcludePorts     []model.Port
	BatchSize        int
	Timeout          time.Duration
	Tries            int
	ScanOrder        Order
	UDP              bool
	Greppable        bool
	Accessible       bool
	Resolver         string

	explicitPortsRaw []int
	portRangesRaw    [][2]int
	excludePortsRaw  []int
}

// Option configures a Scan under construction.
type Option func(*Scan)

// WithPorts sets an explicit port list, taking precedence over
// WithPortRanges.
func WithPorts(ports []int) Option {
	return func(s *Scan) {
		s.explicitPortsRaw = append(s.explicitPortsRaw, ports...)
	}
}

// WithPortRanges sets the fallback port-range source.
func WithPortRanges(ranges [][2]int) Option {
	return func(s *Scan) {
		s.portRangesRaw = append(s.portRangesRaw, ranges...)
	}
}

// WithExcludePorts filters the named ports out after ordering.
func WithExcludePorts(ports []int) Option {
	return func(s *Scan) {
		s.excludePortsRaw = append(s.excludePortsRaw, ports...)
	}
}

// WithExcludeAddresses reserves addresses to be removed from the
// resolved IP list.
func WithExcludeAddresses(addrs []string) Option {
	return func(s *Scan) {
		s.ExcludeAddresses = append(s.ExcludeAddresses, addrs...)
	}
}

// WithBatchSize overrides the default in-flight probe cap.
func WithBatchSize(n int) Option {
	return func(s *Scan) { s.BatchSize = n }
}

// WithTimeout overrides the default per-attempt deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Scan) { s.Timeout = d }
}

// WithTries overrides the default attempts-per-socket count.
func WithTries(n int) Option {
	return func(s *Scan) { s.Tries = n }
}

// WithScanOrder overrides the default Serial port ordering.
func WithScanOrder(o Order) Option {
	return func(s *Scan) { s.ScanOrder = o }
}

// WithUDP switches the probe protocol from TCP to UDP.
func WithUDP(udp bool) Option {
	return func(s *Scan) { s.UDP = udp }
}

// WithGreppable suppresses per-hit output.
func WithGreppable(greppable bool) Option {
	return func(s *Scan) { s.Greppable = greppable }
}

// WithAccessible selects plain-text output.
func WithAccessible(accessible bool) Option {
	return func(s *Scan) { s.Accessible = accessible }
}

// WithResolver sets a comma-list of DNS IPs, or a path to such a
// file, overriding the system/Cloudflare fallback chain.
func WithResolver(resolver string) Option {
	return func(s *Scan) { s.Resolver = resolver }
}

// New builds and validates a Scan from the given addresses and
// options, applying defaults for anything left unset. Validation
// errors surface here, at construction, never later during the scan.
func New(addresses []string, opts ...Option) (*Scan, error) {
	s := &Scan{
		Addresses: append([]string(nil), addresses...),
		BatchSize: 4500,
		Timeout:   1500 * time.Millisecond,
		Tries:     1,
		ScanOrder: OrderSerial,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.resolveRawFields(); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// resolveRawFields converts the raw int-based option inputs collected
// during New into validated model types.
func (s *Scan) resolveRawFields() error {
	if s.Tries < 1 {
		s.Tries = 1
	}
	for _, p := range s.explicitPortsRaw {
		port, err := model.NewPort(p)
		if err != nil {
			return fmt.Errorf("config: invalid port %d: %w", p, err)
		}
		s.Ports = append(s.Ports, port)
	}
	for _, r := range s.portRangesRaw {
		pr, err := model.NewPortRange(r[0], r[1])
		if err != nil {
			return fmt.Errorf("config: invalid port range %v: %w", r, err)
		}
		s.PortRanges = append(s.PortRanges, pr)
	}
	for _, p := range s.excludePortsRaw {
		port, err := model.NewPort(p)
		if err != nil {
			return fmt.Errorf("config: invalid exclude_ports entry %d: %w", p, err)
		}
		s.ExcludePorts = append(s.ExcludePorts, port)
	}
	if len(s.Ports) == 0 && len(s.PortRanges) == 0 {
		full, err := model.NewPortRange(1, 65535)
		if err != nil {
			return err
		}
		s.PortRanges = []model.PortRange{full}
	}
	return nil
}

func (s *Scan) validate() error {
	if len(s.Addresses) == 0 {
		return fmt.Errorf("config: at least one address is required")
	}
	if s.BatchSize < 1 {
		return fmt.Errorf("config: batch_size must be >= 1, got %d", s.BatchSize)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", s.Timeout)
	}
	if s.Greppable && s.Accessible {
		return fmt.Errorf("config: greppable and accessible output modes are mutually exclusive")
	}
	return nil
}
