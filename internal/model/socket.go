// Package model holds the plain data types shared by the resolver, the
// port strategies, and the probe engine: addresses, ports, and the
// socket addresses built from their cartesian product.
package model

import (
	"fmt"
	"net"
)

// Port is a TCP/UDP port number. Zero is never a valid Port; callers
// construct one with NewPort, which enforces the [1, 65535] range.
type Port uint16

// NewPort validates p is in [1, 65535] and returns it as a Port.
func NewPort(p int) (Port, error) {
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("port %d out of range [1, 65535]", p)
	}
	return Port(p), nil
}

// PortRange is an inclusive range of ports, Start <= End.
type PortRange struct {
	Start Port
	End   Port
}

// NewPortRange validates start <= end and both are valid ports.
func NewPortRange(start, end int) (PortRange, error) {
	s, err := NewPort(start)
	if err != nil {
		return PortRange{}, fmt.Errorf("range start: %w", err)
	}
	e, err := NewPort(end)
	if err != nil {
		return PortRange{}, fmt.Errorf("range end: %w", err)
	}
	if s > e {
		return PortRange{}, fmt.Errorf("range start %d is greater than end %d", s, e)
	}
	return PortRange{Start: s, End: e}, nil
}

// Len returns the number of ports covered by the range.
func (r PortRange) Len() int {
	return int(r.End) - int(r.Start) + 1
}

// Socket is a resolved (IP, port) pair ready to be probed.
type Socket struct {
	IP   net.IP
	Port Port
}

// String renders the socket as "ip:port", bracketing IPv6 addresses.
func (s Socket) String() string {
	if s.IP.To4() == nil {
		return fmt.Sprintf("[%s]:%d", s.IP, s.Port)
	}
	return fmt.Sprintf("%s:%d", s.IP, s.Port)
}

// Outcome is the result of probing a single Socket. Open sockets are
// returned to the caller individually; Closed outcomes are never
// surfaced per-probe — only their Reason is folded into the engine's
// deduplicated error set (see engine.ErrorSet).
type Outcome struct {
	Socket Socket
	Open   bool
	Reason string
}
