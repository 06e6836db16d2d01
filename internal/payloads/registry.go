// Package payloads holds the immutable UDP probe payload registry: a
// mapping from a set of ports to the bytes sent to elicit a response
// from a service on one of those ports.
package payloads

import "github.com/arclight-net/swiftscan/internal/model"

// Entry associates a payload with the ports it should be sent to.
type Entry struct {
	Ports   []model.Port
	Payload []byte
}

// Registry is an immutable, read-only-after-construction map from a
// port-set to a payload. Lookup is a membership test; if more than one
// entry matches a port, any one may be returned; if none matches, the
// empty payload is used.
type Registry struct {
	byPort map[model.Port][]byte
}

// New builds a Registry from a list of entries. Later entries in the
// slice take precedence for ports claimed by more than one entry.
func New(entries []Entry) *Registry {
	byPort := make(map[model.Port][]byte)
	for _, e := range entries {
		for _, p := range e.Ports {
			byPort[p] = e.Payload
		}
	}
	return &Registry{byPort: byPort}
}

// Payload returns the payload configured for port, or nil if none
// matches — the engine treats a nil payload as empty.
func (r *Registry) Payload(port model.Port) []byte {
	return r.byPort[port]
}

// Default returns the built-in registry used when no external payload
// file is configured. It covers a handful of common UDP services that
// respond to a well-known probe; these mirror common
// payload table without attempting to be exhaustive (DNS, NTP, SNMP,
// NetBIOS, and SSDP/UPnP discovery).
func Default() *Registry {
	return New([]Entry{
		{
			Ports:   []model.Port{53},
			Payload: dnsStatusQuery,
		},
		{
			Ports:   []model.Port{123},
			Payload: ntpClientRequest,
		},
		{
			Ports:   []model.Port{161},
			Payload: snmpGetRequest,
		},
		{
			Ports:   []model.Port{137},
			Payload: netbiosNameQuery,
		},
		{
			Ports:   []model.Port{1900},
			Payload: ssdpDiscover,
		},
	})
}

var (
	// dnsStatusQuery is a bare 12-byte DNS header with OPCODE=STATUS
	// and no question section, enough to make most resolvers reply.
	dnsStatusQuery = []byte{
		0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	// ntpClientRequest is a standard SNTP client mode-3 request.
	ntpClientRequest = []byte{
		0x1b, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	// snmpGetRequest is an SNMPv1 GetRequest for sysDescr.0 using the
	// "public" community string.
	snmpGetRequest = []byte{
		0x30, 0x26, 0x02, 0x01, 0x00, 0x04, 0x06, 'p', 'u', 'b', 'l', 'i', 'c',
		0xa0, 0x19, 0x02, 0x01, 0x01, 0x02, 0x01, 0x00, 0x02, 0x01, 0x00,
		0x30, 0x0e, 0x30, 0x0c, 0x06, 0x08, 0x2b, 0x06, 0x01, 0x02, 0x01,
		0x01, 0x01, 0x00, 0x05, 0x00,
	}
	// netbiosNameQuery is a NetBIOS name service status query.
	netbiosNameQuery = []byte{
		0x82, 0x28, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x20, 0x43, 0x4b, 0x41,
		0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41,
		0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41,
		0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41, 0x41,
		0x41, 0x41, 0x41, 0x41, 0x41, 0x00, 0x00, 0x21,
		0x00, 0x01,
	}
	// ssdpDiscover is an SSDP M-SEARCH multicast-style discovery
	// request sent unicast to the probed host.
	ssdpDiscover = []byte("M-SEARCH * HTTP/1.1\r\nHOST: 239.255.255.250:1900\r\nMAN: \"ssdp:discover\"\r\nMX: 1\r\nST: ssdp:all\r\n\r\n")
)
