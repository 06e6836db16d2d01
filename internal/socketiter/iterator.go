// Package socketiter cartesian-products a resolved IP list with a port
// strategy, yielding socket addresses port-outer / IP-inner so every
// host is probed on the current port before any host advances to the
// next one.
package socketiter

import (
	"net"

	"github.com/arclight-net/swiftscan/internal/model"
	"github.com/arclight-net/swiftscan/internal/portstrategy"
)

// Iterator yields model.Socket values on demand; the full host×port
// product is never materialized.
type Iterator struct {
	ips      []net.IP
	ports    portstrategy.Strategy
	exclude  map[model.Port]bool
	curPort  model.Port
	haveCur  bool
	ipIndex  int
}

// New builds an Iterator. exclude holds ports to drop after ordering.
func New(ips []net.IP, ports portstrategy.Strategy, exclude []int) *Iterator {
	ex := make(map[model.Port]bool, len(exclude))
	for _, p := range exclude {
		if p >= 1 && p <= 65535 {
			ex[model.Port(p)] = true
		}
	}
	return &Iterator{ips: ips, ports: ports, exclude: ex}
}

// Next returns the next socket in port-outer / IP-inner order, or
// ok=false once every (IP, port) pair has been emitted.
func (it *Iterator) Next() (model.Socket, bool) {
	if len(it.ips) == 0 {
		return model.Socket{}, false
	}

	for {
		if !it.haveCur {
			for {
				p, ok := it.ports.Next()
				if !ok {
					return model.Socket{}, false
				}
				if it.exclude[p] {
					continue
				}
				it.curPort = p
				it.haveCur = true
				it.ipIndex = 0
				break
			}
		}

		if it.ipIndex < len(it.ips) {
			sock := model.Socket{IP: it.ips[it.ipIndex], Port: it.curPort}
			it.ipIndex++
			return sock, true
		}

		it.haveCur = false
	}
}
