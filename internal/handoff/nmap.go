// Package handoff implements the optional nmap hand-off: an external
// collaborator, not part of the scanning core. Once the engine has a
// set of open sockets, this package can hand them to nmap for
// service/version detection. It never runs during a core scan unless
// explicitly requested.
package handoff

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	nmap "github.com/Ullaakut/nmap/v3"

	"github.com/arclight-net/swiftscan/internal/model"
)

// Option configures an Nmap hand-off.
type Option func(*Nmap)

// WithServiceInfo enables nmap's service/version detection (-sV).
func WithServiceInfo() Option {
	return func(n *Nmap) { n.serviceInfo = true }
}

// Nmap hands a batch of open sockets discovered by the core engine
// off to the nmap binary for deeper inspection. It degrades to a
// no-op, logging a warning, when nmap isn't installed — the core
// scan's results are never blocked on it.
type Nmap struct {
	serviceInfo bool
}

// New builds an Nmap hand-off with the given options.
func New(opts ...Option) *Nmap {
	n := &Nmap{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Available reports whether the nmap binary can be invoked at all,
// so callers can skip the hand-off (and its warning) entirely when
// it was never requested.
func (n *Nmap) Available(ctx context.Context) bool {
	scanner, err := nmap.NewScanner(ctx, nmap.WithTargets("localhost"), nmap.WithListScan())
	if err != nil {
		return false
	}
	_, _, err = scanner.Run()
	return err == nil
}

// Result is one host's nmap findings for the ports swiftscan already
// found open.
type Result struct {
	IP       string
	Hostname string
	Services []Service
}

// Service is a single port's nmap service-detection result.
type Service struct {
	Port    int
	Name    string
	Product string
	Version string
}

// Run groups open sockets by IP and hands each host's port list to
// nmap, restricted to exactly the ports swiftscan already confirmed
// open — the core scanner never does banner grabbing or service
// fingerprinting itself, that's this package's entire reason to
// exist. A missing nmap binary degrades to a logged warning and a
// nil, non-error result.
func (n *Nmap) Run(ctx context.Context, open []model.Socket) ([]Result, error) {
	if len(open) == 0 {
		return nil, nil
	}
	if !n.Available(ctx) {
		log.Printf("handoff: nmap binary not found in PATH, skipping service detection")
		return nil, nil
	}

	byHost := groupByHost(open)

	var results []Result
	for _, host := range sortedHosts(byHost) {
		ports := byHost[host]
		opts := []nmap.Option{
			nmap.WithTargets(host),
			nmap.WithPorts(portsString(ports)),
			nmap.WithSkipHostDiscovery(),
		}
		if n.serviceInfo {
			opts = append(opts, nmap.WithServiceInfo())
		}

		scanner, err := nmap.NewScanner(ctx, opts...)
		if err != nil {
			return results, fmt.Errorf("handoff: building nmap scanner for %s: %w", host, err)
		}

		run, warnings, err := scanner.Run()
		if err != nil {
			log.Printf("handoff: nmap scan of %s failed: %v", host, err)
			continue
		}
		if warnings != nil && len(*warnings) > 0 {
			log.Printf("handoff: nmap warnings for %s: %v", host, *warnings)
		}

		results = append(results, resultsFromRun(host, run)...)
	}
	return results, nil
}

func groupByHost(open []model.Socket) map[string][]int {
	byHost := make(map[string][]int)
	for _, sock := range open {
		host := sock.IP.String()
		byHost[host] = append(byHost[host], int(sock.Port))
	}
	return byHost
}

func sortedHosts(byHost map[string][]int) []string {
	hosts := make([]string, 0, len(byHost))
	for h := range byHost {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}

func portsString(ports []int) string {
	sort.Ints(ports)
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

func resultsFromRun(host string, run *nmap.Run) []Result {
	if run == nil {
		return nil
	}
	var results []Result
	for _, h := range run.Hosts {
		if h.Status.State != "up" {
			continue
		}
		res := Result{IP: host}
		if len(h.Hostnames) > 0 {
			res.Hostname = h.Hostnames[0].Name
		}
		for _, p := range h.Ports {
			if p.State.State != "open" {
				continue
			}
			res.Services = append(res.Services, Service{
				Port:    int(p.ID),
				Name:    p.Service.Name,
				Product: p.Service.Product,
				Version: p.Service.Version,
			})
		}
		results = append(results, res)
	}
	return results
}
