package address

import (
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// lookupBackup resolves host against every server in cfg in turn,
// returning as soon as one produces at least one address. It queries
// both A and AAAA records and returns every address either returns.
func lookupBackup(host string, cfg ResolverConfig, timeout time.Duration) ([]net.IP, error) {
	fqdn := dns.Fqdn(host)
	net_ := "udp"
	if cfg.DoT {
		net_ = "tcp-tls"
	}
	client := &dns.Client{Net: net_, Timeout: timeout}

	var lastErr error
	for _, server := range cfg.Servers {
		var ips []net.IP
		for _, qtype := range [...]uint16{dns.TypeA, dns.TypeAAAA} {
			msg := new(dns.Msg)
			msg.SetQuestion(fqdn, qtype)
			msg.RecursionDesired = true

			reply, _, err := client.Exchange(msg, server)
			if err != nil {
				lastErr = err
				continue
			}
			for _, rr := range reply.Answer {
				switch rec := rr.(type) {
				case *dns.A:
					ips = append(ips, rec.A)
				case *dns.AAAA:
					ips = append(ips, rec.AAAA)
				}
			}
		}
		if len(ips) > 0 {
			return ips, nil
		}
	}
	if lastErr == nil {
		lastErr = errNoRecords(host)
	}
	return nil, lastErr
}

type noRecordsError string

func (e noRecordsError) Error() string {
	return "no A/AAAA records for " + string(e)
}

func errNoRecords(host string) error {
	return noRecordsError(strings.TrimSuffix(host, "."))
}
