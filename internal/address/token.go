package address

import "net"

// Kind classifies an address token, per the precedence order the
// resolver applies: CIDR, then literal IP, then hostname, then file
// path. The first that parses successfully wins.
type Kind int

const (
	KindInvalid Kind = iota
	KindCIDR
	KindIP
	KindHostname
	KindFile
)

// classify inspects a token and reports which kind it would be
// resolved as, without actually touching the filesystem or network.
// File-path candidacy can only be confirmed by attempting to open it,
// so classify treats anything that isn't a CIDR or literal IP as a
// hostname candidate; Resolve falls back to file handling if hostname
// resolution fails and the token opens as a file.
func classify(token string) Kind {
	if token == "" {
		return KindInvalid
	}
	if _, _, err := net.ParseCIDR(token); err == nil {
		return KindCIDR
	}
	if net.ParseIP(token) != nil {
		return KindIP
	}
	return KindHostname
}
