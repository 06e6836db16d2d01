package config

import "github.com/arclight-net/swiftscan/internal/address"

// ResolverConfig builds the backup-resolver policy from the Scan's
// Resolver field, so cmd/swiftscan never has to know about the
// address package's precedence rules directly.
func (s *Scan) ResolverConfig() address.ResolverConfig {
	return address.BuildResolverConfig(s.Resolver)
}
