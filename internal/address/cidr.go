package address

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"net"
)

// expandCIDR enumerates every host address covered by a CIDR block,
// including the network and broadcast addresses for IPv4 subnets —
// the scanner is not IP-class-aware. This is a deliberately preserved
// quirk, not a bug to fix.
func expandCIDR(cidr string) ([]net.IP, error) {
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("parse CIDR %q: %w", cidr, err)
	}

	if ip4 := ipNet.IP.To4(); ip4 != nil {
		return expandCIDR4(ip4, ipNet.Mask)
	}
	return expandCIDR6(ipNet.IP.To16(), ipNet.Mask)
}

func expandCIDR4(ip net.IP, mask net.IPMask) ([]net.IP, error) {
	networkInt := binary.BigEndian.Uint32(ip)
	maskInt := binary.BigEndian.Uint32(mask)

	first := networkInt & maskInt
	last := first | ^maskInt

	out := make([]net.IP, 0, int(last-first)+1)
	for i := first; ; i++ {
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, i)
		out = append(out, net.IP(b))
		if i == last {
			break
		}
	}
	return out, nil
}

// expandCIDR6 walks an IPv6 prefix using big.Int arithmetic since the
// address space doesn't fit a machine word. Very large prefixes (e.g.
// a bare /64) are rejected rather than silently truncated — the caller
// should narrow the prefix or supply literal addresses instead.
func expandCIDR6(ip net.IP, mask net.IPMask) ([]net.IP, error) {
	const maxIPv6Hosts = 1 << 20

	ones, bits := mask.Size()
	hostBits := bits - ones
	if hostBits > 20 {
		return nil, fmt.Errorf("IPv6 prefix too large to enumerate (/%d, max host bits 20)", ones)
	}

	base := new(big.Int).SetBytes(ip)
	count := new(big.Int).Lsh(big.NewInt(1), uint(hostBits))
	if count.Int64() > maxIPv6Hosts {
		return nil, fmt.Errorf("IPv6 prefix too large to enumerate (/%d)", ones)
	}

	out := make([]net.IP, 0, count.Int64())
	cur := new(big.Int).Set(base)
	one := big.NewInt(1)
	n := count.Int64()
	for i := int64(0); i < n; i++ {
		b := make([]byte, 16)
		cur.FillBytes(b)
		out = append(out, net.IP(b))
		cur.Add(cur, one)
	}
	return out, nil
}
