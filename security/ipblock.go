// Package security decides whether an API Gateway request may proceed based
// on the caller's source address.
package security

import (
	"fmt"
	"net/netip"

	"github.com/Keksclan/goRawrLambda/composer"
)

// Mode controls how the CIDR list is interpreted.
type Mode int

const (
	// AllowList only permits IPs that match at least one CIDR.
	AllowList Mode = iota
	// DenyList blocks IPs that match any CIDR and allows all others.
	DenyList
)

func (m Mode) String() string {
	switch m {
	case AllowList:
		return "allow"
	case DenyList:
		return "deny"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Config holds the configuration for an IPBlocker.
type Config struct {
	Mode  Mode
	CIDRs []string
	// TrustedProxies lists source addresses whose forwarding headers are
	// believed. Requests from anywhere else are judged by their source IP.
	TrustedProxies []string
	// HeaderPriority overrides the forwarding headers inspected for trusted
	// proxies. Defaults to X-Real-IP then X-Forwarded-For.
	HeaderPriority []string
}

// Decision is the outcome of evaluating one request.
type Decision struct {
	Allowed bool
	// Addr is the client address that was judged. It is invalid when no
	// address could be determined.
	Addr netip.Addr
}

// IPBlocker evaluates whether a client IP is allowed or denied based on the
// configured Mode and CIDR ranges. It is safe for concurrent use.
type IPBlocker struct {
	mode           Mode
	cidrs          []netip.Prefix
	trustedProxies []netip.Prefix
	headerPriority []string
}

// NewIPBlocker parses all CIDR and trusted-proxy strings up-front and returns
// an error if any entry is invalid.
func NewIPBlocker(cfg Config) (*IPBlocker, error) {
	cidrs, err := parsePrefixes(cfg.CIDRs)
	if err != nil {
		return nil, fmt.Errorf("ipblock: invalid CIDR: %w", err)
	}

	proxies, err := parsePrefixes(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("ipblock: invalid trusted proxy: %w", err)
	}

	hp := cfg.HeaderPriority
	if len(hp) == 0 {
		hp = defaultHeaderPriority
	}

	return &IPBlocker{
		mode:           cfg.Mode,
		cidrs:          cidrs,
		trustedProxies: proxies,
		headerPriority: hp,
	}, nil
}

// Evaluate judges req. A request whose client address cannot be determined
// is denied.
func (b *IPBlocker) Evaluate(req *composer.Request) Decision {
	addr, ok := resolveClientAddr(req, b.trustedProxies, b.headerPriority)
	if !ok {
		return Decision{}
	}

	matched := matchesAny(addr, b.cidrs)

	switch b.mode {
	case AllowList:
		return Decision{Allowed: matched, Addr: addr}
	case DenyList:
		return Decision{Allowed: !matched, Addr: addr}
	default:
		return Decision{Addr: addr}
	}
}

func matchesAny(addr netip.Addr, prefixes []netip.Prefix) bool {
	for _, p := range prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// parsePrefixes parses CIDR strings. A bare address becomes a single-host
// prefix.
func parsePrefixes(raw []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(raw))
	for _, s := range raw {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			addr, addrErr := netip.ParseAddr(s)
			if addrErr != nil {
				return nil, fmt.Errorf("%q: %w", s, err)
			}
			p = netip.PrefixFrom(addr, addr.BitLen())
		}
		out = append(out, p.Masked())
	}
	return out, nil
}
