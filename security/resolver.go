package security

import (
	"net"
	"net/netip"
	"slices"
	"strings"

	"github.com/Keksclan/goRawrLambda/composer"
)

var defaultHeaderPriority = []string{"X-Real-IP", "X-Forwarded-For"}

// resolveClientAddr determines the effective client address of req.
//
// The source IP reported by API Gateway is used unless it belongs to a
// trusted proxy, in which case the forwarding headers are consulted in
// priority order.
func resolveClientAddr(req *composer.Request, trustedProxies []netip.Prefix, headerPriority []string) (netip.Addr, bool) {
	if req == nil {
		return netip.Addr{}, false
	}
	source, ok := parseHostAddr(req.RequestContext.Identity.SourceIP)
	if !ok {
		return netip.Addr{}, false
	}

	if matchesAny(source, trustedProxies) {
		if addr, found := addrFromHeaders(req, headerPriority, trustedProxies); found {
			return addr, true
		}
	}
	return source, true
}

// parseHostAddr accepts "ip" or "ip:port".
func parseHostAddr(s string) (netip.Addr, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return netip.Addr{}, false
	}
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return ip.Unmap(), true
}

// addrFromHeaders returns the client address named by the first priority
// header holding a valid IP. Proxies append to X-Forwarded-For, so the list is
// read right to left and the first entry outside trusted is the client. When
// every entry is trusted the left-most one is used.
func addrFromHeaders(req *composer.Request, priority []string, trusted []netip.Prefix) (netip.Addr, bool) {
	for _, key := range priority {
		var hops []netip.Addr
		for part := range strings.SplitSeq(req.Header(key), ",") {
			if ip, ok := parseHostAddr(part); ok {
				hops = append(hops, ip)
			}
		}
		if len(hops) == 0 {
			continue
		}
		for _, ip := range slices.Backward(hops) {
			if !matchesAny(ip, trusted) {
				return ip, true
			}
		}
		return hops[0], true
	}
	return netip.Addr{}, false
}
