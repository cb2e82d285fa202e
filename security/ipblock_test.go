package security

import (
	"testing"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/aws/aws-lambda-go/events"
)

func request(sourceIP string, headers map[string]string) *composer.Request {
	ev := events.APIGatewayProxyRequest{Headers: headers}
	ev.RequestContext.Identity.SourceIP = sourceIP
	return composer.NewRequest(ev)
}

func mustBlocker(t *testing.T, cfg Config) *IPBlocker {
	t.Helper()
	b, err := NewIPBlocker(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDenyList_BlocksMatchingIP(t *testing.T) {
	b := mustBlocker(t, Config{Mode: DenyList, CIDRs: []string{"10.0.0.0/8"}})

	if b.Evaluate(request("10.1.2.3", nil)).Allowed {
		t.Fatal("expected 10.1.2.3 to be blocked by deny list")
	}
}

func TestDenyList_AllowsNonMatchingIP(t *testing.T) {
	b := mustBlocker(t, Config{Mode: DenyList, CIDRs: []string{"10.0.0.0/8"}})

	d := b.Evaluate(request("192.168.1.1", nil))
	if !d.Allowed {
		t.Fatal("expected 192.168.1.1 to be allowed by deny list")
	}
	if d.Addr.String() != "192.168.1.1" {
		t.Fatalf("got addr %v", d.Addr)
	}
}

func TestAllowList_AllowsMatchingIP(t *testing.T) {
	b := mustBlocker(t, Config{Mode: AllowList, CIDRs: []string{"192.168.0.0/16"}})

	if !b.Evaluate(request("192.168.1.50", nil)).Allowed {
		t.Fatal("expected 192.168.1.50 to be allowed by allow list")
	}
}

func TestAllowList_BlocksNonMatchingIP(t *testing.T) {
	b := mustBlocker(t, Config{Mode: AllowList, CIDRs: []string{"192.168.0.0/16"}})

	if b.Evaluate(request("10.0.0.1", nil)).Allowed {
		t.Fatal("expected 10.0.0.1 to be blocked by allow list")
	}
}

func TestSourceIPWithPort(t *testing.T) {
	b := mustBlocker(t, Config{Mode: DenyList, CIDRs: []string{"10.0.0.0/8"}})

	if b.Evaluate(request("10.0.0.9:443", nil)).Allowed {
		t.Fatal("expected host:port source to be parsed and blocked")
	}
}

func TestTrustedProxy_UsesHeader(t *testing.T) {
	b := mustBlocker(t, Config{
		Mode:           DenyList,
		CIDRs:          []string{"203.0.113.0/24"},
		TrustedProxies: []string{"10.0.0.1"},
	})

	req := request("10.0.0.1", map[string]string{"x-real-ip": "203.0.113.42"})
	if b.Evaluate(req).Allowed {
		t.Fatal("expected 203.0.113.42 (from header via trusted proxy) to be denied")
	}
}

func TestUntrustedProxy_IgnoresHeader(t *testing.T) {
	b := mustBlocker(t, Config{
		Mode:           DenyList,
		CIDRs:          []string{"203.0.113.0/24"},
		TrustedProxies: []string{"10.0.0.1"},
	})

	req := request("172.16.0.5", map[string]string{"X-Real-IP": "203.0.113.42"})
	if !b.Evaluate(req).Allowed {
		t.Fatal("expected 172.16.0.5 to be allowed, header must be ignored for untrusted source")
	}
}

func TestTrustedProxy_FallsBackToSourceWhenHeaderMissing(t *testing.T) {
	b := mustBlocker(t, Config{
		Mode:           DenyList,
		CIDRs:          []string{"203.0.113.0/24"},
		TrustedProxies: []string{"10.0.0.1"},
	})

	if !b.Evaluate(request("10.0.0.1", nil)).Allowed {
		t.Fatal("expected trusted proxy addr to be allowed when no header is set")
	}
}

func TestXForwardedFor_MultipleIPs(t *testing.T) {
	b := mustBlocker(t, Config{
		Mode:           DenyList,
		CIDRs:          []string{"198.51.100.0/24"},
		TrustedProxies: []string{"10.0.0.0/8"},
	})

	req := request("10.0.0.1", map[string]string{"X-Forwarded-For": "198.51.100.5, 10.0.0.2"})
	if b.Evaluate(req).Allowed {
		t.Fatal("expected 198.51.100.5, the nearest untrusted hop, to be denied")
	}
}

func TestXForwardedFor_IgnoresClientSuppliedPrefix(t *testing.T) {
	b := mustBlocker(t, Config{
		Mode:           DenyList,
		CIDRs:          []string{"198.51.100.0/24"},
		TrustedProxies: []string{"10.0.0.0/8"},
	})

	// The client sent "192.0.2.1"; the proxy appended the real peer.
	req := request("10.0.0.1", map[string]string{"X-Forwarded-For": "192.0.2.1, 198.51.100.5, 10.0.0.2"})
	d := b.Evaluate(req)
	if d.Allowed {
		t.Fatal("a forged left-most entry must not hide the real client")
	}
	if d.Addr.String() != "198.51.100.5" {
		t.Fatalf("resolved %s, want 198.51.100.5", d.Addr)
	}
}

func TestXForwardedFor_AllTrustedUsesLeftmost(t *testing.T) {
	b := mustBlocker(t, Config{
		Mode:           DenyList,
		CIDRs:          []string{"10.9.0.0/16"},
		TrustedProxies: []string{"10.0.0.0/8"},
	})

	req := request("10.0.0.1", map[string]string{"X-Forwarded-For": "10.9.0.7, 10.0.0.2"})
	if d := b.Evaluate(req); d.Allowed || d.Addr.String() != "10.9.0.7" {
		t.Fatalf("got %+v, want 10.9.0.7 denied", d)
	}
}

func TestMultiValueForwardedHeader(t *testing.T) {
	b := mustBlocker(t, Config{
		Mode:           AllowList,
		CIDRs:          []string{"198.51.100.0/24"},
		TrustedProxies: []string{"10.0.0.0/8"},
	})

	ev := events.APIGatewayProxyRequest{
		MultiValueHeaders: map[string][]string{"x-forwarded-for": {"198.51.100.7"}},
	}
	ev.RequestContext.Identity.SourceIP = "10.1.1.1"
	if !b.Evaluate(composer.NewRequest(ev)).Allowed {
		t.Fatal("expected multi-value forwarding header to be honoured")
	}
}

func TestMissingSourceIP_DeniesRequest(t *testing.T) {
	b := mustBlocker(t, Config{Mode: AllowList, CIDRs: []string{"0.0.0.0/0"}})

	if b.Evaluate(request("", nil)).Allowed {
		t.Fatal("expected request without a source IP to be denied")
	}
	if b.Evaluate(nil).Allowed {
		t.Fatal("expected nil request to be denied")
	}
}

func TestIPv6(t *testing.T) {
	b := mustBlocker(t, Config{Mode: DenyList, CIDRs: []string{"2001:db8::/32"}})

	if b.Evaluate(request("2001:db8::1", nil)).Allowed {
		t.Fatal("expected 2001:db8::1 to be denied")
	}
	if !b.Evaluate(request("2001:4860::1", nil)).Allowed {
		t.Fatal("expected 2001:4860::1 to be allowed")
	}
}

func TestInvalidCIDR_ReturnsError(t *testing.T) {
	if _, err := NewIPBlocker(Config{Mode: DenyList, CIDRs: []string{"not-a-cidr"}}); err == nil {
		t.Fatal("expected error for invalid CIDR")
	}
	if _, err := NewIPBlocker(Config{Mode: DenyList, TrustedProxies: []string{"bogus"}}); err == nil {
		t.Fatal("expected error for invalid trusted proxy")
	}
}

func TestModeString(t *testing.T) {
	if AllowList.String() != "allow" || DenyList.String() != "deny" {
		t.Fatalf("unexpected mode names %q %q", AllowList, DenyList)
	}
}

func TestCustomHeaderPriority(t *testing.T) {
	b := mustBlocker(t, Config{
		Mode:           AllowList,
		CIDRs:          []string{"172.16.0.0/12"},
		TrustedProxies: []string{"10.0.0.1"},
		HeaderPriority: []string{"x-custom-ip"},
	})

	req := request("10.0.0.1", map[string]string{
		"X-Custom-IP": "172.16.5.5",
		"X-Real-IP":   "8.8.8.8",
	})
	if !b.Evaluate(req).Allowed {
		t.Fatal("expected 172.16.5.5 from custom header to be allowed")
	}
}
