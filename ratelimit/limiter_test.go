package ratelimit_test

import (
	"testing"

	"github.com/Keksclan/goRawrLambda/ratelimit"
)

func TestLimiter_AllowUnderLimit(t *testing.T) {
	// burst=5 means the first 5 calls must succeed.
	l := ratelimit.NewLimiter(1, 5)
	for i := range 5 {
		if !l.Allow() {
			t.Fatalf("expected Allow() == true for request %d", i)
		}
	}
}

func TestLimiter_BlocksWhenBurstExhausted(t *testing.T) {
	// burst=2, very low rps so tokens don't refill during the test.
	l := ratelimit.NewLimiter(0.001, 2)

	// Exhaust the burst.
	l.Allow()
	l.Allow()

	if l.Allow() {
		t.Fatal("expected Allow() == false after burst exhausted")
	}
}

func TestKeyed_IsolatesKeys(t *testing.T) {
	k := ratelimit.NewKeyed(0.001, 1)

	if !k.Allow("a") {
		t.Fatal("first request for a must pass")
	}
	if k.Allow("a") {
		t.Fatal("second request for a must be limited")
	}
	if !k.Allow("b") {
		t.Fatal("b has its own bucket and must pass")
	}
	if k.Get("a") != k.Get("a") {
		t.Fatal("Get must return the same limiter for a key")
	}
}
