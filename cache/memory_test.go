package cache

import (
	"testing"
	"time"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/aws/aws-lambda-go/events"
)

func mustNewMemory(t *testing.T) *Memory {
	t.Helper()
	m, err := NewMemory(1 << 20)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func okResponse(body string) *composer.Response {
	return &composer.Response{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

func TestMemory_GetSet(t *testing.T) {
	m := mustNewMemory(t)
	ctx := t.Context()

	if _, ok, err := m.Get(ctx, "k1"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := m.Set(ctx, "k1", okResponse(`{"v":1}`), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, ok, err := m.Get(ctx, "k1")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.Body != `{"v":1}` || got.StatusCode != 200 {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := mustNewMemory(t)
	ctx := t.Context()

	orig := okResponse("x")
	_ = m.Set(ctx, "k", orig, 0)
	orig.Headers["Content-Type"] = "text/plain"

	got, _, _ := m.Get(ctx, "k")
	if got.Headers["Content-Type"] != "application/json" {
		t.Fatal("stored entry must not alias the caller's headers")
	}
	got.Headers["X-Cache"] = "HIT"

	again, _, _ := m.Get(ctx, "k")
	if _, ok := again.Headers["X-Cache"]; ok {
		t.Fatal("returned entry must not alias the stored headers")
	}
}

func TestMemory_TTLExpires(t *testing.T) {
	m := mustNewMemory(t)
	ctx := t.Context()

	if err := m.Set(ctx, "ttl", okResponse("temp"), 50*time.Millisecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "ttl"); !ok {
		t.Fatal("expected hit before TTL")
	}

	// Ristretto cleanup may need a bit of extra time.
	time.Sleep(200 * time.Millisecond)

	if _, ok, _ := m.Get(ctx, "ttl"); ok {
		t.Fatal("expected miss after TTL")
	}
}

func TestKey(t *testing.T) {
	a := composer.NewRequest(events.APIGatewayProxyRequest{
		HTTPMethod:            "get",
		Path:                  "/items",
		QueryStringParameters: map[string]string{"b": "2", "a": "1"},
	})
	b := composer.NewRequest(events.APIGatewayProxyRequest{
		HTTPMethod:                      "GET",
		Path:                            "/items",
		MultiValueQueryStringParameters: map[string][]string{"a": {"1"}, "b": {"2"}},
	})

	if Key(a) != Key(b) {
		t.Fatalf("keys differ: %q vs %q", Key(a), Key(b))
	}
	if want := "resp:GET /items?a=1&b=2"; Key(a) != want {
		t.Fatalf("got %q, want %q", Key(a), want)
	}

	plain := composer.NewRequest(events.APIGatewayProxyRequest{HTTPMethod: "GET", Path: "/items"})
	if Key(plain) != "resp:GET /items" {
		t.Fatalf("got %q", Key(plain))
	}
}
