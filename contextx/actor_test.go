package contextx

import (
	"slices"
	"testing"

	"github.com/Keksclan/goRawrLambda/composer"
)

func TestWithActorRoundTrip(t *testing.T) {
	inv := composer.NewInvocation("r1")
	a := Actor{
		Subject:  "user-1",
		Tenant:   "tenant-a",
		ClientID: "client-42",
		Scopes:   []string{"read", "write"},
	}

	WithActor(inv, a)
	got, ok := ActorFrom(inv)
	if !ok {
		t.Fatal("expected actor on invocation")
	}
	if got.Subject != a.Subject {
		t.Fatalf("Subject: got %q, want %q", got.Subject, a.Subject)
	}
	if got.Tenant != a.Tenant {
		t.Fatalf("Tenant: got %q, want %q", got.Tenant, a.Tenant)
	}
	if !slices.Equal(got.Scopes, a.Scopes) {
		t.Fatalf("Scopes: got %v, want %v", got.Scopes, a.Scopes)
	}
	if !got.HasScope("write") || got.HasScope("admin") {
		t.Fatalf("HasScope mismatch for %v", got.Scopes)
	}
}

func TestActorFromMissing(t *testing.T) {
	_, ok := ActorFrom(composer.NewInvocation(""))
	if ok {
		t.Fatal("expected no actor on fresh invocation")
	}
}

func TestWithGroupRoundTrip(t *testing.T) {
	inv := composer.NewInvocation("")
	if got := GroupFrom(inv); got != "" {
		t.Fatalf("expected empty group, got %q", got)
	}
	WithGroup(inv, "admin")
	if got := GroupFrom(inv); got != "admin" {
		t.Fatalf("got %q, want %q", got, "admin")
	}
}
