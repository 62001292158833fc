package auth

import (
	"context"
	"errors"
	"testing"
)

func TestIdentityFrom(t *testing.T) {
	if _, ok := IdentityFrom(context.Background()); ok {
		t.Fatalf("expected no identity on a bare context")
	}

	ctx := WithIdentity(context.Background(), "agent1", "t1", "agent")
	id, ok := IdentityFrom(ctx)
	if !ok || id != (Identity{UserID: "agent1", TenantID: "t1", Role: "agent"}) {
		t.Fatalf("unexpected identity %+v ok=%v", id, ok)
	}
	if tid, err := TenantID(ctx); err != nil || tid != "t1" {
		t.Fatalf("tenant: %q %v", tid, err)
	}
}

func TestAccessorsRejectEmptyFields(t *testing.T) {
	ctx := WithIdentity(context.Background(), "", "t1", "")
	if _, err := UserID(ctx); !errors.Is(err, ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
	if _, err := Role(ctx); !errors.Is(err, ErrNoRole) {
		t.Fatalf("expected ErrNoRole, got %v", err)
	}
	if _, err := TenantID(context.Background()); !errors.Is(err, ErrNoTenant) {
		t.Fatalf("expected ErrNoTenant, got %v", err)
	}
}
