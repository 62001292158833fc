package auth

import (
	"context"
	"errors"
)

// Identity is who a request acts for: the user placing or configuring calls,
// the tenant owning the switch and directory, and the RBAC role.
type Identity struct {
	UserID   string
	TenantID string
	Role     string
}

var (
	ErrNoUser   = errors.New("user_id not in context")
	ErrNoTenant = errors.New("tenant_id not in context")
	ErrNoRole   = errors.New("role not in context")
)

type identityKey struct{}

func WithIdentity(ctx context.Context, userID, tenantID, role string) context.Context {
	return context.WithValue(ctx, identityKey{}, Identity{UserID: userID, TenantID: tenantID, Role: role})
}

// IdentityFrom returns the identity set by RequireAccessToken. ok is false
// when the request was never authenticated.
func IdentityFrom(ctx context.Context) (id Identity, ok bool) {
	id, ok = ctx.Value(identityKey{}).(Identity)
	return id, ok
}

func UserID(ctx context.Context) (string, error) {
	if id, _ := IdentityFrom(ctx); id.UserID != "" {
		return id.UserID, nil
	}
	return "", ErrNoUser
}

// TenantID scopes every switch, directory and attempt lookup.
func TenantID(ctx context.Context) (string, error) {
	if id, _ := IdentityFrom(ctx); id.TenantID != "" {
		return id.TenantID, nil
	}
	return "", ErrNoTenant
}

func Role(ctx context.Context) (string, error) {
	if id, _ := IdentityFrom(ctx); id.Role != "" {
		return id.Role, nil
	}
	return "", ErrNoRole
}
