package authz

import (
	"context"

	"github.com/dmitrijs2005/selleradmin/internal/server/models"
)

// Identity is the authenticated caller as carried by an access token.
type Identity struct {
	AccountNo int64
	Role      models.Role
}

// On builds the gate context for a request against target.
func (id Identity) On(target int64) Context {
	return Context{Caller: id.AccountNo, Role: id.Role, Target: target}
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom extracts the caller stored by WithIdentity.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
