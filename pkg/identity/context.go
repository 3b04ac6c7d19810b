package identity

import "context"

type contextKey string

const identityContextKey contextKey = "identity"

func NewContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok || id == nil || id.User.ID == 0 {
		return nil, false
	}
	return id, true
}
