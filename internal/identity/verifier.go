package identity

import (
	"context"
	"errors"
)

// Identity is the verified subject extracted from a bearer token.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Verifier checks an inbound bearer token and resolves it to a stable identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

var ErrInvalidToken = errors.New("invalid identity token")
