// Package admin decides which callers may mutate the vessel directory and
// the port-state table.
//
// The rule is deliberately small: a single administrative identity is fixed at
// start-up and every mutation compares the caller resolved by the HTTP layer
// against it. Services depend on the Authorizer interface so tests can swap in
// a predicate.
package admin

import (
	"context"
	"crypto/subtle"

	"sulfurwatch/pkg/requestcontext"

	dErrors "sulfurwatch/pkg/domain-errors"
)

// Authorizer reports whether the caller carried by ctx may perform an
// administrative mutation. A non-nil error carries CodeUnauthorized.
type Authorizer interface {
	Authorize(ctx context.Context) error
}

// AuthorizerFunc adapts a caller predicate to Authorizer.
type AuthorizerFunc func(ctx context.Context) bool

func (f AuthorizerFunc) Authorize(ctx context.Context) error {
	if !f(ctx) {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the administrator")
	}
	return nil
}

// Gate admits exactly one identity.
type Gate struct {
	identity string
}

// NewGate returns a Gate for identity. An empty identity admits nobody.
func NewGate(identity string) *Gate {
	return &Gate{identity: identity}
}

// Identity returns the administrative identity fixed at start-up.
func (g *Gate) Identity() string {
	return g.identity
}

func (g *Gate) Authorize(ctx context.Context) error {
	actor := requestcontext.ActorID(ctx)
	if g.identity == "" || actor == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the administrator")
	}
	if subtle.ConstantTimeCompare([]byte(actor), []byte(g.identity)) != 1 {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the administrator")
	}
	return nil
}

// AsAdmin returns ctx acting as the gate's identity. Used by the seed loader,
// which runs before any request exists.
func (g *Gate) AsAdmin(ctx context.Context) context.Context {
	return requestcontext.WithActorID(ctx, g.identity)
}
