// Package actor carries the authenticated front desk user on the request context.
package actor

import (
	"context"
	"strings"
)

type key string

var actorKey key = "actor"

const (
	TypeUser   = "user"
	TypeSystem = "system"
)

type Actor struct {
	Type string
	ID   string
}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// FromContext returns the actor on ctx, falling back to the system actor.
func FromContext(ctx context.Context) Actor {
	if ctx != nil {
		if a, ok := ctx.Value(actorKey).(Actor); ok && strings.TrimSpace(a.ID) != "" {
			return a
		}
	}
	return Actor{Type: TypeSystem, ID: "system"}
}
