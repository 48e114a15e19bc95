package actor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, Actor{Type: TypeSystem, ID: "system"}, FromContext(context.Background()))

	ctx := WithActor(context.Background(), Actor{Type: TypeUser, ID: "42"})
	assert.Equal(t, "42", FromContext(ctx).ID)

	blank := WithActor(context.Background(), Actor{Type: TypeUser, ID: "  "})
	assert.Equal(t, TypeSystem, FromContext(blank).Type)
}
