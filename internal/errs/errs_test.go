package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapfKeepsSentinel(t *testing.T) {
	sentinel := Validation("invalid_amount", "amount must be positive")

	err := Wrapf(sentinel, "got %s", "-5")
	assert.ErrorIs(t, err, sentinel)
	assert.True(t, IsValidation(err))
	assert.False(t, IsConflict(err))
	assert.Contains(t, err.Error(), "got -5")
}

func TestKindOfThroughWrapping(t *testing.T) {
	err := fmt.Errorf("release: %w", Integrity("balance_not_zero", ""))

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindIntegrity, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}
