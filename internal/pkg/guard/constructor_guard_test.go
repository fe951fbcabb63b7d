package guard_test

import (
	"errors"
	"testing"

	"ordering/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("Cart must be created via NewCart")

	t.Run("constructed guard passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero value falls back to default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type sku struct {
		code  string
		guard guard.ConstructorGuard
	}
	errSKUNotConstructed := errors.New("sku must be created via newSKU")

	newSKU := func(code string) (sku, error) {
		if code == "" {
			return sku{}, errors.New("code is required")
		}
		return sku{code: code, guard: guard.NewConstructorGuard()}, nil
	}

	valid, err := newSKU("P-1")
	require.NoError(t, err)
	require.NoError(t, valid.guard.Validate(errSKUNotConstructed))

	invalid, err := newSKU("")
	require.Error(t, err)
	assert.Equal(t, errSKUNotConstructed, invalid.guard.Validate(errSKUNotConstructed))
}
