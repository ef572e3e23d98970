package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("Parcel must be created via NewParcel")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type stop struct {
		code  string
		guard guard.ConstructorGuard
	}
	errStopNotConstructed := errors.New("stop must be created via newStop")

	newStop := func(code string) (stop, error) {
		if code == "" {
			return stop{}, errors.New("code is required")
		}
		return stop{code: code, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_marks_value_as_valid", func(t *testing.T) {
		s, err := newStop("P-1")

		require.NoError(t, err)
		require.NoError(t, s.guard.Validate(errStopNotConstructed))
	})

	t.Run("failed_constructor_returns_invalid_zero_value", func(t *testing.T) {
		s, err := newStop("")

		require.Error(t, err)
		assert.Equal(t, errStopNotConstructed, s.guard.Validate(errStopNotConstructed))
	})

	t.Run("copies_keep_the_mark", func(t *testing.T) {
		s, _ := newStop("P-2")
		cp := s

		require.NoError(t, cp.guard.Validate(errStopNotConstructed))
	})
}
