package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	type input struct {
		Address string `validate:"required"`
		Limit   int    `validate:"gte=1,lte=10"`
	}

	t.Run("valid struct", func(t *testing.T) {
		err := Validate(input{Address: "0xabc", Limit: 5})
		require.NoError(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := Validate(input{Limit: 5})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'Address'")
	})

	t.Run("multiple violations are joined", func(t *testing.T) {
		err := Validate(input{Limit: 99})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'Address'")
		assert.Contains(t, err.Error(), "'Limit'")
	})
}

func TestRegisterValidation(t *testing.T) {
	require.NoError(t, RegisterValidation("hexish", func(value string) bool {
		return len(value) > 2 && value[0] == '0' && value[1] == 'x'
	}))

	type input struct {
		Address string `validate:"hexish"`
	}

	t.Run("predicate accepts", func(t *testing.T) {
		require.NoError(t, Validate(input{Address: "0xabc"}))
	})

	t.Run("predicate rejects", func(t *testing.T) {
		err := Validate(input{Address: "abc"})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'hexish'")
	})

	t.Run("non-string field fails the tag", func(t *testing.T) {
		type numeric struct {
			Count int `validate:"hexish"`
		}

		err := Validate(numeric{Count: 7})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}
