package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_AddAndOrNil(t *testing.T) {
	v := NewValidationError()
	require.True(t, v.Empty())
	require.NoError(t, v.OrNil())

	v.Add("first_name", "first_name is required")
	v.Add("first_name", "first_name must not exceed 50 characters")
	v.Add("email", "email must be a valid email address")

	err := v.OrNil()
	require.Error(t, err)
	assert.Equal(t,
		"validation error: email: email must be a valid email address; first_name: first_name is required, first_name must not exceed 50 characters",
		err.Error())
}

func TestValidationError_As(t *testing.T) {
	v := NewValidationError()
	v.Add("country", "country is required")

	wrapped := fmt.Errorf("create address: %w", v.OrNil())

	var ve *ValidationError
	require.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, []string{"country is required"}, ve.Fields["country"])
}
