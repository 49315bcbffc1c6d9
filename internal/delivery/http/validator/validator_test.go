package validator

import (
	"testing"

	domainerrors "todoapp/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Color    string `json:"color" validate:"omitempty,rrggbb"`
	Priority string `json:"priority" validate:"omitempty,priority"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sample{Email: "ann@x.io", Color: "#A1B2C3", Priority: "HIGH"}))
	assert.NoError(t, v.Validate(&sample{Email: "ann@x.io"}))

	err := v.Validate(&sample{Email: "nope", Color: "#FFF", Priority: "urgent"})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "Email must be a valid email address")
	assert.Contains(t, appErr.Details(), "Color must be a #RRGGBB hex color")
	assert.Contains(t, appErr.Details(), "Priority must be one of low, medium, high")

	err = v.Validate(&sample{})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Email is required", appErr.Details())
}
