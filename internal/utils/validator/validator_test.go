package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
)

type signupForm struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
}

type checkoutForm struct {
	Items []checkoutItem `json:"items" validate:"required,min=1,dive"`
}

type checkoutItem struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

func TestValidateCollectsAllFailuresWithJSONNames(t *testing.T) {
	err := Validate(&signupForm{Email: "not-an-email", Username: "ab"})
	require.Error(t, err)

	ve, ok := domainErrors.AsValidation(err)
	require.True(t, ok)
	require.Len(t, ve.Fields, 2)

	byField := map[string]string{}
	for _, f := range ve.Fields {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "Must be a valid email address", byField["email"])
	assert.Equal(t, "Must be at least 3 characters", byField["username"])
}

func TestValidatePassesOnValidInput(t *testing.T) {
	assert.NoError(t, Validate(&signupForm{Email: "jean@example.com", Username: "jean_bio"}))
}

func TestValidateRequiredBeatsFormatChecks(t *testing.T) {
	err := Validate(&signupForm{})
	require.Error(t, err)

	ve, ok := domainErrors.AsValidation(err)
	require.True(t, ok)
	// One failure per field: required short-circuits the format tags.
	require.Len(t, ve.Fields, 2)
	for _, f := range ve.Fields {
		assert.Equal(t, "This field is required", f.Message)
	}
}

func TestValidateNestedSlicePaths(t *testing.T) {
	err := Validate(&checkoutForm{
		Items: []checkoutItem{{ProductID: "not-a-uuid", Quantity: 0}},
	})
	require.Error(t, err)

	ve, ok := domainErrors.AsValidation(err)
	require.True(t, ok)

	fields := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"items[0].productId", "items[0].quantity"}, fields)
}

func TestValidateEmptySlice(t *testing.T) {
	err := Validate(&checkoutForm{})
	require.Error(t, err)

	ve, ok := domainErrors.AsValidation(err)
	require.True(t, ok)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "items", ve.Fields[0].Field)
}
