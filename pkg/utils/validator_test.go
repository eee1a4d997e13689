package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=3"`
	Level string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

func TestValidateStructValid(t *testing.T) {
	errs := ValidateStruct(sampleRequest{
		Email: "ada@example.com",
		Name:  "Ada",
		Level: "beginner",
	})
	assert.Empty(t, errs)
}

func TestValidateStructMissingFields(t *testing.T) {
	errs := ValidateStruct(sampleRequest{})

	assert.Contains(t, errs, "Email")
	assert.Contains(t, errs, "Name")
	assert.NotContains(t, errs, "Level")
}

func TestValidateStructBadValues(t *testing.T) {
	errs := ValidateStruct(sampleRequest{
		Email: "not-an-email",
		Name:  "Ad",
		Level: "expert",
	})

	assert.Len(t, errs, 3)
}

func TestFormatValidationErrors(t *testing.T) {
	formatted := FormatValidationErrors(map[string]string{
		"Email": "Email is not valid",
	})
	assert.Contains(t, formatted, "Email is not valid")
}
