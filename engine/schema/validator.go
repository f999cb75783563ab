package schema

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Validator is the contract shared by the package's validators.
type Validator interface {
	Validate(ctx context.Context) error
}

// StructValidator validates a struct value against its `validate` tags.
type StructValidator struct {
	validate *validator.Validate
	value    any
}

func NewStructValidator(value any) *StructValidator {
	return &StructValidator{
		validate: validator.New(),
		value:    value,
	}
}

func (v *StructValidator) Validate(_ context.Context) error {
	return v.validate.Struct(v.value)
}
