// Package service provides the business logic layer for the catalog and
// user authentication.
package service

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// validate is a shared validator instance for request validation.
var validate = func() *validator.Validate {
	v := validator.New()
	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove any options (like omitempty, -)
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})
	return v
}()

// validationMessage renders the first validation failure as a user-facing
// message. Returns "" when err is not a validator error.
func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return ""
	}
	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			return field + " is required"
		case "min":
			return field + " must be at least " + e.Param() + " characters"
		case "max":
			return field + " exceeds maximum length of " + e.Param() + " characters"
		default:
			return field + " is invalid"
		}
	}
	return ""
}
