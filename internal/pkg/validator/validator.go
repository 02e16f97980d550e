// Package validator wraps the go-playground/validator library to provide
// declarative struct validation with standardized error formatting. Fields
// are validated via tags (e.g. `validate:"required"`), and violations are
// reported as a single joined error rooted at ErrValidationFailed.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the root of every error chain returned when
// validation fails, allowing callers to detect failures with errors.Is.
var ErrValidationFailed = errors.New("struct validation failed")

// validator is the singleton instance, initialized on package load.
var validator *gvalidator.Validate

// errStringFormat describes a single field violation.
//
// Example: "'Address': value '0x' does not meet the requirements for the 'required' validation"
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

func init() {
	validator = gvalidator.New(gvalidator.WithRequiredStructEnabled())
}

// RegisterValidation binds a custom tag to a predicate over the field's
// string value. Non-string fields fail the tag. Packages register their
// tags from init so they exist before the first Validate call.
func RegisterValidation(tag string, fn func(value string) bool) error {
	return validator.RegisterValidation(tag, func(fl gvalidator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		return fn(value)
	})
}

// formatError turns raw validator errors into a joined error chain rooted
// at ErrValidationFailed, with one formatted message per failed field.
// Non-validation errors are returned unchanged.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, validationErr := range validationErrors {
		err := fmt.Errorf(errStringFormat,
			validationErr.Field(),
			validationErr.Value(),
			validationErr.Tag(),
		)

		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks whether the given struct satisfies its validation tags.
// It returns nil when all fields pass.
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
