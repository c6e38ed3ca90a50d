package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator adapts go-playground/validator to the echo.Validator
// interface so handlers can call c.Validate on bound request structs.
type echoValidator struct {
	v *validator.Validate
}

func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate flattens field failures into one human-readable message. The
// error handler surfaces it verbatim as the envelope message.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}

	var b strings.Builder
	for i, fe := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(fieldError(fe))
	}
	return errors.New(b.String())
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
