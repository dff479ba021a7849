package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields under their form names so handlers can
// attach messages to inputs directly.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// NormalizeEmail is applied before every write and lookup: emails are
// matched case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// fieldMessages are shown next to the offending form field.
var fieldMessages = map[string]string{
	"required": "This field is required.",
	"email":    "Please enter a valid email address.",
	"url":      "Please enter a valid URL.",
	"max":      "This value is too long.",
}

// checkStruct runs the `validate` tags of v and converts the first failure
// into a *ValidationError.
func checkStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid("form", err.Error())
	}

	fe := fieldErrs[0]
	msg, ok := fieldMessages[fe.Tag()]
	if !ok {
		msg = "Invalid value."
	}
	return invalid(fe.Field(), msg)
}
