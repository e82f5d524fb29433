// Package validator provides a custom Validator type for accumulating
// field-level validation errors and returning them as a map of field name
// to messages.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// NonFieldErrors is the key used for failures that do not belong to a single field.
const NonFieldErrors = "non_field_errors"

// structValidate is shared by every Validator; playground.Validate caches
// struct metadata and is safe for concurrent use.
var structValidate = newStructValidate()

func newStructValidate() *playground.Validate {
	validate := playground.New()

	// Report failures under the JSON name the client sent, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string][]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string][]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// Has reports whether key already failed at least one check.
func (v *Validator) Has(key string) bool {
	_, exists := v.Errors[key]
	return exists
}

// AddError records message against key. Repeating the same message for the
// same key is a no-op.
func (v *Validator) AddError(key, message string) {
	if slices.Contains(v.Errors[key], message) {
		return
	}
	v.Errors[key] = append(v.Errors[key], message)
}

// Check adds an error for key with message only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(validator.NotBlank(title), "title", "This field may not be blank.")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// CheckStruct runs the `validate` struct tags declared on s and records every
// failure under the field's JSON name. Fields that already failed an earlier
// check are left alone.
func (v *Validator) CheckStruct(s any) {
	err := structValidate.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.AddError(NonFieldErrors, err.Error())
		return
	}

	for _, fe := range fieldErrs {
		if v.Has(fe.Field()) {
			continue
		}
		v.AddError(fe.Field(), tagMessage(fe))
	}
}

func tagMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	default:
		return "This field is invalid."
	}
}

// PermittedValue returns true if value is present in the permitted list.
func PermittedValue[T comparable](value T, permitted ...T) bool {
	return slices.Contains(permitted, value)
}

// NotBlank returns true if value contains something other than whitespace.
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}
