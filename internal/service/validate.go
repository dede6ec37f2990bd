package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports field-level problems with caller input. Field names
// use the JSON names clients send.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func invalidField(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check validates s and converts validator errors into a *ValidationError.
func (s *KitchenService) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("failed to validate input: %w", err)
	}
	return &ValidationError{Fields: FormatValidationError(ve)}
}

// FormatValidationError maps each failing field to a short message.
func FormatValidationError(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		field := fieldPath(e.Namespace())
		switch e.Tag() {
		case "required":
			out[field] = "This field is required"
		case "min":
			out[field] = fmt.Sprintf("Must have at least %s entries", e.Param())
		case "gte":
			out[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			out[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "oneof":
			out[field] = "Must be one of: " + e.Param()
		case "datetime":
			out[field] = "Must be a date in YYYY-MM-DD format"
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}

// fieldPath drops the top-level struct name from a validator namespace, so
// "Recipe.ingredients[0].name" becomes "ingredients[0].name".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
