package service

import (
	"context"
	"errors"
	"html"
	"reflect"
	"strings"

	"github.com/folio/backend/pkg/auth"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

var (
	validate    = newValidator()
	plainPolicy = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so handlers can echo them unchanged.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags and converts failures to a ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = reasonFor(fe.Tag())
	}
	return &ValidationError{Fields: fields}
}

func reasonFor(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "max":
		return "too_long"
	case "min", "gte", "lte":
		return "out_of_range"
	default:
		return "invalid"
	}
}

// maxDecodePasses bounds how many layers of entity encoding are unwrapped.
const maxDecodePasses = 8

// plainText strips markup and surrounding whitespace from untrusted input.
// Decoding entities can reveal new markup (&lt;b&gt;), so sanitize and
// decode repeat until the text is stable.
func plainText(s string) string {
	for range maxDecodePasses {
		next := html.UnescapeString(plainPolicy.Sanitize(s))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// still unstable: keep the escaped form, which cannot render as markup
	return strings.TrimSpace(plainPolicy.Sanitize(s))
}

// requireOperator is the per-operation authorization check of the console.
func requireOperator(ctx context.Context) error {
	if _, ok := auth.OperatorFromContext(ctx); !ok {
		return ErrUnauthorized
	}
	return nil
}

// page clamps listing pagination.
func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
