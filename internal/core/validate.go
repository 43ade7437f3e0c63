// AngelaMos | 2026
// validate.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// NewValidator returns a validator that reports JSON field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// DecodeAndValidate reads a JSON body into dst, normalizes it when it
// implements Normalizer and runs the struct schema. The returned error
// is always an *AppError.
func DecodeAndValidate(
	r *http.Request,
	v *validator.Validate,
	dst any,
) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ValidationError("request body is required")
		}
		return ValidationError("invalid request body")
	}

	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}

	if err := v.Struct(dst); err != nil {
		return ValidationError(FormatValidationError(err))
	}

	return nil
}

// Normalizer lets a request trim and lower-case its fields before the
// schema runs.
type Normalizer interface {
	Normalize()
}

func RequireParam(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError(fmt.Sprintf("%s is required", name))
	}
	return nil
}
