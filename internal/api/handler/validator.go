package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
)

// echoValidator plugs go-playground/validator into c.Validate. Field names
// in messages are the JSON keys.
type echoValidator struct {
	v *validator.Validate
}

func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// present: a raw JSON field that was sent and is not null.
	_ = v.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		raw, ok := fl.Field().Interface().(json.RawMessage)
		if !ok {
			return false
		}
		raw = bytes.TrimSpace(raw)
		return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
	})
	return &echoValidator{v: v}
}

// Validate implements echo.Validator. Clients only ever learn that
// parameters are missing; the field list goes to the logs.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	problems := make([]string, len(ve))
	for k, fe := range ve {
		problems[k] = fieldError(fe)
	}
	return fmt.Errorf("%w: %s", domain.ErrMissingParameter, strings.Join(problems, "; "))
}

func fieldError(fe validator.FieldError) string {
	if tag := fe.Tag(); tag != "required" && tag != "present" {
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), tag)
	}
	return fe.Field() + " is required"
}
