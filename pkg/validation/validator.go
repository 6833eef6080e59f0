package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator wraps validator.v10 with the rules the account store needs.
// It is a standalone module: the store invokes it before persistence, so
// validation logic is not tied to the storage schema.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with JSON field names in errors and the custom
// strongpwd rule registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("strongpwd", strongPassword)
	return &Validator{v: v}
}

// Validate checks s against its struct tags and returns the failures in
// declaration order, or nil when everything passes.
func (va *Validator) Validate(s any) []FieldError {
	err := va.v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "payload", Message: "invalid payload"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

// strongPassword enforces the account password policy: minimum length 6,
// at least 3 lowercase letters, 1 digit, 1 uppercase letter and 1 symbol.
func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 6 {
		return false
	}
	var lower, upper, digit, symbol int
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower++
		case unicode.IsUpper(r):
			upper++
		case unicode.IsDigit(r):
			digit++
		default:
			symbol++
		}
	}
	return lower >= 3 && upper >= 1 && digit >= 1 && symbol >= 1
}

func messageFor(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "e164":
		return "must be a valid phone number"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "eqfield":
		return "must match " + jsonNameFor(param)
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "strongpwd":
		return "must be at least 6 characters with 3 lowercase letters, an uppercase letter, a digit and a symbol"
	default:
		if param != "" {
			return fmt.Sprintf("failed rule '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("failed rule '%s'", tag)
	}
}

// jsonNameFor maps a referenced struct field (as used by eqfield) to its
// JSON name so messages speak the caller's vocabulary. The validator does
// not expose the sibling field's tag, so the known fields are mapped here.
func jsonNameFor(structField string) string {
	if structField == "Password" {
		return "password"
	}
	return strings.ToLower(structField)
}
