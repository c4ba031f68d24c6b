package domain

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json name so errors line up with request bodies.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Validate runs struct validation and converts failures into a
// ValidationError. messages overrides the generic per-tag message for
// specific fields, keyed by json field name.
func Validate(op string, v any, messages map[string]string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Internal(err, op, "validation failed")
	}

	fields := map[string]string{}
	for _, fe := range errs {
		if msg, ok := messages[fe.Field()]; ok {
			fields[fe.Field()] = msg
			continue
		}
		fields[fe.Field()] = validationMessage(fe)
	}

	return &ValidationError{Op: op, Fields: fields}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "is not a valid choice"
	}
	return "is invalid"
}
