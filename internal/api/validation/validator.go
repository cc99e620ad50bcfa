package validation

import (
	"reflect"
	"strings"

	"github.com/crisphealth/health-assistant/pkg/envelope"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Validate validates a struct and returns field errors
func Validate(s interface{}) []envelope.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []envelope.FieldError{{Field: "body", Message: "is invalid"}}
	}

	var fieldErrors []envelope.FieldError
	for _, err := range verrs {
		fieldErrors = append(fieldErrors, envelope.FieldError{
			Field:   fieldPath(err),
			Message: getValidationMessage(err),
		})
	}
	return fieldErrors
}

// fieldPath drops the top-level struct name, keeping nested paths like dietary_restrictions[0].
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

func getValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		return "must be at least " + err.Param()
	case "max":
		return "must be at most " + err.Param()
	case "oneof":
		return "must be one of: " + err.Param()
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}
