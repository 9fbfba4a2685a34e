package catalogstub

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalogseed/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		if p, ok := f.Interface().(models.Price); ok {
			return p.Decimal().InexactFloat64()
		}
		return nil
	}, models.Price{})

	if err := v.RegisterValidation("catalogid", func(fl validator.FieldLevel) bool {
		_, err := models.ID(fl.Field().String()).Uint()
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// validateRequest runs the struct's validate tags and converts failures into
// a validation AppError keyed by JSON field name.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return models.NewInternalError(err)
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if _, seen := fields[field]; seen {
			continue
		}
		fields[field] = fieldMessage(field, fe)
	}
	return models.NewValidationError("invalid input", fields)
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " is not a valid email address"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "catalogid":
		return field + " must hold positive integer ids"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
