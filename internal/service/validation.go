package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
)

// NewValidator builds the validator shared by every service. Field errors are reported
// under their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	// Nullable references and dates on update payloads: an empty string clears the column.
	_ = validate.RegisterValidation("nullable_uuid", func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		if value == "" {
			return true
		}
		_, err := uuid.Parse(value)
		return err == nil
	})
	_ = validate.RegisterValidation("nullable_date", func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		if value == "" {
			return true
		}
		_, err := time.Parse(dateLayout, value)
		return err == nil
	})
	return validate
}

// validateStruct runs the struct tags and converts failures into a single INVALID_REQUEST
// error listing every failing field.
func validateStruct(validate *validator.Validate, payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s: %s", fieldErr.Field(), describe(fieldErr)))
	}
	return apperror.InvalidRequest(messages...)
}

func describe(fieldErr validator.FieldError) string {
	kind := fieldErr.Kind()
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid", "nullable_uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fieldErr.Param())
	case "datetime", "nullable_date":
		return "must be a date formatted as YYYY-MM-DD"
	case "min":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters long", fieldErr.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at least %s items", fieldErr.Param())
		default:
			return fmt.Sprintf("must be greater than or equal to %s", fieldErr.Param())
		}
	case "max":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("must be at most %s characters long", fieldErr.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at most %s items", fieldErr.Param())
		default:
			return fmt.Sprintf("must be less than or equal to %s", fieldErr.Param())
		}
	case "gt":
		return fmt.Sprintf("must be greater than %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fieldErr.Param())
	default:
		return "is invalid"
	}
}
