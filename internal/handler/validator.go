package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookshelf/internal/errors"
)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports fields by their JSON name.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface. Failures are returned as
// validation errors naming the first offending field.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Validation(err.Error())
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return errors.Validation(fmt.Sprintf("%s is required", fe.Field()))
	case "email":
		return errors.Validation(fmt.Sprintf("%s must be a valid email address", fe.Field()))
	case "min", "gte":
		return errors.Validation(fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
	case "max", "lte":
		return errors.Validation(fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
	case "eqfield":
		return errors.Validation(fmt.Sprintf("%s does not match", fe.Field()))
	default:
		return errors.Validation(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
