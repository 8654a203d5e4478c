package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/store-locator/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Имена полей в ошибках берутся из тегов query/json, а не из Go-полей
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}

// Validate - валидация структуры. Первая ошибка поля возвращается как ValidationError.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return pkgerrors.NewValidation("", nil, err.Error())
	}

	fe := fieldErrs[0]
	return pkgerrors.NewValidation(fe.Field(), valueOf(fe), messageFor(fe))
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Parameter %s is required", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("Parameter %s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("Parameter %s must be at most %s", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("Parameter %s must be numeric", fe.Field())
	default:
		return fmt.Sprintf("Parameter %s failed %s validation", fe.Field(), fe.Tag())
	}
}

func valueOf(fe validator.FieldError) interface{} {
	v := fe.Value()
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	if rv.Kind() == reflect.String && rv.Len() == 0 {
		return nil
	}
	return v
}
