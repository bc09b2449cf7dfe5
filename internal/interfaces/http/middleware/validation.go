package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/dotmart/backend/internal/domain/shared/valueobject"
	"github.com/dotmart/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator makes validation errors report JSON field names and registers
// the imageurl and phone tags used by the request DTOs.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return RegisterValidations(v)
}

// RegisterValidations installs the custom tags on v
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	if err := v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
		return valueobject.IsImageURL(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return valueobject.IsPhoneNumber(fl.Field().String())
	})
}

// FormatValidationErrors turns validator errors into issue entries. The path
// drops the root struct name, so "CreateOrderRequest.items[0].price" becomes
// "items[0].price".
func FormatValidationErrors(err error) []dto.Issue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []dto.Issue{{Path: "", Message: err.Error()}}
	}
	issues := make([]dto.Issue, 0, len(verrs))
	for _, e := range verrs {
		path := e.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		issues = append(issues, dto.Issue{Path: path, Message: validationMessage(e)})
	}
	return issues
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		switch e.Kind() {
		case reflect.String:
			return "Must be at least " + e.Param() + " characters"
		case reflect.Slice, reflect.Array:
			return "Must contain at least " + e.Param() + " item(s)"
		}
		return "Must be at least " + e.Param()
	case "max":
		switch e.Kind() {
		case reflect.String:
			return "Must be at most " + e.Param() + " characters"
		case reflect.Slice, reflect.Array:
			return "Must contain at most " + e.Param() + " item(s)"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "url":
		return "Invalid URL format"
	case "uuid":
		return "Invalid ID format"
	case "imageurl":
		return "Must be a valid image URL (jpg, jpeg, png, webp)"
	case "phone":
		return "Phone number must be between 10 and 15 digits"
	default:
		return "Invalid value"
	}
}
