package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator registers the COD binding tags on gin's validator:
//
//	isodate       YYYY-MM-DD calendar date
//	country_code  two upper-case letters
//
// Field names in errors follow the json (or form) tag.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator is not go-playground/validator")
	}
	return RegisterValidations(v)
}

// RegisterValidations installs the COD tags on v
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
	if err := v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return shared.IsValidDate(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("country_code", func(fl validator.FieldLevel) bool {
		return inventory.IsCountryCode(fl.Field().String())
	})
}

// ValidationDetails converts validator errors to response details. It
// returns nil for any other error.
func ValidationDetails(err error) []dto.ValidationDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
			Tag:     e.Tag(),
		})
	}
	return details
}

func validationMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "isodate":
		return field + " must be a YYYY-MM-DD date"
	case "country_code":
		return field + " must be a two-letter country code"
	case "min":
		if e.Kind() == reflect.String || e.Kind() == reflect.Slice {
			return field + " must have at least " + e.Param() + " entries or characters"
		}
		return field + " must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return field + " must be at most " + e.Param() + " characters"
		}
		return field + " must be at most " + e.Param()
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "gt":
		return field + " must be greater than " + e.Param()
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	case "lte":
		return field + " must be less than or equal to " + e.Param()
	case "uuid":
		return field + " must be a UUID"
	default:
		return field + " is invalid"
	}
}
