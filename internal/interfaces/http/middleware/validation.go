package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/healclinics/storefront/internal/domain/address"
	"github.com/healclinics/storefront/internal/interfaces/http/dto"
)

// SetupValidator configures the binding validator: JSON tag names in error
// messages and the nl_postcode tag for Dutch postcodes.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

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

	_ = v.RegisterValidation("nl_postcode", func(fl validator.FieldLevel) bool {
		return address.ValidatePostcode(fl.Field().String())
	})
}

// HandleValidationError writes a 400 with per-field details.
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(RequestIDKey)

	var details []dto.ValidationDetail
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: validationMessage(e),
			})
		}
	}

	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Validatie mislukt",
		requestID,
		details,
	))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Dit veld is verplicht"
	case "email":
		return "Ongeldig e-mailadres"
	case "nl_postcode":
		return "Ongeldige postcode format (gebruik bijv. 1234 AB)"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Minimaal " + e.Param() + " tekens"
		}
		return "Minimaal " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Maximaal " + e.Param() + " tekens"
		}
		return "Maximaal " + e.Param()
	default:
		return "Ongeldige waarde"
	}
}
