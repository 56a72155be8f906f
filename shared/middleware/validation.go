package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func ValidateRequest(obj any) []ValidationError {
	var validationErrors []ValidationError

	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Message: err.Error(), Type: "invalid"}}
	}
	for _, err := range fieldErrors {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: getErrorMsg(err),
			Type:    err.Tag(),
		})
	}

	return validationErrors
}

func getErrorMsg(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gte":
		return "Value must be greater than or equal to " + err.Param()
	default:
		return "Invalid value"
	}
}

// RespondWithValidationError logs the failed rules and answers 400 with an
// empty body.
func RespondWithValidationError(c *gin.Context, validationErrors []ValidationError) {
	for _, v := range validationErrors {
		log.Printf("%s %s: field %q failed %q: %s", c.Request.Method, c.Request.URL.Path, v.Field, v.Type, v.Message)
	}
	RespondWithError(c, http.StatusBadRequest)
}

// RespondWithError aborts the request with code and no body.
func RespondWithError(c *gin.Context, code int) {
	c.AbortWithStatus(code)
}
