package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput validates a tagged input struct and converts the first
// failure into a domain.ValidationError, keeping the validator library
// out of the rest of the core.
func checkInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &domain.ValidationError{
			Field:  strings.ToLower(fe.Field()),
			Reason: reasonFor(fe),
		}
	}
	return err
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "url":
		return "must be an absolute URL"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
