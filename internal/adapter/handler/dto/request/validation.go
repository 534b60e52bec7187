package request

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olegk/users-api/internal/pkg/httputil"
)

// FieldErrors converts a binding error into the per-field list the
// validation contract requires: every failing field yields one entry, so a
// body with a short name and a malformed email reports both at once.
func FieldErrors(err error) []httputil.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Malformed JSON and type mismatches carry no field breakdown.
		return []httputil.FieldError{{Field: "body", Message: "request body is invalid"}}
	}

	out := make([]httputil.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, httputil.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min", "max":
		return fmt.Sprintf("%s must be between 2 and 100 characters", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
