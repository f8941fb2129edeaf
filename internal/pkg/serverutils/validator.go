package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationInputError marks a malformed request. The turn is aborted
// before any side effect and the details are safe to show the caller.
type ValidationInputError struct {
	Fields []string
}

func (e *ValidationInputError) Error() string {
	return fmt.Sprintf("invalid request: %s", strings.Join(e.Fields, "; "))
}

// ValidateRequest checks struct tags and wraps failures into a
// ValidationInputError.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fields []string
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
		} else {
			fields = append(fields, err.Error())
		}
		return &ValidationInputError{Fields: fields}
	}
	return nil
}
