package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"holidaily/internal/domain"
)

var v = validator.New(validator.WithRequiredStructEnabled())

var tagMessages = map[string]string{
	"required": "is required",
	"min":      "is too short",
	"max":      "is too long",
	"gt":       "must be positive",
}

// Struct validates input against its `validate` tags and reports failures as a
// validation error naming each offending field.
func Struct(input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		msgs = append(msgs, fmt.Sprintf("%s %s", strings.ToLower(fe.Field()), msg))
	}
	sort.Strings(msgs)

	return domain.NewValidationError(strings.Join(msgs, ", "))
}
