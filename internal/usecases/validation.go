package usecases

import (
	"errors"
	"fmt"
	"mood_tracker/internal/models"

	"github.com/go-playground/validator/v10"
)

// ValidationError is returned for input the caller can fix.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field [%s] failed rule [%s]", e.Field, e.Rule)
}

func validateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			first := vErrs[0]
			return &ValidationError{Field: first.Field(), Rule: first.Tag()}
		}
		return err
	}
	return nil
}

// IsInvalidInput reports whether err was caused by the caller's input rather
// than by the datastore.
func IsInvalidInput(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr) ||
		errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrNameTooLong) ||
		errors.Is(err, models.ErrInvalidMood)
}
