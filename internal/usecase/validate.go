package usecase

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validationDetails flattens a validator error into per-field messages for
// the envelope's errors list.
func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
		return out
	}
	return []string{err.Error()}
}
