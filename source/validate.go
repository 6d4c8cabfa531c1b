package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hupe1980/reqindex/model"
)

// ErrInvalidRecord is returned when a record fails validation.
var ErrInvalidRecord = errors.New("invalid record")

var validate *validator.Validate

type enum interface {
	Valid() bool
}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	for _, tag := range []string{"category", "priority", "status"} {
		_ = validate.RegisterValidation(tag, validateEnum)
	}
}

func validateEnum(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(enum)
	return ok && e.Valid()
}

// Validate checks the field constraints of r. The returned error wraps
// ErrInvalidRecord and names every failing field.
func Validate(r model.Record) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(fields, ", "))
}
