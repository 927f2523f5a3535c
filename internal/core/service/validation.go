package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/martijn/shopadmin/internal/core/domain"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateEntity runs normalization, struct tag validation and the entity's
// own rules, reporting failures as 400 service errors.
func validateEntity(v *validator.Validate, entity any) error {
	if n, ok := entity.(domain.Normalizer); ok {
		n.Normalize()
	}

	if err := v.Struct(entity); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return badRequest(formatFieldErrors(fieldErrs))
		}
		return fmt.Errorf("failed to validate: %w", err)
	}

	if e, ok := entity.(domain.Entity); ok {
		if err := e.Check(); err != nil {
			return badRequest(strings.TrimPrefix(err.Error(), domain.ErrInvalidEntity.Error()+": "))
		}
	}
	return nil
}

func formatFieldErrors(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not a valid %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
