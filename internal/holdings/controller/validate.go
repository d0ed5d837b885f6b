package controller

import (
	"errors"
	"fmt"
	"strings"

	e "github.com/gartstein/holdings/internal/holdings/errors"
	"github.com/gartstein/holdings/internal/holdings/models"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var validate = validator.New()

type createRules struct {
	Name     string   `validate:"required"`
	Services []string `validate:"min=1,dive,required"`
}

type updateRules struct {
	Name string `validate:"required"`
}

// validateCreate checks a normalized draft before it becomes a new record.
func validateCreate(d models.Draft) error {
	return mapValidationError(validate.Struct(createRules{Name: d.Name, Services: d.Services}))
}

// validateUpdate checks a normalized draft before it replaces a record.
func validateUpdate(d models.Draft) error {
	return mapValidationError(validate.Struct(updateRules{Name: d.Name}))
}

func mapValidationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}

	caser := cases.Title(language.English)
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		label := caser.String(field)
		switch fe.Tag() {
		case "required":
			fields[field] = label + " is required"
		case "min":
			fields[field] = "select at least one " + strings.TrimSuffix(field, "s")
		default:
			fields[field] = label + " is invalid"
		}
	}
	return &e.ValidationError{Fields: fields}
}
