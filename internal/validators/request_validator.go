package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
	"github.com/go-playground/validator/v10"
)

// RequestValidator validates request DTOs through their `validate` struct
// tags. Field names in messages are the JSON names of the fields.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	if obj == nil {
		return apperr.Wrap(apperr.KindInvalidInput, "validation failed", ErrUnsupportedType)
	}

	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}

	return v.translate(err)
}

func (v *RequestValidator) ValidateVar(ctx context.Context, field string, value any, tag string) error {
	err := v.validate.VarCtx(ctx, value, tag)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperr.Wrap(apperr.KindInvalidInput, "validation failed", err)
	}

	messages := make(FieldErrors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		messages = append(messages, message(field, fe.Tag(), fe.Param()))
	}

	return apperr.Wrap(apperr.KindInvalidInput, messages[0], messages)
}

func (v *RequestValidator) translate(err error) error {
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return apperr.Wrap(apperr.KindInvalidInput, "validation failed", fmt.Errorf("%w: %w", ErrUnsupportedType, err))
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperr.Wrap(apperr.KindInvalidInput, "validation failed", err)
	}

	messages := make(FieldErrors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		messages = append(messages, message(fe.Field(), fe.Tag(), fe.Param()))
	}

	return apperr.Wrap(apperr.KindInvalidInput, "validation failed", messages)
}

var messageTemplates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"uuid":     "%s must be a valid id",
	"alphanum": "%s must contain only letters and digits",
}

var messageWithParam = map[string]string{
	"required_without": "%s is required when %s is empty",
	"oneof":            "%s must be one of: %s",
	"min":              "%s must be at least %s characters long",
	"max":              "%s must be at most %s characters long",
	"gte":              "%s must be greater than or equal to %s",
	"lte":              "%s must be less than or equal to %s",
}

func message(field, tag, param string) string {
	if template, ok := messageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := messageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}
	return fmt.Sprintf("%s is invalid", field)
}
