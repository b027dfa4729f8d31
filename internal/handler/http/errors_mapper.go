package http

import (
	"errors"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
	"github.com/MKhiriev/go-video-tube/internal/validators"
	"github.com/MKhiriev/go-video-tube/models"
)

// errorResponse shapes err into the error envelope. The status comes from
// the error's kind, field-level validation messages go into errors.
func errorResponse(err error) models.ErrorResponse {
	status := apperr.KindOf(err).HTTPStatus()

	var fields validators.FieldErrors
	if errors.As(err, &fields) {
		return models.NewErrorResponse(status, apperr.MessageOf(err), fields...)
	}

	return models.NewErrorResponse(status, apperr.MessageOf(err))
}
