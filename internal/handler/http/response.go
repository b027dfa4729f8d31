package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/utils"
	"github.com/MKhiriev/go-video-tube/models"
)

func writeResponse(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	if _, err := utils.WriteJSON(w, models.NewResponse(status, data, message), status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	response := errorResponse(err)

	switch {
	case response.StatusCode >= http.StatusInternalServerError:
		log.Error().Err(err).Int("status", response.StatusCode).Msg("request failed")
	default:
		log.Debug().Err(err).Int("status", response.StatusCode).Msg("request rejected")
	}

	if _, writeErr := utils.WriteJSON(w, response, response.StatusCode); writeErr != nil {
		log.Err(writeErr).Msg("error writing error response")
	}
}

// decodeJSON reads a JSON body into v. Oversized bodies and malformed JSON
// are both reported as invalid input.
func decodeJSON(r *http.Request, v any) error {
	if err := utils.DecodeJSON(r.Body, v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apperr.Wrap(apperr.KindInvalidInput, errUploadTooLarge.Message, err)
		}
		return apperr.Wrap(apperr.KindInvalidInput, errInvalidJSON.Message, err)
	}
	return nil
}

// bind decodes a JSON body into v and validates it.
func (h *Handler) bind(r *http.Request, v any) error {
	if err := decodeJSON(r, v); err != nil {
		return err
	}
	return h.validator.Validate(r.Context(), v)
}
