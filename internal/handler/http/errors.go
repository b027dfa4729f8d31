// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
)

// Sentinel errors used while extracting the access token from a request.
// None of them is shown to the client: every authentication failure is
// reported with the same envelope.
var (
	// ErrNoToken is returned when neither the accessToken cookie nor the
	// "Authorization" header is present.
	ErrNoToken = errors.New("no access token in request")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)

var (
	errInvalidJSON    = apperr.New(apperr.KindInvalidInput, "invalid JSON body")
	errInvalidForm    = apperr.New(apperr.KindInvalidInput, "invalid multipart form")
	errUploadTooLarge = apperr.New(apperr.KindInvalidInput, "upload exceeds the maximum allowed size")
	errInvalidQuery   = apperr.New(apperr.KindInvalidInput, "invalid query parameter")
	errRouteNotFound  = apperr.New(apperr.KindNotFound, "route not found")
)
