package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-video-tube/internal/apperr"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/metrics"
	"github.com/MKhiriev/go-video-tube/internal/service"
	"github.com/MKhiriev/go-video-tube/internal/utils"
)

// auth rejects the request unless it carries a valid access token, and
// stores the resolved identity in the request context otherwise.
//
// The token is read from the accessToken cookie first, then from the
// "Authorization: Bearer" header. A missing, malformed, expired or revoked
// token all produce the same 401 envelope. Failures to reach the account
// store keep their own kind so clients can retry.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := accessTokenFromRequest(r)
		if err != nil {
			log.Debug().Err(err).Msg("request without usable access token")
			metrics.AuthRejections.Inc()
			writeError(w, r, service.ErrUnauthenticated)
			return
		}

		identity, err := h.services.CredentialService.VerifyAccess(r.Context(), token)
		if err != nil {
			if apperr.KindOf(err) != apperr.KindUnauthenticated {
				writeError(w, r, err)
				return
			}
			log.Debug().Err(err).Msg("access token rejected")
			metrics.AuthRejections.Inc()
			writeError(w, r, service.ErrUnauthenticated)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
	})
}

// optionalAuth resolves the caller when a token is present and lets
// anonymous requests through. A present but invalid token is still rejected.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	required := h.auth(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := accessTokenFromRequest(r); errors.Is(err, ErrNoToken) {
			next.ServeHTTP(w, r)
			return
		}
		required.ServeHTTP(w, r)
	})
}

func accessTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoToken
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err)
	}

	return token, nil
}
