// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns the handler registered through
// [chi.Mux.MethodNotAllowed].
//
// Instead of chi's default 405 it answers 404 with the error envelope, so a
// caller probing with an unsupported method cannot tell which paths exist.
// When chi's matcher does find a handler for the method and path, the
// request is handed back to the router.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		writeError(w, r, errRouteNotFound)
	}
}

// routeNotFound answers unknown paths with the error envelope.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errRouteNotFound)
}
