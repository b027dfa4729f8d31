// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newResponseWriter(rec)

	w.WriteHeader(http.StatusServiceUnavailable)
	w.WriteHeader(http.StatusGatewayTimeout)

	assert.Equal(t, http.StatusServiceUnavailable, w.Status())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestResponseWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newResponseWriter(rec)

	assert.Equal(t, http.StatusOK, w.Status(), "nothing written yet")

	n, err := w.Write([]byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, 11, w.size)
	assert.True(t, w.wroteHeader)
	assert.Equal(t, "hello world", rec.Body.String())
}

func TestResponseWriter_ProxiesHeadersAndUnwraps(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newResponseWriter(rec)

	w.Header().Set("X-Custom", "value")

	assert.Equal(t, "value", rec.Header().Get("X-Custom"))
	assert.Same(t, rec, w.Unwrap())
}
