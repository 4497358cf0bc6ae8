// Copyright (c) 2026 Vidora. All rights reserved.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidora/vidora/internal/platform/middleware"
)

// stubConfig drives the CORS middleware without a full environment load.
type stubConfig struct {
	development  bool
	extraOrigins []string
}

func (config stubConfig) IsDevelopment() bool      { return config.development }
func (config stubConfig) AllowedOrigins() []string { return config.extraOrigins }

func corsResponse(t *testing.T, config stubConfig, origin string) *httptest.ResponseRecorder {
	t.Helper()

	handler := middleware.CORS(config)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	if origin != "" {
		request.Header.Set("Origin", origin)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestCORS(t *testing.T) {
	t.Run("development allows any origin", func(t *testing.T) {
		recorder := corsResponse(t, stubConfig{development: true}, "http://localhost:3000")
		assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("production allows first-party domains", func(t *testing.T) {
		recorder := corsResponse(t, stubConfig{}, "https://www.vidora.app")
		assert.Equal(t, "https://www.vidora.app", recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("production rejects unknown origins", func(t *testing.T) {
		recorder := corsResponse(t, stubConfig{}, "https://evil.example.com")
		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("configured extra origins are allowed in production", func(t *testing.T) {
		config := stubConfig{extraOrigins: []string{"https://studio.example.com"}}
		recorder := corsResponse(t, config, "https://studio.example.com")
		assert.Equal(t, "https://studio.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("requests without an origin pass through untouched", func(t *testing.T) {
		recorder := corsResponse(t, stubConfig{}, "")
		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
