// Copyright (c) 2026 Vidora. All rights reserved.

package api_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora/vidora/internal/api"
)

func TestReadiness(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	probe := func(deps api.HealthDependencies) *httptest.ResponseRecorder {
		_, readiness := api.NewHealthHandlers(deps, logger)
		recorder := httptest.NewRecorder()
		readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
		return recorder
	}

	t.Run("healthy dependencies report ready", func(t *testing.T) {
		recorder := probe(api.HealthDependencies{
			CheckDataDir:   func() error { return nil },
			CheckBlobStore: func() error { return nil },
		})

		assert.Equal(t, http.StatusOK, recorder.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "ready", body["status"])
	})

	t.Run("failing dependency degrades with 503", func(t *testing.T) {
		recorder := probe(api.HealthDependencies{
			CheckDataDir:   func() error { return errors.New("read-only filesystem") },
			CheckBlobStore: func() error { return nil },
		})

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body["status"])
	})

	t.Run("unconfigured blob store is skipped", func(t *testing.T) {
		recorder := probe(api.HealthDependencies{
			CheckDataDir: func() error { return nil },
		})
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
