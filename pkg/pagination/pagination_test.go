// Copyright (c) 2026 Vidora. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidora/vidora/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults when absent", query: "", wantPage: 1, wantLimit: pagination.DefaultLimit},
		{name: "explicit values", query: "page=3&limit=50", wantPage: 3, wantLimit: 50},
		{name: "malformed values fall back", query: "page=abc&limit=xyz", wantPage: 1, wantLimit: pagination.DefaultLimit},
		{name: "negative page clamped", query: "page=-2", wantPage: 1, wantLimit: pagination.DefaultLimit},
		{name: "excessive limit clamped", query: "limit=5000", wantPage: 1, wantLimit: pagination.DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/api/v1/videos?"+tt.query, nil)
			params := pagination.FromRequest(request)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestCut(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("middle page", func(t *testing.T) {
		got := pagination.Cut(items, pagination.Params{Page: 2, Limit: 2})
		assert.Equal(t, []int{3, 4}, got)
	})

	t.Run("short final page", func(t *testing.T) {
		got := pagination.Cut(items, pagination.Params{Page: 3, Limit: 2})
		assert.Equal(t, []int{5}, got)
	})

	t.Run("out of range yields empty non-nil", func(t *testing.T) {
		got := pagination.Cut(items, pagination.Params{Page: 9, Limit: 2})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
