// Copyright (c) 2026 Vidora. All rights reserved.

package ranking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora/vidora/internal/ranking"
)

type clip struct {
	id       string
	category string
	views    int
	likes    int
	dislikes int
	created  string
	public   bool
	deleted  bool
}

func (c clip) Key() string          { return c.id }
func (c clip) Category() string     { return c.category }
func (c clip) ViewCount() int       { return c.views }
func (c clip) LikeCount() int       { return c.likes }
func (c clip) DislikeCount() int    { return c.dislikes }
func (c clip) CreatedStamp() string { return c.created }
func (c clip) Public() bool         { return c.public }
func (c clip) Deleted() bool        { return c.deleted }

func ids(clips []clip) []string {
	out := make([]string, 0, len(clips))
	for _, c := range clips {
		out = append(out, c.id)
	}
	return out
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		video clip
		want  float64
	}{
		{
			name:  "views dominate",
			video: clip{views: 100, likes: 0, dislikes: 0},
			want:  70.0,
		},
		{
			name:  "zero dislikes guarded as one",
			video: clip{views: 0, likes: 10, dislikes: 0},
			want:  3.0,
		},
		{
			name:  "ratio contributes damped",
			video: clip{views: 10, likes: 8, dislikes: 4},
			want:  10*0.7 + 2*0.3,
		},
		{
			name:  "all zero",
			video: clip{},
			want:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ranking.Score(tt.video), 1e-9)
		})
	}
}

func TestTrending(t *testing.T) {
	videos := []clip{
		{id: "low", views: 10, public: true},
		{id: "hidden", views: 9999, public: false},
		{id: "gone", views: 9999, public: true, deleted: true},
		{id: "high", views: 500, public: true},
		{id: "mid", views: 100, public: true},
	}

	t.Run("orders by score and drops invisible", func(t *testing.T) {
		got := ranking.Trending(videos, 10)
		assert.Equal(t, []string{"high", "mid", "low"}, ids(got))
	})

	t.Run("respects limit", func(t *testing.T) {
		got := ranking.Trending(videos, 2)
		assert.Equal(t, []string{"high", "mid"}, ids(got))
	})

	t.Run("ties keep input order", func(t *testing.T) {
		tied := []clip{
			{id: "first", views: 50, public: true},
			{id: "second", views: 50, public: true},
			{id: "third", views: 50, public: true},
		}
		got := ranking.Trending(tied, 10)
		assert.Equal(t, []string{"first", "second", "third"}, ids(got))
	})

	t.Run("non-positive limit yields empty", func(t *testing.T) {
		got := ranking.Trending(videos, 0)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestRecommendationsFor(t *testing.T) {
	videos := []clip{
		{id: "source", category: "music", views: 10, public: true},
		{id: "peer-a", category: "music", views: 300, public: true},
		{id: "peer-b", category: "music", views: 200, public: true},
		{id: "other", category: "games", views: 900, public: true},
		{id: "uncategorized", views: 800, public: true},
	}

	t.Run("same category ranked, source excluded", func(t *testing.T) {
		got := ranking.RecommendationsFor("source", videos, 10)
		assert.Equal(t, []string{"peer-a", "peer-b"}, ids(got))
	})

	t.Run("unknown source falls back to trending", func(t *testing.T) {
		got := ranking.RecommendationsFor("missing", videos, 2)
		assert.Equal(t, []string{"other", "uncategorized"}, ids(got))
	})

	t.Run("uncategorized source falls back to trending", func(t *testing.T) {
		got := ranking.RecommendationsFor("uncategorized", videos, 1)
		assert.Equal(t, []string{"other"}, ids(got))
	})

	t.Run("lonely category falls back to trending", func(t *testing.T) {
		lonely := []clip{
			{id: "solo", category: "niche", views: 5, public: true},
			{id: "popular", category: "games", views: 100, public: true},
		}
		got := ranking.RecommendationsFor("solo", lonely, 10)
		assert.Equal(t, []string{"popular", "solo"}, ids(got))
	})

	t.Run("deleted source falls back to trending", func(t *testing.T) {
		withDeleted := append([]clip{{id: "dead", category: "music", views: 1, public: true, deleted: true}}, videos...)
		got := ranking.RecommendationsFor("dead", withDeleted, 1)
		assert.Equal(t, []string{"other"}, ids(got))
	})
}

func TestByCategorySorted(t *testing.T) {
	videos := []clip{
		{id: "old-liked", category: "music", views: 10, likes: 90, created: "2026-01-01T00:00:00Z", public: true},
		{id: "new-viewed", category: "music", views: 500, likes: 5, created: "2026-03-01T00:00:00Z", public: true},
		{id: "newest", category: "music", views: 50, likes: 20, created: "2026-06-01T00:00:00Z", public: true},
		{id: "stranger", category: "games", views: 9999, likes: 9999, created: "2026-07-01T00:00:00Z", public: true},
	}

	tests := []struct {
		name string
		key  ranking.SortKey
		want []string
	}{
		{name: "by views", key: ranking.SortViews, want: []string{"new-viewed", "newest", "old-liked"}},
		{name: "by likes", key: ranking.SortLikes, want: []string{"old-liked", "newest", "new-viewed"}},
		{name: "by recency", key: ranking.SortRecent, want: []string{"newest", "new-viewed", "old-liked"}},
		{name: "unknown key defaults to views", key: ranking.SortKey("bogus"), want: []string{"new-viewed", "newest", "old-liked"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ranking.ByCategorySorted("music", videos, 10, tt.key)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	t.Run("empty category yields empty slice", func(t *testing.T) {
		got := ranking.ByCategorySorted("nope", videos, 10, ranking.SortViews)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestTopPerCategory(t *testing.T) {
	videos := []clip{
		{id: "m1", category: "music", views: 100, public: true},
		{id: "g1", category: "games", views: 50, public: true},
		{id: "m2", category: "music", views: 300, public: true},
		{id: "free", views: 10, public: true},
		{id: "m3", category: "music", views: 200, public: true},
		{id: "ghost", category: "music", views: 999, public: true, deleted: true},
	}

	got := ranking.TopPerCategory(videos, 2)
	require.Len(t, got, 3)

	t.Run("groups follow first occurrence", func(t *testing.T) {
		assert.Equal(t, "music", got[0].CategoryID)
		assert.Equal(t, "games", got[1].CategoryID)
		assert.Equal(t, ranking.NoCategory, got[2].CategoryID)
	})

	t.Run("each group capped and sorted by views", func(t *testing.T) {
		assert.Equal(t, []string{"m2", "m3"}, ids(got[0].TopVideos))
		assert.Equal(t, []string{"g1"}, ids(got[1].TopVideos))
		assert.Equal(t, []string{"free"}, ids(got[2].TopVideos))
	})

	t.Run("empty input yields no groups", func(t *testing.T) {
		groups := ranking.TopPerCategory([]clip{}, 3)
		require.NotNil(t, groups)
		assert.Empty(t, groups)
	})
}
