// Copyright (c) 2026 Vidora. All rights reserved.

package videos_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora/vidora/internal/categories"
	"github.com/vidora/vidora/internal/platform/apperr"
	"github.com/vidora/vidora/internal/platform/sec"
	"github.com/vidora/vidora/internal/ranking"
	"github.com/vidora/vidora/internal/users"
	"github.com/vidora/vidora/internal/videos"
	"github.com/vidora/vidora/pkg/pagination"
)

type fixture struct {
	service         *videos.Service
	categoryService *categories.Service
	userRepository  users.UserRepository

	owner    users.User
	stranger users.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	dataDir := t.TempDir()

	videoRepo, err := videos.NewVideoRepository(dataDir, logger)
	require.NoError(t, err)
	userRepo, err := users.NewUserRepository(dataDir, logger)
	require.NoError(t, err)
	categoryRepo, err := categories.NewCategoryRepository(dataDir, logger)
	require.NoError(t, err)

	fx := &fixture{
		service:         videos.NewService(videoRepo, userRepo, categoryRepo, logger),
		categoryService: categories.NewService(categoryRepo, logger),
		userRepository:  userRepo,
		owner:           seedUser(t, userRepo, "owner"),
		stranger:        seedUser(t, userRepo, "stranger"),
	}
	return fx
}

func seedUser(t *testing.T, repository users.UserRepository, name string) users.User {
	t.Helper()

	user := users.User{
		ID:           "user-" + name,
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "irrelevant",
		Role:         string(sec.RoleUser),
		RegisteredAt: "2026-01-01T00:00:00Z",
		ProfileLink:  "link-" + name,
	}
	require.True(t, repository.Create(context.Background(), user))
	return user
}

func claimsFor(user users.User) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: user.ID, Username: user.Name, Role: user.Role}
}

func (fx *fixture) seedVideo(t *testing.T, name string, public bool, categoryID string) videos.Video {
	t.Helper()

	video, err := fx.service.Create(context.Background(), fx.owner.ID, videos.CreateInput{
		Name:       name,
		IsPublic:   public,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return video
}

func videoIDs(list []videos.Video) []string {
	out := make([]string, 0, len(list))
	for _, video := range list {
		out = append(out, video.ID)
	}
	return out
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	t.Run("counters start at zero", func(t *testing.T) {
		video := fx.seedVideo(t, "first upload", true, "")
		assert.Zero(t, video.Views)
		assert.Zero(t, video.Likes)
		assert.Zero(t, video.Dislikes)
		assert.NotEmpty(t, video.CreatedAt)
	})

	t.Run("rejects an unknown uploader", func(t *testing.T) {
		_, err := fx.service.Create(ctx, "ghost", videos.CreateInput{Name: "x", IsPublic: true})
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "INVALID_REFERENCE", appError.Code)
	})

	t.Run("rejects a dangling category reference", func(t *testing.T) {
		_, err := fx.service.Create(ctx, fx.owner.ID, videos.CreateInput{
			Name:       "x",
			IsPublic:   true,
			CategoryID: "missing-category",
		})
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "INVALID_REFERENCE", appError.Code)
	})

	t.Run("accepts an active category", func(t *testing.T) {
		category, err := fx.categoryService.Create(ctx, "Music")
		require.NoError(t, err)

		video := fx.seedVideo(t, "with category", true, category.ID)
		assert.Equal(t, category.ID, video.CategoryID)
	})
}

func TestServiceGet(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	public := fx.seedVideo(t, "public clip", true, "")
	private := fx.seedVideo(t, "private clip", false, "")

	t.Run("every fetch counts a view", func(t *testing.T) {
		first, err := fx.service.Get(ctx, public.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, first.Views)

		second, err := fx.service.Get(ctx, public.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, second.Views)
	})

	t.Run("private video hidden from anonymous and strangers", func(t *testing.T) {
		_, err := fx.service.Get(ctx, private.ID, nil)
		require.Error(t, err)

		_, err = fx.service.Get(ctx, private.ID, claimsFor(fx.stranger))
		require.Error(t, err)
	})

	t.Run("private video visible to its owner", func(t *testing.T) {
		_, err := fx.service.Get(ctx, private.ID, claimsFor(fx.owner))
		require.NoError(t, err)
	})

	t.Run("private video visible to moderators", func(t *testing.T) {
		moderator := claimsFor(fx.stranger)
		moderator.Role = string(sec.RoleModerator)

		_, err := fx.service.Get(ctx, private.ID, moderator)
		require.NoError(t, err)
	})
}

func TestServiceReactions(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	public := fx.seedVideo(t, "public clip", true, "")
	private := fx.seedVideo(t, "private clip", false, "")

	t.Run("like and dislike accumulate", func(t *testing.T) {
		_, err := fx.service.Like(ctx, public.ID)
		require.NoError(t, err)

		updated, err := fx.service.Dislike(ctx, public.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Likes)
		assert.Equal(t, 1, updated.Dislikes)
	})

	t.Run("private videos take no reactions", func(t *testing.T) {
		_, err := fx.service.Like(ctx, private.ID)
		require.Error(t, err)
	})

	t.Run("concurrent likes are never lost", func(t *testing.T) {
		video := fx.seedVideo(t, "busy clip", true, "")

		const likers = 25
		var wg sync.WaitGroup
		wg.Add(likers)
		for i := 0; i < likers; i++ {
			go func() {
				defer wg.Done()
				_, err := fx.service.Like(ctx, video.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		final, err := fx.service.Get(ctx, video.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, likers, final.Likes)
	})
}

func TestServiceUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	video := fx.seedVideo(t, "original name", true, "")

	t.Run("stranger may not modify", func(t *testing.T) {
		name := "hijacked"
		_, err := fx.service.Update(ctx, claimsFor(fx.stranger), video.ID, videos.UpdateInput{Name: &name})
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "FORBIDDEN", appError.Code)
	})

	t.Run("owner renames and unlists", func(t *testing.T) {
		name := "renamed"
		hidden := false
		updated, err := fx.service.Update(ctx, claimsFor(fx.owner), video.ID, videos.UpdateInput{
			Name:     &name,
			IsPublic: &hidden,
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Name)
		assert.False(t, updated.IsPublic)
	})

	t.Run("category change is re-validated", func(t *testing.T) {
		dangling := "missing-category"
		_, err := fx.service.Update(ctx, claimsFor(fx.owner), video.ID, videos.UpdateInput{CategoryID: &dangling})
		require.Error(t, err)
	})

	t.Run("moderator deletes someone else's video", func(t *testing.T) {
		moderator := claimsFor(fx.stranger)
		moderator.Role = string(sec.RoleModerator)

		require.NoError(t, fx.service.Delete(ctx, moderator, video.ID))

		_, err := fx.service.Get(ctx, video.ID, claimsFor(fx.owner))
		require.Error(t, err)
	})
}

func TestServiceSearch(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	nameMatch := fx.seedVideo(t, "Go concurrency patterns", true, "")
	both, err := fx.service.Create(ctx, fx.owner.ID, videos.CreateInput{
		Name:        "concurrency deep dive",
		Description: "more concurrency content",
		IsPublic:    true,
	})
	require.NoError(t, err)
	descriptionMatch, err := fx.service.Create(ctx, fx.owner.ID, videos.CreateInput{
		Name:        "unrelated title",
		Description: "hidden gems of Concurrency",
		IsPublic:    true,
	})
	require.NoError(t, err)
	_, err = fx.service.Create(ctx, fx.owner.ID, videos.CreateInput{
		Name:     "private concurrency talk",
		IsPublic: false,
	})
	require.NoError(t, err)

	t.Run("name matches rank before description matches, deduplicated", func(t *testing.T) {
		got := fx.service.Search(ctx, "ConCurrency", 10)
		assert.Equal(t, []string{nameMatch.ID, both.ID, descriptionMatch.ID}, videoIDs(got))
	})

	t.Run("private videos never surface", func(t *testing.T) {
		for _, video := range fx.service.Search(ctx, "concurrency", 10) {
			assert.True(t, video.IsPublic)
		}
	})

	t.Run("blank query yields empty", func(t *testing.T) {
		got := fx.service.Search(ctx, "   ", 10)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestServiceDiscovery(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	music, err := fx.categoryService.Create(ctx, "Music")
	require.NoError(t, err)
	games, err := fx.categoryService.Create(ctx, "Games")
	require.NoError(t, err)

	hit := fx.seedVideo(t, "hit song", true, music.ID)
	deepCut := fx.seedVideo(t, "deep cut", true, music.ID)
	speedrun := fx.seedVideo(t, "speedrun", true, games.ID)
	uncategorized := fx.seedVideo(t, "vlog", true, "")

	// Establish a clear view-count ordering: hit > speedrun > deepCut > vlog.
	for i := 0; i < 5; i++ {
		_, err := fx.service.Get(ctx, hit.ID, nil)
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, err := fx.service.Get(ctx, speedrun.ID, nil)
		require.NoError(t, err)
	}
	_, err = fx.service.Get(ctx, deepCut.ID, nil)
	require.NoError(t, err)

	t.Run("trending follows view counts", func(t *testing.T) {
		got := fx.service.Trending(ctx, 3)
		assert.Equal(t, []string{hit.ID, speedrun.ID, deepCut.ID}, videoIDs(got))
	})

	t.Run("similar stays in category and excludes the source", func(t *testing.T) {
		got := fx.service.Similar(ctx, hit.ID, 10)
		assert.Equal(t, []string{deepCut.ID}, videoIDs(got))
	})

	t.Run("similar falls back to trending for uncategorized sources", func(t *testing.T) {
		got := fx.service.Similar(ctx, uncategorized.ID, 2)
		assert.Equal(t, []string{hit.ID, speedrun.ID}, videoIDs(got))
	})

	t.Run("by-category rejects unknown categories", func(t *testing.T) {
		_, err := fx.service.ByCategory(ctx, "missing", 10, ranking.SortViews)
		require.Error(t, err)
	})

	t.Run("by-category orders by the chosen key", func(t *testing.T) {
		got, err := fx.service.ByCategory(ctx, music.ID, 10, ranking.SortViews)
		require.NoError(t, err)
		assert.Equal(t, []string{hit.ID, deepCut.ID}, videoIDs(got))
	})

	t.Run("top-per-category resolves names and groups the uncategorized", func(t *testing.T) {
		highlights := fx.service.TopPerCategory(ctx, 1)
		require.Len(t, highlights, 3)

		assert.Equal(t, music.ID, highlights[0].CategoryID)
		assert.Equal(t, "Music", highlights[0].CategoryName)
		assert.Equal(t, []string{hit.ID}, videoIDs(highlights[0].Videos))

		assert.Equal(t, games.ID, highlights[1].CategoryID)
		assert.Equal(t, "Games", highlights[1].CategoryName)

		assert.Equal(t, ranking.NoCategory, highlights[2].CategoryID)
		assert.Empty(t, highlights[2].CategoryName)
		assert.Equal(t, []string{uncategorized.ID}, videoIDs(highlights[2].Videos))
	})
}

func TestServiceByUserLink(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	shown := fx.seedVideo(t, "channel video", true, "")
	fx.seedVideo(t, "draft", false, "")

	t.Run("lists only the channel's public videos", func(t *testing.T) {
		listed, err := fx.service.ByUserLink(ctx, fx.owner.ProfileLink)
		require.NoError(t, err)
		assert.Equal(t, []string{shown.ID}, videoIDs(listed))
	})

	t.Run("empty channel lists nothing", func(t *testing.T) {
		listed, err := fx.service.ByUserLink(ctx, fx.stranger.ProfileLink)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})

	t.Run("unknown handle yields not found", func(t *testing.T) {
		_, err := fx.service.ByUserLink(ctx, "nobody")
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "NOT_FOUND", appError.Code)
	})
}

func TestServiceListPublic(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	first := fx.seedVideo(t, "one", true, "")
	fx.seedVideo(t, "hidden", false, "")
	second := fx.seedVideo(t, "two", true, "")

	page, meta := fx.service.ListPublic(ctx, pagination.Params{Page: 1, Limit: 10})
	assert.Equal(t, []string{first.ID, second.ID}, videoIDs(page))
	assert.Equal(t, 2, meta.Total)

	t.Run("out-of-range page is empty, not an error", func(t *testing.T) {
		page, _ := fx.service.ListPublic(ctx, pagination.Params{Page: 9, Limit: 10})
		require.NotNil(t, page)
		assert.Empty(t, page)
	})
}
