// Copyright (c) 2026 Vidora. All rights reserved.

package videos

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vidora/vidora/internal/categories"
	"github.com/vidora/vidora/internal/platform/apperr"
	"github.com/vidora/vidora/internal/platform/sec"
	"github.com/vidora/vidora/internal/ranking"
	"github.com/vidora/vidora/internal/users"
	"github.com/vidora/vidora/pkg/pagination"
	"github.com/vidora/vidora/pkg/slice"
	"github.com/vidora/vidora/pkg/timestamp"
	"github.com/vidora/vidora/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for the video catalogue.
//
// It enforces visibility rules, validates cross-entity references before any
// write, and feeds catalogue snapshots to the ranking engine for the
// discovery surfaces.
type Service struct {
	videoRepository    VideoRepository
	userRepository     users.UserRepository
	categoryRepository categories.CategoryRepository
	logger             *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	videoRepo VideoRepository,
	userRepo users.UserRepository,
	categoryRepo categories.CategoryRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		videoRepository:    videoRepo,
		userRepository:     userRepo,
		categoryRepository: categoryRepo,
		logger:             logger,
	}
}

// # Catalogue Operations

// CreateInput defines the fields required to register a video.
type CreateInput struct {
	Name        string
	Description string
	IsPublic    bool
	CategoryID  string // optional
}

/*
Create registers new video metadata for an uploader.

Description: Both references are validated before the write: the owner must be
an active account and, when set, the category must be an active catalogue
entry. Counters start at zero.

Parameters:
  - context: context.Context
  - ownerID: string (Authenticated uploader)
  - input: CreateInput (Already validated by the transport layer)

Returns:
  - Video: The persisted entity
  - error: apperr.InvalidReference on dangling references
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (Video, error) {

	// Business: references are checked before any write
	if _, found := service.userRepository.FindByID(context, ownerID); !found {
		return Video{}, apperr.InvalidReference("user_id", "Uploader account does not exist")
	}
	if input.CategoryID != "" {
		if _, found := service.categoryRepository.FindByID(context, input.CategoryID); !found {
			return Video{}, apperr.InvalidReference("category_id", "Category does not exist")
		}
	}

	video := Video{
		ID:          uuidv7.Must(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   timestamp.Now(),
		IsPublic:    input.IsPublic,
		CategoryID:  input.CategoryID,
	}

	if !service.videoRepository.Create(context, video) {
		return Video{}, apperr.Conflict("Video identifier collision")
	}

	service.logger.Info("video_created",
		slog.String("video_id", video.ID),
		slog.String("owner_id", ownerID),
		slog.Bool("public", video.IsPublic),
	)

	return video, nil
}

/*
Get retrieves one video and counts the view.

Description: A private video is visible only to its owner and to moderators;
everyone else gets the same not-found as for a missing id. Every successful
fetch increments the view counter.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - viewer: *sec.AuthClaims (nil for anonymous requests)

Returns:
  - Video: The entity with the incremented view counter
  - error: apperr.NotFound when absent, deleted, or not visible
*/
func (service *Service) Get(context context.Context, id string, viewer *sec.AuthClaims) (Video, error) {
	video, found := service.videoRepository.FindByID(context, id)
	if !found || !service.visibleTo(video, viewer) {
		return Video{}, apperr.NotFound("Video")
	}

	counted, ok := service.videoRepository.AddView(context, id)
	if !ok {
		// Deleted between lookup and increment; treat as missing.
		return Video{}, apperr.NotFound("Video")
	}

	return counted, nil
}

/*
ListPublic returns one page of the public catalogue.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Video: The requested page in storage order
  - pagination.Meta: Total count and page arithmetic
*/
func (service *Service) ListPublic(context context.Context, params pagination.Params) ([]Video, pagination.Meta) {
	visible := service.videoRepository.PublicActive(context)
	return pagination.Cut(visible, params), pagination.NewMeta(params.Page, params.Limit, len(visible))
}

/*
Mine lists the authenticated uploader's own videos, private ones included.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - []Video: The owner's active videos in storage order
*/
func (service *Service) Mine(context context.Context, ownerID string) []Video {
	return service.videoRepository.ByOwner(context, ownerID)
}

// UpdateInput defines the mutable subset of video fields.
type UpdateInput struct {
	Name        *string
	Description *string
	IsPublic    *bool
	CategoryID  *string // empty string clears the category
}

/*
Update applies a partial set of changes to a video.

Description: Permitted for the owner and for moderators. A category change is
re-validated against the active catalogue; an empty category id detaches the
video from its category.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - id: string
  - input: UpdateInput

Returns:
  - Video: The updated entity
  - error: apperr.NotFound, apperr.Forbidden, apperr.InvalidReference
*/
func (service *Service) Update(context context.Context, actor *sec.AuthClaims, id string, input UpdateInput) (Video, error) {
	video, found := service.videoRepository.FindByID(context, id)
	if !found {
		return Video{}, apperr.NotFound("Video")
	}

	if !service.canManage(video, actor) {
		return Video{}, apperr.Forbidden("Only the uploader may modify this video")
	}

	if input.Name != nil {
		video.Name = *input.Name
	}
	if input.Description != nil {
		video.Description = *input.Description
	}
	if input.IsPublic != nil {
		video.IsPublic = *input.IsPublic
	}
	if input.CategoryID != nil {
		if *input.CategoryID != "" {
			if _, found := service.categoryRepository.FindByID(context, *input.CategoryID); !found {
				return Video{}, apperr.InvalidReference("category_id", "Category does not exist")
			}
		}
		video.CategoryID = *input.CategoryID
	}

	if !service.videoRepository.Update(context, video) {
		return Video{}, apperr.NotFound("Video")
	}

	service.logger.Info("video_updated", slog.String("video_id", id))

	return video, nil
}

/*
Delete performs a soft-deletion of a video.

Description: Permitted for the owner and for moderators. Comments under the
video stay stored; the comments surface hides them once the video is gone.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - id: string

Returns:
  - error: apperr.NotFound, apperr.Forbidden
*/
func (service *Service) Delete(context context.Context, actor *sec.AuthClaims, id string) error {
	video, found := service.videoRepository.FindByID(context, id)
	if !found {
		return apperr.NotFound("Video")
	}

	if !service.canManage(video, actor) {
		return apperr.Forbidden("Only the uploader may delete this video")
	}

	if !service.videoRepository.SoftDelete(context, id) {
		return apperr.NotFound("Video")
	}

	service.logger.Info("video_deleted",
		slog.String("video_id", id),
		slog.String("actor_id", actor.UserID),
	)

	return nil
}

// # Engagement Counters

/*
Like increments the like counter of a publicly visible video.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - Video: The updated entity
  - error: apperr.NotFound when the video is not publicly visible
*/
func (service *Service) Like(context context.Context, id string) (Video, error) {
	return service.react(context, id, service.videoRepository.AddLike)
}

/*
Dislike increments the dislike counter of a publicly visible video.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - Video: The updated entity
  - error: apperr.NotFound when the video is not publicly visible
*/
func (service *Service) Dislike(context context.Context, id string) (Video, error) {
	return service.react(context, id, service.videoRepository.AddDislike)
}

// react guards a counter increment behind the public-visibility rule.
func (service *Service) react(context context.Context, id string, increment func(context.Context, string) (Video, bool)) (Video, error) {
	video, found := service.videoRepository.FindByID(context, id)
	if !found || !video.IsPublic {
		return Video{}, apperr.NotFound("Video")
	}

	updated, ok := increment(context, id)
	if !ok {
		return Video{}, apperr.NotFound("Video")
	}

	return updated, nil
}

// # Discovery Surfaces

/*
Search finds public videos whose name or description contains the query.

Description: Matching is a case-insensitive substring test. Name matches rank
before description-only matches; a video matching both appears once.

Parameters:
  - context: context.Context
  - query: string
  - limit: int

Returns:
  - []Video: Deduplicated matches, name matches first
*/
func (service *Service) Search(context context.Context, query string, limit int) []Video {
	needle := strings.TrimSpace(query)
	if needle == "" {
		return []Video{}
	}

	matches := make([]Video, 0)
	seen := make(map[string]struct{})

	for _, video := range service.videoRepository.SearchByName(context, needle) {
		matches = append(matches, video)
		seen[video.ID] = struct{}{}
	}
	for _, video := range service.videoRepository.SearchByDescription(context, needle) {
		if _, already := seen[video.ID]; already {
			continue
		}
		matches = append(matches, video)
	}

	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}

	return matches
}

/*
Trending returns the highest-scored public videos.

Parameters:
  - context: context.Context
  - limit: int

Returns:
  - []Video: Ranked by popularity score, descending
*/
func (service *Service) Trending(context context.Context, limit int) []Video {
	return ranking.Trending(service.videoRepository.AllActive(context), limit)
}

/*
Similar returns videos related to the given one.

Description: Same-category videos ranked by score, excluding the source
itself; falls back to the trending list when the source is unknown,
uncategorized, or alone in its category.

Parameters:
  - context: context.Context
  - id: string (Source video)
  - limit: int

Returns:
  - []Video: Related videos, never containing the source
*/
func (service *Service) Similar(context context.Context, id string, limit int) []Video {
	return ranking.RecommendationsFor(id, service.videoRepository.AllActive(context), limit)
}

/*
ByCategory returns the public videos of one category under a chosen ordering.

Parameters:
  - context: context.Context
  - categoryID: string
  - limit: int
  - sort: ranking.SortKey (views, likes, or recent)

Returns:
  - []Video: Ordered category members
  - error: apperr.NotFound when the category does not exist
*/
func (service *Service) ByCategory(context context.Context, categoryID string, limit int, sort ranking.SortKey) ([]Video, error) {
	if _, found := service.categoryRepository.FindByID(context, categoryID); !found {
		return nil, apperr.NotFound("Category")
	}

	members := service.videoRepository.ByCategory(context, categoryID)
	return ranking.ByCategorySorted(categoryID, members, limit, sort), nil
}

/*
ByUserLink lists the public videos of the account behind a profile handle.

Parameters:
  - context: context.Context
  - link: string (Short public handle)

Returns:
  - []Video: The account's public videos in storage order
  - error: apperr.NotFound when no active account holds the handle
*/
func (service *Service) ByUserLink(context context.Context, link string) ([]Video, error) {
	user, found := service.userRepository.FindByProfileLink(context, link)
	if !found {
		return nil, apperr.NotFound("User")
	}

	owned := service.videoRepository.ByOwner(context, user.ID)
	public := make([]Video, 0, len(owned))
	for _, video := range owned {
		if video.IsPublic {
			public = append(public, video)
		}
	}

	return public, nil
}

// CategoryHighlight is one category with its most-viewed videos.
type CategoryHighlight struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	Videos       []Video `json:"videos"`
}

/*
TopPerCategory returns the most-viewed public videos of every category.

Description: Videos without a category are grouped under the "none" key with
no name. Category names are resolved from the active catalogue; a group whose
category has been deleted keeps its id but carries no name.

Parameters:
  - context: context.Context
  - topN: int (Videos kept per category)

Returns:
  - []CategoryHighlight: One entry per category, first-occurrence order
*/
func (service *Service) TopPerCategory(context context.Context, topN int) []CategoryHighlight {
	groups := ranking.TopPerCategory(service.videoRepository.AllActive(context), topN)

	return slice.Map(groups, func(group ranking.CategoryGroup[Video]) CategoryHighlight {
		highlight := CategoryHighlight{
			CategoryID: group.CategoryID,
			Videos:     group.TopVideos,
		}
		if group.CategoryID != ranking.NoCategory {
			if category, found := service.categoryRepository.FindByID(context, group.CategoryID); found {
				highlight.CategoryName = category.Name
			}
		}
		return highlight
	})
}

// # Helpers

// visibleTo reports whether the viewer may see the video.
func (service *Service) visibleTo(video Video, viewer *sec.AuthClaims) bool {
	if video.IsPublic {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.UserID == video.OwnerID || sec.UserRole(viewer.Role).AtLeast(sec.RoleModerator)
}

// canManage reports whether the actor may modify or delete the video.
func (service *Service) canManage(video Video, actor *sec.AuthClaims) bool {
	if actor == nil {
		return false
	}
	return actor.UserID == video.OwnerID || sec.UserRole(actor.Role).AtLeast(sec.RoleModerator)
}
