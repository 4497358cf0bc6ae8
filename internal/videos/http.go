// Copyright (c) 2026 Vidora. All rights reserved.

package videos

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidora/vidora/internal/platform/middleware"
	requestutil "github.com/vidora/vidora/internal/platform/request"
	"github.com/vidora/vidora/internal/platform/respond"
	"github.com/vidora/vidora/internal/platform/validate"
	"github.com/vidora/vidora/internal/ranking"
	"github.com/vidora/vidora/pkg/convert"
	"github.com/vidora/vidora/pkg/pagination"
)

// defaultDiscoveryLimit caps discovery surfaces when the client names none.
const defaultDiscoveryLimit = 10

// Handler implements the HTTP layer for the video catalogue.
type Handler struct {
	videoService *Service
}

// NewHandler constructs a new video [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{videoService: service}
}

// Routes returns a [chi.Router] configured with the video endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public catalogue and discovery
	router.Get("/", handler.list)
	router.Get("/trending", handler.trending)
	router.Get("/search", handler.search)
	router.Get("/top-categories", handler.topPerCategory)
	router.Get("/category/{id}", handler.byCategory)
	router.Get("/by-user/{link}", handler.byUserLink)
	router.Get("/{id}", handler.get)
	router.Get("/{id}/similar", handler.similar)

	// Uploader management and reactions
	router.Group(func(private chi.Router) {
		private.Use(middleware.RequireAuth)
		private.Post("/", handler.create)
		private.Get("/mine", handler.mine)
		private.Patch("/{id}", handler.update)
		private.Delete("/{id}", handler.remove)
		private.Post("/{id}/like", handler.like)
		private.Post("/{id}/dislike", handler.dislike)
	})

	return router
}

// # Catalogue Endpoints

/*
GET /api/v1/videos.

Description: Lists the public catalogue one page at a time.

Request:
  - page, limit: int (Query, optional)

Response:
  - 200: []Video with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	page, meta := handler.videoService.ListPublic(request.Context(), params)
	respond.Paginated(writer, page, meta)
}

/*
GET /api/v1/videos/{id}.

Description: Retrieves one video and counts the view. Private videos resolve
only for their owner and for moderators.

Request:
  - id: string (UUID)

Response:
  - 200: Video: Metadata with the incremented view counter
  - 404: ErrNotFound: Unknown, deleted, or not visible
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	video, err := handler.videoService.Get(request.Context(), requestutil.Param(request, "id"), requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

// createVideoRequest defines the expected JSON payload for video registration.
type createVideoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
	CategoryID  string `json:"category_id"`
}

/*
POST /api/v1/videos.

Description: Registers video metadata for the authenticated uploader.

Request:
  - body: createVideoRequest

Response:
  - 201: Video: The created entity
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 422: ErrInvalidReference: Dangling category reference
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createVideoRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MinLen("name", input.Name, 1).MaxLen("name", input.Name, 120).
		MaxLen("description", input.Description, 5000)
	if input.CategoryID != "" {
		v.UUID("category_id", input.CategoryID)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.videoService.Create(request.Context(), userID, CreateInput{
		Name:        input.Name,
		Description: input.Description,
		IsPublic:    input.IsPublic,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video)
}

/*
GET /api/v1/videos/mine.

Description: Lists the authenticated uploader's videos, private ones included.

Response:
  - 200: []Video: The caller's active videos
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) mine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.videoService.Mine(request.Context(), userID))
}

// updateVideoRequest defines the expected JSON payload for partial updates.
type updateVideoRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
	CategoryID  *string `json:"category_id"`
}

/*
PATCH /api/v1/videos/{id}.

Description: Applies partial updates. Owner and moderators only.

Request:
  - id: string (UUID)
  - body: updateVideoRequest (Partial JSON)

Response:
  - 200: Video: The updated entity
  - 403: ErrForbidden: Caller is neither owner nor moderator
  - 404: ErrNotFound: Unknown video
  - 422: ErrInvalidReference: Dangling category reference
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateVideoRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.MinLen("name", *input.Name, 1).MaxLen("name", *input.Name, 120)
	}
	if input.Description != nil {
		v.MaxLen("description", *input.Description, 5000)
	}
	if input.CategoryID != nil && *input.CategoryID != "" {
		v.UUID("category_id", *input.CategoryID)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.videoService.Update(request.Context(), requestutil.Claims(request), requestutil.Param(request, "id"), UpdateInput{
		Name:        input.Name,
		Description: input.Description,
		IsPublic:    input.IsPublic,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

/*
DELETE /api/v1/videos/{id}.

Description: Soft-deletes a video. Owner and moderators only.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Video deleted
  - 403: ErrForbidden: Caller is neither owner nor moderator
  - 404: ErrNotFound: Unknown video
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	if err := handler.videoService.Delete(request.Context(), requestutil.Claims(request), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Reaction Endpoints

/*
POST /api/v1/videos/{id}/like.

Description: Increments the like counter of a public video.

Response:
  - 200: Video: Updated counters
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Video not publicly visible
*/
func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	video, err := handler.videoService.Like(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

/*
POST /api/v1/videos/{id}/dislike.

Description: Increments the dislike counter of a public video.

Response:
  - 200: Video: Updated counters
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Video not publicly visible
*/
func (handler *Handler) dislike(writer http.ResponseWriter, request *http.Request) {
	video, err := handler.videoService.Dislike(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

// # Discovery Endpoints

/*
GET /api/v1/videos/trending.

Description: Returns the highest-scored public videos.

Request:
  - limit: int (Query, default 10)

Response:
  - 200: []Video: Ranked by popularity, descending
*/
func (handler *Handler) trending(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToIntD(request.URL.Query().Get("limit"), defaultDiscoveryLimit)
	respond.OK(writer, handler.videoService.Trending(request.Context(), limit))
}

/*
GET /api/v1/videos/search.

Description: Case-insensitive substring search over public names and
descriptions. Name matches rank before description-only matches.

Request:
  - q: string (Query, required)
  - limit: int (Query, default 10)

Response:
  - 200: []Video: Deduplicated matches
  - 400: Validation: Empty query
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("q")

	v := &validate.Validator{}
	v.Required("q", query).MaxLen("q", query, 200)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit := convert.ToIntD(request.URL.Query().Get("limit"), defaultDiscoveryLimit)
	respond.OK(writer, handler.videoService.Search(request.Context(), query, limit))
}

/*
GET /api/v1/videos/{id}/similar.

Description: Returns videos related to the given one, falling back to the
trending list when no same-category peers exist.

Request:
  - id: string (UUID)
  - limit: int (Query, default 10)

Response:
  - 200: []Video: Related videos, never containing the source
*/
func (handler *Handler) similar(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToIntD(request.URL.Query().Get("limit"), defaultDiscoveryLimit)
	respond.OK(writer, handler.videoService.Similar(request.Context(), requestutil.Param(request, "id"), limit))
}

/*
GET /api/v1/videos/category/{id}.

Description: Lists a category's public videos under a chosen ordering.

Request:
  - id: string (Category UUID)
  - sort: string (Query: views, likes, or recent; default views)
  - limit: int (Query, default 10)

Response:
  - 200: []Video: Ordered category members
  - 400: Validation: Unknown sort key
  - 404: ErrNotFound: Unknown category
*/
func (handler *Handler) byCategory(writer http.ResponseWriter, request *http.Request) {
	sort := request.URL.Query().Get("sort")
	if sort == "" {
		sort = string(ranking.SortViews)
	}

	v := &validate.Validator{}
	v.OneOf("sort", sort, string(ranking.SortViews), string(ranking.SortLikes), string(ranking.SortRecent))
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit := convert.ToIntD(request.URL.Query().Get("limit"), defaultDiscoveryLimit)
	videos, err := handler.videoService.ByCategory(request.Context(), requestutil.Param(request, "id"), limit, ranking.SortKey(sort))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, videos)
}

/*
GET /api/v1/videos/by-user/{link}.

Description: Lists the public videos uploaded by the account behind a short
profile handle.

Request:
  - link: string (Short public handle)

Response:
  - 200: []Video: The account's public videos
  - 404: ErrNotFound: Unknown handle
*/
func (handler *Handler) byUserLink(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.videoService.ByUserLink(request.Context(), requestutil.Param(request, "link"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

/*
GET /api/v1/videos/top-categories.

Description: Returns every category's most-viewed public videos, resolved
with category names.

Request:
  - limit: int (Query, videos per category, default 10)

Response:
  - 200: []CategoryHighlight: One entry per category
*/
func (handler *Handler) topPerCategory(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToIntD(request.URL.Query().Get("limit"), defaultDiscoveryLimit)
	respond.OK(writer, handler.videoService.TopPerCategory(request.Context(), limit))
}
