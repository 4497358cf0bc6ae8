// Copyright (c) 2026 Vidora. All rights reserved.

package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidora/vidora/internal/platform/middleware"
	requestutil "github.com/vidora/vidora/internal/platform/request"
	"github.com/vidora/vidora/internal/platform/respond"
	"github.com/vidora/vidora/internal/platform/validate"
)

// Handler implements the HTTP layer for comment threads.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] configured with the comment endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public thread reading (visibility still applies per video)
	router.Get("/video/{id}", handler.threadsForVideo)
	router.Get("/{id}/thread", handler.thread)

	// Authoring
	router.Group(func(private chi.Router) {
		private.Use(middleware.RequireAuth)
		private.Post("/", handler.create)
		private.Get("/mine", handler.mine)
		private.Delete("/{id}", handler.remove)
	})

	return router
}

// # Thread Endpoints

/*
GET /api/v1/comments/video/{id}.

Description: Returns the reconstructed discussion under a video: thread roots
in posting order, each with its replies in chronological order.

Request:
  - id: string (Video UUID)

Response:
  - 200: []Thread: Reconstructed threads
  - 404: ErrNotFound: Video unknown or not visible
*/
func (handler *Handler) threadsForVideo(writer http.ResponseWriter, request *http.Request) {
	threads, err := handler.commentService.ThreadsFor(request.Context(), requestutil.Param(request, "id"), requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, threads)
}

/*
GET /api/v1/comments/{id}/thread.

Description: Returns one comment together with its direct replies in
chronological order. Works for roots and replies alike.

Request:
  - id: string (Comment UUID)

Response:
  - 200: Thread: The comment with its direct replies
  - 404: ErrNotFound: Comment unknown or its video not visible
*/
func (handler *Handler) thread(writer http.ResponseWriter, request *http.Request) {
	thread, err := handler.commentService.ThreadOf(request.Context(), requestutil.Param(request, "id"), requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, thread)
}

// createCommentRequest defines the expected JSON payload for posting.
type createCommentRequest struct {
	VideoID  string  `json:"video_id"`
	ParentID *string `json:"parent_id"`
	Text     string  `json:"text"`
}

/*
POST /api/v1/comments.

Description: Posts a comment, or a reply when parent_id is set.

Request:
  - body: createCommentRequest

Response:
  - 201: Comment: The created entity
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 422: ErrInvalidReference: Dangling video or parent reference
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("video_id", input.VideoID).UUID("video_id", input.VideoID).
		Required("text", input.Text).MaxLen("text", input.Text, 2000)
	if input.ParentID != nil {
		v.UUID("parent_id", *input.ParentID)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Create(request.Context(), userID, CreateInput{
		VideoID:  input.VideoID,
		ParentID: input.ParentID,
		Text:     input.Text,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
GET /api/v1/comments/mine.

Description: Lists the authenticated user's own comments.

Response:
  - 200: []Comment: The caller's active comments
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) mine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.commentService.Mine(request.Context(), userID))
}

/*
DELETE /api/v1/comments/{id}.

Description: Soft-deletes a comment. Author, video owner, and moderators only.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Comment deleted
  - 403: ErrForbidden: Caller may not remove this comment
  - 404: ErrNotFound: Unknown comment
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	if err := handler.commentService.Delete(request.Context(), requestutil.Claims(request), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
