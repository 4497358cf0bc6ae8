// Copyright (c) 2026 Vidora. All rights reserved.

package categories

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidora/vidora/internal/platform/apperr"
	"github.com/vidora/vidora/internal/platform/middleware"
	requestutil "github.com/vidora/vidora/internal/platform/request"
	"github.com/vidora/vidora/internal/platform/respond"
	"github.com/vidora/vidora/internal/platform/sec"
	"github.com/vidora/vidora/internal/platform/validate"
)

// Handler implements the HTTP layer for the category catalogue.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns a [chi.Router] configured with the category endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public catalogue
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// Admin management
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth)
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.create)
		admin.Delete("/{id}", handler.remove)
	})

	return router
}

// # Catalogue Endpoints

/*
GET /api/v1/categories.

Description: Lists every active category.

Response:
  - 200: []Category: Active categories
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.categoryService.List(request.Context()))
}

/*
GET /api/v1/categories/{id}.

Description: Retrieves one category by id.

Request:
  - id: string (UUID)

Response:
  - 200: Category: The requested category
  - 404: ErrNotFound: Unknown or deleted category
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	if id == "" {
		respond.Error(writer, request, apperr.NotFound("Category"))
		return
	}

	category, err := handler.categoryService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

// createCategoryRequest defines the expected JSON payload for category creation.
type createCategoryRequest struct {
	Name string `json:"name"`
}

/*
POST /api/v1/categories.

Description: Creates a new category. Admin only.

Request:
  - body: createCategoryRequest

Response:
  - 201: Category: The created category
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: Caller lacks the admin role
  - 409: ErrConflict: Duplicate category name
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MinLen("name", input.Name, 2).MaxLen("name", input.Name, 60)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Create(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
DELETE /api/v1/categories/{id}.

Description: Soft-deletes a category. Admin only.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Category deleted
  - 403: ErrForbidden: Caller lacks the admin role
  - 404: ErrNotFound: Unknown category
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.categoryService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
