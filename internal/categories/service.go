// Copyright (c) 2026 Vidora. All rights reserved.

package categories

import (
	"context"
	"log/slog"

	"github.com/vidora/vidora/internal/platform/apperr"
	"github.com/vidora/vidora/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for the category catalogue.
//
// It enforces case-insensitive name uniqueness on creation; the repository
// itself stays permissive.
type Service struct {
	categoryRepository CategoryRepository
	logger             *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository CategoryRepository, logger *slog.Logger) *Service {
	return &Service{
		categoryRepository: repository,
		logger:             logger,
	}
}

// # Catalogue Operations

/*
List returns every active category.

Parameters:
  - context: context.Context

Returns:
  - []Category: Active categories in storage order
*/
func (service *Service) List(context context.Context) []Category {
	return service.categoryRepository.AllActive(context)
}

/*
Get retrieves a single active category by id.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - Category: The loaded entity
  - error: apperr.NotFound when absent or deleted
*/
func (service *Service) Get(context context.Context, id string) (Category, error) {
	category, found := service.categoryRepository.FindByID(context, id)
	if !found {
		return Category{}, apperr.NotFound("Category")
	}
	return category, nil
}

/*
Create registers a new category with a unique name.

Description: Names are compared case-insensitively against active categories.
A name held only by a deleted category may be reused.

Parameters:
  - context: context.Context
  - name: string (Already validated by the transport layer)

Returns:
  - Category: The persisted entity
  - error: apperr.Conflict on duplicate name, apperr.Conflict on id collision
*/
func (service *Service) Create(context context.Context, name string) (Category, error) {

	// Business: category names are unique among active entries
	if _, exists := service.categoryRepository.FindByName(context, name); exists {
		return Category{}, apperr.Conflict("A category with this name already exists")
	}

	category := Category{
		ID:   uuidv7.Must(),
		Name: name,
	}

	if !service.categoryRepository.Create(context, category) {
		return Category{}, apperr.Conflict("Category identifier collision")
	}

	service.logger.Info("category_created",
		slog.String("category_id", category.ID),
		slog.String("name", category.Name),
	)

	return category, nil
}

/*
Delete performs a soft-deletion of a category.

Description: Videos referencing the category keep their category_id; the
ranking layer simply stops listing the category itself.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when the category does not exist
*/
func (service *Service) Delete(context context.Context, id string) error {
	if !service.categoryRepository.SoftDelete(context, id) {
		return apperr.NotFound("Category")
	}

	service.logger.Info("category_deleted", slog.String("category_id", id))

	return nil
}
