// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package categories (JSON) implements the storage layer for the category catalogue.

It is a thin wrapper over a [jsonstore.Collection]. The context parameter is
accepted for contract uniformity; flat-file reads and writes are bounded local
operations and do not observe cancellation.
*/
package categories

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vidora/vidora/internal/platform/constants"
	"github.com/vidora/vidora/internal/platform/jsonstore"
	"github.com/vidora/vidora/pkg/slice"
)

// # Repository Implementation

// JSONCategoryRepository implements [CategoryRepository] over a JSON collection.
type JSONCategoryRepository struct {
	collection *jsonstore.Collection[Category]
}

// NewCategoryRepository opens (creating if necessary) the categories collection.
func NewCategoryRepository(dataDir string, logger *slog.Logger) (*JSONCategoryRepository, error) {
	collection, err := jsonstore.New[Category](dataDir, constants.FileCategories, "categories", logger)
	if err != nil {
		return nil, err
	}
	return &JSONCategoryRepository{collection: collection}, nil
}

// AllActive lists every non-deleted category in storage order.
func (repository *JSONCategoryRepository) AllActive(_ context.Context) []Category {
	return repository.collection.ListActive()
}

// FindByID retrieves one active category by id.
func (repository *JSONCategoryRepository) FindByID(_ context.Context, id string) (Category, bool) {
	category, found := repository.collection.FindByID(id)
	if !found || category.IsDeleted {
		return Category{}, false
	}
	return category, true
}

// FindByName retrieves one active category by case-insensitive name.
func (repository *JSONCategoryRepository) FindByName(_ context.Context, name string) (Category, bool) {
	return slice.First(repository.collection.ListActive(), func(category Category) bool {
		return strings.EqualFold(category.Name, name)
	})
}

// Create appends a new category document.
func (repository *JSONCategoryRepository) Create(_ context.Context, category Category) bool {
	return repository.collection.Create(category)
}

// SoftDelete flags a category as logically deleted.
func (repository *JSONCategoryRepository) SoftDelete(_ context.Context, id string) bool {
	return repository.collection.Delete(id)
}
