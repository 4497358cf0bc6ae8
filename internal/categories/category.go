// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package categories manages the catalogue of video categories.

Categories are flat labels (no hierarchy) that videos may reference by id.
The package owns their lifecycle and name uniqueness; the videos package
consults it when validating category references.

# Architecture

  - Entities: Category.
  - Storage: JSON document collection (categories.json).
  - Security: Creation and deletion require the admin role.
*/
package categories

import "context"

// # Domain Entities

// Category represents a single video category label.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDeleted bool   `json:"is_deleted"`
}

// DocID returns the document identity for collection storage.
func (c Category) DocID() string { return c.ID }

// DocDeleted reports the soft-deletion flag.
func (c Category) DocDeleted() bool { return c.IsDeleted }

// WithDeleted returns a copy with the soft-deletion flag set.
func (c Category) WithDeleted(deleted bool) Category {
	c.IsDeleted = deleted
	return c
}

// # Repository Contracts

// CategoryRepository defines the persistence contract for categories.
type CategoryRepository interface {
	/*
		AllActive lists every non-deleted category.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Category: Active categories in storage order
	*/
	AllActive(context context.Context) []Category

	/*
		FindByID retrieves one active category by id.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - Category: Loaded entity
		  - bool: False when absent or deleted
	*/
	FindByID(context context.Context, id string) (Category, bool)

	/*
		FindByName retrieves one active category by case-insensitive name.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - Category: Loaded entity
		  - bool: False when no active category carries the name
	*/
	FindByName(context context.Context, name string) (Category, bool)

	/*
		Create appends a new category document.

		Parameters:
		  - context: context.Context
		  - category: Category (Fully populated entity)

		Returns:
		  - bool: False when the id already exists
	*/
	Create(context context.Context, category Category) bool

	/*
		SoftDelete flags a category as logically deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - bool: False when the category does not exist
	*/
	SoftDelete(context context.Context, id string) bool
}
