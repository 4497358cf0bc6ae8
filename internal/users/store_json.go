// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package users (JSON) implements the storage layer for accounts.

All natural-key lookups scan the active set linearly; Taken checks scan the
full set so deleted accounts keep their keys reserved. The context parameter
is accepted for contract uniformity; flat-file access does not observe
cancellation.
*/
package users

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vidora/vidora/internal/platform/constants"
	"github.com/vidora/vidora/internal/platform/jsonstore"
	"github.com/vidora/vidora/pkg/slice"
)

// # Repository Implementation

// JSONUserRepository implements [UserRepository] over a JSON collection.
type JSONUserRepository struct {
	collection *jsonstore.Collection[User]
}

// NewUserRepository opens (creating if necessary) the users collection.
func NewUserRepository(dataDir string, logger *slog.Logger) (*JSONUserRepository, error) {
	collection, err := jsonstore.New[User](dataDir, constants.FileUsers, "users", logger)
	if err != nil {
		return nil, err
	}
	return &JSONUserRepository{collection: collection}, nil
}

// AllActive lists every non-deleted account in storage order.
func (repository *JSONUserRepository) AllActive(_ context.Context) []User {
	return repository.collection.ListActive()
}

// FindByID retrieves one active account by id.
func (repository *JSONUserRepository) FindByID(_ context.Context, id string) (User, bool) {
	user, found := repository.collection.FindByID(id)
	if !found || user.IsDeleted {
		return User{}, false
	}
	return user, true
}

// FindByEmail retrieves one active account by case-insensitive email.
func (repository *JSONUserRepository) FindByEmail(_ context.Context, email string) (User, bool) {
	return slice.First(repository.collection.ListActive(), func(user User) bool {
		return strings.EqualFold(user.Email, email)
	})
}

// FindByName retrieves one active account by exact username.
func (repository *JSONUserRepository) FindByName(_ context.Context, name string) (User, bool) {
	return slice.First(repository.collection.ListActive(), func(user User) bool {
		return user.Name == name
	})
}

// FindByProfileLink retrieves one active account by its public handle.
func (repository *JSONUserRepository) FindByProfileLink(_ context.Context, link string) (User, bool) {
	return slice.First(repository.collection.ListActive(), func(user User) bool {
		return user.ProfileLink == link
	})
}

// EmailTaken reports whether any account, deleted included, holds the email.
func (repository *JSONUserRepository) EmailTaken(_ context.Context, email string) bool {
	_, taken := slice.First(repository.collection.LoadAll(), func(user User) bool {
		return strings.EqualFold(user.Email, email)
	})
	return taken
}

// NameTaken reports whether any account, deleted included, holds the username.
// Usernames are unique case-insensitively, so "Alice" blocks "alice".
func (repository *JSONUserRepository) NameTaken(_ context.Context, name string) bool {
	_, taken := slice.First(repository.collection.LoadAll(), func(user User) bool {
		return strings.EqualFold(user.Name, name)
	})
	return taken
}

// Create appends a new account document.
func (repository *JSONUserRepository) Create(_ context.Context, user User) bool {
	return repository.collection.Create(user)
}

// Update replaces an account document in full.
func (repository *JSONUserRepository) Update(_ context.Context, user User) bool {
	return repository.collection.Update(user.ID, user)
}

// SoftDelete flags an account as logically deleted.
func (repository *JSONUserRepository) SoftDelete(_ context.Context, id string) bool {
	return repository.collection.Delete(id)
}
