// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package users handles account identity: registration, login, profiles, and
avatar storage.

# Architecture

  - Entities: User; Profile is the transport-safe projection.
  - Storage: JSON document collection (users.json).
  - Security: Passwords are bcrypt-hashed before they reach storage; sessions
    are stateless RS256 access tokens.

# Uniqueness

Email, username, and profile link are natural keys among active accounts. The
repository stays permissive; the service checks uniqueness before every write.
A deleted account keeps occupying its email and username so a deletion cannot
be undone by re-registering.
*/
package users

import "context"

// # Domain Entities

// User represents a stored account, including credential material.
// It is never serialized to clients directly; see [User.Profile].
type User struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"password_hash"`
	Birth        *string `json:"birth,omitempty"` // YYYY-MM-DD, optional
	Role         string  `json:"role"`
	RegisteredAt string  `json:"registered_at"`
	ProfileLink  string  `json:"user_link"` // short public handle, e.g. "x7k2pq"
	AvatarKey    *string `json:"logo_loc,omitempty"`
	IsDeleted    bool    `json:"is_deleted"`
}

// DocID returns the document identity for collection storage.
func (u User) DocID() string { return u.ID }

// DocDeleted reports the soft-deletion flag.
func (u User) DocDeleted() bool { return u.IsDeleted }

// WithDeleted returns a copy with the soft-deletion flag set.
func (u User) WithDeleted(deleted bool) User {
	u.IsDeleted = deleted
	return u
}

// Profile is the transport-safe projection of a [User].
type Profile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email,omitempty"` // owner-only; blanked for public views
	Birth        *string `json:"birth,omitempty"`
	Role         string  `json:"role"`
	RegisteredAt string  `json:"registered_at"`
	ProfileLink  string  `json:"user_link"`
	AvatarURL    string  `json:"avatar_url,omitempty"`
}

// Profile maps the account to its owner-facing projection.
func (u User) Profile() Profile {
	return Profile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Birth:        u.Birth,
		Role:         u.Role,
		RegisteredAt: u.RegisteredAt,
		ProfileLink:  u.ProfileLink,
	}
}

// PublicProfile maps the account to the projection shown to other users.
func (u User) PublicProfile() Profile {
	profile := u.Profile()
	profile.Email = ""
	profile.Birth = nil
	return profile
}

// # Repository Contracts

// UserRepository defines the persistence contract for accounts.
type UserRepository interface {
	/*
		AllActive lists every non-deleted account.

		Parameters:
		  - context: context.Context

		Returns:
		  - []User: Active accounts in storage order
	*/
	AllActive(context context.Context) []User

	/*
		FindByID retrieves one active account by id.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - User: Loaded entity
		  - bool: False when absent or deleted
	*/
	FindByID(context context.Context, id string) (User, bool)

	/*
		FindByEmail retrieves one active account by case-insensitive email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - User: Loaded entity
		  - bool: False when no match exists
	*/
	FindByEmail(context context.Context, email string) (User, bool)

	/*
		FindByName retrieves one active account by exact username.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - User: Loaded entity
		  - bool: False when no match exists
	*/
	FindByName(context context.Context, name string) (User, bool)

	/*
		FindByProfileLink retrieves one active account by its public handle.

		Parameters:
		  - context: context.Context
		  - link: string

		Returns:
		  - User: Loaded entity
		  - bool: False when no match exists
	*/
	FindByProfileLink(context context.Context, link string) (User, bool)

	/*
		EmailTaken reports whether any account, deleted included, holds the email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - bool: True when the email is occupied
	*/
	EmailTaken(context context.Context, email string) bool

	/*
		NameTaken reports whether any account, deleted included, holds the username.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - bool: True when the username is occupied
	*/
	NameTaken(context context.Context, name string) bool

	/*
		Create appends a new account document.

		Parameters:
		  - context: context.Context
		  - user: User (Fully populated entity)

		Returns:
		  - bool: False when the id already exists
	*/
	Create(context context.Context, user User) bool

	/*
		Update replaces an account document in full.

		Parameters:
		  - context: context.Context
		  - user: User (Hydrated entity with changes)

		Returns:
		  - bool: False when the account does not exist
	*/
	Update(context context.Context, user User) bool

	/*
		SoftDelete flags an account as logically deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - bool: False when the account does not exist
	*/
	SoftDelete(context context.Context, id string) bool
}
