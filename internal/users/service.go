// Copyright (c) 2026 Vidora. All rights reserved.

package users

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vidora/vidora/internal/platform/apperr"
	"github.com/vidora/vidora/internal/platform/blob"
	"github.com/vidora/vidora/internal/platform/constants"
	"github.com/vidora/vidora/internal/platform/sec"
	"github.com/vidora/vidora/pkg/timestamp"
	"github.com/vidora/vidora/pkg/uuidv7"
)

// # Service Layer

// TokenIssuer abstracts access-token generation for login flows.
type TokenIssuer interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service orchestrates account identity: registration, authentication,
// profile management, and avatar storage.
//
// The avatar store may be nil when object storage is not configured; avatar
// operations then fail with a service-unavailable error while everything else
// keeps working.
type Service struct {
	userRepository UserRepository
	tokenIssuer    TokenIssuer
	avatarStore    *blob.Store
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository UserRepository, issuer TokenIssuer, avatarStore *blob.Store, logger *slog.Logger) *Service {
	return &Service{
		userRepository: repository,
		tokenIssuer:    issuer,
		avatarStore:    avatarStore,
		logger:         logger,
	}
}

// # Registration and Authentication

// RegisterInput defines the fields required to open an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Birth    *string
}

/*
Register opens a new account.

Description: Uniqueness of email and username is checked against every stored
account, deleted ones included, before any write happens. The public profile
link is generated and re-rolled until unoccupied.

Parameters:
  - context: context.Context
  - input: RegisterInput (Already validated by the transport layer)

Returns:
  - Profile: The owner-facing projection of the new account
  - error: apperr.Conflict on duplicate email/username, hashing failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (Profile, error) {

	// Business: natural keys are checked before any write
	if service.userRepository.EmailTaken(context, input.Email) {
		return Profile{}, apperr.Conflict("An account with this email already exists")
	}
	if service.userRepository.NameTaken(context, input.Name) {
		return Profile{}, apperr.Conflict("This username is already taken")
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return Profile{}, fmt.Errorf("user_service_register_hash_failed: %w", err)
	}

	profileLink, err := service.uniqueProfileLink(context)
	if err != nil {
		return Profile{}, fmt.Errorf("user_service_register_link_failed: %w", err)
	}

	user := User{
		ID:           uuidv7.Must(),
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		PasswordHash: passwordHash,
		Birth:        input.Birth,
		Role:         string(sec.RoleUser),
		RegisteredAt: timestamp.Now(),
		ProfileLink:  profileLink,
	}

	if !service.userRepository.Create(context, user) {
		return Profile{}, apperr.Conflict("Account identifier collision")
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("user_link", user.ProfileLink),
	)

	return service.withAvatar(context, user, user.Profile()), nil
}

// LoginResult bundles the issued token with the authenticated profile.
type LoginResult struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int     `json:"expires_in"` // seconds
	User        Profile `json:"user"`
}

/*
Login authenticates by email and password and issues an access token.

Description: Unknown email and wrong password produce the same error, so the
endpoint does not leak which accounts exist.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - LoginResult: Bearer token plus the owner profile
  - error: apperr.Unauthorized on bad credentials, token issuance failures
*/
func (service *Service) Login(context context.Context, email, password string) (LoginResult, error) {
	user, found := service.userRepository.FindByEmail(context, email)
	if !found || !sec.CheckPasswordHash(password, user.PasswordHash) {
		return LoginResult{}, apperr.Unauthorized("Invalid email or password")
	}

	token, err := service.tokenIssuer.GenerateAccessToken(user.ID, user.Name, user.Role, constants.AccessTokenTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("user_service_login_token_failed: %w", err)
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(constants.AccessTokenTTL.Seconds()),
		User:        service.withAvatar(context, user, user.Profile()),
	}, nil
}

// # Profile Management

/*
GetProfile retrieves the full private profile of an account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - Profile: Owner-facing projection
  - error: apperr.NotFound when absent or deleted
*/
func (service *Service) GetProfile(context context.Context, userID string) (Profile, error) {
	user, found := service.userRepository.FindByID(context, userID)
	if !found {
		return Profile{}, apperr.NotFound("User")
	}
	return service.withAvatar(context, user, user.Profile()), nil
}

/*
GetPublicProfile retrieves the public projection of an account by its handle.

Parameters:
  - context: context.Context
  - link: string (Short public handle)

Returns:
  - Profile: Public projection (no email, no birth date)
  - error: apperr.NotFound when no active account holds the handle
*/
func (service *Service) GetPublicProfile(context context.Context, link string) (Profile, error) {
	user, found := service.userRepository.FindByProfileLink(context, link)
	if !found {
		return Profile{}, apperr.NotFound("User")
	}
	return service.withAvatar(context, user, user.PublicProfile()), nil
}

// UpdateProfileInput defines the mutable subset of account fields.
type UpdateProfileInput struct {
	Name  *string
	Birth *string
}

/*
UpdateProfile applies a partial set of changes to an account.

Description: A username change re-runs the uniqueness check against every
stored account before the write.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - Profile: The updated owner projection
  - error: apperr.NotFound, apperr.Conflict on username collision
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (Profile, error) {
	user, found := service.userRepository.FindByID(context, userID)
	if !found {
		return Profile{}, apperr.NotFound("User")
	}

	if input.Name != nil && *input.Name != user.Name {
		// A case-only respelling of the caller's own name is not a collision.
		if !strings.EqualFold(*input.Name, user.Name) && service.userRepository.NameTaken(context, *input.Name) {
			return Profile{}, apperr.Conflict("This username is already taken")
		}
		user.Name = *input.Name
	}

	if input.Birth != nil {
		user.Birth = input.Birth
	}

	if !service.userRepository.Update(context, user) {
		return Profile{}, apperr.NotFound("User")
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return service.withAvatar(context, user, user.Profile()), nil
}

/*
ChangePassword replaces the account password after verifying the current one.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: apperr.NotFound, apperr.Unauthorized on wrong current password
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	user, found := service.userRepository.FindByID(context, userID)
	if !found {
		return apperr.NotFound("User")
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("user_service_change_password_hash_failed: %w", err)
	}

	user.PasswordHash = passwordHash
	if !service.userRepository.Update(context, user) {
		return apperr.NotFound("User")
	}

	service.logger.Info("user_password_changed", slog.String("user_id", userID))

	return nil
}

/*
DeleteAccount performs an idempotent soft-deletion of an account.

Description: The mark stays in the backing file, so the email and username
remain occupied and the account cannot be resurrected by re-registering.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound when the account does not exist
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if !service.userRepository.SoftDelete(context, userID) {
		return apperr.NotFound("User")
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))

	return nil
}

// # Avatar Storage

/*
AvatarUploadURL issues a presigned PUT URL for a new avatar object.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Presigned upload URL
  - string: Object key the client must confirm afterwards
  - error: apperr.ServiceUnavailable when object storage is not configured
*/
func (service *Service) AvatarUploadURL(context context.Context, userID string) (string, string, error) {
	if service.avatarStore == nil {
		return "", "", apperr.ServiceUnavailable("Avatar storage is not configured")
	}

	if _, found := service.userRepository.FindByID(context, userID); !found {
		return "", "", apperr.NotFound("User")
	}

	uploadURL, objectKey, err := service.avatarStore.UploadURL(context, "avatars", userID)
	if err != nil {
		return "", "", fmt.Errorf("user_service_avatar_presign_failed: %w", err)
	}

	return uploadURL, objectKey, nil
}

/*
ConfirmAvatar attaches an uploaded avatar object to the account.

Description: The key must belong to the caller's own namespace and the object
must actually exist in the bucket; only then is the reference persisted.

Parameters:
  - context: context.Context
  - userID: string
  - objectKey: string (Key returned by AvatarUploadURL)

Returns:
  - Profile: The updated owner projection
  - error: Validation, apperr.NotFound, storage failures
*/
func (service *Service) ConfirmAvatar(context context.Context, userID, objectKey string) (Profile, error) {
	if service.avatarStore == nil {
		return Profile{}, apperr.ServiceUnavailable("Avatar storage is not configured")
	}

	// Security: a user may only claim objects under their own prefix
	if !strings.HasPrefix(objectKey, "avatars/"+userID+"/") {
		return Profile{}, apperr.Forbidden("Object key does not belong to this account")
	}

	exists, err := service.avatarStore.Exists(context, objectKey)
	if err != nil {
		return Profile{}, fmt.Errorf("user_service_avatar_check_failed: %w", err)
	}
	if !exists {
		return Profile{}, apperr.NotFound("Avatar object")
	}

	user, found := service.userRepository.FindByID(context, userID)
	if !found {
		return Profile{}, apperr.NotFound("User")
	}

	user.AvatarKey = &objectKey
	if !service.userRepository.Update(context, user) {
		return Profile{}, apperr.NotFound("User")
	}

	service.logger.Info("user_avatar_updated", slog.String("user_id", userID))

	return service.withAvatar(context, user, user.Profile()), nil
}

// # Helpers

// uniqueProfileLink rolls short handles until one is free among active
// accounts. The keyspace (36^6) makes more than a couple of attempts
// vanishingly unlikely.
func (service *Service) uniqueProfileLink(context context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		link, err := sec.GenerateProfileLink(constants.ProfileLinkLength)
		if err != nil {
			return "", err
		}
		if _, taken := service.userRepository.FindByProfileLink(context, link); !taken {
			return link, nil
		}
	}
	return "", fmt.Errorf("user_service_profile_link_exhausted")
}

// withAvatar resolves the stored avatar key to a presigned download URL.
// Resolution failures degrade to a profile without an avatar URL.
func (service *Service) withAvatar(context context.Context, user User, profile Profile) Profile {
	if service.avatarStore == nil || user.AvatarKey == nil || *user.AvatarKey == "" {
		return profile
	}

	url, err := service.avatarStore.DownloadURL(context, *user.AvatarKey)
	if err != nil {
		service.logger.Error("user_avatar_resolve_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return profile
	}

	profile.AvatarURL = url
	return profile
}
