// Copyright (c) 2026 Vidora. All rights reserved.

package users_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora/vidora/internal/platform/apperr"
	"github.com/vidora/vidora/internal/users"
)

// staticIssuer issues a fixed token so tests stay free of key material.
type staticIssuer struct{ token string }

func (issuer staticIssuer) GenerateAccessToken(_, _, _ string, _ time.Duration) (string, error) {
	return issuer.token, nil
}

func newTestService(t *testing.T) *users.Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	repository, err := users.NewUserRepository(t.TempDir(), logger)
	require.NoError(t, err)

	return users.NewService(repository, staticIssuer{token: "test-token"}, nil, logger)
}

func register(t *testing.T, service *users.Service, name, email string) users.Profile {
	t.Helper()

	profile, err := service.Register(context.Background(), users.RegisterInput{
		Name:     name,
		Email:    email,
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return profile
}

func TestServiceRegister(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	profile := register(t, service, "alice", "alice@example.com")
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "alice", profile.Name)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "user", profile.Role)
	assert.Len(t, profile.ProfileLink, 6)
	assert.NotEmpty(t, profile.RegisteredAt)

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := service.Register(ctx, users.RegisterInput{
			Name:     "someone-else",
			Email:    "alice@example.com",
			Password: "another password",
		})
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "CONFLICT", appError.Code)
	})

	t.Run("email comparison is case-insensitive", func(t *testing.T) {
		_, err := service.Register(ctx, users.RegisterInput{
			Name:     "someone-else",
			Email:    "ALICE@example.com",
			Password: "another password",
		})
		require.Error(t, err)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		_, err := service.Register(ctx, users.RegisterInput{
			Name:     "alice",
			Email:    "alice2@example.com",
			Password: "another password",
		})
		require.Error(t, err)
	})

	t.Run("username comparison is case-insensitive", func(t *testing.T) {
		_, err := service.Register(ctx, users.RegisterInput{
			Name:     "Alice",
			Email:    "other@example.com",
			Password: "another password",
		})
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "CONFLICT", appError.Code)
	})

	t.Run("deleted account keeps its keys reserved", func(t *testing.T) {
		require.NoError(t, service.DeleteAccount(ctx, profile.ID))

		_, err := service.Register(ctx, users.RegisterInput{
			Name:     "alice",
			Email:    "alice@example.com",
			Password: "yet another password",
		})
		require.Error(t, err)
	})
}

func TestServiceLogin(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	register(t, service, "bob", "bob@example.com")

	t.Run("valid credentials issue a token", func(t *testing.T) {
		result, err := service.Login(ctx, "bob@example.com", "correct horse battery")
		require.NoError(t, err)
		assert.Equal(t, "test-token", result.AccessToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Positive(t, result.ExpiresIn)
		assert.Equal(t, "bob", result.User.Name)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		_, err := service.Login(ctx, "BOB@example.com", "correct horse battery")
		require.NoError(t, err)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, wrongPassword := service.Login(ctx, "bob@example.com", "wrong")
		require.Error(t, wrongPassword)

		_, unknownEmail := service.Login(ctx, "nobody@example.com", "correct horse battery")
		require.Error(t, unknownEmail)

		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})
}

func TestServiceProfiles(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	owner := register(t, service, "carol", "carol@example.com")

	t.Run("owner profile includes email", func(t *testing.T) {
		profile, err := service.GetProfile(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "carol@example.com", profile.Email)
	})

	t.Run("public profile hides private fields", func(t *testing.T) {
		profile, err := service.GetPublicProfile(ctx, owner.ProfileLink)
		require.NoError(t, err)
		assert.Empty(t, profile.Email)
		assert.Nil(t, profile.Birth)
		assert.Equal(t, "carol", profile.Name)
	})

	t.Run("unknown handle yields not found", func(t *testing.T) {
		_, err := service.GetPublicProfile(ctx, "zzzzzz")
		require.Error(t, err)
	})
}

func TestServiceUpdateProfile(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	owner := register(t, service, "dave", "dave@example.com")
	register(t, service, "erin", "erin@example.com")

	t.Run("renames the account", func(t *testing.T) {
		newName := "david"
		profile, err := service.UpdateProfile(ctx, owner.ID, users.UpdateProfileInput{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "david", profile.Name)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		taken := "erin"
		_, err := service.UpdateProfile(ctx, owner.ID, users.UpdateProfileInput{Name: &taken})
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "CONFLICT", appError.Code)
	})

	t.Run("rejects a case variant of a taken username", func(t *testing.T) {
		taken := "Erin"
		_, err := service.UpdateProfile(ctx, owner.ID, users.UpdateProfileInput{Name: &taken})
		require.Error(t, err)
	})

	t.Run("respelling your own name is not a collision", func(t *testing.T) {
		respelled := "David"
		profile, err := service.UpdateProfile(ctx, owner.ID, users.UpdateProfileInput{Name: &respelled})
		require.NoError(t, err)
		assert.Equal(t, "David", profile.Name)
	})

	t.Run("sets the birth date", func(t *testing.T) {
		birth := "1990-04-01"
		profile, err := service.UpdateProfile(ctx, owner.ID, users.UpdateProfileInput{Birth: &birth})
		require.NoError(t, err)
		require.NotNil(t, profile.Birth)
		assert.Equal(t, "1990-04-01", *profile.Birth)
	})
}

func TestServiceChangePassword(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	owner := register(t, service, "frank", "frank@example.com")

	t.Run("rejects a wrong current password", func(t *testing.T) {
		err := service.ChangePassword(ctx, owner.ID, "wrong", "brand new password")
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "UNAUTHORIZED", appError.Code)
	})

	t.Run("new password takes effect immediately", func(t *testing.T) {
		require.NoError(t, service.ChangePassword(ctx, owner.ID, "correct horse battery", "brand new password"))

		_, err := service.Login(ctx, "frank@example.com", "correct horse battery")
		require.Error(t, err)

		_, err = service.Login(ctx, "frank@example.com", "brand new password")
		require.NoError(t, err)
	})
}

func TestServiceAvatarUnconfigured(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	owner := register(t, service, "grace", "grace@example.com")

	_, _, err := service.AvatarUploadURL(ctx, owner.ID)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "SERVICE_UNAVAILABLE", appError.Code)
}
