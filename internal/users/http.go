// Copyright (c) 2026 Vidora. All rights reserved.

package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidora/vidora/internal/platform/apperr"
	"github.com/vidora/vidora/internal/platform/middleware"
	requestutil "github.com/vidora/vidora/internal/platform/request"
	"github.com/vidora/vidora/internal/platform/respond"
	"github.com/vidora/vidora/internal/platform/validate"
)

// Handler implements the HTTP layer for accounts.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new user [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// AuthRoutes returns the unauthenticated registration and login endpoints,
// mounted under /auth.
func (handler *Handler) AuthRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

// Routes returns the profile endpoints, mounted under /users.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Account self-management
	router.Group(func(private chi.Router) {
		private.Use(middleware.RequireAuth)
		private.Get("/me", handler.getMe)
		private.Patch("/me", handler.updateMe)
		private.Delete("/me", handler.deleteMe)
		private.Put("/me/password", handler.changePassword)
		private.Post("/me/avatar", handler.avatarUploadURL)
		private.Put("/me/avatar", handler.confirmAvatar)
	})

	// Public profile discovery by short handle
	router.Get("/{link}", handler.getPublicProfile)

	return router
}

// # Authentication Endpoints

// registerRequest defines the expected JSON payload for account registration.
type registerRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Birth    *string `json:"birth"`
}

/*
POST /api/v1/auth/register.

Description: Opens a new account and returns the owner profile.

Request:
  - body: registerRequest

Response:
  - 201: Profile: The created account
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: ErrConflict: Email or username already taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MinLen("name", input.Name, 2).MaxLen("name", input.Name, 50).
		Required("email", input.Email).Email("email", input.Email).
		Required("password", input.Password).MinLen("password", input.Password, 8).MaxLen("password", input.Password, 72)
	if input.Birth != nil && *input.Birth != "" {
		v.Date("birth", *input.Birth)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.userService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Birth:    input.Birth,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, profile)
}

// loginRequest defines the expected JSON payload for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/auth/login.

Description: Authenticates by email and password and issues a bearer token.

Request:
  - body: loginRequest

Response:
  - 200: LoginResult: Access token plus owner profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Bad credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("email", input.Email).Required("password", input.Password)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.userService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// # Profile Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: Profile: Owner-facing projection
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.userService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	Name  *string `json:"name"`
	Birth *string `json:"birth"`
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the authenticated user's profile.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: Profile: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 409: ErrConflict: Username already taken
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.MinLen("name", *input.Name, 2).MaxLen("name", *input.Name, 50)
	}
	if input.Birth != nil && *input.Birth != "" {
		v.Date("birth", *input.Birth)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.userService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Name:  input.Name,
		Birth: input.Birth,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
DELETE /api/v1/users/me.

Description: Performs a soft-deletion of the authenticated user's account.

Response:
  - 204: No Content: Account deleted successfully
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.userService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// changePasswordRequest defines the expected JSON payload for password changes.
type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
PUT /api/v1/users/me/password.

Description: Replaces the account password after verifying the current one.

Request:
  - body: changePasswordRequest

Response:
  - 204: No Content: Password changed
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Wrong current password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("current_password", input.CurrentPassword).
		Required("new_password", input.NewPassword).
		MinLen("new_password", input.NewPassword, 8).
		MaxLen("new_password", input.NewPassword, 72).
		Custom("new_password", input.NewPassword == input.CurrentPassword, "must differ from the current password")
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.userService.ChangePassword(request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/users/{link}.

Description: Retrieves the public profile behind a short handle.

Request:
  - link: string (Short public handle)

Response:
  - 200: Profile: Public projection
  - 404: ErrNotFound: Unknown handle
*/
func (handler *Handler) getPublicProfile(writer http.ResponseWriter, request *http.Request) {
	link := requestutil.Param(request, "link")
	if link == "" {
		respond.Error(writer, request, apperr.NotFound("User"))
		return
	}

	profile, err := handler.userService.GetPublicProfile(request.Context(), link)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// # Avatar Endpoints

// avatarUploadResponse carries the presigned target for a client-side upload.
type avatarUploadResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}

/*
POST /api/v1/users/me/avatar.

Description: Issues a presigned PUT URL the client uploads the avatar to.

Response:
  - 200: avatarUploadResponse: Presigned target
  - 401: ErrUnauthorized: Authentication required
  - 503: ErrServiceUnavailable: Object storage not configured
*/
func (handler *Handler) avatarUploadURL(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	uploadURL, objectKey, err := handler.userService.AvatarUploadURL(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, avatarUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey})
}

// confirmAvatarRequest names the uploaded object the account should adopt.
type confirmAvatarRequest struct {
	ObjectKey string `json:"object_key"`
}

/*
PUT /api/v1/users/me/avatar.

Description: Attaches a previously uploaded avatar object to the account.

Request:
  - body: confirmAvatarRequest

Response:
  - 200: Profile: Profile with the resolved avatar URL
  - 403: ErrForbidden: Key outside the caller's namespace
  - 404: ErrNotFound: Object missing from the bucket
*/
func (handler *Handler) confirmAvatar(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input confirmAvatarRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("object_key", input.ObjectKey)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.userService.ConfirmAvatar(request.Context(), userID, input.ObjectKey)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
