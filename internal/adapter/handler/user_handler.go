package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olegk/users-api/internal/adapter/handler/dto/request"
	"github.com/olegk/users-api/internal/adapter/handler/dto/response"
	"github.com/olegk/users-api/internal/domain"
	"github.com/olegk/users-api/internal/pkg/httputil"
	"github.com/olegk/users-api/internal/usecase/user"
)

const allowedMethods = "GET, PUT, DELETE, OPTIONS"

type UserHandler struct {
	userSvc UserService
}

func NewUserHandler(userSvc UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// List godoc
//
//	@Summary		List all users
//	@Description	Returns every user record
//	@Tags			users
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{array}		response.UserResponse
//	@Failure		401	{object}	httputil.ErrorBody
//	@Router			/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.UsersFromEntities(users))
}

// Search godoc
//
//	@Summary		Search users
//	@Description	Matches name as a case-insensitive substring or email exactly
//	@Tags			users
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			search	query		string	true	"Search query"
//	@Success		200		{array}		response.UserResponse
//	@Failure		400		{object}	httputil.ValidationBody
//	@Failure		404		{object}	httputil.ErrorBody	"No users matched"
//	@Router			/users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	var q request.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httputil.ValidationErrors(c, request.FieldErrors(err))
		return
	}

	users, err := h.userSvc.Search(c.Request.Context(), q.Search)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoUsersFound):
			httputil.Error(c, http.StatusNotFound, "no users found")
		case errors.Is(err, domain.ErrInvalidSearch):
			// A whitespace-only query binds successfully but is still empty.
			httputil.ValidationErrors(c, []httputil.FieldError{
				{Field: "search", Message: "search is required"},
			})
		default:
			httputil.HandleError(c, err)
		}
		return
	}

	httputil.OK(c, response.UsersFromEntities(users))
}

// Get godoc
//
//	@Summary		Get a user by email
//	@Tags			users
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			email	path		string	true	"User email"
//	@Success		200		{object}	response.UserResponse
//	@Failure		400		{object}	httputil.ValidationBody
//	@Failure		404		{object}	httputil.ErrorBody
//	@Router			/users/{email} [get]
func (h *UserHandler) Get(c *gin.Context) {
	var p request.EmailParam
	if err := c.ShouldBindUri(&p); err != nil {
		httputil.ValidationErrors(c, request.FieldErrors(err))
		return
	}

	u, err := h.userSvc.GetByEmail(c.Request.Context(), p.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			httputil.Error(c, http.StatusNotFound, "user not found")
		default:
			httputil.HandleError(c, err)
		}
		return
	}

	httputil.OK(c, response.UserFromEntity(u))
}

// Create godoc
//
//	@Summary		Create a user
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			request	body		request.UserBody	true	"User data"
//	@Success		201		{object}	response.UserResponse
//	@Failure		400		{object}	httputil.ErrorBody	"Email already exists or invalid fields"
//	@Router			/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req request.UserBody
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationErrors(c, request.FieldErrors(err))
		return
	}

	u, err := h.userSvc.Create(c.Request.Context(), user.CreateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			httputil.Error(c, http.StatusBadRequest, "user with this email already exists")
		default:
			httputil.HandleError(c, err)
		}
		return
	}

	httputil.Created(c, response.UserFromEntity(u))
}

// Update godoc
//
//	@Summary		Update a user
//	@Description	Replaces name and email of the user addressed by email
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			email	path		string				true	"Current user email"
//	@Param			request	body		request.UserBody	true	"New user data"
//	@Success		200		{object}	response.UserResponse
//	@Failure		400		{object}	httputil.ErrorBody	"Email already in use or invalid fields"
//	@Failure		404		{object}	httputil.ErrorBody
//	@Router			/users/{email} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var p request.EmailParam
	if err := c.ShouldBindUri(&p); err != nil {
		httputil.ValidationErrors(c, request.FieldErrors(err))
		return
	}

	var req request.UserBody
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationErrors(c, request.FieldErrors(err))
		return
	}

	u, err := h.userSvc.Update(c.Request.Context(), p.Email, user.UpdateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			httputil.Error(c, http.StatusNotFound, "user not found")
		case errors.Is(err, domain.ErrEmailTaken):
			httputil.Error(c, http.StatusBadRequest, "this email is already in use")
		default:
			httputil.HandleError(c, err)
		}
		return
	}

	httputil.OK(c, response.UserFromEntity(u))
}

// Delete godoc
//
//	@Summary		Delete a user
//	@Tags			users
//	@Security		ApiKeyAuth
//	@Param			email	path	string	true	"User email"
//	@Success		204
//	@Failure		404	{object}	httputil.ErrorBody
//	@Router			/users/{email} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	var p request.EmailParam
	if err := c.ShouldBindUri(&p); err != nil {
		httputil.ValidationErrors(c, request.FieldErrors(err))
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), p.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			httputil.Error(c, http.StatusNotFound, "user not found")
		default:
			httputil.HandleError(c, err)
		}
		return
	}

	httputil.NoContent(c)
}

// Options godoc
//
//	@Summary		List allowed methods for the user resource
//	@Tags			users
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			email	path		string	true	"User email"
//	@Success		200		{object}	response.OptionsResponse
//	@Router			/users/{email} [options]
func (h *UserHandler) Options(c *gin.Context) {
	var p request.EmailParam
	if err := c.ShouldBindUri(&p); err != nil {
		httputil.ValidationErrors(c, request.FieldErrors(err))
		return
	}

	c.Header("Allow", allowedMethods)
	httputil.OK(c, response.OptionsResponse{
		Description: "User resource",
		Methods: map[string]string{
			"GET":     "Get a user",
			"PUT":     "Update a user",
			"DELETE":  "Delete a user",
			"OPTIONS": "List allowed methods",
		},
	})
}
