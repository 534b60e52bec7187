package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olegk/users-api/internal/adapter/handler/dto/request"
	"github.com/olegk/users-api/internal/adapter/handler/dto/response"
	"github.com/olegk/users-api/internal/domain"
	"github.com/olegk/users-api/internal/pkg/httputil"
	"github.com/olegk/users-api/internal/usecase/avatar"
)

const maxAvatarSize = 5 << 20 // 5MB

type AvatarHandler struct {
	avatarSvc AvatarService
}

func NewAvatarHandler(avatarSvc AvatarService) *AvatarHandler {
	return &AvatarHandler{avatarSvc: avatarSvc}
}

// Set godoc
//
//	@Summary		Set a user's avatar
//	@Description	Uploads a jpeg/png avatar, replacing any previous one
//	@Tags			users
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			email	path		string	true	"User email"
//	@Param			file	formData	file	true	"Avatar image"
//	@Success		200		{object}	response.UserResponse
//	@Failure		400		{object}	httputil.ErrorBody
//	@Failure		404		{object}	httputil.ErrorBody
//	@Router			/users/{email}/avatar [put]
func (h *AvatarHandler) Set(c *gin.Context) {
	var p request.EmailParam
	if err := c.ShouldBindUri(&p); err != nil {
		httputil.ValidationErrors(c, request.FieldErrors(err))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httputil.Error(c, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isAllowedImageType(contentType) {
		httputil.Error(c, http.StatusBadRequest, "only jpeg and png images are allowed")
		return
	}

	u, err := h.avatarSvc.Set(c.Request.Context(), avatar.SetInput{
		Email:       p.Email,
		File:        file,
		ContentType: contentType,
	})
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

// Delete godoc
//
//	@Summary		Remove a user's avatar
//	@Tags			users
//	@Security		ApiKeyAuth
//	@Param			email	path	string	true	"User email"
//	@Success		204
//	@Failure		404	{object}	httputil.ErrorBody
//	@Router			/users/{email}/avatar [delete]
func (h *AvatarHandler) Delete(c *gin.Context) {
	var p request.EmailParam
	if err := c.ShouldBindUri(&p); err != nil {
		httputil.ValidationErrors(c, request.FieldErrors(err))
		return
	}

	if err := h.avatarSvc.Delete(c.Request.Context(), p.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			httputil.Error(c, http.StatusNotFound, "user not found")
		case errors.Is(err, domain.ErrNoAvatar):
			httputil.Error(c, http.StatusNotFound, "user has no avatar")
		default:
			httputil.HandleError(c, err)
		}
		return
	}

	httputil.NoContent(c)
}

func isAllowedImageType(contentType string) bool {
	return contentType == "image/jpeg" || contentType == "image/png" || contentType == "image/jpg"
}
