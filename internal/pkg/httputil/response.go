package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olegk/users-api/internal/pkg/apperror"
)

// ErrorBody is the generic error envelope: {"error":{"status":...,"message":...}}.
// Every non-2xx response except validation failures uses this shape.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// FieldError is one entry of the validation response: {"errors":[...]}.
// Validation failures deliberately use a different shape from ErrorBody.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationBody struct {
	Errors []FieldError `json:"errors"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: ErrorDetail{Status: status, Message: message}})
}

// AbortError is Error for middleware; it also stops the handler chain.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: ErrorDetail{Status: status, Message: message}})
}

func ValidationErrors(c *gin.Context, fieldErrs []FieldError) {
	c.JSON(http.StatusBadRequest, ValidationBody{Errors: fieldErrs})
}

func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal server error")
}

// HandleError is the single exit point for errors that reach a handler.
// Anything that is not an AppError becomes a 500 with a generic message.
func HandleError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		Error(c, appErr.Status, appErr.Message)
		return
	}
	InternalError(c)
}
