package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/shopadmin/internal/adapter/shopapi"
	"github.com/martijn/shopadmin/internal/api/dto"
	"github.com/martijn/shopadmin/internal/api/middleware"
	"github.com/martijn/shopadmin/internal/core/service"
)

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Bad Request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}

// respondError writes err with the status it maps to. A redirect recorded
// by the shop API client takes precedence.
func respondError(c *gin.Context, err error) {
	if middleware.WriteRedirect(c) {
		return
	}

	code := service.StatusOf(err)
	message := err.Error()

	var apiErr *shopapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "An unexpected error occurred"
	}

	c.JSON(code, dto.ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}
