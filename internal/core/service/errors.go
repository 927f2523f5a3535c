package service

import (
	"errors"
	"net/http"

	"github.com/martijn/shopadmin/internal/adapter/shopapi"
)

// ServiceError carries the HTTP status a failure should be reported with
type ServiceError struct {
	Code    int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewServiceError(code int, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

func badRequest(message string) *ServiceError {
	return NewServiceError(http.StatusBadRequest, message)
}

// StatusOf maps err to the status code it should be reported with.
// Upstream API errors keep their own status.
func StatusOf(err error) int {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	if code := shopapi.StatusCode(err); code != 0 {
		return code
	}
	return http.StatusInternalServerError
}
