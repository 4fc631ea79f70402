package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cheatsheet-editor/pkg/logger"
)

// AppError represents an application error
type AppError struct {
	Code    int    // HTTP status code
	Message string // Error message
	Err     error  // Original error
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the original error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func BadRequest(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

func Unauthorized(message string, err error) *AppError {
	return NewAppError(http.StatusUnauthorized, message, err)
}

func NotFound(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, message, err)
}

func Internal(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "Internal server error", err)
}

// HandleError handles an error and responds with the appropriate status code and message
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= 500 {
			logger.Sugar.Errorf("%v", appErr)
		} else {
			logger.Sugar.Infof("%v", appErr)
		}
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	// Default to internal server error
	logger.Sugar.Errorf("%v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
