package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is an HTTP-facing error carrying a status code and a message key.
// MessageID is looked up in the locale bundle; Message is the fallback text.
type AppError struct {
	Code      int
	MessageID string
	Message   string
	Err       error
}

// NewAppError creates a new AppError
func NewAppError(code int, messageID, message string, err error) *AppError {
	return &AppError{
		Code:      code,
		MessageID: messageID,
		Message:   message,
		Err:       err,
	}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Common error constructors
func BadRequestError(messageID, message string, err error) *AppError {
	return NewAppError(fiber.StatusBadRequest, messageID, message, err)
}

func UnauthorizedError(messageID, message string, err error) *AppError {
	return NewAppError(fiber.StatusUnauthorized, messageID, message, err)
}

func NotFoundError(messageID, message string, err error) *AppError {
	return NewAppError(fiber.StatusNotFound, messageID, message, err)
}

func ConflictError(messageID, message string, err error) *AppError {
	return NewAppError(fiber.StatusConflict, messageID, message, err)
}

func InternalServerError(messageID, message string, err error) *AppError {
	return NewAppError(fiber.StatusInternalServerError, messageID, message, err)
}

// StatusOf returns the HTTP status for err: the AppError or fiber.Error code,
// otherwise 500
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
