package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// PostChatMessageRequest is the body for POST /api/chat/message. The message
// travels in the request body rather than query parameters so free text
// survives untouched.
type PostChatMessageRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=64"`
	Message  string `json:"message" form:"message" validate:"required,max=1000"`
}

// CreatePlaylistRequest is the body for POST /api/playlists.
type CreatePlaylistRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=128"`
}
