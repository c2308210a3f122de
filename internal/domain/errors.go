package domain

import "errors"

// Sentinel errors returned by services and repositories. Handlers map
// these to HTTP status codes in one place.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRequestClosed     = errors.New("request is closed")
	ErrRequestNotOpen    = errors.New("request is not open")

	ErrFileTooLarge        = errors.New("file exceeds maximum size")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
