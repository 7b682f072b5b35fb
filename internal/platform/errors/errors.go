package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNoActiveSession  = errors.New("no active session")
	ErrSessionExists    = errors.New("session already in progress")
	ErrNotAuthorized    = errors.New("capability not authorized")
	ErrDaemonNotRunning = errors.New("daemon is not running")
)
