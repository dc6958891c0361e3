package repository

import "errors"

var (
	ErrFailedToLoad  = errors.New("failed to load session")
	ErrFailedToSave  = errors.New("failed to save session")
	ErrFailedToPurge = errors.New("failed to purge sessions")
	ErrFailedToList  = errors.New("failed to list sessions")
	ErrInvalidID     = errors.New("invalid session id")
)
