package chat

import "errors"

var (
	ErrInvalidSessionID = errors.New("invalid session id")
	ErrUnknownIntent    = errors.New("unknown intent")
	ErrEmptyMessage     = errors.New("message is required")
	ErrInvalidDocument  = errors.New("document reference does not resolve to an upload")
	ErrSessionStore     = errors.New("session store unavailable")
	ErrTurnCancelled    = errors.New("turn cancelled before it was saved")
)
