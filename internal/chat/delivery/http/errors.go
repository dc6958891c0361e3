package http

import (
	"errors"
	"net/http"

	"spendly/internal/chat"
	pkgErrors "spendly/pkg/errors"
)

// mapError translates use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, chat.ErrInvalidSessionID),
		errors.Is(err, chat.ErrUnknownIntent),
		errors.Is(err, chat.ErrEmptyMessage):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, chat.ErrInvalidDocument):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, chat.ErrInvalidDocument.Error())
	case errors.Is(err, chat.ErrSessionStore), errors.Is(err, chat.ErrTurnCancelled):
		return pkgErrors.ErrServiceUnavailable
	default:
		return pkgErrors.ErrInternalServerError
	}
}
