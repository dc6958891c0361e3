package http

import (
	"errors"
	"net/http"

	"spendly/internal/upload"
	pkgErrors "spendly/pkg/errors"
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		return pkgErrors.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, upload.ErrUnsupportedType), errors.Is(err, upload.ErrEmptyFile), errors.Is(err, errMissingFile):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
