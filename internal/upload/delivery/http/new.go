package http

import (
	"github.com/gin-gonic/gin"

	"spendly/internal/upload"
	"spendly/pkg/log"
)

// Handler is the public interface for the upload HTTP delivery layer.
type Handler interface {
	Upload(c *gin.Context)
}

type handler struct {
	l        log.Logger
	uc       upload.UseCase
	maxBytes int64
}

// New creates a new HTTP handler for uploads. maxBytes caps the request body.
func New(l log.Logger, uc upload.UseCase, maxBytes int64) Handler {
	return &handler{
		l:        l,
		uc:       uc,
		maxBytes: maxBytes,
	}
}
