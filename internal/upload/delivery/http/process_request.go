package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"spendly/internal/upload"
)

// multipartOverhead leaves room for boundaries and part headers.
const multipartOverhead = 1 << 20

var errMissingFile = errors.New("multipart field \"file\" is required")

func (h *handler) processUploadReq(c *gin.Context) (*multipart.FileHeader, error) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, upload.ErrTooLarge
		}
		return nil, errMissingFile
	}
	return fh, nil
}
