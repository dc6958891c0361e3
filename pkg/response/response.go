package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "spendly/pkg/errors"
)

// OK writes 200 with data in the success envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		Message: MessageSuccess,
		Data:    data,
	})
}

// Error writes err in the envelope. An *errors.HTTPError keeps its status
// and code; a plain error is a 400 with code 1 and its own message.
func Error(c *gin.Context, err error, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}

	status, code, msg := http.StatusBadRequest, 1, err.Error()
	if httpErr, ok := pkgErrors.AsHTTPError(err); ok {
		status, code, msg = httpErr.StatusCode, httpErr.Code, httpErr.Message
	}
	c.JSON(status, Resp{ErrorCode: code, Message: msg, Data: data})
}

// TooManyRequests aborts the chain with 429.
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Resp{
		ErrorCode: pkgErrors.ErrTooManyRequests.Code,
		Message:   pkgErrors.ErrTooManyRequests.Message,
	})
}
