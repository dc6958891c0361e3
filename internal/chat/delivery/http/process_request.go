package http

import (
	"github.com/gin-gonic/gin"
)

// processChatReq binds the form or JSON body by content type and validates it.
func (h *handler) processChatReq(c *gin.Context) (chatReq, error) {
	var req chatReq
	if err := c.ShouldBind(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
