package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the upload endpoint.
func RegisterRoutes(r gin.IRouter, h Handler, mw ...gin.HandlerFunc) {
	r.POST("/upload", append(mw, h.Upload)...)
}
