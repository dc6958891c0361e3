package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. Extra
// handlers, typically the rate limiter, run before each turn.
func RegisterRoutes(r gin.IRouter, h Handler, turnMiddleware ...gin.HandlerFunc) {
	r.POST("/chat", append(turnMiddleware, h.Chat)...)
	r.GET("/sessions/:id", h.Session)
}
