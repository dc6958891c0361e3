package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	chatHTTP "spendly/internal/chat/delivery/http"
	"spendly/internal/model"
	uploadHTTP "spendly/internal/upload/delivery/http"
	"spendly/pkg/metrics"
)

func (srv HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	if srv.mode != gin.ReleaseMode {
		srv.gin.Use(gin.Logger())
	}
	srv.gin.Use(srv.mw.RequestID(), srv.mw.CORS())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "CORS mode: production")
	} else {
		srv.l.Infof(ctx, "CORS mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/metrics", gin.WrapH(metrics.Handler()))

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes. Turns and uploads go
// through the rate limiter, reads do not.
func (srv HTTPServer) registerDomainRoutes() {
	ctx := context.Background()
	limit := srv.mw.RateLimit()

	chatHTTP.RegisterRoutes(srv.gin, srv.chatHandler, limit)
	srv.l.Infof(ctx, "Chat routes registered at POST /chat and GET /sessions/:id")

	if srv.uploadHandler != nil {
		uploadHTTP.RegisterRoutes(srv.gin, srv.uploadHandler, limit)
		srv.l.Infof(ctx, "Upload route registered at POST /upload")
	} else {
		srv.l.Infof(ctx, "Upload handler not configured, skipping upload route")
	}
}
