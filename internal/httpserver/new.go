package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	chatHTTP "spendly/internal/chat/delivery/http"
	"spendly/internal/middleware"
	uploadHTTP "spendly/internal/upload/delivery/http"
	"spendly/pkg/log"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration
	startedAt       time.Time

	// Edge
	mw middleware.Middleware

	// Domains
	chatHandler   chatHTTP.Handler
	uploadHandler uploadHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration

	Middleware middleware.Middleware

	ChatHandler   chatHTTP.Handler
	UploadHandler uploadHTTP.Handler
}

// New creates a new HTTPServer instance with all routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		startedAt:       time.Now(),
		mw:              cfg.Middleware,
		chatHandler:     cfg.ChatHandler,
		uploadHandler:   cfg.UploadHandler,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatHandler == nil {
		return errors.New("chat handler is required")
	}
	return nil
}

// Handler exposes the routed engine, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
