package middleware

import (
	"spendly/pkg/log"
)

// Config carries the edge settings the middlewares need.
type Config struct {
	AllowedOrigins []string

	RateLimitEnabled bool
	RequestsPerMin   int
	Burst            int
}

type Middleware struct {
	l       log.Logger
	origins []string
	limiter *rateLimiter
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{
		l:       l,
		origins: cfg.AllowedOrigins,
	}
	if cfg.RateLimitEnabled && cfg.RequestsPerMin > 0 {
		mw.limiter = newRateLimiter(cfg.RequestsPerMin, cfg.Burst)
	}
	return mw
}
