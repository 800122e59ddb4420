package middleware

import (
	"risk-advisor/config"
	"risk-advisor/pkg/log"
)

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// New builds the HTTP middlewares. A disabled rate limit leaves RateLimit a pass-through.
func New(l log.Logger, cfg config.RateLimitConfig) Middleware {
	mw := Middleware{l: l}
	if cfg.Enabled && cfg.PerMin > 0 {
		mw.limiter = newRateLimiter(cfg.PerMin, cfg.Burst)
	}
	return mw
}
