package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	ErrMissingPort         = errors.New("server.port is empty")
	ErrInvalidLimit        = errors.New("limits must be positive")
	ErrCacheWithoutRedis   = errors.New("cache.pdf_cache_enabled requires cache.redis_host")
	ErrNegativeUserLimit   = errors.New("rate_limiter.user_limit must be non-negative")
	ErrInvalidRateInterval = errors.New("rate_limiter.interval must be positive when user_limit is set")
	ErrMissingUpstream     = errors.New("upstream.url is empty")
	ErrInvalidTimeout      = errors.New("timeouts must be non-negative")
)
