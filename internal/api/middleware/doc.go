// Package middleware provides the HTTP middleware stack of the solver API.
//
//   - CORS: gin-contrib/cors with a configurable origin list
//   - RateLimit: per-IP token bucket with idle client eviction
//   - GlobalRateLimit: one token bucket for all clients
//   - RequestID: X-Request-ID propagation, keeping client ULIDs and UUIDs
//   - AccessLog: one zap line per request
//
// Example Usage:
//
//	router.Use(middleware.RequestID(), middleware.AccessLog(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
