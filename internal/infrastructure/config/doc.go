// Package config provides 12-factor configuration management for the solver
// service.
//
// Configuration is loaded from environment variables with sensible defaults,
// or from a YAML or TOML file with LoadFile. CLI flags override either.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, gzip, h2c)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Solver: Output style, result cache and conditioning threshold
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, SERVER_GZIP, SERVER_H2C
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED, RATE_LIMIT_GLOBAL
//   - SOLVER_FORMAT, SOLVER_CACHE_ENABLED, SOLVER_CACHE_TTL,
//     SOLVER_CACHE_CLEANUP, SOLVER_COND_WARN
//
// File keys mirror the sections in snake_case:
//
//	server:
//	  port: "9000"
//	solver:
//	  format: latex
//	  cache_ttl: 90s
package config
