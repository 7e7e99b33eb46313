// Package main is the entry point for the polysolve service.
//
// With no subcommand the binary serves the HTTP API. The solve subcommand
// answers a single equation on stdout without starting a server.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Serve on :8000 with LaTeX output by default
//	./server --format latex
//
//	# One-shot
//	./server solve "x^3 - 6x^2 + 11x - 6 = 0"
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
