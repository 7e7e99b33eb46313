/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the solver
service, tracking HTTP requests, service tool executions and the solvers
themselves.

# Features

- HTTP request metrics (latency, throughput, size)
- Service tool metrics (duration, errors)
- Solver metrics (calls and failures by method and error kind)
- Durand-Kerner iteration counts and non-converged runs
- Result cache hit ratio
- Condition numbers of solved linear systems
- Uptime

# Usage

	// Create metrics collector on a dedicated registry
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record solver metrics
	metrics.RecordSolve("quadratic", "", elapsed)
	metrics.RecordIterations(res.Iterations, res.Converged)

	// Time tool executions
	timer := monitoring.NewTimer(metrics, "math", "math.solve.cubic")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
*/
package monitoring
