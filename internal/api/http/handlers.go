package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/polysolve/internal/api/middleware"
	"github.com/GriffinCanCode/polysolve/internal/format"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/logging"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/polysolve/internal/service"
	"github.com/GriffinCanCode/polysolve/internal/shared/id"
	"github.com/GriffinCanCode/polysolve/internal/shared/utils"
	"github.com/GriffinCanCode/polysolve/internal/types"
)

// DefaultBatchWorkers bounds concurrent items of one batch request
const DefaultBatchWorkers = 8

// Config wires the handler dependencies
type Config struct {
	Registry *service.Registry
	Metrics  *monitoring.Metrics
	// Gatherer backs /metrics; nil means prometheus.DefaultGatherer.
	Gatherer     prometheus.Gatherer
	Logger       *logging.Logger
	Version      string
	BatchWorkers int
}

// Handlers contains all HTTP handlers
type Handlers struct {
	registry     *service.Registry
	metrics      *monitoring.Metrics
	gatherer     prometheus.Gatherer
	logger       *logging.Logger
	tracker      *HandlerMetrics
	version      string
	batchWorkers int
}

// NewHandlers creates a new handler set
func NewHandlers(cfg Config) *Handlers {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = DefaultBatchWorkers
	}
	return &Handlers{
		registry:     cfg.Registry,
		metrics:      cfg.Metrics,
		gatherer:     cfg.Gatherer,
		logger:       cfg.Logger,
		tracker:      NewHandlerMetrics(cfg.Metrics),
		version:      cfg.Version,
		batchWorkers: cfg.BatchWorkers,
	}
}

// Routes registers every endpoint on r
func (h *Handlers) Routes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/stats", h.Stats)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{DisableCompression: true})))

	r.GET("/services", h.ListServices)
	r.POST("/services/discover", h.DiscoverServices)
	r.POST("/services/execute", h.ExecuteService)

	r.POST("/solve", h.Solve)
	r.POST("/solve/polynomial", h.SolvePolynomial)
	r.POST("/solve/system", h.SolveSystem)
	r.POST("/solve/batch", h.SolveBatch)
}

// Root handles the liveness probe
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "polysolve",
		"version": h.version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
	})
}

// Stats returns the JSON metrics snapshot
func (h *Handlers) Stats(c *gin.Context) {
	body := gin.H{"service_registry": h.registry.Stats()}
	if h.metrics != nil {
		body["metrics"] = h.metrics.GetSnapshot()
	}
	c.JSON(http.StatusOK, body)
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	defer h.tracker.TrackRegistryOperation("list")()

	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices discovers relevant services for an intent
func (h *Handlers) DiscoverServices(c *gin.Context) {
	defer h.tracker.TrackRegistryOperation("discover")()

	var req DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateString(req.Intent, "intent", 1, utils.MaxEquationLength, true); err != nil {
		badRequest(c, err)
		return
	}
	limit := req.Limit
	if limit <= 0 || limit > 20 {
		limit = 5
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Intent,
		"services": h.registry.Discover(req.Intent, limit),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateToolID(req.ToolID, "tool_id", true); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateParams(req.Params); err != nil {
		badRequest(c, err)
		return
	}
	if _, ok := h.registry.FindTool(req.ToolID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("tool not found: %s", req.ToolID)})
		return
	}
	h.execute(c, req.ToolID, req.Params, req.Format, req.NoCache)
}

// Solve solves equation text
func (h *Handlers) Solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.execute(c, "math.solve.equation", map[string]interface{}{"equation": req.Equation}, req.Format, req.NoCache)
}

// SolvePolynomial solves a coefficient vector
func (h *Handlers) SolvePolynomial(c *gin.Context) {
	var req PolynomialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateCoefficientCount(len(req.Coefficients), "coefficients"); err != nil {
		badRequest(c, err)
		return
	}

	params := map[string]interface{}{"coefficients": req.Coefficients}
	if req.MaxIterations != nil {
		params["max_iterations"] = float64(*req.MaxIterations)
	}
	if req.Tolerance != nil {
		params["tolerance"] = *req.Tolerance
	}
	h.execute(c, "math.solve.polynomial", params, req.Format, req.NoCache)
}

// SolveSystem solves a 2x2 or 3x3 linear system
func (h *Handlers) SolveSystem(c *gin.Context) {
	var req SystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	params := map[string]interface{}{}
	switch {
	case len(req.Equations) > 0:
		params["equations"] = req.Equations
	case len(req.Matrix) > 0:
		params["matrix"] = req.Matrix
	default:
		badRequest(c, errors.New("equations or matrix required"))
		return
	}
	h.execute(c, "math.solve.system", params, req.Format, req.NoCache)
}

// SolveBatch runs up to utils.MaxBatchSize items concurrently. Results keep
// request order; a failing item does not stop the others.
func (h *Handlers) SolveBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := validateBatch(&req); err != nil {
		badRequest(c, err)
		return
	}

	done := h.tracker.TrackBatch()
	ids := id.NewSolveIDs(len(req.Items))
	results := make([]BatchResult, len(req.Items))
	logger := h.logger.WithRequest(middleware.GetRequestID(c))

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(h.batchWorkers)
	for i, item := range req.Items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			toolID, params := item.ToolID, item.Params
			if item.Equation != "" {
				toolID, params = "math.solve.equation", map[string]interface{}{"equation": item.Equation}
			}
			results[i] = BatchResult{ID: ids[i].String(), ToolID: toolID}

			appCtx := &types.Context{RequestID: ids[i].String(), Format: req.Format, NoCache: req.NoCache}
			result, err := h.registry.Execute(ctx, toolID, params, appCtx)
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				results[i].Error = err.Error()
				return nil
			}
			results[i].Result = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		done("error")
		logger.Warn("batch aborted", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	resp := BatchResponse{Results: results}
	for _, r := range results {
		if r.Result != nil && r.Result.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	done("success")
	logger.Debug("batch completed", zap.Int("items", len(results)), zap.Int("failed", resp.Failed))
	c.JSON(http.StatusOK, resp)
}

// execute runs one tool for the request in c and writes the result
func (h *Handlers) execute(c *gin.Context, toolID string, params map[string]interface{}, style string, noCache bool) {
	if style != "" {
		if _, err := format.ParseStyle(style); err != nil {
			badRequest(c, err)
			return
		}
	}

	appCtx := &types.Context{
		RequestID: middleware.GetRequestID(c),
		Format:    style,
		NoCache:   noCache,
	}
	result, err := h.registry.Execute(c.Request.Context(), toolID, params, appCtx)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func validateBatch(req *BatchRequest) error {
	if len(req.Items) == 0 {
		return errors.New("items must not be empty")
	}
	if len(req.Items) > utils.MaxBatchSize {
		return fmt.Errorf("items must not exceed %d entries", utils.MaxBatchSize)
	}
	if req.Format != "" {
		if _, err := format.ParseStyle(req.Format); err != nil {
			return err
		}
	}
	for i, item := range req.Items {
		switch {
		case item.Equation != "" && item.ToolID != "":
			return fmt.Errorf("items[%d]: equation and tool_id are exclusive", i)
		case item.Equation != "":
			if err := utils.ValidateEquation(item.Equation, fmt.Sprintf("items[%d].equation", i)); err != nil {
				return err
			}
		case item.ToolID != "":
			if err := utils.ValidateToolID(item.ToolID, fmt.Sprintf("items[%d].tool_id", i), true); err != nil {
				return err
			}
			if err := utils.ValidateParams(item.Params); err != nil {
				return fmt.Errorf("items[%d]: %w", i, err)
			}
		default:
			return fmt.Errorf("items[%d]: equation or tool_id required", i)
		}
	}
	return nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
