package math

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/polysolve/internal/format"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/logging"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/polysolve/internal/types"
)

// ServiceID is the registry ID of the math provider
const ServiceID = "math"

type handler func(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)

// Options configures a Provider
type Options struct {
	Style   format.Style
	Logger  *logging.Logger
	Metrics *monitoring.Metrics

	CacheEnabled bool
	CacheTTL     time.Duration
	CacheCleanup time.Duration

	// ConditionWarn is the condition number above which a system is
	// reported as ill-conditioned.
	ConditionWarn float64
}

// DefaultOptions returns ASCII output, a ten minute cache and a no-op logger
func DefaultOptions() Options {
	return Options{
		Style:         format.Ascii,
		CacheEnabled:  true,
		CacheTTL:      10 * time.Minute,
		CacheCleanup:  30 * time.Minute,
		ConditionWarn: 1e12,
	}
}

// Provider exposes the solvers and exact arithmetic as math.* tools
type Provider struct {
	ops      *MathOps
	solve    *SolveOps
	exact    *ExactOps
	cache    *ResultCache
	handlers map[string]handler
}

// NewProvider creates a math provider. A nil Logger is replaced by a no-op
// logger and nil Metrics by metrics on a private registry.
func NewProvider(opts Options) *Provider {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = monitoring.NewMetrics(prometheus.NewRegistry())
	}
	if opts.ConditionWarn <= 0 {
		opts.ConditionWarn = DefaultOptions().ConditionWarn
	}

	ops := &MathOps{
		Style:         opts.Style,
		Logger:        opts.Logger.Named(ServiceID),
		Metrics:       opts.Metrics,
		ConditionWarn: opts.ConditionWarn,
	}
	p := &Provider{
		ops:   ops,
		solve: &SolveOps{MathOps: ops},
		exact: &ExactOps{MathOps: ops},
	}
	if opts.CacheEnabled && opts.CacheTTL > 0 {
		p.cache = NewResultCache(opts.CacheTTL, opts.CacheCleanup)
	}

	p.handlers = map[string]handler{
		"math.solve.linear":     p.solve.Linear,
		"math.solve.quadratic":  p.solve.Quadratic,
		"math.solve.cubic":      p.solve.Cubic,
		"math.solve.quartic":    p.solve.Quartic,
		"math.solve.polynomial": p.solve.Polynomial,
		"math.solve.equation":   p.solve.Equation,
		"math.solve.system":     p.solve.System,
		"math.exact.add":        p.exact.Add,
		"math.exact.subtract":   p.exact.Subtract,
		"math.exact.multiply":   p.exact.Multiply,
		"math.exact.divide":     p.exact.Divide,
		"math.exact.power":      p.exact.Power,
		"math.exact.sqrt":       p.exact.Sqrt,
		"math.exact.abs":        p.exact.Abs,
		"math.exact.sin":        p.exact.Sin,
		"math.exact.cos":        p.exact.Cos,
		"math.exact.sind":       p.exact.SinDegrees,
		"math.exact.cosd":       p.exact.CosDegrees,
	}
	return p
}

// Definition returns service metadata with all module tools
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.solve.GetTools()...)
	tools = append(tools, p.exact.GetTools()...)

	return types.Service{
		ID:          ServiceID,
		Name:        "Math Service",
		Description: "Polynomial roots, linear systems and exact rational arithmetic",
		Category:    types.CategoryMath,
		Capabilities: []string{
			"polynomial_roots",
			"linear_systems",
			"equation_parsing",
			"exact_arithmetic",
			"complex_numbers",
		},
		Tools: tools,
		DataModels: []types.DataModel{
			{Name: "Value", Fields: map[string]string{"text": "string", "exact": "string", "re": "number", "im": "number"}},
			{Name: "Root", Fields: map[string]string{"name": "string", "text": "string", "exact": "string", "re": "number", "im": "number"}},
		},
	}
}

// Style returns the configured output style
func (p *Provider) Style() format.Style {
	return p.ops.Style
}

// CacheLen returns the number of cached results, or 0 with caching off
func (p *Provider) CacheLen() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.Len()
}

// Execute routes to the tool handler, serving repeated calls from the cache
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	h, ok := p.handlers[toolID]
	if !ok {
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := p.cacheKey(toolID, params, appCtx)
	if key != "" {
		if cached, hit := p.cache.Get(key); hit {
			p.ops.Metrics.RecordCache(true)
			return cached, nil
		}
		p.ops.Metrics.RecordCache(false)
	}

	timer := monitoring.NewTimer(p.ops.Metrics, ServiceID, toolID)
	result, err := h(ctx, params, appCtx)
	status := "success"
	if err != nil || result == nil || !result.Success {
		status = "error"
		p.ops.Metrics.RecordServiceError(ServiceID, toolID, failureKind(result))
	}
	elapsed := timer.Stop(status)
	p.ops.loggerFor(appCtx).Solve(toolID, degreeOf(result), elapsed, zap.String("status", status))

	if key != "" && status == "success" {
		p.cache.Set(key, result)
	}
	return result, err
}

func (p *Provider) cacheKey(toolID string, params map[string]interface{}, appCtx *types.Context) string {
	if p.cache == nil || (appCtx != nil && appCtx.NoCache) {
		return ""
	}
	key, err := p.cache.Key(toolID, p.ops.styleFor(appCtx), params)
	if err != nil {
		return ""
	}
	return key
}

func failureKind(result *types.Result) string {
	if result != nil {
		if kind, ok := result.Data["kind"].(string); ok {
			return kind
		}
	}
	return "invalid_params"
}

func degreeOf(result *types.Result) int {
	if result == nil {
		return 0
	}
	degree, _ := result.Data["degree"].(int)
	return degree
}
