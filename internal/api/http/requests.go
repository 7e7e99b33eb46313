package http

import (
	"github.com/GriffinCanCode/polysolve/internal/types"
)

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID  string                 `json:"tool_id" binding:"required"`
	Params  map[string]interface{} `json:"params" binding:"required"`
	Format  string                 `json:"format,omitempty"`
	NoCache bool                   `json:"no_cache,omitempty"`
}

// DiscoverRequest asks for services matching free text
type DiscoverRequest struct {
	Intent string `json:"intent" binding:"required"`
	Limit  int    `json:"limit,omitempty"`
}

// SolveRequest solves equation text, or a comma separated system
type SolveRequest struct {
	Equation string `json:"equation" binding:"required"`
	Format   string `json:"format,omitempty"`
	NoCache  bool   `json:"no_cache,omitempty"`
}

// PolynomialRequest solves a coefficient vector of any degree
type PolynomialRequest struct {
	Coefficients  []interface{} `json:"coefficients" binding:"required"`
	MaxIterations *int          `json:"max_iterations,omitempty"`
	Tolerance     *float64      `json:"tolerance,omitempty"`
	Format        string        `json:"format,omitempty"`
	NoCache       bool          `json:"no_cache,omitempty"`
}

// SystemRequest solves a linear system given as equations or a matrix
type SystemRequest struct {
	Equations []string      `json:"equations,omitempty"`
	Matrix    []interface{} `json:"matrix,omitempty"`
	Format    string        `json:"format,omitempty"`
	NoCache   bool          `json:"no_cache,omitempty"`
}

// BatchItem is one entry of a batch: equation text or an explicit tool call
type BatchItem struct {
	Equation string                 `json:"equation,omitempty"`
	ToolID   string                 `json:"tool_id,omitempty"`
	Params   map[string]interface{} `json:"params,omitempty"`
}

// BatchRequest solves several items concurrently
type BatchRequest struct {
	Items   []BatchItem `json:"items" binding:"required"`
	Format  string      `json:"format,omitempty"`
	NoCache bool        `json:"no_cache,omitempty"`
}

// BatchResult is the outcome of one batch item, in request order
type BatchResult struct {
	ID     string        `json:"id"`
	ToolID string        `json:"tool_id"`
	Result *types.Result `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// BatchResponse is the body returned by the batch endpoint
type BatchResponse struct {
	Results   []BatchResult `json:"results"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}
