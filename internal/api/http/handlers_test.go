package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/polysolve/internal/api/middleware"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/polysolve/internal/providers/math"
	"github.com/GriffinCanCode/polysolve/internal/service"
	"github.com/GriffinCanCode/polysolve/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router  *gin.Engine
	metrics *monitoring.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	registry := service.NewRegistry()
	opts := math.DefaultOptions()
	opts.Metrics = metrics
	require.NoError(t, registry.Register(math.NewProvider(opts)))

	router := gin.New()
	router.Use(middleware.RequestID())
	NewHandlers(Config{
		Registry: registry,
		Metrics:  metrics,
		Gatherer: reg,
		Version:  "test",
	}).Routes(router)

	return &testServer{router: router, metrics: metrics}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

// rootTexts pulls data.roots[].text out of a decoded tool result.
func rootTexts(t *testing.T, result map[string]interface{}) []string {
	t.Helper()

	require.Equal(t, true, result["success"], "result: %v", result)
	data, ok := result["data"].(map[string]interface{})
	require.True(t, ok)
	roots, ok := data["roots"].([]interface{})
	require.True(t, ok)

	texts := make([]string, len(roots))
	for i, r := range roots {
		texts[i], _ = r.(map[string]interface{})["text"].(string)
	}
	return texts
}

func errorKind(t *testing.T, result map[string]interface{}) string {
	t.Helper()

	require.Equal(t, false, result["success"], "result: %v", result)
	data, ok := result["data"].(map[string]interface{})
	require.True(t, ok)
	kind, _ := data["kind"].(string)
	return kind
}

func TestRootAndHealth(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w, body = s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	stats := body["service_registry"].(map[string]interface{})
	assert.Equal(t, 1.0, stats["total_services"])
	assert.Equal(t, 18.0, stats["total_tools"])
}

func TestListAndDiscoverServices(t *testing.T) {
	s := newTestServer(t)

	t.Run("list all", func(t *testing.T) {
		w, body := s.do(t, http.MethodGet, "/services", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["services"], 1)
	})

	t.Run("list other category", func(t *testing.T) {
		w, body := s.do(t, http.MethodGet, "/services?category=system", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, body["services"])
	})

	t.Run("discover", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/services/discover", DiscoverRequest{Intent: "polynomial roots"})
		assert.Equal(t, http.StatusOK, w.Code)
		services := body["services"].([]interface{})
		require.Len(t, services, 1)
		assert.Equal(t, "math", services[0].(map[string]interface{})["id"])
	})

	t.Run("discover without intent", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/services/discover", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExecuteService(t *testing.T) {
	s := newTestServer(t)

	t.Run("quadratic", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/services/execute", ExecuteRequest{
			ToolID: "math.solve.quadratic",
			Params: map[string]interface{}{"coefficients": []interface{}{1, -5, 6}},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"3", "2"}, rootTexts(t, body))
	})

	t.Run("tool failure is still 200", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/services/execute", ExecuteRequest{
			ToolID: "math.exact.divide",
			Params: map[string]interface{}{"a": 1, "b": 0},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "division_by_zero", errorKind(t, body))
	})

	t.Run("unknown service", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/services/execute", ExecuteRequest{
			ToolID: "geometry.area",
			Params: map[string]interface{}{},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown tool of a known service", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/services/execute", ExecuteRequest{
			ToolID: "math.solve.sextic",
			Params: map[string]interface{}{},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, body["error"], "tool not found")
	})

	t.Run("invalid tool id", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/services/execute", ExecuteRequest{
			ToolID: "math.solve/linear",
			Params: map[string]interface{}{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("params too deep", func(t *testing.T) {
		var nested interface{} = 1
		for i := 0; i <= utils.MaxParamsDepth+1; i++ {
			nested = map[string]interface{}{"n": nested}
		}
		w, _ := s.do(t, http.MethodPost, "/services/execute", ExecuteRequest{
			ToolID: "math.exact.add",
			Params: map[string]interface{}{"a": nested},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad format", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/services/execute", ExecuteRequest{
			ToolID: "math.exact.add",
			Params: map[string]interface{}{"a": 1, "b": 2},
			Format: "html",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/services/execute", `{"tool_id":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSolveEndpoints(t *testing.T) {
	s := newTestServer(t)

	t.Run("equation", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/solve", SolveRequest{Equation: "x^2 - 5x + 6 = 0"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"3", "2"}, rootTexts(t, body))
	})

	t.Run("equation in unicode", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/solve", SolveRequest{Equation: "x^2 + 1 = 0", Format: "unicode"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"i", "−i"}, rootTexts(t, body))
	})

	t.Run("parse failure", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/solve", SolveRequest{Equation: "x^2 + = 1"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "parse_failure", errorKind(t, body))
	})

	t.Run("missing equation", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/solve", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("polynomial", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/solve/polynomial", PolynomialRequest{
			Coefficients: []interface{}{"1/2", "-3/4"},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"3/2"}, rootTexts(t, body))
	})

	t.Run("polynomial too many coefficients", func(t *testing.T) {
		coeffs := make([]interface{}, utils.MaxCoefficients+1)
		for i := range coeffs {
			coeffs[i] = 1
		}
		w, _ := s.do(t, http.MethodPost, "/solve/polynomial", PolynomialRequest{Coefficients: coeffs})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("system from equations", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/solve/system", SystemRequest{
			Equations: []string{"x + y = 5", "x - y = 1"},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"3", "2"}, rootTexts(t, body))
	})

	t.Run("system from matrix", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/solve/system", SystemRequest{
			Matrix: []interface{}{
				[]interface{}{1, 1, 5},
				[]interface{}{1, -1, 1},
			},
			Format: "latex",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "x_{1} = 3\nx_{2} = 2", data["formatted"])
	})

	t.Run("system without input", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/solve/system", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSolveBatch(t *testing.T) {
	s := newTestServer(t)

	t.Run("keeps request order", func(t *testing.T) {
		req := BatchRequest{Items: []BatchItem{
			{Equation: "2x - 4 = 0"},
			{Equation: "x^2 + = 1"},
			{ToolID: "math.exact.add", Params: map[string]interface{}{"a": "1/3", "b": "1/6"}},
			{Equation: "x + y = 5, x - y = 1"},
		}}
		w, body := s.do(t, http.MethodPost, "/solve/batch", req)
		require.Equal(t, http.StatusOK, w.Code)

		results := body["results"].([]interface{})
		require.Len(t, results, 4)
		assert.Equal(t, 3.0, body["succeeded"])
		assert.Equal(t, 1.0, body["failed"])

		first := results[0].(map[string]interface{})
		assert.Equal(t, "math.solve.equation", first["tool_id"])
		assert.NotEmpty(t, first["id"])
		assert.Equal(t, []string{"2"}, rootTexts(t, first["result"].(map[string]interface{})))

		second := results[1].(map[string]interface{})
		assert.Equal(t, "parse_failure", errorKind(t, second["result"].(map[string]interface{})))

		third := results[2].(map[string]interface{})["result"].(map[string]interface{})
		sum := third["data"].(map[string]interface{})["result"].(map[string]interface{})
		assert.Equal(t, "1/2", sum["text"])

		fourth := results[3].(map[string]interface{})
		assert.Equal(t, []string{"3", "2"}, rootTexts(t, fourth["result"].(map[string]interface{})))

		ids := map[interface{}]bool{}
		for _, r := range results {
			ids[r.(map[string]interface{})["id"]] = true
		}
		assert.Len(t, ids, 4)
	})

	t.Run("unknown service is reported per item", func(t *testing.T) {
		w, body := s.do(t, http.MethodPost, "/solve/batch", BatchRequest{Items: []BatchItem{
			{ToolID: "geometry.area", Params: map[string]interface{}{}},
		}})
		require.Equal(t, http.StatusOK, w.Code)
		result := body["results"].([]interface{})[0].(map[string]interface{})
		assert.Contains(t, result["error"], "service not found")
		assert.Equal(t, 1.0, body["failed"])
	})

	t.Run("empty batch", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/solve/batch", BatchRequest{Items: []BatchItem{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized batch", func(t *testing.T) {
		items := make([]BatchItem, utils.MaxBatchSize+1)
		for i := range items {
			items[i] = BatchItem{Equation: fmt.Sprintf("x = %d", i)}
		}
		w, _ := s.do(t, http.MethodPost, "/solve/batch", BatchRequest{Items: items})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("item with both equation and tool", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/solve/batch", BatchRequest{Items: []BatchItem{
			{Equation: "x = 1", ToolID: "math.exact.add"},
		}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSolveCanceledRequest(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data, err := json.Marshal(SolveRequest{Equation: "x = 1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader(data)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatsAndMetrics(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/solve", SolveRequest{Equation: "x - 1 = 0"})

	w, body := s.do(t, http.MethodGet, "/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	snapshot := body["metrics"].(map[string]interface{})
	assert.Equal(t, 1.0, snapshot["total_solves"])

	w, _ = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "polysolve_service_calls_total")
}
