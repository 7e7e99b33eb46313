package math

import (
	"encoding/json"
	"fmt"
	gomath "math"

	"github.com/GriffinCanCode/polysolve/internal/format"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/logging"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/polysolve/internal/numeric"
	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
	"github.com/GriffinCanCode/polysolve/internal/types"
)

// MathOps carries the settings shared by every tool group
type MathOps struct {
	Style         format.Style
	Logger        *logging.Logger
	Metrics       *monitoring.Metrics
	ConditionWarn float64
}

// styleFor returns the per-call style override, or the configured style
func (m *MathOps) styleFor(appCtx *types.Context) format.Style {
	if appCtx != nil && appCtx.Format != "" {
		if s, err := format.ParseStyle(appCtx.Format); err == nil {
			return s
		}
	}
	return m.Style
}

func (m *MathOps) loggerFor(appCtx *types.Context) *logging.Logger {
	if appCtx == nil {
		return m.Logger
	}
	return m.Logger.WithRequest(appCtx.RequestID)
}

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// FailureFrom creates a failed result tagged with the error kind
func FailureFrom(err error) (*types.Result, error) {
	msg := err.Error()
	return &types.Result{
		Success: false,
		Error:   &msg,
		Data:    map[string]interface{}{"kind": solveerr.KindOf(err).String()},
	}, nil
}

// GetNumber extracts float64 from params with validation
func GetNumber(params map[string]interface{}, key string) (float64, bool) {
	switch v := params[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// GetInt extracts a whole number from params
func GetInt(params map[string]interface{}, key string) (int, bool) {
	f, ok := GetNumber(params, key)
	if !ok || f != gomath.Trunc(f) || gomath.Abs(f) > gomath.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// GetString extracts string from params
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}

// GetStrings extracts an array of strings from params
func GetStrings(params map[string]interface{}, key string) ([]string, bool) {
	switch v := params[key].(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, len(v))
		for i, s := range v {
			str, ok := s.(string)
			if !ok {
				return nil, false
			}
			out[i] = str
		}
		return out, true
	default:
		return nil, false
	}
}

// GetComplex extracts one exact value from params
func GetComplex(params map[string]interface{}, key string) (numeric.Complex, error) {
	v, ok := params[key]
	if !ok {
		return numeric.Complex{}, fmt.Errorf("%s parameter required", key)
	}
	z, err := ParseComplex(v)
	if err != nil {
		return numeric.Complex{}, fmt.Errorf("%s: %w", key, err)
	}
	return z, nil
}

// GetCoefficients extracts a coefficient vector, highest degree first
func GetCoefficients(params map[string]interface{}, key string) ([]numeric.Complex, error) {
	arr, ok := params[key].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be an array", key)
	}
	coeffs := make([]numeric.Complex, len(arr))
	for i, v := range arr {
		z, err := ParseComplex(v)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		coeffs[i] = z
	}
	return coeffs, nil
}

// GetMatrix extracts an augmented matrix given as an array of rows
func GetMatrix(params map[string]interface{}, key string) ([][]numeric.Complex, error) {
	rows, ok := params[key].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be an array of rows", key)
	}
	matrix := make([][]numeric.Complex, len(rows))
	for i, row := range rows {
		coeffs, err := GetCoefficients(map[string]interface{}{"row": row}, "row")
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		matrix[i] = coeffs
	}
	return matrix, nil
}

// ParseComplex accepts a number, a rational string such as "3/4", or an
// object {"re": ..., "im": ...} whose parts are either.
func ParseComplex(v interface{}) (numeric.Complex, error) {
	if obj, ok := v.(map[string]interface{}); ok {
		re, err := parseRational(obj["re"], true)
		if err != nil {
			return numeric.Complex{}, fmt.Errorf("re: %w", err)
		}
		im, err := parseRational(obj["im"], true)
		if err != nil {
			return numeric.Complex{}, fmt.Errorf("im: %w", err)
		}
		return numeric.NewComplex(re, im), nil
	}
	r, err := parseRational(v, false)
	if err != nil {
		return numeric.Complex{}, err
	}
	return numeric.ComplexFromReal(r), nil
}

func parseRational(v interface{}, optional bool) (numeric.Rational, error) {
	switch x := v.(type) {
	case nil:
		if optional {
			return numeric.Zero, nil
		}
		return numeric.Zero, fmt.Errorf("value required")
	case float64:
		if err := ValidateNumber(x, "value"); err != nil {
			return numeric.Zero, err
		}
		return numeric.RationalFromFloat(x), nil
	case int:
		return numeric.RationalFromInt(int64(x)), nil
	case int64:
		return numeric.RationalFromInt(x), nil
	case json.Number:
		return numeric.ParseRational(x.String())
	case string:
		return numeric.ParseRational(x)
	default:
		return numeric.Zero, fmt.Errorf("unsupported value type %T", v)
	}
}

// ValidateNumber checks if a number is valid (not NaN or Inf)
func ValidateNumber(x float64, name string) error {
	if gomath.IsNaN(x) {
		return fmt.Errorf("%s is NaN", name)
	}
	if gomath.IsInf(x, 0) {
		return fmt.Errorf("%s is infinite", name)
	}
	return nil
}

// encodeComplex renders z for a result payload
func encodeComplex(style format.Style, z numeric.Complex) map[string]interface{} {
	return map[string]interface{}{
		"text":  style.Complex(z),
		"exact": z.String(),
		"re":    z.Re.Float64(),
		"im":    z.Im.Float64(),
	}
}

// encodeRoots renders named values for a result payload
func encodeRoots(style format.Style, names []string, values []numeric.Complex) []map[string]interface{} {
	out := make([]map[string]interface{}, len(values))
	for i, v := range values {
		entry := encodeComplex(style, v)
		entry["name"] = names[i]
		out[i] = entry
	}
	return out
}
