package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

// Request size limits
const (
	MaxJSONSize       = 1 * 1024 * 1024 // 1MB - maximum request body
	MaxParamsSize     = 64 * 1024       // 64KB - tool params map
	MaxParamsDepth    = 8
	MaxEquationLength = 1024
	MaxToolIDLength   = 128
	MaxBatchSize      = 64
	// MaxCoefficients caps Durand-Kerner input at degree 63.
	MaxCoefficients = 64
	// MaxIterations caps the Durand-Kerner sweep limit a client may request.
	MaxIterations = 10000
)

// ToolIDPattern allows alphanumeric, hyphens, underscores, and dots (for service.tool format)
var ToolIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// JSONSizeValidator validates JSON size limits
type JSONSizeValidator struct {
	maxSize int
}

// NewJSONSizeValidator creates a new validator with the specified max size
func NewJSONSizeValidator(maxSize int) *JSONSizeValidator {
	return &JSONSizeValidator{maxSize: maxSize}
}

// ValidateSize checks if the data size is within limits
func (v *JSONSizeValidator) ValidateSize(data []byte) error {
	if size := len(data); size > v.maxSize {
		return fmt.Errorf("JSON size %d bytes exceeds maximum %d bytes", size, v.maxSize)
	}
	return nil
}

// ValidateJSONDepth checks if JSON nesting depth is within limits
func ValidateJSONDepth(data interface{}, maxDepth int) error {
	return checkDepth(data, 0, maxDepth)
}

func checkDepth(data interface{}, currentDepth int, maxDepth int) error {
	if currentDepth > maxDepth {
		return fmt.Errorf("JSON nesting depth %d exceeds maximum %d", currentDepth, maxDepth)
	}

	switch v := data.(type) {
	case map[string]interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	}

	return nil
}

// ValidateParams bounds the size and nesting of a tool params map
func ValidateParams(params map[string]interface{}) error {
	data, err := sonic.ConfigStd.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	if err := NewJSONSizeValidator(MaxParamsSize).ValidateSize(data); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	if err := ValidateJSONDepth(params, MaxParamsDepth); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	return nil
}

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateToolID validates a tool ID field (allows dots for service.tool format)
func ValidateToolID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxToolIDLength, required); err != nil {
		return err
	}

	if id != "" && !ToolIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, dots, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateEquation validates equation text before it reaches the parser
func ValidateEquation(eq, fieldName string) error {
	return ValidateString(strings.TrimSpace(eq), fieldName, 1, MaxEquationLength, true)
}

// ValidateCoefficientCount bounds a coefficient vector
func ValidateCoefficientCount(n int, fieldName string) error {
	if n > MaxCoefficients {
		return fmt.Errorf("%s must not exceed %d entries", fieldName, MaxCoefficients)
	}
	return nil
}
