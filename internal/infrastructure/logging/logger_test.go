package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			logger, err := New(Config{Level: level})
			require.NoError(t, err, level)
			assert.NotNil(t, logger)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(Config{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("defaults never fail", func(t *testing.T) {
		assert.NotNil(t, NewDefault())
		assert.NotNil(t, NewDevelopment())
	})
}

func TestParseLevel(t *testing.T) {
	l, err := parseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, l)

	l, err = parseLevel("nope")
	assert.Error(t, err)
	assert.Equal(t, zapcore.InfoLevel, l)
}

func TestSolveFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := &Logger{Logger: zap.New(core)}

	logger.WithRequest("req-1").Solve("math.solve.cubic", 3, 2*time.Millisecond, zap.Bool("converged", true))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "solve completed", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "math.solve.cubic", fields["tool"])
	assert.Equal(t, int64(3), fields["degree"])
	assert.Equal(t, 2*time.Millisecond, fields["duration"])
	assert.Equal(t, true, fields["converged"])
}

func TestWithRequestEmpty(t *testing.T) {
	logger := NewNop()
	assert.Same(t, logger, logger.WithRequest(""))
}
