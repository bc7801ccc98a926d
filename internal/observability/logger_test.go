package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/humanmotion/internal/config"
)

func testLoggerConfig() config.LoggerConfig {
	return config.LoggerConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "humanmotion-test",
	}
}

func TestInitialize_WritesStructuredOutput(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(testLoggerConfig(), zapcore.AddSync(&buf))

	logger := GetLogger()
	require.NotNil(t, logger)
	logger.Info("trajectory planned")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, "trajectory planned")
	assert.Contains(t, out, "humanmotion-test")
	assert.Contains(t, out, `"level":"INFO"`)
}

func TestInitialize_LevelFiltering(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	cfg := testLoggerConfig()
	cfg.Level = "warn"

	var buf bytes.Buffer
	Initialize(cfg, zapcore.AddSync(&buf))

	logger := GetLogger()
	logger.Debug("suppressed")
	logger.Warn("surfaced")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "surfaced")
}

func TestInitialize_InvalidLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	cfg := testLoggerConfig()
	cfg.Level = "loudest"

	var buf bytes.Buffer
	Initialize(cfg, zapcore.AddSync(&buf))

	logger := GetLogger()
	logger.Debug("below info")
	logger.Info("at info")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "below info")
	assert.Contains(t, out, "at info")
}

func TestInitialize_OnlyOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second bytes.Buffer
	Initialize(testLoggerConfig(), zapcore.AddSync(&first))
	Initialize(testLoggerConfig(), zapcore.AddSync(&second))

	GetLogger().Info("single home")
	require.NoError(t, GetLogger().Sync())

	assert.Contains(t, first.String(), "single home")
	assert.Empty(t, second.String(), "second initialization must be a no-op")
}

func TestGetLogger_FallbackBeforeInit(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logger := GetLogger()
	require.NotNil(t, logger, "fallback logger must always be available")
}

func TestSync_NoopWithoutLogger(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	// Must not panic with no logger installed.
	Sync()
}
