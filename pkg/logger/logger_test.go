package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"meusmedicamentos/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNilLoggerSafety(t *testing.T) {
	original := log
	t.Cleanup(func() { log = original })
	log = nil

	assert.NotPanics(t, func() {
		Debug("debug")
		Info("info")
		Warn("warn")
		Error("error")
		With(zap.String("key", "value")).Info("with")
		WithRequestID("req").Info("request")
		WithContext(map[string]any{"k": "v"}).Info("context")
		Named("outbox").Info("named")
	})
	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.LogConfig
		env   string
		level zapcore.Level
	}{
		{"development debug", config.LogConfig{Level: "debug", Output: "stdout"}, "development", zapcore.DebugLevel},
		{"production json", config.LogConfig{Level: "warn", Format: "json", Output: "stdout"}, "production", zapcore.WarnLevel},
		{"unknown level falls back to info", config.LogConfig{Level: "verbose"}, "production", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Init(&tt.cfg, tt.env))
			assert.Equal(t, tt.level, atomLevel.Level())
		})
	}
}

func TestUpdateLevel(t *testing.T) {
	require.NoError(t, Init(&config.LogConfig{Level: "debug", Output: "stdout"}, "development"))

	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
	UpdateLevel("error")
	assert.False(t, Get().Core().Enabled(zapcore.WarnLevel))
	UpdateLevel("debug")
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
}

func TestWithContextTypes(t *testing.T) {
	require.NoError(t, Init(&config.LogConfig{Level: "info", Output: "stdout"}, "development"))

	l := WithContext(map[string]any{
		"medicamento_id": 7,
		"nome":           "Dipirona",
		"quantidade":     int64(20),
		"ativo":          true,
		"erro":           errors.New("falha"),
	})
	assert.NotNil(t, l)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	require.NoError(t, Init(&config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
		MaxSize:  1,
	}, "production"))

	Info("estoque atualizado", zap.Int("medicamento_id", 1))
	_ = Sync()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
