package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFilterCore(t *testing.T) {
	inner, logs := observer.New(zapcore.DebugLevel)
	core := &levelFilterCore{Core: inner, minLevel: zapcore.WarnLevel}
	logger := zap.New(core).With(zap.String("sku", "TK1-FOOT"))

	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept too")

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
	assert.Equal(t, "TK1-FOOT", logs.All()[0].ContextMap()["sku"])
	assert.False(t, core.Enabled(zapcore.InfoLevel))
}
