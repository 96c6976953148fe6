package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cafemenu/backend/internal/infrastructure/config"
	"github.com/cafemenu/backend/internal/infrastructure/telemetry"
)

func TestNewTracerProviderDisabled(t *testing.T) {
	tp, err := telemetry.NewTracerProvider(context.Background(), config.TelemetryConfig{
		Enabled: false,
	}, zap.NewNop())

	require.NoError(t, err)
	require.NotNil(t, tp)

	// Shutdown on a no-op provider must not fail
	assert.NoError(t, tp.Shutdown(context.Background()))
}
