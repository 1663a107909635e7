package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	t.Run("returns the attached logger", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		l := zap.New(core).Sugar().With("requestID", "abc")

		ctx := NewContext(context.Background(), l)
		FromContext(ctx).Infow("computed cycles", "symbol", "SPY")

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		require.Equal(t, "computed cycles", entry.Message)
		require.Equal(t, "abc", entry.ContextMap()["requestID"])
		require.Equal(t, "SPY", entry.ContextMap()["symbol"])
	})

	t.Run("falls back to the global logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}
