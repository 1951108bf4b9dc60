package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("context のリクエスト ID が属性に含まれる", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, slog.LevelInfo, "json")

		ctx := WithRequestID(context.Background(), "req-123")
		logger.With("component", "test").InfoContext(ctx, "hola", "key", "value")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "req-123", rec[RequestIDAttr])
		assert.Equal(t, "test", rec["component"])
		assert.Equal(t, "value", rec["key"])
	})

	t.Run("リクエスト ID がない場合は属性を追加しない", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, slog.LevelInfo, "text").InfoContext(context.Background(), "hola")

		assert.NotContains(t, buf.String(), RequestIDAttr)
		assert.Contains(t, buf.String(), "msg=hola")
	})

	t.Run("レベル未満のログは出力しない", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, slog.LevelWarn, "text").Info("oculto")

		assert.Empty(t, buf.String())
	})
}

func TestRequestID(t *testing.T) {
	_, ok := RequestID(context.Background())
	assert.False(t, ok)

	_, ok = RequestID(WithRequestID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := RequestID(WithRequestID(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}
