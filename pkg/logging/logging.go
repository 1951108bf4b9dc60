// Package logging は slog の既定ロガーを設定し、リクエスト ID をログ属性に加えます。
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type ctxKey struct{}

// RequestIDAttr はリクエスト ID のログ属性名です。
const RequestIDAttr = "request_id"

// WithRequestID はリクエスト ID を context に保存します。
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID は context に保存されたリクエスト ID を返します。
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// ContextHandler は context のリクエスト ID を各レコードに追加する slog.Handler です。
type ContextHandler struct {
	slog.Handler
}

// Handle はリクエスト ID があれば属性に追加してから委譲します。
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := RequestID(ctx); ok {
		r.AddAttrs(slog.String(RequestIDAttr, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{h.Handler.WithGroup(name)}
}

// New は format（"json" または "text"）に応じたロガーを作成します。
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(ContextHandler{handler})
}

// Setup はロガーを作成して slog の既定ロガーに設定します。
func Setup(w io.Writer, level slog.Level, format string) *slog.Logger {
	logger := New(w, level, format)
	slog.SetDefault(logger)
	return logger
}
