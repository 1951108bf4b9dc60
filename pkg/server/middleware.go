package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shouni/scripic-kit/pkg/domain"
	"github.com/shouni/scripic-kit/pkg/logging"
)

// RequestIDHeader はリクエスト ID のヘッダー名です。
const RequestIDHeader = "X-Request-ID"

// requestID はリクエスト ID を採番し、context とレスポンスヘッダーに設定します。
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// recovery は panic を記録し、500 の JSON を返します。
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "panic から復帰しました",
					"error", fmt.Sprint(r), "path", c.Request.URL.Path, "method", c.Request.Method)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{
					Error: "Error interno del servidor.",
					Kind:  domain.KindUnknown.String(),
				})
			}
		}()
		c.Next()
	}
}

// corsMiddleware は許可するオリジンを設定した CORS ミドルウェアを返します。
// "*" が含まれる場合はすべてのオリジンを許可します。
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
