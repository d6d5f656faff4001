package http

import (
	"net/http"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// AccessLog logs every request with chi's request id and the active trace.
func AccessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				}
				l := logger.WithTrace(r.Context(), log)
				if ww.Status() >= http.StatusInternalServerError {
					l.Warn("request failed", fields...)
					return
				}
				l.Info("request", fields...)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
