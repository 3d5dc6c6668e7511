package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

type ctxKey int

const ctxKeyRequestID ctxKey = iota

// RequestIDFromContext ID запроса, выставленный AccessLog
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

// AccessLog присваивает запросу X-Request-Id (или берет входящий) и пишет строку access-лога
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, id)))

			logger.Info("HTTP %s %s - status=%d, bytes=%d, duration=%s, request_id=%s, remote=%s, forwarded_for=%q",
				r.Method, r.URL.Path, rec.status, rec.bytes, time.Since(start), id, remoteHost(r.RemoteAddr), r.Header.Get("X-Forwarded-For"))
		})
	}
}
