package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const HeaderRequestID = "X-Request-ID"

type Logger interface {
	Info(format string, v ...interface{})
}

// Logging пишет строку лога на каждый запрос и проставляет X-Request-ID
func Logging(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, requestID)

			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			log.Info("%s %s -> %d in %s, request_id=%s", r.Method, r.URL.Path, rec.status, time.Since(started), requestID)
		})
	}
}
