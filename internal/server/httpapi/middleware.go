package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/pdstore/internal/common"
	"github.com/dmitrijs2005/pdstore/internal/logging"
	"github.com/dmitrijs2005/pdstore/internal/server/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 64

// requestID adopts a caller-supplied request id or mints a ULID, echoes it
// in the response and stores it in the context for logging.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = ulid.Make().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}

// observe logs every request and records it in the HTTP metrics, labeled
// with the matched route pattern.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		elapsed := time.Since(start)

		h.metrics.ObserveHTTP(r.Method, route, status, elapsed)
		h.logger.Info(r.Context(), "request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

// limitBody caps the request body at the configured size.
func (h *Handler) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

// requireUser resolves the bearer token to a user id and stores it in the
// request context. Rejected requests never reach the wrapped handler.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.VerifyRequestToken(h.tokens, r.Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			reason := tokenRejection(err)
			h.metrics.TokenRejected(reason)
			h.logger.Debug(r.Context(), "request rejected by guard", "reason", reason, "error", err)
			h.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
	})
}
