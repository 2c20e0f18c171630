// Package middleware provides HTTP middleware for the chat skill server.
package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Recover returns middleware that turns a handler panic into a call to
// fallback. Unlike chi's Recoverer it never answers with a bare 500. The
// fallback only runs while nothing has been written; a response that was
// already started is left as is.
func Recover(logger *slog.Logger, fallback http.Handler) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel compared as chi does
					panic(rec)
				}
				logger.Error("Handler panicked",
					"path", r.URL.Path,
					"request_id", chiMiddleware.GetReqID(r.Context()),
					"panic", rec,
					"stack", string(debug.Stack()),
					"response_started", ww.Status() != 0,
				)
				if ww.Status() == 0 {
					fallback.ServeHTTP(ww, r)
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
