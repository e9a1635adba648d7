package server

import (
	"log/slog"
	"net/http"

	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"
)

// NewRouter wires the book routes, the greeting and the JSON not-found
// fallback behind the middleware chain.
func NewRouter(books *book.HTTPHandler, logger *slog.Logger, maxBodyBytes int64) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", hello)
	books.Register(mux)
	mux.HandleFunc("/", httpx.NotFound)

	return httpx.Chain(mux,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware,
		httpx.RequestSizeLimitMiddleware(maxBodyBytes),
	)
}

func hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello, User!"))
}
