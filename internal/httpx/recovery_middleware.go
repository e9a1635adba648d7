package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.ErrorContext(r.Context(), "panic recovered",
				"request_id", RequestIDFrom(r),
				"error", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			)

			var wroteHeader bool
			if rw, ok := w.(*responseWriter); ok {
				wroteHeader = rw.wroteHeader()
			}
			if !wroteHeader {
				JSONError(w, http.StatusInternalServerError, MsgInternalError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
