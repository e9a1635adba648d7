package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	MsgResourceNotFound = "Resource not found"
	MsgInternalError    = "Internal Server Error"
)

// Envelope is the body of every JSON response. Fields that do not apply
// to a response are omitted.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Total   *int   `json:"total,omitempty"`
	Message string `json:"message,omitempty"`
}

// WriteJSON encodes env with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func JSONSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// JSONList writes a collection together with its size.
func JSONList(w http.ResponseWriter, data any, total int) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Total: &total})
}

func JSONSuccessCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

func JSONMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

func JSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Envelope{Success: false, Error: message})
}

// NotFound is the response for requests no route matches.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	JSONError(w, http.StatusNotFound, MsgResourceNotFound)
}

// InternalError logs err against the request and writes a generic 500.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal error",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFrom(r),
		"error", err,
	)
	JSONError(w, http.StatusInternalServerError, MsgInternalError)
}
