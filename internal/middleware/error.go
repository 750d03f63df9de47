package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"trivia-api/internal/logger"
)

// AppError represents a custom error type for the application.
// Message is for the log; clients see the canonical message for Code.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// errorMessages are the client-facing messages of the error envelope.
var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes the JSON error envelope for code.
func WriteError(w http.ResponseWriter, code int) {
	msg, ok := errorMessages[code]
	if !ok {
		msg = http.StatusText(code)
	}
	_ = WriteJSON(w, code, ErrorResponse{Success: false, Error: code, Message: msg})
}

// Error is a middleware that converts handler errors and panics into JSON error responses.
func Error(log logger.Logger) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					WriteError(w, http.StatusInternalServerError)
				}
			}()

			appErr := next(w, r)
			if appErr == nil {
				return
			}
			reqLog := log.With(map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": appErr.Code,
			})
			if appErr.Code >= http.StatusInternalServerError {
				reqLog.Error(appErr.Error, appErr.Message)
			} else {
				reqLog.Debug(fmt.Sprintf("%s: %v", appErr.Message, appErr.Error))
			}
			WriteError(w, appErr.Code)
		})
	}
}
