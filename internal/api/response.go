package api

import (
	"encoding/json"
	"net/http"

	"github.com/zapponejosh/saju-api/internal/logger"
)

// Response is the envelope around every API answer. RequestID matches the
// X-Request-ID header and the request_id attribute in the server logs.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// requestID prefers the context value; middleware outside RequestIDMiddleware
// (recovery) only sees the response header.
func requestID(w http.ResponseWriter, r *http.Request) string {
	if id := logger.RequestID(r.Context()); id != "" {
		return id
	}
	return w.Header().Get("X-Request-ID")
}

// WriteSuccess writes data in a 200 envelope.
func WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) error {
	return WriteJSON(w, http.StatusOK, Response{
		Success:   true,
		Data:      data,
		RequestID: requestID(w, r),
	})
}

// WriteError writes a failed envelope. code is the stable machine-readable
// error name clients switch on.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message, code string) error {
	return WriteJSON(w, status, Response{
		Success:   false,
		Error:     &ErrorInfo{Message: message, Code: code},
		RequestID: requestID(w, r),
	})
}

func WriteNotFound(w http.ResponseWriter, r *http.Request, message string) error {
	return WriteError(w, r, http.StatusNotFound, message, "NOT_FOUND")
}

func WriteBadRequest(w http.ResponseWriter, r *http.Request, message string) error {
	return WriteError(w, r, http.StatusBadRequest, message, "BAD_REQUEST")
}

func WriteInternalError(w http.ResponseWriter, r *http.Request, message string) error {
	return WriteError(w, r, http.StatusInternalServerError, message, "INTERNAL_ERROR")
}

func WriteUnauthorized(w http.ResponseWriter, r *http.Request, message string) error {
	return WriteError(w, r, http.StatusUnauthorized, message, "UNAUTHORIZED")
}

// WriteUnprocessable is for well-formed requests the calculator cannot
// answer, such as dates outside the lunar table.
func WriteUnprocessable(w http.ResponseWriter, r *http.Request, message, code string) error {
	return WriteError(w, r, http.StatusUnprocessableEntity, message, code)
}
