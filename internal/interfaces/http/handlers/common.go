// Package handlers contains the HTTP handlers for the gateway API.
package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/chemgpt/gateway/pkg/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, statusCode int, code apperrors.ErrorCode, message string) {
	writeJSON(w, statusCode, ErrorResponse{
		Code:    string(code),
		Message: message,
	})
}

// writeAppError maps application errors to HTTP status codes. Internal
// errors are masked; everything else surfaces its message.
func writeAppError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := code.HTTPStatus()
	if status == http.StatusInternalServerError {
		writeError(w, status, apperrors.CodeInternal, "internal server error")
		return
	}
	writeError(w, status, code, err.Error())
}
