package api

import (
	"encoding/json"
	"net/http"
)

// Success writes a JSON response body with the given status. A nil body
// sends the status code alone, which is how the 204 delete response is
// produced.
func Success(w http.ResponseWriter, statusCode int, data any) {
	if data == nil {
		w.WriteHeader(statusCode)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes the error envelope every handler shares, so clients can
// always read a failure from the "error" field.
func Error(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
