package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the API error envelope. Error carries a snake_case code
// such as "validation_failed", "not_found" or "source_read_only"; Details is
// optional field-level context, typically a validation violations map.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload as a JSON response with the given status. The body is
// marshalled up front so an encoding failure degrades to a plain 500 instead
// of a truncated payload.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes the error envelope with the given code and details.
func JSONError(w http.ResponseWriter, status int, code string, details any) {
	JSON(w, status, ErrorResponse{Error: code, Details: details})
}
