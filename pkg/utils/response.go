package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError writes an error response in the {"error": ...} wire shape.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondErrorDetail writes an error response carrying an additional detail
// string, matching the {"error": ..., "detail": ...} analyze wire shape.
func RespondErrorDetail(w http.ResponseWriter, status int, message, detail string) {
	RespondJSON(w, status, map[string]string{"error": message, "detail": detail})
}
