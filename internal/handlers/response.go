package handlers

import (
	"encoding/json"
	"net/http"
)

func responseWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func responseWithError(w http.ResponseWriter, code int, message string) {
	responseWithJSON(w, code, map[string]string{"error": message})
}

// responseWithFieldErrors surfaces form validation as a field-keyed map,
// the shape the create/edit form renders inline.
func responseWithFieldErrors(w http.ResponseWriter, fields map[string]string) {
	responseWithJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
}
