package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// WriteMessage writes the {message} envelope every endpoint uses for
// non-payload responses and errors.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteServerError logs the detailed cause server-side and hands the client a
// generic message only.
func WriteServerError(w http.ResponseWriter, context string, err error) {
	log.Printf("%s: %v", context, err)
	WriteMessage(w, http.StatusInternalServerError, "internal server error")
}
