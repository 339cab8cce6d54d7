package httpapi

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// WriteRedirectError is an error response carrying the page the client
// should navigate to, for gate denials.
func WriteRedirectError(w http.ResponseWriter, status int, message, redirect string) {
	WriteJSON(w, status, ErrorResponse{Message: message, Redirect: redirect})
}
