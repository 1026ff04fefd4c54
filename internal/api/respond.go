package api

import (
	"encoding/json"
	"net/http"
)

const (
	statusSuccess = "success"
	statusIgnored = "ignored"
	statusError   = "error"
)

// statusResponse is the body of every webhook receiver reply and of all errors.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondStatus(w http.ResponseWriter, code int, status, message string) {
	respondJSON(w, code, statusResponse{Status: status, Message: message})
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondStatus(w, code, statusError, message)
}
