package server

import (
	"encoding/json"
	"net/http"
)

// Answer is the response of the webhooks: the same answer spoken, in markdown and in HTML.
type Answer struct {
	RequestID          string `json:"request_id"`
	Text               string `json:"text"`
	Markdown           string `json:"markdown,omitempty"`
	HTML               string `json:"html,omitempty"`
	NeedsClarification bool   `json:"needs_clarification,omitempty"`
	Data               any    `json:"data,omitempty"`
}

// speaker is implemented by the renderer view models.
type speaker interface {
	Speech() string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error":      http.StatusText(status),
		"detail":     msg,
		"request_id": requestID(r.Context()),
	})
}
