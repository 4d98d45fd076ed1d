package handlers

import (
	"encoding/json"
	"net/http"

	"todoList/internal/service"
)

// Envelope - единый конверт любого ответа API.
// success=false всегда идёт с message и никогда с data.
type Envelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
}

func respondJSON(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(env)
}

func respondData(w http.ResponseWriter, code int, data any, message string) {
	respondJSON(w, code, Envelope{Success: true, Data: data, Message: message})
}

func respondPage(w http.ResponseWriter, data any, pagination *service.Pagination) {
	respondJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: pagination})
}

func respondMessage(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, Envelope{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, Envelope{Success: false, Message: message})
}
