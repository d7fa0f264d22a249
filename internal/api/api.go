// Package api holds the small response helpers shared by every handler
// package.
package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// JSON writes v as a JSON response.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Error writes a {"msg": ...} error body.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"msg": msg})
}

// ServerError logs err and responds with a generic 500.
func ServerError(w http.ResponseWriter, err error) {
	log.Printf("Server error: %v", err)
	Error(w, http.StatusInternalServerError, "Server Error")
}
