package authapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the auth endpoints under /auth.
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost, http.MethodOptions)

	private := r.PathPrefix("/auth").Subrouter()
	private.Use(authMW)
	private.HandleFunc("/me", h.Me).Methods(http.MethodGet, http.MethodOptions)
}
