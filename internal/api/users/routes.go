package users

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the user endpoints under /users. All of them
// require authentication.
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	private := r.PathPrefix("/users").Subrouter()
	private.Use(authMW)
	private.HandleFunc("/me", h.Me).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("/profile", h.UpdateProfile).Methods(http.MethodPut, http.MethodOptions)
}
