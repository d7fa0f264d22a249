package projects

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the project endpoints under /projects. Everything
// here requires auth.
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	private := r.PathPrefix("/projects").Subrouter()
	private.Use(authMW)
	private.HandleFunc("/my-projects", h.MyProjects).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("/feed", h.Feed).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("/{id}/assign", h.Assign).Methods(http.MethodPatch, http.MethodOptions)
	private.HandleFunc("", h.Create).Methods(http.MethodPost, http.MethodOptions)
}
