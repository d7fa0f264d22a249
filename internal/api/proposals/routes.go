package proposals

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the proposal endpoints under /proposals.
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	private := r.PathPrefix("/proposals").Subrouter()
	private.Use(authMW)
	private.HandleFunc("", h.Submit).Methods(http.MethodPost, http.MethodOptions)
}
