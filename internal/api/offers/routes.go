package offers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the offer endpoints under /offers. The feed is
// public; posting and applying require auth.
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	r.HandleFunc("/offers", h.List).Methods(http.MethodGet, http.MethodOptions)

	private := r.PathPrefix("/offers").Subrouter()
	private.Use(authMW)
	private.HandleFunc("/my-offers", h.MyOffers).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("/{id}/apply", h.Apply).Methods(http.MethodPost, http.MethodOptions)
	private.HandleFunc("", h.Create).Methods(http.MethodPost, http.MethodOptions)
}
