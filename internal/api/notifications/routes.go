package notifications

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the notification endpoints under /notifications.
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	private := r.PathPrefix("/notifications").Subrouter()
	private.Use(authMW)
	private.HandleFunc("/unread-count", h.UnreadCount).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("/{id}/read", h.MarkRead).Methods(http.MethodPut, http.MethodOptions)
	private.HandleFunc("", h.List).Methods(http.MethodGet, http.MethodOptions)
}
