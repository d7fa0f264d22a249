package messages

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the message endpoints under /messages. The thread
// route is registered last so the fixed paths win.
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	private := r.PathPrefix("/messages").Subrouter()
	private.Use(authMW)
	private.HandleFunc("/conversations/list", h.Conversations).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("/{userId}", h.Thread).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("", h.Send).Methods(http.MethodPost, http.MethodOptions)
}

// RegisterWSRoute mounts the chat websocket on the root router. Auth
// happens inside ServeWS because the token arrives as a query parameter.
func RegisterWSRoute(r *mux.Router, h *Handler) {
	r.HandleFunc("/ws/chat", h.ServeWS)
}
