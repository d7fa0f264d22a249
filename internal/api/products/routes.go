package products

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the product endpoints under /products. The
// catalogue is public; creating and listing own products require auth.
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	r.HandleFunc("/products", h.List).Methods(http.MethodGet, http.MethodOptions)

	private := r.PathPrefix("/products").Subrouter()
	private.Use(authMW)
	private.HandleFunc("/my-products", h.MyProducts).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("", h.Create).Methods(http.MethodPost, http.MethodOptions)
}
