package payments

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the payment endpoints under /payments.
func RegisterRoutes(r *mux.Router, h *Handler, authMW mux.MiddlewareFunc) {
	private := r.PathPrefix("/payments").Subrouter()
	private.Use(authMW)
	private.HandleFunc("/my-purchases", h.MyPurchases).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("/my-sales-count", h.MySalesCount).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("/transaction/product/{productId}", h.TransactionByProduct).Methods(http.MethodGet, http.MethodOptions)
	private.HandleFunc("/checkout/product", h.CheckoutProduct).Methods(http.MethodPost, http.MethodOptions)
	private.HandleFunc("/checkout", h.Checkout).Methods(http.MethodPost, http.MethodOptions)
}
