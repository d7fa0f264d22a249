package payments

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/skyps2003/Freelancer/internal/api"
	"github.com/skyps2003/Freelancer/internal/api/notifications"
	"github.com/skyps2003/Freelancer/internal/middleware"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
)

type Handler struct {
	Transactions storage.TransactionStore
	Projects     storage.ProjectStore
	Products     storage.ProductStore
	Users        storage.UserStore
	Notifier     *notifications.Notifier
}

// cardStatus is the mock gateway: the card number suffix decides the
// outcome deterministically.
func cardStatus(cardNumber string) string {
	switch {
	case strings.HasSuffix(cardNumber, "4242"):
		return models.TxApproved
	case strings.HasSuffix(cardNumber, "0000"):
		return models.TxDeclined
	default:
		return models.TxError
	}
}

func last4(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}

// Checkout handles project (and general) payments. An approved payment on
// a project finalizes it.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID  string  `json:"projectId"`
		Amount     float64 `json:"amount"`
		CardNumber string  `json:"cardNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CardNumber == "" {
		api.Error(w, http.StatusBadRequest, "Card number is required")
		return
	}

	status := cardStatus(req.CardNumber)
	tx := &models.Transaction{
		BuyerID:   middleware.UserID(r),
		ProjectID: req.ProjectID,
		Amount:    req.Amount,
		CardLast4: last4(req.CardNumber),
		Status:    status,
	}
	if err := h.Transactions.Create(r.Context(), tx); err != nil {
		api.ServerError(w, err)
		return
	}

	switch status {
	case models.TxApproved:
		if req.ProjectID != "" {
			if err := h.Projects.SetStatus(r.Context(), req.ProjectID, models.ProjectFinalizado); err != nil {
				log.Printf("Error finalizing project %s: %v", req.ProjectID, err)
			}
		}
		api.JSON(w, http.StatusOK, map[string]interface{}{"status": status, "transaction": tx})
	case models.TxDeclined:
		api.JSON(w, http.StatusPaymentRequired, map[string]interface{}{
			"status": status, "msg": "Fondos insuficientes", "transaction": tx,
		})
	default:
		api.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"status": status, "msg": "Error processing card", "transaction": tx,
		})
	}
}

// CheckoutProduct purchases a listing: approved payments mark it SOLD,
// credit the seller's wallet and notify the seller of the sale.
func (h *Handler) CheckoutProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID  string `json:"productId"`
		CardNumber string `json:"cardNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CardNumber == "" {
		api.Error(w, http.StatusBadRequest, "Card number is required")
		return
	}

	product, err := h.Products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		api.ServerError(w, err)
		return
	}
	if product.Status == models.ProductSold {
		api.Error(w, http.StatusBadRequest, "Este producto ya ha sido vendido")
		return
	}

	buyerID := middleware.UserID(r)
	status := cardStatus(req.CardNumber)
	tx := &models.Transaction{
		BuyerID:   buyerID,
		SellerID:  product.Seller,
		ProductID: product.ID,
		Amount:    product.Price + product.ShippingCost,
		CardLast4: last4(req.CardNumber),
		Status:    status,
	}
	if err := h.Transactions.Create(r.Context(), tx); err != nil {
		api.ServerError(w, err)
		return
	}

	if status != models.TxApproved {
		api.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"status": status, "msg": "Error de pago", "transaction": tx,
		})
		return
	}

	if err := h.Products.SetStatus(r.Context(), product.ID, models.ProductSold); err != nil {
		log.Printf("Error marking product %s sold: %v", product.ID, err)
	}
	if product.Seller != "" {
		if err := h.Users.AddToWallet(r.Context(), product.Seller, product.Price); err != nil {
			log.Printf("Error crediting seller %s: %v", product.Seller, err)
		}
		notif := &models.Notification{
			Recipient: product.Seller,
			Sender:    buyerID,
			Type:      models.NotifSale,
			Message:   "¡Has vendido tu producto " + product.Title + "!",
			RelatedID: tx.ID,
		}
		if err := h.Notifier.Notify(r.Context(), notif); err != nil {
			log.Printf("Error creating sale notification: %v", err)
		}
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{"status": status, "transaction": tx})
}

// MyPurchases lists the caller's approved purchases, newest first.
func (h *Handler) MyPurchases(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Transactions.ListApprovedByBuyer(r.Context(), middleware.UserID(r))
	if err != nil {
		api.ServerError(w, err)
		return
	}
	for _, tx := range txs {
		if tx.ProductID == "" {
			continue
		}
		product, err := h.Products.GetByID(r.Context(), tx.ProductID)
		if err != nil {
			continue
		}
		if user, err := h.Users.GetByID(r.Context(), product.Seller); err == nil {
			product.SellerInfo = user.Summary()
		}
		tx.ProductInfo = product
	}
	if txs == nil {
		txs = []*models.Transaction{}
	}
	api.JSON(w, http.StatusOK, txs)
}

func (h *Handler) MySalesCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Transactions.CountApprovedBySeller(r.Context(), middleware.UserID(r))
	if err != nil {
		api.ServerError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, map[string]int64{"count": count})
}

// TransactionByProduct returns the approved transaction for a product,
// visible only to its buyer or seller.
func (h *Handler) TransactionByProduct(w http.ResponseWriter, r *http.Request) {
	tx, err := h.Transactions.GetApprovedByProduct(r.Context(), mux.Vars(r)["productId"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Transacción no encontrada")
			return
		}
		api.ServerError(w, err)
		return
	}

	callerID := middleware.UserID(r)
	if tx.SellerID != callerID && tx.BuyerID != callerID {
		api.Error(w, http.StatusUnauthorized, "No autorizado")
		return
	}

	if buyer, err := h.Users.GetByID(r.Context(), tx.BuyerID); err == nil {
		summary := buyer.Summary()
		summary.Email = buyer.Email
		tx.BuyerInfo = summary
	}
	api.JSON(w, http.StatusOK, tx)
}
