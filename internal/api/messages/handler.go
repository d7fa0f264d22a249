package messages

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/skyps2003/Freelancer/internal/api"
	"github.com/skyps2003/Freelancer/internal/api/notifications"
	"github.com/skyps2003/Freelancer/internal/auth"
	"github.com/skyps2003/Freelancer/internal/middleware"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
	"github.com/skyps2003/Freelancer/internal/ws"
)

type Handler struct {
	Messages  storage.MessageStore
	Users     storage.UserStore
	Products  storage.ProductStore
	Notifier  *notifications.Notifier
	Hub       *ws.Hub
	JWTSecret string
}

// Send persists a message and derives a MESSAGE notification for the
// receiver. Empty content is rejected server-side.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Receiver string `json:"receiver"`
		Content  string `json:"content"`
		Product  string `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Receiver == "" || req.Content == "" {
		api.Error(w, http.StatusBadRequest, "Receiver and content are required")
		return
	}

	msg := &models.Message{
		Sender:    middleware.UserID(r),
		Receiver:  req.Receiver,
		ProductID: req.Product,
		Content:   req.Content,
	}
	if err := h.Messages.Create(r.Context(), msg); err != nil {
		api.ServerError(w, err)
		return
	}

	notif := &models.Notification{
		Recipient: req.Receiver,
		Sender:    msg.Sender,
		Type:      models.NotifMessage,
		Message:   "Nuevo mensaje de un usuario sobre tu producto.",
		RelatedID: msg.ID,
	}
	if err := h.Notifier.Notify(r.Context(), notif); err != nil {
		// The message is already durable; the missing inbox entry is the
		// known partial-failure mode.
		log.Printf("Error creating message notification: %v", err)
	}

	api.JSON(w, http.StatusOK, msg)
}

// Thread returns the full history between the caller and the other user,
// oldest first, with product summaries attached.
func (h *Handler) Thread(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Messages.Thread(r.Context(), middleware.UserID(r), mux.Vars(r)["userId"])
	if err != nil {
		api.ServerError(w, err)
		return
	}
	h.attachProducts(r, msgs)
	if msgs == nil {
		msgs = []*models.Message{}
	}
	api.JSON(w, http.StatusOK, msgs)
}

// Conversations derives the caller's conversation list with partner names
// and avatars.
func (h *Handler) Conversations(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	msgs, err := h.Messages.ListForUser(r.Context(), userID)
	if err != nil {
		api.ServerError(w, err)
		return
	}

	conversations := buildConversations(userID, msgs)
	for i := range conversations {
		user, err := h.Users.GetByID(r.Context(), conversations[i].ID)
		if err != nil {
			continue
		}
		conversations[i].Name = user.Name
		conversations[i].Avatar = user.Avatar
	}
	api.JSON(w, http.StatusOK, conversations)
}

func (h *Handler) attachProducts(r *http.Request, msgs []*models.Message) {
	cache := make(map[string]*models.ProductSummary)
	for _, m := range msgs {
		if m.ProductID == "" {
			continue
		}
		if summary, ok := cache[m.ProductID]; ok {
			m.Product = summary
			continue
		}
		product, err := h.Products.GetByID(r.Context(), m.ProductID)
		if err != nil {
			continue
		}
		cache[m.ProductID] = product.Summary()
		m.Product = cache[m.ProductID]
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection and registers it in the room of the
// token's identity. The token travels in the query string because browser
// websocket clients cannot set headers.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	claims, err := auth.ParseToken(h.JWTSecret, token)
	if err != nil {
		http.Error(w, "Token is not valid", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed for %s: %v", claims.UserID, err)
		return
	}

	client := ws.NewClient(h.Hub, conn, claims.UserID)
	h.Hub.Register <- client
	log.Printf("User %s joined room %s", claims.UserID, claims.UserID)

	go client.WritePump()
	client.ReadPump()
}
