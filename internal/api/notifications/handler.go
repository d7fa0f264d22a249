package notifications

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/skyps2003/Freelancer/internal/api"
	"github.com/skyps2003/Freelancer/internal/middleware"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
	"github.com/skyps2003/Freelancer/internal/storage/valkeycache"
)

type Handler struct {
	Notifications storage.NotificationStore
	Unread        *valkeycache.UnreadCounter // nil disables the cache
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Notifications.ListByRecipient(r.Context(), middleware.UserID(r))
	if err != nil {
		api.ServerError(w, err)
		return
	}
	if list == nil {
		list = []*models.Notification{}
	}
	api.JSON(w, http.StatusOK, list)
}

// UnreadCount serves the badge counter, preferring the cache and falling
// back to a store count.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if h.Unread != nil {
		if count, err := h.Unread.Get(r.Context(), userID); err == nil {
			api.JSON(w, http.StatusOK, map[string]int64{"count": count})
			return
		} else {
			log.Printf("Error reading unread counter for %s: %v", userID, err)
		}
	}
	count, err := h.Notifications.CountUnread(r.Context(), userID)
	if err != nil {
		api.ServerError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, map[string]int64{"count": count})
}

// MarkRead flips one notification to read. Marking an already-read
// notification succeeds and changes nothing.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	notif, transitioned, err := h.Notifications.MarkRead(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Notification not found")
			return
		}
		api.ServerError(w, err)
		return
	}
	if transitioned && h.Unread != nil {
		if err := h.Unread.Decr(r.Context(), userID); err != nil {
			log.Printf("Error lowering unread counter for %s: %v", userID, err)
		}
	}
	api.JSON(w, http.StatusOK, notif)
}
