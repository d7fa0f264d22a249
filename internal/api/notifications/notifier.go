package notifications

import (
	"context"
	"log"

	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
	"github.com/skyps2003/Freelancer/internal/storage/valkeycache"
)

// Notifier creates inbox notifications and keeps the unread counter cache
// in step. Other handlers (messages, payments) hold one of these.
type Notifier struct {
	Store  storage.NotificationStore
	Unread *valkeycache.UnreadCounter // nil disables the cache
}

func (n *Notifier) Notify(ctx context.Context, notif *models.Notification) error {
	if err := n.Store.Create(ctx, notif); err != nil {
		return err
	}
	if n.Unread != nil {
		if err := n.Unread.Incr(ctx, notif.Recipient); err != nil {
			// The counter is a cache; the notification itself is durable.
			log.Printf("Error bumping unread counter for %s: %v", notif.Recipient, err)
		}
	}
	return nil
}
