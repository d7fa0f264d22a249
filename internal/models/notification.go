package models

import "time"

// Notification kinds.
const (
	NotifMessage = "MESSAGE"
	NotifSale    = "SALE"
	NotifSystem  = "SYSTEM"
)

// Notification is an inbox event for a user. The read flag only ever
// transitions false to true.
type Notification struct {
	ID        string    `json:"_id" bson:"_id"`
	Recipient string    `json:"recipient" bson:"recipient"`
	Sender    string    `json:"sender,omitempty" bson:"sender,omitempty"`
	Type      string    `json:"type" bson:"type"`
	Message   string    `json:"message" bson:"message"`
	RelatedID string    `json:"relatedId,omitempty" bson:"related_id,omitempty"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
