package models

import "time"

// Message is a direct message between two users, optionally tied to a
// product listing. Messages are immutable once created.
type Message struct {
	ID        string          `json:"_id" bson:"_id"`
	Sender    string          `json:"sender" bson:"sender"`
	Receiver  string          `json:"receiver" bson:"receiver"`
	ProductID string          `json:"productId,omitempty" bson:"product_id,omitempty"`
	Product   *ProductSummary `json:"product,omitempty" bson:"-"`
	Content   string          `json:"content" bson:"content"`
	CreatedAt time.Time       `json:"createdAt" bson:"created_at"`
}

// OtherParty returns the endpoint of the message that is not userID.
func (m *Message) OtherParty(userID string) string {
	if m.Sender == userID {
		return m.Receiver
	}
	return m.Sender
}
