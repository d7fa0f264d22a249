package messages

import (
	"time"

	"github.com/skyps2003/Freelancer/internal/models"
)

// ConversationPreview is one entry in the conversation list: a distinct
// chat partner annotated with the newest message exchanged with them.
type ConversationPreview struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	LastMessage string    `json:"lastMessage"`
	Date        time.Time `json:"date"`
}

// buildConversations derives the conversation list from msgs, which must be
// sorted newest first (ties broken by descending ID, as the stores
// guarantee). The first message seen for a given other party supplies the
// preview; later (older) ones are skipped. Output order is first-seen
// order, i.e. overall descending recency, without re-sorting.
func buildConversations(userID string, msgs []*models.Message) []ConversationPreview {
	conversations := []ConversationPreview{}
	seen := make(map[string]bool)
	for _, m := range msgs {
		other := m.OtherParty(userID)
		if seen[other] {
			continue
		}
		seen[other] = true
		conversations = append(conversations, ConversationPreview{
			ID:          other,
			LastMessage: m.Content,
			Date:        m.CreatedAt,
		})
	}
	return conversations
}
