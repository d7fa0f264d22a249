// Package chatclient implements the chat-side state machine: conversation
// selection, history loading, optimistic sends with delivery status, and
// reconciliation of realtime pushes against the rendered message list.
package chatclient

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skyps2003/Freelancer/internal/models"
)

// ErrNoConversation is returned when sending without an active thread.
var ErrNoConversation = errors.New("no conversation selected")

// State of the chat screen.
type State int

const (
	StateNoConversation State = iota
	StateLoadingHistory
	StateActive
)

// Status tracks delivery of an optimistically rendered message.
type Status int

const (
	StatusPending Status = iota
	StatusConfirmed
	StatusFailed
)

// Message is one rendered chat entry.
type Message struct {
	ID        string
	Sender    string
	Receiver  string
	Content   string
	Product   *models.ProductSummary
	CreatedAt time.Time
	Status    Status
}

// Conversation is one entry of the partner list.
type Conversation struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	LastMessage string    `json:"lastMessage"`
	Date        time.Time `json:"date"`
}

// WireMessage is the payload shape crossing the realtime channel.
type WireMessage struct {
	ID         string                 `json:"_id"`
	Sender     string                 `json:"sender"`
	ReceiverID string                 `json:"receiverId"`
	Content    string                 `json:"content"`
	Product    *models.ProductSummary `json:"product,omitempty"`
	CreatedAt  time.Time              `json:"createdAt,omitempty"`
}

// API is the REST surface the chat screen consumes.
type API interface {
	Thread(ctx context.Context, otherUserID string) ([]*models.Message, error)
	Send(ctx context.Context, receiverID, content, productID string) (*models.Message, error)
	Conversations(ctx context.Context) ([]Conversation, error)
}

// Emitter pushes an already-persisted message onto the realtime channel so
// a connected recipient updates without a refetch.
type Emitter interface {
	EmitMessage(msg WireMessage) error
}

// Client owns the chat screen state. All exported methods are safe for
// concurrent use; callbacks fire outside the lock.
type Client struct {
	selfID  string
	api     API
	emitter Emitter

	mu            sync.Mutex
	state         State
	partnerID     string
	messages      []Message
	product       *models.ProductSummary
	seen          map[string]bool
	loadGen       int
	conversations []Conversation

	// OnMessagesChanged fires after the visible message list changes.
	OnMessagesChanged func()
	// OnConversationsChanged fires after the partner list is refreshed.
	OnConversationsChanged func()
}

func New(selfID string, api API, emitter Emitter) *Client {
	return &Client{
		selfID:  selfID,
		api:     api,
		emitter: emitter,
		seen:    make(map[string]bool),
	}
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) PartnerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.partnerID
}

// Messages returns a snapshot of the visible list.
func (c *Client) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

// Product returns the listing pinned as the conversation's subject, if any.
func (c *Client) Product() *models.ProductSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.product
}

func (c *Client) Conversations() []Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Conversation(nil), c.conversations...)
}

// RefreshConversations refetches the partner list.
func (c *Client) RefreshConversations(ctx context.Context) error {
	list, err := c.api.Conversations(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.conversations = list
	c.mu.Unlock()
	c.notifyConversations()
	return nil
}

// SelectConversation loads the history with partnerID and activates the
// thread. Selecting the already-open partner is a no-op. A stale load
// (superseded by a newer selection) is discarded rather than applied.
func (c *Client) SelectConversation(ctx context.Context, partnerID string) error {
	c.mu.Lock()
	if c.partnerID == partnerID && c.state == StateActive {
		c.mu.Unlock()
		return nil
	}
	c.loadGen++
	gen := c.loadGen
	c.state = StateLoadingHistory
	c.partnerID = partnerID
	c.messages = nil
	c.product = nil
	c.seen = make(map[string]bool)
	c.mu.Unlock()
	c.notifyMessages()

	history, err := c.api.Thread(ctx, partnerID)

	c.mu.Lock()
	if gen != c.loadGen {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.state = StateNoConversation
		c.partnerID = ""
		c.mu.Unlock()
		return err
	}

	c.messages = make([]Message, 0, len(history))
	for _, m := range history {
		c.seen[m.ID] = true
		c.messages = append(c.messages, Message{
			ID:        m.ID,
			Sender:    m.Sender,
			Receiver:  m.Receiver,
			Content:   m.Content,
			Product:   m.Product,
			CreatedAt: m.CreatedAt,
			Status:    StatusConfirmed,
		})
	}
	// The newest message referencing a product pins it as the thread's
	// subject.
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Product != nil {
			c.product = history[i].Product
			break
		}
	}
	c.state = StateActive
	c.mu.Unlock()
	c.notifyMessages()
	return nil
}

// SendMessage appends the message optimistically, then persists it. On
// success the temporary entry adopts the server identifier and Confirmed
// status and the message is echoed onto the realtime channel; on failure
// the entry is flagged Failed instead of being silently kept as sent.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.state != StateActive {
		c.mu.Unlock()
		return ErrNoConversation
	}
	partnerID := c.partnerID
	product := c.product
	tempID := "tmp-" + uuid.NewString()
	c.seen[tempID] = true
	c.messages = append(c.messages, Message{
		ID:        tempID,
		Sender:    c.selfID,
		Receiver:  partnerID,
		Content:   text,
		Product:   product,
		CreatedAt: time.Now().UTC(),
		Status:    StatusPending,
	})
	c.mu.Unlock()
	c.notifyMessages()

	productID := ""
	if product != nil {
		productID = product.ID
	}
	sent, err := c.api.Send(ctx, partnerID, text, productID)

	c.mu.Lock()
	if err != nil {
		c.setStatus(tempID, tempID, StatusFailed)
		c.mu.Unlock()
		c.notifyMessages()
		return err
	}
	c.setStatus(tempID, sent.ID, StatusConfirmed)
	c.seen[sent.ID] = true
	c.mu.Unlock()
	c.notifyMessages()

	if c.emitter != nil {
		wire := WireMessage{
			ID:         sent.ID,
			Sender:     c.selfID,
			ReceiverID: partnerID,
			Content:    text,
			Product:    product,
			CreatedAt:  sent.CreatedAt,
		}
		if err := c.emitter.EmitMessage(wire); err != nil {
			// Realtime is best effort; the message is already durable.
			log.Printf("Error emitting realtime message: %v", err)
		}
	}
	return nil
}

// HandleIncoming reconciles a realtime push. Events for the open thread
// append after identifier dedupe; events for any other thread mark the
// conversation list stale and refresh it.
func (c *Client) HandleIncoming(ctx context.Context, msg WireMessage) {
	c.mu.Lock()
	active := c.state == StateActive &&
		(msg.Sender == c.partnerID || msg.ReceiverID == c.partnerID)
	if active {
		if c.seen[msg.ID] {
			c.mu.Unlock()
			return
		}
		c.seen[msg.ID] = true
		createdAt := msg.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		c.messages = append(c.messages, Message{
			ID:        msg.ID,
			Sender:    msg.Sender,
			Receiver:  msg.ReceiverID,
			Content:   msg.Content,
			Product:   msg.Product,
			CreatedAt: createdAt,
			Status:    StatusConfirmed,
		})
		c.mu.Unlock()
		c.notifyMessages()
		return
	}
	c.mu.Unlock()

	if err := c.RefreshConversations(ctx); err != nil {
		log.Printf("Error refreshing conversations: %v", err)
	}
}

// setStatus rewrites one entry in place. Caller holds the lock.
func (c *Client) setStatus(oldID, newID string, status Status) {
	for i := range c.messages {
		if c.messages[i].ID == oldID {
			c.messages[i].ID = newID
			c.messages[i].Status = status
			return
		}
	}
}

func (c *Client) notifyMessages() {
	if c.OnMessagesChanged != nil {
		c.OnMessagesChanged()
	}
}

func (c *Client) notifyConversations() {
	if c.OnConversationsChanged != nil {
		c.OnConversationsChanged()
	}
}
