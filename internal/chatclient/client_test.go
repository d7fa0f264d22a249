package chatclient

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/skyps2003/Freelancer/internal/models"
)

type fakeAPI struct {
	mu            sync.Mutex
	threadFn      func(partnerID string) ([]*models.Message, error)
	sendFn        func(receiverID, content, productID string) (*models.Message, error)
	conversations []Conversation
	threadCalls   int
	sendCalls     int
	convCalls     int
}

func (f *fakeAPI) Thread(ctx context.Context, otherUserID string) ([]*models.Message, error) {
	f.mu.Lock()
	f.threadCalls++
	fn := f.threadFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(otherUserID)
}

func (f *fakeAPI) Send(ctx context.Context, receiverID, content, productID string) (*models.Message, error) {
	f.mu.Lock()
	f.sendCalls++
	fn := f.sendFn
	f.mu.Unlock()
	if fn == nil {
		return &models.Message{ID: "srv-1", Sender: "self", Receiver: receiverID, Content: content}, nil
	}
	return fn(receiverID, content, productID)
}

func (f *fakeAPI) Conversations(ctx context.Context) ([]Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.convCalls++
	return f.conversations, nil
}

type fakeEmitter struct {
	mu      sync.Mutex
	emitted []WireMessage
}

func (f *fakeEmitter) EmitMessage(msg WireMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emitted = append(f.emitted, msg)
	return nil
}

func TestSelectConversationLoadsHistory(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	history := []*models.Message{
		{ID: "m1", Sender: "bob", Receiver: "self", Content: "hola",
			Product: &models.ProductSummary{ID: "p1", Title: "Logo"}, CreatedAt: base},
		{ID: "m2", Sender: "self", Receiver: "bob", Content: "hi", CreatedAt: base.Add(time.Minute)},
		{ID: "m3", Sender: "bob", Receiver: "self", Content: "deal",
			Product: &models.ProductSummary{ID: "p2", Title: "Banner"}, CreatedAt: base.Add(2 * time.Minute)},
	}
	api := &fakeAPI{threadFn: func(string) ([]*models.Message, error) { return history, nil }}
	c := New("self", api, nil)

	if err := c.SelectConversation(context.Background(), "bob"); err != nil {
		t.Fatalf("SelectConversation: %v", err)
	}

	if got := c.State(); got != StateActive {
		t.Errorf("state = %d, want StateActive", got)
	}
	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	for _, m := range msgs {
		if m.Status != StatusConfirmed {
			t.Errorf("history message %s has status %d, want Confirmed", m.ID, m.Status)
		}
	}
	// The newest product-bearing message decides the thread's subject.
	if p := c.Product(); p == nil || p.ID != "p2" {
		t.Errorf("pinned product = %+v, want p2", p)
	}
}

func TestSelectSamePartnerIsNoop(t *testing.T) {
	api := &fakeAPI{}
	c := New("self", api, nil)
	ctx := context.Background()

	if err := c.SelectConversation(ctx, "bob"); err != nil {
		t.Fatalf("first select: %v", err)
	}
	if err := c.SelectConversation(ctx, "bob"); err != nil {
		t.Fatalf("second select: %v", err)
	}
	if api.threadCalls != 1 {
		t.Errorf("history fetched %d times, want 1", api.threadCalls)
	}
}

func TestSendMessageOptimisticConfirm(t *testing.T) {
	now := time.Now().UTC()
	api := &fakeAPI{
		sendFn: func(receiverID, content, productID string) (*models.Message, error) {
			return &models.Message{ID: "srv-42", Sender: "self", Receiver: receiverID,
				Content: content, CreatedAt: now}, nil
		},
	}
	emitter := &fakeEmitter{}
	c := New("self", api, emitter)
	ctx := context.Background()

	var pendingSeen bool
	c.OnMessagesChanged = func() {
		for _, m := range c.Messages() {
			if m.Status == StatusPending {
				pendingSeen = true
			}
		}
	}

	if err := c.SelectConversation(ctx, "bob"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := c.SendMessage(ctx, "  hola  "); err != nil {
		t.Fatalf("send: %v", err)
	}

	if !pendingSeen {
		t.Error("message was never rendered as pending")
	}
	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].ID != "srv-42" {
		t.Errorf("message ID = %q, want server ID srv-42", msgs[0].ID)
	}
	if msgs[0].Status != StatusConfirmed {
		t.Errorf("status = %d, want Confirmed", msgs[0].Status)
	}
	if msgs[0].Content != "hola" {
		t.Errorf("content = %q, want trimmed \"hola\"", msgs[0].Content)
	}

	emitter.mu.Lock()
	defer emitter.mu.Unlock()
	if len(emitter.emitted) != 1 {
		t.Fatalf("emitted %d realtime messages, want 1", len(emitter.emitted))
	}
	if emitter.emitted[0].ID != "srv-42" || emitter.emitted[0].ReceiverID != "bob" {
		t.Errorf("emitted %+v, want ID srv-42 to bob", emitter.emitted[0])
	}
}

func TestSendMessageFailureFlagsEntry(t *testing.T) {
	api := &fakeAPI{
		sendFn: func(string, string, string) (*models.Message, error) {
			return nil, errors.New("backend down")
		},
	}
	c := New("self", api, nil)
	ctx := context.Background()

	if err := c.SelectConversation(ctx, "bob"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := c.SendMessage(ctx, "hola"); err == nil {
		t.Fatal("expected send error")
	}

	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want the failed entry kept", len(msgs))
	}
	if msgs[0].Status != StatusFailed {
		t.Errorf("status = %d, want Failed", msgs[0].Status)
	}
	if !strings.HasPrefix(msgs[0].ID, "tmp-") {
		t.Errorf("failed entry kept ID %q, want its temporary ID", msgs[0].ID)
	}
}

func TestSendWithoutConversation(t *testing.T) {
	c := New("self", &fakeAPI{}, nil)
	if err := c.SendMessage(context.Background(), "hola"); !errors.Is(err, ErrNoConversation) {
		t.Errorf("got %v, want ErrNoConversation", err)
	}
}

func TestSendEmptyTextIsNoop(t *testing.T) {
	api := &fakeAPI{}
	c := New("self", api, nil)
	ctx := context.Background()
	if err := c.SelectConversation(ctx, "bob"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := c.SendMessage(ctx, "   "); err != nil {
		t.Fatalf("send: %v", err)
	}
	if api.sendCalls != 0 {
		t.Errorf("blank message reached the API %d times", api.sendCalls)
	}
	if len(c.Messages()) != 0 {
		t.Error("blank message was rendered")
	}
}

func TestHandleIncomingDedupesEcho(t *testing.T) {
	api := &fakeAPI{}
	c := New("self", api, nil)
	ctx := context.Background()
	if err := c.SelectConversation(ctx, "bob"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := c.SendMessage(ctx, "hola"); err != nil {
		t.Fatalf("send: %v", err)
	}

	// The server relays the sent message back into the sender's room; the
	// echo must not duplicate the already-confirmed entry.
	c.HandleIncoming(ctx, WireMessage{ID: "srv-1", Sender: "self", ReceiverID: "bob", Content: "hola"})

	if got := len(c.Messages()); got != 1 {
		t.Errorf("got %d messages after echo, want 1", got)
	}
}

func TestHandleIncomingAppendsForActiveThread(t *testing.T) {
	api := &fakeAPI{}
	c := New("self", api, nil)
	ctx := context.Background()
	if err := c.SelectConversation(ctx, "bob"); err != nil {
		t.Fatalf("select: %v", err)
	}

	c.HandleIncoming(ctx, WireMessage{ID: "m1", Sender: "bob", ReceiverID: "self", Content: "hola"})
	c.HandleIncoming(ctx, WireMessage{ID: "m1", Sender: "bob", ReceiverID: "self", Content: "hola"})

	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1 after dedupe", len(msgs))
	}
	if msgs[0].Status != StatusConfirmed {
		t.Errorf("incoming message status = %d, want Confirmed", msgs[0].Status)
	}
	if api.convCalls != 0 {
		t.Errorf("conversation list refreshed %d times for an active-thread event", api.convCalls)
	}
}

func TestHandleIncomingForOtherThreadRefreshesConversations(t *testing.T) {
	api := &fakeAPI{
		conversations: []Conversation{{ID: "carol", LastMessage: "ping"}},
	}
	c := New("self", api, nil)
	ctx := context.Background()
	if err := c.SelectConversation(ctx, "bob"); err != nil {
		t.Fatalf("select: %v", err)
	}

	var refreshed bool
	c.OnConversationsChanged = func() { refreshed = true }

	c.HandleIncoming(ctx, WireMessage{ID: "m1", Sender: "carol", ReceiverID: "self", Content: "ping"})

	if len(c.Messages()) != 0 {
		t.Error("event for another thread leaked into the open one")
	}
	if api.convCalls != 1 {
		t.Errorf("conversation list refreshed %d times, want 1", api.convCalls)
	}
	if !refreshed {
		t.Error("OnConversationsChanged did not fire")
	}
	if convs := c.Conversations(); len(convs) != 1 || convs[0].ID != "carol" {
		t.Errorf("conversations = %+v, want the refreshed list", convs)
	}
}

func TestStaleHistoryLoadDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{
		threadFn: func(partnerID string) ([]*models.Message, error) {
			if partnerID == "slow" {
				close(started)
				<-release
				return []*models.Message{{ID: "stale", Sender: "slow", Receiver: "self", Content: "old"}}, nil
			}
			return []*models.Message{{ID: "fresh", Sender: "fast", Receiver: "self", Content: "new"}}, nil
		},
	}
	c := New("self", api, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- c.SelectConversation(ctx, "slow") }()
	<-started

	if err := c.SelectConversation(ctx, "fast"); err != nil {
		t.Fatalf("second select: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first select: %v", err)
	}

	if got := c.PartnerID(); got != "fast" {
		t.Errorf("partner = %q, want the newer selection", got)
	}
	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].ID != "fresh" {
		t.Errorf("messages = %+v, want only the fresh history", msgs)
	}
}
