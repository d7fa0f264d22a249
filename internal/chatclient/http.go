package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/skyps2003/Freelancer/internal/models"
)

// HTTPAPI talks to the REST surface with the caller's bearer token. It
// implements API.
type HTTPAPI struct {
	BaseURL string // e.g. http://localhost:5000/api
	Token   string
	Client  *http.Client
}

func (a *HTTPAPI) Thread(ctx context.Context, otherUserID string) ([]*models.Message, error) {
	var msgs []*models.Message
	if err := a.do(ctx, http.MethodGet, "/messages/"+otherUserID, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (a *HTTPAPI) Send(ctx context.Context, receiverID, content, productID string) (*models.Message, error) {
	body := map[string]string{
		"receiver": receiverID,
		"content":  content,
	}
	if productID != "" {
		body["product"] = productID
	}
	var msg models.Message
	if err := a.do(ctx, http.MethodPost, "/messages", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (a *HTTPAPI) Conversations(ctx context.Context) ([]Conversation, error) {
	var list []Conversation
	if err := a.do(ctx, http.MethodGet, "/messages/conversations/list", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (a *HTTPAPI) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.Token)

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s %s failed with status %d", method, path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
