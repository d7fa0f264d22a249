package chatclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gorilla/websocket"

	"github.com/skyps2003/Freelancer/internal/ws"
)

// Socket is the realtime side of the chat client: it dials /ws/chat,
// announces its room and relays receive_message events to the state
// machine. It implements Emitter.
type Socket struct {
	conn   *websocket.Conn
	userID string
}

// DialSocket connects to the chat websocket, authenticating with the same
// bearer token as the REST surface, and joins the caller's own room.
func DialSocket(ctx context.Context, wsURL, token, userID string) (*Socket, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL+"?token="+token, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chat socket: %w", err)
	}

	s := &Socket{conn: conn, userID: userID}
	if err := s.emit(ws.EventJoinRoom, userID); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Listen consumes events until the connection closes or ctx is done,
// handing each incoming message to the client. It blocks.
func (s *Socket) Listen(ctx context.Context, client *Client) error {
	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		var ev ws.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("Malformed event from server: %v", err)
			continue
		}
		if ev.Event != ws.EventReceiveMessage {
			continue
		}
		var msg WireMessage
		if err := json.Unmarshal(ev.Data, &msg); err != nil {
			log.Printf("Malformed receive_message payload: %v", err)
			continue
		}
		client.HandleIncoming(ctx, msg)
	}
}

// EmitMessage publishes a persisted message so the recipient's open chat
// updates live.
func (s *Socket) EmitMessage(msg WireMessage) error {
	return s.emit(ws.EventSendMessage, msg)
}

func (s *Socket) emit(event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.conn.WriteJSON(ws.Event{Event: event, Data: payload})
}

// Close tears the connection down; no reconnection is attempted.
func (s *Socket) Close() error {
	return s.conn.Close()
}
