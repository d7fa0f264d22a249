package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Event names on the chat channel.
const (
	EventJoinRoom       = "join_room"
	EventSendMessage    = "send_message"
	EventReceiveMessage = "receive_message"
)

// Event is the envelope for everything crossing the chat socket.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is one websocket connection registered in its user's room.
type Client struct {
	UserID string
	Send   chan []byte
	Conn   *websocket.Conn
	hub    *Hub
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan []byte, 256),
		Conn:   conn,
		hub:    hub,
	}
}

// ReadPump consumes events from the connection until it closes, relaying
// send_message events to the receiver's room. It blocks; run it on the
// handler goroutine and WritePump on its own.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error for %s: %v", c.UserID, err)
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("Malformed event from %s: %v", c.UserID, err)
			continue
		}

		switch ev.Event {
		case EventJoinRoom:
			// The connection is already registered in its own room at
			// upgrade time. A join for any other identity is a spoof
			// attempt; drop the connection.
			var userID string
			if err := json.Unmarshal(ev.Data, &userID); err != nil || userID != c.UserID {
				log.Printf("Rejected join_room for %q on connection of %s", userID, c.UserID)
				return
			}
		case EventSendMessage:
			c.relay(ev.Data)
		default:
			log.Printf("Unknown event %q from %s", ev.Event, c.UserID)
		}
	}
}

// relay forwards a send_message payload verbatim to the receiver's room,
// wrapped in a receive_message envelope.
func (c *Client) relay(data json.RawMessage) {
	var payload struct {
		Sender     string `json:"sender"`
		ReceiverID string `json:"receiverId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.ReceiverID == "" {
		log.Printf("Malformed send_message from %s", c.UserID)
		return
	}
	if payload.Sender != c.UserID {
		log.Printf("Dropped send_message with spoofed sender %q from %s", payload.Sender, c.UserID)
		return
	}
	out, err := json.Marshal(Event{Event: EventReceiveMessage, Data: data})
	if err != nil {
		return
	}
	c.hub.Broadcast <- RoomMessage{Room: payload.ReceiverID, Data: out}
}

// WritePump drains the Send channel to the connection and keeps it alive
// with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error for %s: %v", c.UserID, err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
