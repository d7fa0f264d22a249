package ws

import (
	"sync"
)

// Hub is the single-process room registry. Rooms are keyed by user ID; a
// connection is only ever registered into the room of its authenticated
// identity. The hub is owned by main and injected into the chat handler.
type Hub struct {
	Rooms      map[string]map[*Client]bool // userID -> clients
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan RoomMessage
	mu         sync.RWMutex
}

// RoomMessage is a payload addressed to every connection in one room.
type RoomMessage struct {
	Room string
	Data []byte
}

func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan RoomMessage),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.UserID] == nil {
				h.Rooms[client.UserID] = make(map[*Client]bool)
			}
			h.Rooms[client.UserID][client] = true
			h.mu.Unlock()
		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.Rooms[client.UserID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.Rooms, client.UserID)
					}
				}
			}
			h.mu.Unlock()
		case msg := <-h.Broadcast:
			// Fan-out to every connection in the room; an empty room is a
			// silent no-op. Slow clients are dropped rather than blocking
			// delivery to the rest.
			h.mu.Lock()
			for client := range h.Rooms[msg.Room] {
				select {
				case client.Send <- msg.Data:
				default:
					close(client.Send)
					delete(h.Rooms[msg.Room], client)
				}
			}
			h.mu.Unlock()
		}
	}
}
