package fleetreplay

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/theoremus-urban-solutions/fleet-replay/replay"
)

const streamWriteWait = 10 * time.Second

// frameMessage is one WebSocket frame: the full entity snapshot after a tick
// plus everything the tick notified.
type frameMessage struct {
	Type          string                `json:"type"`
	SimTime       int64                 `json:"simTime"`
	Entities      []replay.EntityState  `json:"entities"`
	Notifications []replay.Notification `json:"notifications,omitempty"`
	ServerTime    int64                 `json:"serverTime"`
}

// Hub fans tick frames out to WebSocket subscribers.
type Hub struct {
	mu          sync.Mutex
	upgrader    websocket.Upgrader
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		subscribers: make(map[*subscriber]struct{}),
	}
}

// HandleStream upgrades the request and keeps the connection subscribed until
// the peer goes away. Clients only receive; inbound messages are drained.
func (h *Hub) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("stream upgrade failed: %v", err)
		return
	}
	sub := &subscriber{conn: conn}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer h.drop(sub)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		sub.conn.Close()
	}
	h.mu.Unlock()
}

// SubscriberCount reports the number of live stream connections.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// BroadcastFrame sends the frame to every subscriber, dropping connections
// that fail to accept the write.
func (h *Hub) BroadcastFrame(msg frameMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal frame: %v", err)
		return
	}

	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("dropping stream subscriber: %v", err)
			h.drop(sub)
		}
	}
}
