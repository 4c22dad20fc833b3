package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// Update kinds pushed to agenda subscribers.
const (
	KindSlot    = "slot"
	KindRefresh = "refresh"
)

// SlotUpdate is pushed to every subscriber of an ad space whenever a
// slot changes state, replacing client-side polling of the agenda. A
// "refresh" update carries no slot key: the whole day changed and must
// be re-read.
type SlotUpdate struct {
	Kind      string `json:"kind"`
	AdSpaceID int64  `json:"ad_space_id"`
	SlotKey   string `json:"slot_key,omitempty"`
	Status    string `json:"status,omitempty"`
}

// subscriber owns its websocket. All writes go through the send channel
// and the single writePump goroutine; gorilla allows at most one
// concurrent writer per connection.
type subscriber struct {
	adSpaceID int64
	conn      *websocket.Conn
	send      chan []byte
}

// Hub fans slot updates out to websocket subscribers, grouped by ad
// space.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int64]map[*subscriber]bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]map[*subscriber]bool),
	}
}

func (h *Hub) register(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[s.adSpaceID] == nil {
		h.subscribers[s.adSpaceID] = make(map[*subscriber]bool)
	}
	h.subscribers[s.adSpaceID][s] = true
}

func (h *Hub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, exists := h.subscribers[s.adSpaceID]; exists && conns[s] {
		delete(conns, s)
		close(s.send)
		if len(conns) == 0 {
			delete(h.subscribers, s.adSpaceID)
		}
	}
}

func (h *Hub) broadcast(adSpaceID int64, update SlotUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subscribers[adSpaceID] {
		select {
		case s.send <- data:
		default:
			// Client too slow; it re-syncs on its next agenda read.
		}
	}
}

// BroadcastSlot sends one slot state change to every subscriber of the
// ad space.
func (h *Hub) BroadcastSlot(adSpaceID int64, slotKey, status string) {
	h.broadcast(adSpaceID, SlotUpdate{
		Kind:      KindSlot,
		AdSpaceID: adSpaceID,
		SlotKey:   slotKey,
		Status:    status,
	})
}

// BroadcastRefresh tells subscribers to re-read the whole day, used
// after bulk updates where the individual keys are not known.
func (h *Hub) BroadcastRefresh(adSpaceID int64) {
	h.broadcast(adSpaceID, SlotUpdate{
		Kind:      KindRefresh,
		AdSpaceID: adSpaceID,
	})
}

// ServeWS registers the connection on the hub and blocks until the
// client disconnects.
func (h *Hub) ServeWS(adSpaceID int64, conn *websocket.Conn) {
	s := &subscriber{
		adSpaceID: adSpaceID,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
	}
	h.register(s)

	go h.writePump(s)
	h.readPump(s)
}

func (h *Hub) readPump(s *subscriber) {
	defer func() {
		h.unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Inbound frames are discarded; the socket exists for server
	// pushes only.
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) SubscriberCount(adSpaceID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[adSpaceID])
}

// Close drops every subscriber; the write pumps shut the connections
// down as their channels close.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for adSpaceID, conns := range h.subscribers {
		for s := range conns {
			close(s.send)
		}
		delete(h.subscribers, adSpaceID)
	}
}
