package sync

import (
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"practicehub/internal/logger"
)

const writeTimeout = 2 * time.Second

// Hub fans catalog events out to TCP and websocket subscribers. It remembers
// the last catalog event so a subscriber joining between refreshes still
// learns which snapshot is current.
type Hub struct {
	mu     sync.Mutex
	subs   map[subscriber]struct{}
	last   []byte // last CatalogEvent line, nil before the first refresh
	closed bool
	log    *logger.Logger
}

type Stats struct {
	TCPClients int    `json:"tcp_clients"`
	WSClients  int    `json:"ws_clients"`
	LastEvent  string `json:"last_event,omitempty"` // fingerprint of the last refresh
}

type subscriber interface {
	transport() string
	send(line []byte) error
	close()
}

type tcpSubscriber struct{ conn net.Conn }

func (s tcpSubscriber) transport() string { return "tcp" }

func (s tcpSubscriber) send(line []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, err := s.conn.Write(line)
	return err
}

func (s tcpSubscriber) close() { _ = s.conn.Close() }

type wsSubscriber struct{ conn *websocket.Conn }

func (s wsSubscriber) transport() string { return "websocket" }

func (s wsSubscriber) send(line []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, line)
}

func (s wsSubscriber) close() { _ = s.conn.Close() }

type welcome struct {
	Type      string `json:"type"`
	Transport string `json:"transport"`
	Clients   int    `json:"clients"`
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		subs: make(map[subscriber]struct{}),
		log:  log,
	}
}

// Add subscribes a TCP connection. It reports false, closing conn, when the
// hub is closed or the greeting cannot be written.
func (h *Hub) Add(conn net.Conn) bool {
	return h.add(tcpSubscriber{conn})
}

func (h *Hub) Remove(conn net.Conn) {
	h.remove(tcpSubscriber{conn})
}

// AddWS subscribes a websocket connection; see Add.
func (h *Hub) AddWS(ws *websocket.Conn) bool {
	return h.add(wsSubscriber{ws})
}

func (h *Hub) RemoveWS(ws *websocket.Conn) {
	h.remove(wsSubscriber{ws})
}

// add greets the subscriber and replays the last catalog event before it
// can see any broadcast.
func (h *Hub) add(s subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		s.close()
		return false
	}
	hello, _ := json.Marshal(welcome{
		Type:      "welcome",
		Transport: s.transport(),
		Clients:   len(h.subs) + 1,
	})
	if err := s.send(append(hello, '\n')); err != nil {
		s.close()
		return false
	}
	if h.last != nil {
		if err := s.send(h.last); err != nil {
			s.close()
			return false
		}
	}
	h.subs[s] = struct{}{}
	return true
}

func (h *Hub) remove(s subscriber) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
	s.close()
}

// BroadcastJSON writes v as one JSON line to every subscriber, dropping
// subscribers whose write fails. Catalog events are kept for replay.
func (h *Hub) BroadcastJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Warn("hub marshal failed", "error", err)
		return
	}
	b = append(b, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	if ev, ok := v.(CatalogEvent); ok && ev.Type == EventCatalogRefreshed {
		h.last = b
	}
	for s := range h.subs {
		if err := s.send(b); err != nil {
			h.log.Debug("dropping subscriber", "transport", s.transport(), "error", err)
			s.close()
			delete(h.subs, s)
		}
	}
}

// Count returns the number of TCP subscribers.
func (h *Hub) Count() int {
	return h.Stats().TCPClients
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	var st Stats
	for s := range h.subs {
		switch s.(type) {
		case tcpSubscriber:
			st.TCPClients++
		case wsSubscriber:
			st.WSClients++
		}
	}
	if h.last != nil {
		var ev CatalogEvent
		if json.Unmarshal(h.last, &ev) == nil {
			st.LastEvent = ev.Fingerprint
		}
	}
	return st
}

// Close disconnects every subscriber. Later subscribers are refused and
// broadcasts are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for s := range h.subs {
		s.close()
		delete(h.subs, s)
	}
}
