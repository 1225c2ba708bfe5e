package acpport

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// InboundMessage is a peer-submitted prompt arriving over the websocket
// transport, the wire equivalent of the newline-delimited JSON frames the
// stdio transport reads from stdin.
type InboundMessage struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

// WebSocketBridge implements PeerBridge over a single accepted websocket
// connection, the alternative transport to StdioBridge for a peer that
// dials in over the network (automation.acp.listen) instead of sharing
// this process's stdio.
type WebSocketBridge struct {
	conn *websocket.Conn

	mu       sync.Mutex
	pending  map[string]chan PeerPermissionDecision
	inbound  chan InboundMessage
	closeErr error
}

type wsEnvelope struct {
	Type      string                 `json:"type"`
	RequestID string                 `json:"request_id,omitempty"`
	Event     *PeerEvent             `json:"event,omitempty"`
	Request   *PeerPermissionRequest `json:"request,omitempty"`
	Decision  PeerPermissionDecision `json:"decision,omitempty"`
	Message   *InboundMessage        `json:"message,omitempty"`
}

// NewWebSocketBridge wraps an already-upgraded websocket connection.
func NewWebSocketBridge(conn *websocket.Conn) *WebSocketBridge {
	b := &WebSocketBridge{
		conn:    conn,
		pending: make(map[string]chan PeerPermissionDecision),
		inbound: make(chan InboundMessage, 16),
	}
	go b.readLoop()
	return b
}

// Messages returns the channel of peer-submitted prompts. It is closed once
// the connection drops or reports an error; call Err after it closes to see
// why.
func (b *WebSocketBridge) Messages() <-chan InboundMessage {
	return b.inbound
}

// Err reports the error that closed Messages(), or nil if the connection is
// still open or closed cleanly via Close.
func (b *WebSocketBridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closeErr
}

// readLoop demultiplexes inbound frames: permission decisions are routed to
// the RequestPermission call waiting on their request_id, "user_message"
// frames are forwarded to Messages(), anything else is dropped.
func (b *WebSocketBridge) readLoop() {
	defer close(b.inbound)
	for {
		var msg wsEnvelope
		if err := b.conn.ReadJSON(&msg); err != nil {
			b.mu.Lock()
			b.closeErr = err
			for id, ch := range b.pending {
				close(ch)
				delete(b.pending, id)
			}
			b.mu.Unlock()
			return
		}

		switch msg.Type {
		case "permission_decision":
			if msg.RequestID == "" {
				continue
			}
			b.mu.Lock()
			ch, ok := b.pending[msg.RequestID]
			if ok {
				delete(b.pending, msg.RequestID)
			}
			b.mu.Unlock()
			if ok {
				ch <- msg.Decision
				close(ch)
			}
		case "user_message":
			if msg.Message != nil {
				b.inbound <- *msg.Message
			}
		}
	}
}

func (b *WebSocketBridge) Notify(ctx context.Context, event PeerEvent) error {
	return b.conn.WriteJSON(wsEnvelope{Type: "event", Event: &event})
}

func (b *WebSocketBridge) RequestPermission(ctx context.Context, req PeerPermissionRequest) (PeerPermissionDecision, error) {
	requestID := fmt.Sprintf("%d", time.Now().UnixNano())
	ch := make(chan PeerPermissionDecision, 1)

	b.mu.Lock()
	b.pending[requestID] = ch
	b.mu.Unlock()

	if err := b.conn.WriteJSON(wsEnvelope{Type: "permission_request", RequestID: requestID, Request: &req}); err != nil {
		b.mu.Lock()
		delete(b.pending, requestID)
		b.mu.Unlock()
		return PeerPermissionDeny, err
	}

	select {
	case decision, ok := <-ch:
		if !ok {
			return PeerPermissionDeny, fmt.Errorf("acpport: connection closed before peer answered permission request")
		}
		if decision == PeerPermissionApprove {
			return PeerPermissionApprove, nil
		}
		return PeerPermissionDeny, nil
	case <-ctx.Done():
		return PeerPermissionDeny, ctx.Err()
	}
}

// Close closes the underlying connection.
func (b *WebSocketBridge) Close() error {
	return b.conn.Close()
}

// ListenAndServeOnce starts an HTTP server on addr, upgrades the first
// client that connects to "/" to a websocket, and delivers the resulting
// bridge to onConnect. It blocks until ctx is cancelled or onConnect
// returns, then shuts the server down. A coding-agent CLI only ever
// bridges to one peer at a time, so accepting more than one connection
// is out of scope for this transport.
func ListenAndServeOnce(ctx context.Context, addr string, onConnect func(*WebSocketBridge) error) error {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	connected := make(chan *WebSocketBridge, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		select {
		case connected <- NewWebSocketBridge(conn):
		default:
			conn.Close()
		}
	})

	server := &http.Server{Addr: addr, Handler: mux}
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	var result error
	select {
	case bridge := <-connected:
		result = onConnect(bridge)
		bridge.Close()
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			result = err
		}
	case <-ctx.Done():
		result = ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)
	return result
}
