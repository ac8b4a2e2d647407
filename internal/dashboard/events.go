package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/learndash/internal/compute"
	"github.com/ziadkadry99/learndash/internal/lessons"
	"github.com/ziadkadry99/learndash/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event types accepted on /ws/events.
const (
	eventCounterGet       = "counter.get"
	eventCounterIncrement = "counter.increment"
	eventCounterDecrement = "counter.decrement"
	eventCounterReset     = "counter.reset"
	eventSum              = "sum"
	eventSearch           = "search"
)

// eventRequest is the incoming WebSocket message format.
type eventRequest struct {
	Type  string `json:"type"`
	N     int    `json:"n,omitempty"`
	Query string `json:"query,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// eventResponse is the outgoing WebSocket message format.
type eventResponse struct {
	Type    string          `json:"type"` // "counter", "sum", "search" or "error"
	Counter *int64          `json:"counter,omitempty"`
	Sum     *compute.Result `json:"sum,omitempty"`
	Hits    []lessons.Hit   `json:"hits,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// handleWebSocket runs one interaction per message, the same way a form post
// re-runs the page, and replies with the resulting state.
func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := session.ID(r.Context())
	// The connection outlives the request timeout.
	ctx := context.WithoutCancel(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("dashboard: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("dashboard: websocket read: %v", err)
			}
			return
		}

		var req eventRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			d.sendError(conn, "invalid message format")
			continue
		}

		switch req.Type {
		case eventCounterGet:
			d.handleCounterEvent(ctx, conn, sessionID, "")
		case eventCounterIncrement:
			d.handleCounterEvent(ctx, conn, sessionID, opIncrement)
		case eventCounterDecrement:
			d.handleCounterEvent(ctx, conn, sessionID, opDecrement)
		case eventCounterReset:
			d.handleCounterEvent(ctx, conn, sessionID, opReset)
		case eventSum:
			d.handleSumEvent(ctx, conn, sessionID, req.N)
		case eventSearch:
			d.handleSearchEvent(ctx, conn, req)
		default:
			d.sendError(conn, "unknown event type: "+req.Type)
		}
	}
}

func (d *Dashboard) handleCounterEvent(ctx context.Context, conn *websocket.Conn, sessionID, op string) {
	var (
		value int64
		err   error
	)
	if op == "" {
		value, err = d.counter.Value(ctx, sessionID)
	} else {
		value, err = d.applyCounter(ctx, sessionID, op)
	}
	if err != nil {
		d.sendError(conn, "counter: "+err.Error())
		return
	}
	d.sendResponse(conn, eventResponse{Type: "counter", Counter: &value})
}

func (d *Dashboard) handleSumEvent(ctx context.Context, conn *websocket.Conn, sessionID string, n int) {
	res, err := d.sum(ctx, sessionID, n)
	if err != nil {
		d.sendError(conn, err.Error())
		return
	}
	d.sendResponse(conn, eventResponse{Type: "sum", Sum: &res})
}

func (d *Dashboard) handleSearchEvent(ctx context.Context, conn *websocket.Conn, req eventRequest) {
	hits, err := d.search(ctx, req.Query, req.Limit)
	if err != nil {
		d.sendError(conn, err.Error())
		return
	}
	d.sendResponse(conn, eventResponse{Type: "search", Hits: hits})
}

func (d *Dashboard) sendResponse(conn *websocket.Conn, resp eventResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("dashboard: websocket write: %v", err)
	}
}

func (d *Dashboard) sendError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(eventResponse{Type: "error", Error: message}); err != nil {
		log.Printf("dashboard: websocket write error: %v", err)
	}
}
