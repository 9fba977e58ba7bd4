// Package peersync replicates finished inspection records between vozform
// instances over a websocket connection.
//
// The protocol is a small JSON message exchange: the sender pushes one
// "record" message per bridge and the receiver answers each with an "ack"
// (or "error") message carrying the bridge code. There is no discovery and
// no conflict resolution; the receiving store's upsert semantics decide.
package peersync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/oae-tools/vozform/internal/record"
	"github.com/oae-tools/vozform/internal/resilience"
)

// pushTimeout bounds a single Push round trip.
const pushTimeout = 30 * time.Second

// ErrRejected is returned by Push when the peer answered with an error
// message instead of an ack.
var ErrRejected = errors.New("peersync: peer rejected record")

// Message types on the wire.
const (
	msgRecord = "record"
	msgAck    = "ack"
	msgError  = "error"
)

// message is the wire envelope for all peersync traffic.
type message struct {
	Type   string         `json:"type"`
	Bridge *record.Bridge `json:"bridge,omitempty"`
	Code   string         `json:"code,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Handler accepts websocket connections from peers and upserts every pushed
// record into the store. Register it on the admin mux under /sync.
type Handler struct {
	store record.Store
	log   *slog.Logger
}

// NewHandler creates a Handler writing into store.
func NewHandler(store record.Store, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: store, log: log}
}

// ServeHTTP upgrades the request and processes record messages until the
// peer closes the connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Warn("peersync: accept failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	ctx := r.Context()
	for {
		var msg message
		if err := read(ctx, conn, &msg); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				conn.Close(websocket.StatusNormalClosure, "done")
				return
			}
			if ctx.Err() == nil {
				h.log.Warn("peersync: read failed", "remote", r.RemoteAddr, "err", err)
			}
			return
		}

		if msg.Type != msgRecord || msg.Bridge == nil {
			if err := write(ctx, conn, message{Type: msgError, Error: "expected record message"}); err != nil {
				return
			}
			continue
		}

		reply := message{Type: msgAck, Code: msg.Bridge.Code}
		if err := h.store.Upsert(ctx, *msg.Bridge); err != nil {
			h.log.Warn("peersync: upsert failed", "code", msg.Bridge.Code, "err", err)
			reply = message{Type: msgError, Code: msg.Bridge.Code, Error: err.Error()}
		} else {
			h.log.Info("peersync: record received", "code", msg.Bridge.Code, "remote", r.RemoteAddr)
		}
		if err := write(ctx, conn, reply); err != nil {
			return
		}
	}
}

// Client pushes records to one peer endpoint. A circuit breaker guards the
// peer so a dead endpoint does not stall every finished interview for the
// full dial timeout.
type Client struct {
	url     string
	log     *slog.Logger
	breaker *resilience.CircuitBreaker
}

// NewClient creates a Client for the given websocket URL
// (e.g. "ws://peer:8080/sync").
func NewClient(url string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		url: url,
		log: log,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:        "peersync",
			MaxFailures: 3,
		}),
	}
}

// Push sends one record and waits for the peer's acknowledgement. Each call
// dials a fresh connection; pushes are rare (one per finished interview) so
// holding a connection open buys nothing. Returns
// [resilience.ErrCircuitOpen] without dialling while the peer is considered
// down.
func (c *Client) Push(ctx context.Context, b *record.Bridge) error {
	return c.breaker.Execute(func() error {
		return c.push(ctx, b)
	})
}

func (c *Client) push(ctx context.Context, b *record.Bridge) error {
	ctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("peersync: dial %s: %w", c.url, err)
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	if err := write(ctx, conn, message{Type: msgRecord, Bridge: b}); err != nil {
		return fmt.Errorf("peersync: send record: %w", err)
	}

	var reply message
	if err := read(ctx, conn, &reply); err != nil {
		return fmt.Errorf("peersync: read ack: %w", err)
	}
	if reply.Type != msgAck {
		return fmt.Errorf("%w: %s", ErrRejected, reply.Error)
	}

	conn.Close(websocket.StatusNormalClosure, "done")
	c.log.Info("peersync: record pushed", "code", b.Code, "peer", c.url)
	return nil
}

func write(ctx context.Context, conn *websocket.Conn, msg message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}

func read(ctx context.Context, conn *websocket.Conn, msg *message) error {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, msg)
}
