package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// WSClient is a duplex websocket client for the upstream feed: a single
// stream delivering JSON arrays of typed events.
type WSClient struct {
	url    string
	conn   *websocket.Conn
	dialer *websocket.Dialer
}

// NewWSClient builds a client for the given websocket URL (e.g.
// "wss://socket.polygon.io/stocks").
func NewWSClient(rawURL string) (*WSClient, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("feed: invalid url: %w", err)
	}
	return &WSClient{url: rawURL, dialer: websocket.DefaultDialer}, nil
}

// Connect dials the upstream feed.
func (c *WSClient) Connect(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("feed: dial: %w", err)
	}
	c.conn = conn
	return nil
}

// Subscribe sends a subscription request for the given channel.symbol
// pairs, e.g. "AM.AAPL".
func (c *WSClient) Subscribe(params ...string) error {
	return c.conn.WriteJSON(map[string]any{"action": "subscribe", "params": joinParams(params)})
}

// Unsubscribe mirrors Subscribe for tearing a subscription down.
func (c *WSClient) Unsubscribe(params ...string) error {
	return c.conn.WriteJSON(map[string]any{"action": "unsubscribe", "params": joinParams(params)})
}

func joinParams(params []string) string {
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}

// Run reads frames until ctx is cancelled or the connection drops,
// dispatching each event in the frame's array to h in order. A malformed
// frame is logged and skipped — the upstream connection is expected to
// keep delivering subsequent frames (transient feed error, §7.1).
func (c *WSClient) Run(ctx context.Context, h Handler) error {
	defer c.conn.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("feed: read: %w", err)
		}

		var raws []rawEvent
		if err := json.Unmarshal(data, &raws); err != nil {
			log.Printf("feed: malformed frame, skipping: %v", err)
			continue
		}

		for _, raw := range raws {
			bar, status, err := classify(raw)
			if err != nil {
				log.Printf("feed: %v", err)
				continue
			}
			if bar != nil {
				h.HandleBar(*bar)
			}
			if status != nil {
				h.HandleStatus(*status)
			}
		}
	}
}

// Close tears down the connection.
func (c *WSClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
