package zamace

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Quote is one exchange tick: a commodity trading on the ZAMACE floor.
type Quote struct {
	Commodity string  `json:"c"`
	Price     float64 `json:"p"`
	Volume    float64 `json:"v"`
	Timestamp int64   `json:"t"` // unix ms
}

type frame struct {
	Type string  `json:"type"`
	Data []Quote `json:"data"`
}

// Client reads bounded quote bursts from the ZAMACE WebSocket feed. One
// Fetch cycle dials, subscribes, drains quotes and disconnects; the exchange
// feed is too sparse to justify a persistent connection.
type Client struct {
	url         string
	commodities []string
	maxQuotes   int
	readTimeout time.Duration
}

func New(url string, commodities []string, maxQuotes int, readTimeout time.Duration) *Client {
	if maxQuotes <= 0 {
		maxQuotes = 50
	}
	if readTimeout <= 0 {
		readTimeout = 5 * time.Second
	}
	return &Client{
		url:         url,
		commodities: commodities,
		maxQuotes:   maxQuotes,
		readTimeout: readTimeout,
	}
}

// Quotes dials the feed and collects up to maxQuotes quotes. A read deadline
// bounds the whole burst; hitting it with quotes in hand is not an error.
func (c *Client) Quotes(ctx context.Context) ([]Quote, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("zamace connect: %w", err)
	}
	defer conn.Close()

	for _, commodity := range c.commodities {
		msg := map[string]string{"type": "subscribe", "commodity": commodity}
		if err := conn.WriteJSON(msg); err != nil {
			return nil, fmt.Errorf("zamace subscribe %s: %w", commodity, err)
		}
	}

	deadline := time.Now().Add(c.readTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("zamace deadline: %w", err)
	}

	var quotes []Quote
	for len(quotes) < c.maxQuotes {
		_, b, err := conn.ReadMessage()
		if err != nil {
			if len(quotes) > 0 {
				return quotes, nil
			}
			return nil, fmt.Errorf("zamace read: %w", err)
		}

		var f frame
		if err := json.Unmarshal(b, &f); err != nil || f.Type != "quote" {
			// ignore non-quote frames
			continue
		}
		for _, q := range f.Data {
			quotes = append(quotes, q)
			if len(quotes) == c.maxQuotes {
				break
			}
		}
	}
	return quotes, nil
}
