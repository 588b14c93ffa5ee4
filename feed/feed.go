// Package feed adapts the upstream market-data websocket into typed bar
// and subscription-lifecycle events the engine dispatches by
// (event-kind, symbol), in arrival order per symbol.
package feed

import (
	"fmt"
	"strings"
)

// EventKind identifies which of the three upstream event shapes a raw
// message decoded to.
type EventKind string

const (
	EventKindSecondBar EventKind = "A"
	EventKindMinuteBar EventKind = "AM"
	EventKindStatus    EventKind = "status"
)

// BarEvent is a parsed A/AM event: a second or minute aggregate bar.
type BarEvent struct {
	Kind   EventKind
	Symbol string
	StartMs int64
	EndMs   int64
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  float64
}

// Channel is the subscription channel a status event refers to: AM for
// minute aggregates, A for second aggregates.
type Channel string

const (
	ChannelMinute Channel = "AM"
	ChannelSecond Channel = "A"
)

// StatusEvent is a parsed subscription-lifecycle message, matching
// "subscribed to: CH.SYM" / "unsubscribed to: CH.SYM".
type StatusEvent struct {
	Subscribed bool
	Channel    Channel
	Symbol     string
}

// rawEvent mirrors the upstream wire shape before it's classified into a
// BarEvent or StatusEvent.
type rawEvent struct {
	Ev      string  `json:"ev"`
	Sym     string  `json:"sym"`
	S       int64   `json:"s"`
	E       int64   `json:"e"`
	O       float64 `json:"o"`
	H       float64 `json:"h"`
	L       float64 `json:"l"`
	C       float64 `json:"c"`
	V       float64 `json:"v"`
	Message string  `json:"message"`
}

// classify converts a raw decoded event into either a BarEvent or a
// StatusEvent. Unrecognized event kinds are reported as an error so the
// caller can log-and-continue per the transient-feed-error policy.
func classify(raw rawEvent) (*BarEvent, *StatusEvent, error) {
	switch EventKind(raw.Ev) {
	case EventKindSecondBar, EventKindMinuteBar:
		return &BarEvent{
			Kind: EventKind(raw.Ev), Symbol: raw.Sym,
			StartMs: raw.S, EndMs: raw.E,
			Open: raw.O, High: raw.H, Low: raw.L, Close: raw.C, Volume: raw.V,
		}, nil, nil
	case EventKindStatus:
		status, err := parseStatusMessage(raw.Message)
		if err != nil {
			return nil, nil, err
		}
		return nil, status, nil
	default:
		return nil, nil, fmt.Errorf("feed: unrecognized event kind %q", raw.Ev)
	}
}

// parseStatusMessage parses "subscribed to: CH.SYM" /
// "unsubscribed to: CH.SYM" status messages.
func parseStatusMessage(msg string) (*StatusEvent, error) {
	subscribed := true
	rest, ok := strings.CutPrefix(msg, "subscribed to: ")
	if !ok {
		rest, ok = strings.CutPrefix(msg, "unsubscribed to: ")
		subscribed = false
	}
	if !ok {
		return nil, fmt.Errorf("feed: unrecognized status message %q", msg)
	}

	parts := strings.SplitN(rest, ".", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("feed: malformed channel.symbol in status message %q", msg)
	}

	return &StatusEvent{
		Subscribed: subscribed,
		Channel:    Channel(parts[0]),
		Symbol:     parts[1],
	}, nil
}

// Handler receives classified events from the feed in arrival order.
// Implementations must not block for long; the engine dispatches these
// synchronously off its single loop.
type Handler interface {
	HandleBar(event BarEvent)
	HandleStatus(event StatusEvent)
}
