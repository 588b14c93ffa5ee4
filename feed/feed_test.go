package feed

import "testing"

func TestClassifyBarEvent(t *testing.T) {
	raw := rawEvent{Ev: "AM", Sym: "AAPL", S: 1000, E: 61000, O: 10, H: 11, L: 9, C: 10.5, V: 5000}
	bar, status, err := classify(raw)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if status != nil {
		t.Fatalf("expected nil status for bar event")
	}
	if bar == nil || bar.Symbol != "AAPL" || bar.Kind != EventKindMinuteBar {
		t.Fatalf("unexpected bar event: %+v", bar)
	}
}

func TestClassifyStatusEventSubscribed(t *testing.T) {
	raw := rawEvent{Ev: "status", Message: "subscribed to: AM.AAPL"}
	bar, status, err := classify(raw)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if bar != nil {
		t.Fatalf("expected nil bar for status event")
	}
	if !status.Subscribed || status.Channel != ChannelMinute || status.Symbol != "AAPL" {
		t.Fatalf("unexpected status event: %+v", status)
	}
}

func TestClassifyStatusEventUnsubscribed(t *testing.T) {
	raw := rawEvent{Ev: "status", Message: "unsubscribed to: A.TSLA"}
	_, status, err := classify(raw)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if status.Subscribed {
		t.Fatalf("expected unsubscribed status")
	}
	if status.Channel != ChannelSecond || status.Symbol != "TSLA" {
		t.Fatalf("unexpected status event: %+v", status)
	}
}

func TestClassifyUnknownEventKind(t *testing.T) {
	_, _, err := classify(rawEvent{Ev: "bogus"})
	if err == nil {
		t.Fatalf("expected error for unrecognized event kind")
	}
}

func TestClassifyMalformedStatusMessage(t *testing.T) {
	_, _, err := classify(rawEvent{Ev: "status", Message: "not a lifecycle message"})
	if err == nil {
		t.Fatalf("expected error for malformed status message")
	}
}
