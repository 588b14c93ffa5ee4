package alpaca

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAccountParsesBuyingPower(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/account" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("APCA-API-KEY-ID") != "key" {
			t.Fatalf("missing auth header")
		}
		json.NewEncoder(w).Encode(accountResponse{ID: "acct-1", BuyingPower: "12345.67"})
	}))
	defer srv.Close()

	c := New(srv.URL, "key", "secret")
	acct, err := c.Account(context.Background())
	if err != nil {
		t.Fatalf("Account: %v", err)
	}
	if acct.ID != "acct-1" || acct.BuyingPower != 12345.67 {
		t.Fatalf("unexpected account: %+v", acct)
	}
}

func TestSubmitBuyStopLimitSendsCorrectFields(t *testing.T) {
	var captured orderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(orderResponse{ID: "order-1", Status: "new", Qty: "10", FilledQty: "0"})
	}))
	defer srv.Close()

	c := New(srv.URL, "key", "secret")
	ref, err := c.SubmitBuyStopLimit(context.Background(), "AAPL", 10, 101.01, 103.03)
	if err != nil {
		t.Fatalf("SubmitBuyStopLimit: %v", err)
	}
	if ref.ID != "order-1" || ref.RequestedQty != 10 {
		t.Fatalf("unexpected order ref: %+v", ref)
	}
	if captured.Side != "buy" || captured.Type != "stop_limit" || captured.TimeInForce != "gtc" {
		t.Fatalf("unexpected request fields: %+v", captured)
	}
	if captured.StopPrice != "101.01" || captured.LimitPrice != "103.03" {
		t.Fatalf("unexpected prices: %+v", captured)
	}
}

func TestCancelOrderPropagatesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"order not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "key", "secret")
	c.http.RetryMax = 0
	if err := c.CancelOrder(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}
