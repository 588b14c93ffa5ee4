// Package alpaca implements broker.Broker against the Alpaca trading
// REST API: submit order, get order, cancel order, get account.
package alpaca

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/rustyeddy/crossbar/broker"
	"github.com/rustyeddy/crossbar/market"
)

// Client is a broker.Broker backed by Alpaca's trading REST API.
type Client struct {
	baseURL   string
	keyID     string
	secret    string
	http      *retryablehttp.Client
	reqTimeout time.Duration
}

// New returns a Client against baseURL (e.g. "https://paper-api.alpaca.markets")
// authenticated with the given API key pair.
func New(baseURL, keyID, secret string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = log.New(io.Discard, "", log.LstdFlags)

	return &Client{
		baseURL:    baseURL,
		keyID:      keyID,
		secret:     secret,
		http:       rc,
		reqTimeout: 5 * time.Second,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.reqTimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("alpaca: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("alpaca: build request: %w", err)
	}
	req.Header.Set("APCA-API-KEY-ID", c.keyID)
	req.Header.Set("APCA-API-SECRET-KEY", c.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("alpaca: request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("alpaca: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("alpaca: %s %s: status %d: %s", method, path, resp.StatusCode, string(data))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("alpaca: decode response: %w", err)
	}
	return nil
}

type accountResponse struct {
	ID          string `json:"id"`
	BuyingPower string `json:"buying_power"`
}

// Account fetches the account's id and buying power.
func (c *Client) Account(ctx context.Context) (broker.Account, error) {
	var resp accountResponse
	if err := c.do(ctx, http.MethodGet, "/v2/account", nil, &resp); err != nil {
		return broker.Account{}, err
	}
	bp, err := strconv.ParseFloat(resp.BuyingPower, 64)
	if err != nil {
		return broker.Account{}, fmt.Errorf("alpaca: parse buying_power %q: %w", resp.BuyingPower, err)
	}
	return broker.Account{ID: resp.ID, BuyingPower: bp}, nil
}

type orderRequest struct {
	Symbol      string `json:"symbol"`
	Qty         string `json:"qty"`
	Side        string `json:"side"`
	Type        string `json:"type"`
	TimeInForce string `json:"time_in_force"`
	LimitPrice  string `json:"limit_price,omitempty"`
	StopPrice   string `json:"stop_price,omitempty"`
}

type orderResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Qty        string `json:"qty"`
	FilledQty  string `json:"filled_qty"`
}

func (r orderResponse) toOrderRef() (market.OrderRef, error) {
	qty, err := strconv.ParseFloat(r.Qty, 64)
	if err != nil {
		return market.OrderRef{}, fmt.Errorf("alpaca: parse qty %q: %w", r.Qty, err)
	}
	filled, err := strconv.ParseFloat(r.FilledQty, 64)
	if err != nil {
		filled = 0
	}
	return market.OrderRef{ID: r.ID, Status: r.Status, RequestedQty: qty, FilledQty: filled}, nil
}

func (c *Client) submit(ctx context.Context, req orderRequest) (market.OrderRef, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/v2/orders", req, &resp); err != nil {
		return market.OrderRef{}, err
	}
	return resp.toOrderRef()
}

// SubmitBuyLimit submits a GTC limit buy order, used for pre/after-market
// sessions where the broker requires a limit order.
func (c *Client) SubmitBuyLimit(ctx context.Context, symbol string, qty float64, limitPrice float64) (market.OrderRef, error) {
	return c.submit(ctx, orderRequest{
		Symbol: symbol, Qty: formatQty(qty), Side: "buy", Type: "limit",
		TimeInForce: broker.TimeInForceGTC, LimitPrice: formatPrice(limitPrice),
	})
}

// SubmitBuyStopLimit submits a GTC stop-limit buy order, used during
// normal market hours.
func (c *Client) SubmitBuyStopLimit(ctx context.Context, symbol string, qty float64, stopPrice, limitPrice float64) (market.OrderRef, error) {
	return c.submit(ctx, orderRequest{
		Symbol: symbol, Qty: formatQty(qty), Side: "buy", Type: "stop_limit",
		TimeInForce: broker.TimeInForceGTC, LimitPrice: formatPrice(limitPrice), StopPrice: formatPrice(stopPrice),
	})
}

// SubmitSellLimit submits a GTC limit sell order.
func (c *Client) SubmitSellLimit(ctx context.Context, symbol string, qty float64, limitPrice float64) (market.OrderRef, error) {
	return c.submit(ctx, orderRequest{
		Symbol: symbol, Qty: formatQty(qty), Side: "sell", Type: "limit",
		TimeInForce: broker.TimeInForceGTC, LimitPrice: formatPrice(limitPrice),
	})
}

// GetOrder polls the status of a previously submitted order.
func (c *Client) GetOrder(ctx context.Context, id string) (market.OrderRef, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodGet, "/v2/orders/"+id, nil, &resp); err != nil {
		return market.OrderRef{}, err
	}
	return resp.toOrderRef()
}

// CancelOrder cancels a previously submitted order.
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v2/orders/"+id, nil, nil)
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

var _ broker.Broker = (*Client)(nil)
