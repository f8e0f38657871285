// Package market talks to the prediction-market API used for entry prices
// and (when live trading is enabled) order placement. In simulate mode every
// order is a logged no-op so the ledger can run without touching real money.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"nba-edge-bot/internal/api"
)

const defaultBaseURL = "https://gamma-api.polymarket.com"

// Market is one tradeable binary market.
type Market struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	Slug     string  `json:"slug"`
	YesPrice float64 `json:"yesPrice"` // cents, 1-99
	Active   bool    `json:"active"`
	Closed   bool    `json:"closed"`
}

// OrderResult records what happened to a placed order.
type OrderResult struct {
	OrderID   string
	MarketID  string
	Side      string
	Stake     float64
	Price     float64 // entry price as probability, 0-1
	Simulated bool
	PlacedAt  time.Time
}

// Client queries markets and places orders. Simulate defaults to on; the bot
// refuses to construct a live client without an API key.
type Client struct {
	api      *api.Client
	baseURL  string
	apiKey   string
	simulate bool
	log      *slog.Logger
}

// NewClient creates a market client. When simulate is false an apiKey is
// required.
func NewClient(httpClient *api.Client, apiKey string, simulate bool, logger *slog.Logger) (*Client, error) {
	if !simulate && apiKey == "" {
		return nil, fmt.Errorf("live trading requires a market API key")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api:      httpClient,
		baseURL:  defaultBaseURL,
		apiKey:   apiKey,
		simulate: simulate,
		log:      logger,
	}, nil
}

// Simulated reports whether orders are no-ops.
func (c *Client) Simulated() bool { return c.simulate }

func (c *Client) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}

// Markets searches active markets matching the query text.
func (c *Client) Markets(ctx context.Context, query string, limit int) ([]Market, error) {
	q := url.Values{}
	q.Set("active", "true")
	q.Set("closed", "false")
	q.Set("limit", strconv.Itoa(limit))
	if query != "" {
		q.Set("slug", query)
	}

	body, err := c.api.Get(ctx, c.baseURL+"/markets?"+q.Encode(), c.headers())
	if err != nil {
		return nil, fmt.Errorf("fetching markets: %w", err)
	}

	var markets []Market
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("decoding markets: %w", err)
	}
	return markets, nil
}

// Price returns the current Yes price for a market as a probability in
// (0, 1).
func (c *Client) Price(ctx context.Context, marketID string) (float64, error) {
	body, err := c.api.Get(ctx, c.baseURL+"/markets/"+url.PathEscape(marketID), c.headers())
	if err != nil {
		return 0, fmt.Errorf("fetching market %s: %w", marketID, err)
	}

	var m Market
	if err := json.Unmarshal(body, &m); err != nil {
		return 0, fmt.Errorf("decoding market %s: %w", marketID, err)
	}
	if m.YesPrice < 1 || m.YesPrice > 99 {
		return 0, fmt.Errorf("market %s price %.1f outside 1-99", marketID, m.YesPrice)
	}
	return m.YesPrice / 100, nil
}

// PlaceOrder buys Yes on the given market. In simulate mode the order is
// logged and recorded but never sent.
func (c *Client) PlaceOrder(ctx context.Context, marketID string, stake, price float64) (OrderResult, error) {
	result := OrderResult{
		OrderID:  uuid.New().String()[:8],
		MarketID: marketID,
		Side:     "YES",
		Stake:    stake,
		Price:    price,
		PlacedAt: time.Now(),
	}

	if c.simulate {
		result.Simulated = true
		c.log.Info("simulated order",
			"market", marketID,
			"stake", stake,
			"price", price)
		return result, nil
	}

	payload := map[string]any{
		"market": marketID,
		"side":   "YES",
		"size":   stake,
		"price":  price,
	}
	body, err := c.api.PostJSON(ctx, c.baseURL+"/orders", c.headers(), payload)
	if err != nil {
		return OrderResult{}, fmt.Errorf("placing order on %s: %w", marketID, err)
	}

	var resp struct {
		OrderID string `json:"orderId"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return OrderResult{}, fmt.Errorf("decoding order response: %w", err)
	}
	if resp.OrderID != "" {
		result.OrderID = resp.OrderID
	}
	c.log.Info("order placed", "order", result.OrderID, "market", marketID, "stake", stake)
	return result, nil
}
