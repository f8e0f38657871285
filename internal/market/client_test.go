package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nba-edge-bot/internal/api"
)

func newTestClient(t *testing.T, simulate bool, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(api.NewClient(600, 5*time.Second, 0), "key", simulate, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.baseURL = srv.URL
	return c
}

func TestNewClientLiveRequiresKey(t *testing.T) {
	if _, err := NewClient(api.NewClient(600, time.Second, 0), "", false, nil); err == nil {
		t.Fatal("expected error for live mode without key")
	}
	if _, err := NewClient(api.NewClient(600, time.Second, 0), "", true, nil); err != nil {
		t.Fatalf("simulate mode without key: %v", err)
	}
}

func TestMarkets(t *testing.T) {
	c := newTestClient(t, true, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("active"); got != "true" {
			t.Errorf("active = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("Authorization = %q", got)
		}
		fmt.Fprint(w, `[{"id":"mkt-1","question":"Will the Celtics win?","yesPrice":72,"active":true}]`)
	})

	markets, err := c.Markets(context.Background(), "nba-celtics-heat", 10)
	if err != nil {
		t.Fatalf("Markets: %v", err)
	}
	if len(markets) != 1 || markets[0].ID != "mkt-1" {
		t.Errorf("markets = %+v", markets)
	}
}

func TestPrice(t *testing.T) {
	c := newTestClient(t, true, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets/mkt-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"id":"mkt-1","yesPrice":72}`)
	})

	price, err := c.Price(context.Background(), "mkt-1")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if price != 0.72 {
		t.Errorf("price = %v, want 0.72", price)
	}
}

func TestPriceRejectsOutOfRange(t *testing.T) {
	c := newTestClient(t, true, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"mkt-1","yesPrice":0}`)
	})
	if _, err := c.Price(context.Background(), "mkt-1"); err == nil {
		t.Fatal("expected error for zero price")
	}
}

func TestPlaceOrderSimulatedNeverHitsNetwork(t *testing.T) {
	c := newTestClient(t, true, func(w http.ResponseWriter, r *http.Request) {
		t.Error("simulated order reached the server")
	})

	res, err := c.PlaceOrder(context.Background(), "mkt-1", 3.00, 0.72)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if !res.Simulated {
		t.Error("result not marked simulated")
	}
	if res.OrderID == "" || res.Stake != 3.00 {
		t.Errorf("result = %+v", res)
	}
}

func TestPlaceOrderLive(t *testing.T) {
	c := newTestClient(t, false, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding order: %v", err)
		}
		if payload["market"] != "mkt-1" || payload["side"] != "YES" {
			t.Errorf("payload = %+v", payload)
		}
		fmt.Fprint(w, `{"orderId":"srv-order-9"}`)
	})

	res, err := c.PlaceOrder(context.Background(), "mkt-1", 3.00, 0.72)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if res.Simulated {
		t.Error("live order marked simulated")
	}
	if res.OrderID != "srv-order-9" {
		t.Errorf("OrderID = %q", res.OrderID)
	}
}
