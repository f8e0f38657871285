package alerts

import (
	"testing"
	"time"

	"nba-edge-bot/internal/nea"
	"nba-edge-bot/internal/news"
	"nba-edge-bot/internal/portfolio"
)

func TestCheckCooldownSuppresses(t *testing.T) {
	n := NewNotifier(1*time.Second, nil)

	// First call should not suppress
	if n.checkCooldown("test-key") {
		t.Error("first call should not be suppressed")
	}

	// Immediate second call should suppress
	if !n.checkCooldown("test-key") {
		t.Error("second call within cooldown should be suppressed")
	}
}

func TestCheckCooldownExpires(t *testing.T) {
	n := NewNotifier(10*time.Millisecond, nil)

	if n.checkCooldown("test-key") {
		t.Error("first call should not be suppressed")
	}

	time.Sleep(15 * time.Millisecond)

	if n.checkCooldown("test-key") {
		t.Error("call after cooldown should not be suppressed")
	}
}

func TestCheckCooldownDifferentKeys(t *testing.T) {
	n := NewNotifier(1*time.Second, nil)

	if n.checkCooldown("key-a") {
		t.Error("first call for key-a should not be suppressed")
	}

	// Different key should not be suppressed
	if n.checkCooldown("key-b") {
		t.Error("first call for key-b should not be suppressed")
	}

	// Same key should be suppressed
	if !n.checkCooldown("key-a") {
		t.Error("second call for key-a should be suppressed")
	}
}

func TestAlertSignalCooldown(t *testing.T) {
	n := NewNotifier(1*time.Second, nil)

	sheet := news.GameSheet{
		Home: "Lakers", Away: "Celtics", BetOn: "Lakers",
		PolyPrice: 50, VegasProb: 55, NewsScore: 10,
		HomeAwayFactor: 5, StreakPct: 60,
	}

	// Should not panic and should log the first time
	n.AlertSignal(sheet, -8.5, nea.Buy)

	// Second call should be suppressed (no log)
	n.AlertSignal(sheet, -8.5, nea.Buy)
}

func TestAlertResolvedNilPnL(t *testing.T) {
	n := NewNotifier(1*time.Second, nil)

	// A resolved position always carries PnL in practice; the formatter
	// must still not dereference nil.
	n.AlertResolved(portfolio.Position{
		ID: "abc123", Home: "Lakers", Away: "Celtics", Side: "Lakers",
		Stake: 3.00, Result: "Celtics",
	})
}

func TestLogSession(t *testing.T) {
	p := portfolio.New(20)
	n := NewNotifier(1*time.Second, nil)
	n.LogSession("morning", p)
}

func TestCleanupOldAlerts(t *testing.T) {
	n := NewNotifier(1*time.Hour, nil)

	// Manually insert an old alert
	n.mu.Lock()
	n.lastAlerts["old-key"] = time.Now().Add(-2 * time.Hour)
	n.lastAlerts["fresh-key"] = time.Now()
	n.mu.Unlock()

	n.CleanupOldAlerts()

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.lastAlerts["old-key"]; ok {
		t.Error("old alert should have been cleaned up")
	}
	if _, ok := n.lastAlerts["fresh-key"]; !ok {
		t.Error("fresh alert should not have been cleaned up")
	}
}
