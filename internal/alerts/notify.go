package alerts

import (
	"fmt"
	"log"
	"sync"
	"time"

	"nba-edge-bot/internal/nea"
	"nba-edge-bot/internal/news"
	"nba-edge-bot/internal/portfolio"
)

// Notifier handles alert notifications
type Notifier struct {
	mu         sync.Mutex
	lastAlerts map[string]time.Time // Dedupe alerts
	cooldown   time.Duration        // Minimum time between same alerts
	telegram   *Telegram            // nil when Telegram is not configured
}

// NewNotifier creates a new notifier. telegram may be nil.
func NewNotifier(cooldown time.Duration, telegram *Telegram) *Notifier {
	return &Notifier{
		lastAlerts: make(map[string]time.Time),
		cooldown:   cooldown,
		telegram:   telegram,
	}
}

// checkCooldown records the alert key and reports whether it should be
// suppressed.
func (n *Notifier) checkCooldown(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if lastTime, ok := n.lastAlerts[key]; ok {
		if time.Since(lastTime) < n.cooldown {
			return true
		}
	}
	n.lastAlerts[key] = time.Now()
	return false
}

func (n *Notifier) send(msg string) {
	log.Print(msg)
	if n.telegram != nil {
		n.telegram.Send(msg)
	}
}

// AlertSignal reports a scored game and its verdict.
func (n *Notifier) AlertSignal(sheet news.GameSheet, signal float64, label nea.Label) {
	key := fmt.Sprintf("signal-%s-%s", sheet.MatchKey(), label)
	if n.checkCooldown(key) {
		return
	}

	n.send(fmt.Sprintf("SIGNAL %s: %s @ %s | bet_on=%s price=%dc vegas=%d%% news=%d signal=%.3f",
		label, sheet.Away, sheet.Home, sheet.BetOn,
		sheet.PolyPrice, sheet.VegasProb, sheet.NewsScore, signal,
	))
}

// AlertBetPlaced reports a newly opened position.
func (n *Notifier) AlertBetPlaced(pos portfolio.Position, simulated bool) {
	key := fmt.Sprintf("open-%s", pos.ID)
	if n.checkCooldown(key) {
		return
	}

	mode := "LIVE"
	if simulated {
		mode = "SIM"
	}
	n.send(fmt.Sprintf("BET PLACED [%s]: %s (%s@%s) stake=$%.2f entry=%.2f signal=%.3f",
		mode, pos.Side, pos.Away, pos.Home, pos.Stake, pos.EntryPrice, pos.Signal,
	))
}

// AlertResolved reports a settled position.
func (n *Notifier) AlertResolved(pos portfolio.Position) {
	key := fmt.Sprintf("resolve-%s", pos.ID)
	if n.checkCooldown(key) {
		return
	}

	pnl := 0.0
	if pos.PnL != nil {
		pnl = *pos.PnL
	}
	n.send(fmt.Sprintf("RESOLVED %s: %s (%s@%s) stake=$%.2f pnl=$%+.4f | %s",
		pos.Result, pos.Side, pos.Away, pos.Home, pos.Stake, pnl, pos.FinalScore,
	))
}

// LogSession logs a phase summary with the resulting ledger state.
func (n *Notifier) LogSession(phase string, p *portfolio.Portfolio) {
	n.send(fmt.Sprintf("SESSION %s done: capital=$%.2f open=%d exposure=%.0f%% totalPnl=$%+.2f roi=%+.1f%%",
		phase, p.Capital, len(p.OpenPositions()), p.ExposureRatio()*100,
		p.TotalPnL, p.ROI()*100,
	))
}

// LogError logs an error
func (n *Notifier) LogError(context string, err error) {
	log.Printf("ERROR [%s]: %v", context, err)
}

// LogStartup logs bot startup
func (n *Notifier) LogStartup(config string) {
	n.send(fmt.Sprintf("Bot started |%s", config))
}

// CleanupOldAlerts removes stale alert records
func (n *Notifier) CleanupOldAlerts() {
	n.mu.Lock()
	defer n.mu.Unlock()
	cutoff := time.Now().Add(-1 * time.Hour)
	for key, t := range n.lastAlerts {
		if t.Before(cutoff) {
			delete(n.lastAlerts, key)
		}
	}
}
