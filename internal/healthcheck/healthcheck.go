// Package healthcheck runs the startup self-test: service reachability,
// scoring formula sanity, capital limit rules, and a ledger dry-run on a
// throwaway state file. The bot refuses to start scheduling until all
// checks pass once per data volume.
package healthcheck

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"nba-edge-bot/internal/nea"
	"nba-edge-bot/internal/portfolio"
)

// Pinger is the reachability probe for the news service. A nil Pinger skips
// the network check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Runner executes the startup checks.
type Runner struct {
	pinger Pinger
}

// New creates a health check runner.
func New(pinger Pinger) *Runner {
	return &Runner{pinger: pinger}
}

// Run executes all checks and returns the first failure.
func (r *Runner) Run(ctx context.Context) error {
	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"news service", r.checkNewsService},
		{"scoring formula", checkFormula},
		{"capital limits", checkLimits},
		{"ledger dry-run", checkLedger},
	}

	for _, c := range checks {
		if err := c.fn(ctx); err != nil {
			log.Printf("HEALTHCHECK FAIL [%s]: %v", c.name, err)
			return fmt.Errorf("%s: %w", c.name, err)
		}
		log.Printf("HEALTHCHECK OK   [%s]", c.name)
	}
	return nil
}

func (r *Runner) checkNewsService(ctx context.Context) error {
	if r.pinger == nil {
		log.Printf("healthcheck: no news service configured, skipping ping")
		return nil
	}
	return r.pinger.Ping(ctx)
}

// checkFormula verifies the scoring engine against fixed scenarios with
// known signals and verdicts.
func checkFormula(context.Context) error {
	scenarios := []struct {
		name   string
		in     nea.Inputs
		signal float64
		label  nea.Label
	}{
		{
			name:   "underpriced favorite with good news",
			in:     nea.Inputs{MarketPrice: 0.50, VegasProb: 0.30, Sentiment: 20, IsHome: true, FormRatio: 0.30},
			signal: -12.5,
			label:  nea.Buy,
		},
		{
			name:   "overpriced team with star out",
			in:     nea.Inputs{MarketPrice: 0.75, VegasProb: 0.72, Sentiment: -35, IsHome: true, FormRatio: 0.60},
			signal: 42.133,
			label:  nea.Avoid,
		},
		{
			name:   "fairly priced game",
			in:     nea.Inputs{MarketPrice: 0.65, VegasProb: 0.60, Sentiment: 14, IsHome: true, FormRatio: 0.50},
			signal: -4.0,
			label:  nea.Neutral,
		},
	}

	for _, s := range scenarios {
		signal, label := nea.Score(s.in)
		if math.Abs(signal-s.signal) > 0.001 {
			return fmt.Errorf("%s: signal %.3f, want %.3f", s.name, signal, s.signal)
		}
		if label != s.label {
			return fmt.Errorf("%s: label %s, want %s", s.name, label, s.label)
		}
	}
	return nil
}

// checkLimits verifies stake sizing and the exposure cap on a $20 bankroll.
func checkLimits(context.Context) error {
	p := portfolio.New(20)
	lim := portfolio.DefaultLimits()

	pos, err := p.Open(portfolio.OpenRequest{
		GameID: "check-1", Home: "A", Away: "B", Side: "A",
		EntryPrice: 0.60, Date: "2000-01-01", Signal: -10,
	}, nea.Buy, lim)
	if err != nil {
		return fmt.Errorf("opening first position: %w", err)
	}
	if pos.Stake != 3.00 {
		return fmt.Errorf("stake %.2f, want 3.00 (15%% of $20)", pos.Stake)
	}
	if p.Capital != 17.00 {
		return fmt.Errorf("capital %.2f after open, want 17.00", p.Capital)
	}
	if p.Bankroll() != 20.00 {
		return fmt.Errorf("bankroll %.2f after open, want 20.00", p.Bankroll())
	}

	// Exhaust the exposure cap. Opens 2-3 take the full 15%, the fourth is
	// clipped to the last $1 of capacity, and the fifth must be rejected.
	for i := 2; i <= 5; i++ {
		_, err = p.Open(portfolio.OpenRequest{
			GameID: fmt.Sprintf("check-%d", i), Home: "A", Away: "B", Side: "A",
			EntryPrice: 0.60, Date: "2000-01-01", Signal: -10,
		}, nea.Buy, lim)
	}
	if err == nil {
		return fmt.Errorf("exposure cap never triggered")
	}
	if p.ExposureRatio() > lim.MaxExposurePct+0.001 {
		return fmt.Errorf("exposure %.3f exceeds cap", p.ExposureRatio())
	}
	return nil
}

// checkLedger runs open, persist, reload, resolve on a throwaway state file.
func checkLedger(context.Context) error {
	dir, err := os.MkdirTemp("", "healthcheck-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)
	statePath := filepath.Join(dir, "portfolio.json")

	p, err := portfolio.Load(statePath, 20)
	if err != nil {
		return fmt.Errorf("creating ledger: %w", err)
	}

	pos, err := p.Open(portfolio.OpenRequest{
		GameID: "dry-run", Home: "A", Away: "B", Side: "A",
		EntryPrice: 0.60, Date: "2000-01-01", Signal: -10,
	}, nea.Buy, portfolio.DefaultLimits())
	if err != nil {
		return fmt.Errorf("opening: %w", err)
	}
	if err := portfolio.Save(statePath, p); err != nil {
		return fmt.Errorf("saving: %w", err)
	}

	reloaded, err := portfolio.Load(statePath, 20)
	if err != nil {
		return fmt.Errorf("reloading: %w", err)
	}
	resolved, err := reloaded.Resolve(pos.ID, "A", "A 110 - B 105")
	if err != nil {
		return fmt.Errorf("resolving: %w", err)
	}

	// $3 stake at 0.60 pays out $5.00: capital 17 + 5 = 22.
	if reloaded.Capital != 22.00 {
		return fmt.Errorf("capital %.4f after win, want 22.00", reloaded.Capital)
	}
	if resolved.PnL == nil || *resolved.PnL != 2.00 {
		return fmt.Errorf("pnl %v, want 2.00", resolved.PnL)
	}
	return nil
}
