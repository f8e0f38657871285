// Package engine orchestrates the two daily phases: the morning phase
// scores today's games and opens positions for BUY signals, the evening
// phase fetches final scores and settles every open position.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nba-edge-bot/internal/alerts"
	"nba-edge-bot/internal/config"
	"nba-edge-bot/internal/market"
	"nba-edge-bot/internal/metrics"
	"nba-edge-bot/internal/nea"
	"nba-edge-bot/internal/news"
	"nba-edge-bot/internal/portfolio"
)

// NewsService supplies game sheets and resolutions.
type NewsService interface {
	GameSheets(ctx context.Context, day time.Time) ([]news.GameSheet, error)
	Outcomes(ctx context.Context, day time.Time, bets []news.OpenBet) (map[string]news.Outcome, error)
}

// MarketService places orders for opened positions.
type MarketService interface {
	PlaceOrder(ctx context.Context, marketID string, stake, price float64) (market.OrderResult, error)
	Simulated() bool
}

// Engine runs the daily phases against the file-backed ledger.
type Engine struct {
	news     NewsService
	market   MarketService
	notifier *alerts.Notifier
	cfg      config.Config
	log      *slog.Logger
}

// New creates an Engine with all dependencies.
func New(newsSvc NewsService, marketSvc MarketService, notifier *alerts.Notifier, cfg config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		news:     newsSvc,
		market:   marketSvc,
		notifier: notifier,
		cfg:      cfg,
		log:      logger,
	}
}

func (e *Engine) limits() portfolio.Limits {
	return portfolio.Limits{
		MaxStakePct:    e.cfg.MaxStakePct,
		MaxExposurePct: e.cfg.MaxExposurePct,
		MinStake:       e.cfg.MinStakeDollars,
	}
}

// RunMorning scores every game on today's slate and opens a position for
// each BUY signal. The ledger is saved after every accepted bet so a crash
// mid-batch loses at most the in-flight game.
func (e *Engine) RunMorning(ctx context.Context, day time.Time) error {
	p, err := portfolio.Load(e.cfg.StateFile(), e.cfg.InitialCapital)
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}

	sheets, err := e.news.GameSheets(ctx, day)
	if err != nil {
		return fmt.Errorf("fetching game sheets: %w", err)
	}
	e.log.Info("morning slate fetched", "games", len(sheets))

	date := day.Format("2006-01-02")
	opened := 0
	for _, sheet := range sheets {
		if err := sheet.Validate(); err != nil {
			e.log.Warn("skipping malformed sheet",
				"game", sheet.MatchKey(), "error", err)
			metrics.GamesSkipped.WithLabelValues("invalid").Inc()
			continue
		}

		signal, label := nea.Score(sheetInputs(sheet))
		e.notifier.AlertSignal(sheet, signal, label)

		if label != nea.Buy {
			metrics.GamesSkipped.WithLabelValues("no_signal").Inc()
			continue
		}

		pos, err := p.Open(portfolio.OpenRequest{
			GameID:     sheet.MatchKey(),
			Home:       sheet.Home,
			Away:       sheet.Away,
			Side:       sheet.BetOn,
			EntryPrice: float64(sheet.PolyPrice) / 100,
			Date:       date,
			Signal:     signal,
		}, label, e.limits())
		if err != nil {
			e.log.Info("bet rejected",
				"game", sheet.MatchKey(), "reason", err)
			metrics.GamesSkipped.WithLabelValues(skipReason(err)).Inc()
			continue
		}

		if e.market != nil {
			if _, err := e.market.PlaceOrder(ctx, sheet.MarketID, pos.Stake, pos.EntryPrice); err != nil {
				// The ledger position stands; the simulation is the
				// source of truth and order placement is best-effort.
				e.notifier.LogError("placing order", err)
			}
		}

		if err := portfolio.Save(e.cfg.StateFile(), p); err != nil {
			return fmt.Errorf("saving ledger after open: %w", err)
		}

		e.notifier.AlertBetPlaced(pos, e.market == nil || e.market.Simulated())
		metrics.BetsOpened.Inc()
		opened++
	}

	metrics.Sessions.WithLabelValues("morning").Inc()
	metrics.ObservePortfolio(p)
	e.notifier.LogSession("morning", p)
	e.log.Info("morning phase done", "games", len(sheets), "opened", opened)
	return nil
}

// RunEvening settles open positions, retrying hourly for games that have
// not finished. Every open position is considered, not just today's: a
// game that slipped past a previous evening gets settled on the next run.
func (e *Engine) RunEvening(ctx context.Context, day time.Time) error {
	p, err := portfolio.Load(e.cfg.StateFile(), e.cfg.InitialCapital)
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}

	open := p.OpenPositions()
	if len(open) == 0 {
		e.log.Info("no open positions to settle")
		metrics.Sessions.WithLabelValues("evening").Inc()
		return nil
	}

	for attempt := 0; ; attempt++ {
		open = p.OpenPositions()
		if len(open) == 0 {
			break
		}

		bets := make([]news.OpenBet, 0, len(open))
		for _, pos := range open {
			bets = append(bets, news.OpenBet{Home: pos.Home, Away: pos.Away, BetOn: pos.Side})
		}

		outcomes, err := e.news.Outcomes(ctx, day, bets)
		if err != nil {
			e.notifier.LogError("fetching resolutions", err)
		} else {
			if err := e.settle(p, open, outcomes); err != nil {
				return err
			}
		}

		if len(p.OpenPositions()) == 0 {
			break
		}
		if attempt >= e.cfg.EveningRetries {
			e.log.Warn("giving up on unresolved positions until next evening",
				"remaining", len(p.OpenPositions()))
			break
		}

		e.log.Info("games still in progress, waiting",
			"remaining", len(p.OpenPositions()),
			"retry_in", e.cfg.EveningRetryGap,
			"attempt", attempt+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.cfg.EveningRetryGap):
		}
	}

	metrics.Sessions.WithLabelValues("evening").Inc()
	metrics.ObservePortfolio(p)
	e.notifier.LogSession("evening", p)
	return nil
}

// settle applies FINAL outcomes to open positions and saves after each one.
func (e *Engine) settle(p *portfolio.Portfolio, open []portfolio.Position, outcomes map[string]news.Outcome) error {
	for _, pos := range open {
		outcome, ok := outcomes[pos.GameID]
		if !ok {
			e.log.Warn("no resolution returned", "game", pos.GameID)
			continue
		}
		if outcome.Status != news.StatusFinal {
			e.log.Info("game not final yet", "game", pos.GameID, "status", outcome.Status)
			continue
		}
		if outcome.Winner != pos.Home && outcome.Winner != pos.Away {
			// A final score with a bogus winner is collaborator garbage,
			// and resolution is irreversible. Leave the position open for
			// the next attempt.
			e.log.Warn("skipping resolution with invalid winner",
				"game", pos.GameID, "winner", outcome.Winner)
			continue
		}

		resolved, err := p.Resolve(pos.ID, outcome.Winner, outcome.FinalScore)
		if err != nil {
			if errors.Is(err, portfolio.ErrAlreadyResolved) {
				continue
			}
			e.notifier.LogError("resolving position", err)
			continue
		}

		if err := portfolio.Save(e.cfg.StateFile(), p); err != nil {
			return fmt.Errorf("saving ledger after resolve: %w", err)
		}

		result := "loss"
		if resolved.PnL != nil && *resolved.PnL > 0 {
			result = "win"
		}
		metrics.BetsResolved.WithLabelValues(result).Inc()
		e.notifier.AlertResolved(resolved)
	}
	return nil
}

// sheetInputs converts a game sheet's integer fields into scoring inputs.
func sheetInputs(s news.GameSheet) nea.Inputs {
	return nea.Inputs{
		MarketPrice: float64(s.PolyPrice) / 100,
		VegasProb:   float64(s.VegasProb) / 100,
		Sentiment:   s.NewsScore,
		IsHome:      s.BetOn == s.Home,
		FormRatio:   float64(s.StreakPct) / 100,
	}
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, portfolio.ErrDuplicateGame):
		return "duplicate"
	case errors.Is(err, portfolio.ErrExposureCap):
		return "exposure_cap"
	case errors.Is(err, portfolio.ErrStakeTooSmall):
		return "stake_too_small"
	default:
		return "rejected"
	}
}
