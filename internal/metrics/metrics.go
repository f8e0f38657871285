// Package metrics provides Prometheus instrumentation for the bot.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nba-edge-bot/internal/portfolio"
)

var (
	// BetsOpened counts positions opened.
	BetsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nba_bets_opened_total",
		Help: "Total positions opened",
	})

	// BetsResolved counts settled positions, partitioned by result.
	BetsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nba_bets_resolved_total",
		Help: "Total positions resolved",
	}, []string{"result"})

	// GamesSkipped counts games the morning phase did not bet on.
	GamesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nba_games_skipped_total",
		Help: "Games skipped during the morning phase",
	}, []string{"reason"})

	// Sessions counts completed phase runs.
	Sessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nba_sessions_total",
		Help: "Completed phase runs",
	}, []string{"phase"})

	// Capital is the current free cash in dollars.
	Capital = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nba_capital_dollars",
		Help: "Free cash available for new stakes",
	})

	// TotalPnL is the cumulative realized profit and loss in dollars.
	TotalPnL = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nba_total_pnl_dollars",
		Help: "Cumulative realized profit and loss",
	})

	// ExposureRatio is open stakes as a fraction of bankroll.
	ExposureRatio = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nba_exposure_ratio",
		Help: "Open stakes as a fraction of bankroll",
	})

	// OpenPositions tracks the number of unsettled positions.
	OpenPositions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nba_open_positions",
		Help: "Number of currently open positions",
	})
)

// ObservePortfolio refreshes the ledger gauges from current state.
func ObservePortfolio(p *portfolio.Portfolio) {
	Capital.Set(p.Capital)
	TotalPnL.Set(p.TotalPnL)
	ExposureRatio.Set(p.ExposureRatio())
	OpenPositions.Set(float64(len(p.OpenPositions())))
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
