// Package portfolio implements the simulated betting ledger: capital,
// open positions, resolution, and the fixed capital-management rules
// (max 15% of bankroll per stake, max 50% of bankroll exposed).
package portfolio

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"nba-edge-bot/internal/mathutil"
	"nba-edge-bot/internal/nea"
)

// Status of a position. History is append-only; positions are never deleted.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
)

// Rejection reasons for Open and Resolve.
var (
	ErrNotBuy          = errors.New("label is not BUY")
	ErrDuplicateGame   = errors.New("open position already exists for game")
	ErrExposureCap     = errors.New("exposure cap reached")
	ErrStakeTooSmall   = errors.New("stake below minimum")
	ErrAlreadyResolved = errors.New("position already resolved")
	ErrNotFound        = errors.New("position not found")
)

// Position is a single simulated bet. EntryPrice is the implied probability
// paid, in (0,1). PnL stays nil until the position resolves.
type Position struct {
	ID         string   `json:"id"`
	GameID     string   `json:"gameId"`
	Home       string   `json:"home"`
	Away       string   `json:"away"`
	Side       string   `json:"side"` // team the stake is on
	Stake      float64  `json:"stake"`
	EntryPrice float64  `json:"entryPrice"`
	Status     Status   `json:"status"`
	PnL        *float64 `json:"pnl"`
	Date       string   `json:"date"` // "2006-01-02", day the bet was opened
	Signal     float64  `json:"signal"`
	Result     string   `json:"result,omitempty"`     // winning team once resolved
	FinalScore string   `json:"finalScore,omitempty"` // e.g. "Home 110 - Away 105"
}

// Portfolio is the file-backed ledger. Capital is free cash: stake money
// moves out at placement and comes back (as payout) at resolution, so
// bankroll = capital + open stakes is preserved by Open.
type Portfolio struct {
	Capital        float64    `json:"capital"`
	InitialCapital float64    `json:"initialCapital"`
	TotalPnL       float64    `json:"totalPnl"`
	Positions      []Position `json:"positions"`
}

// Limits are the capital-management rules applied at placement time,
// as fractions of the bankroll.
type Limits struct {
	MaxStakePct    float64 // single stake cap (0.15)
	MaxExposurePct float64 // total open-stake cap (0.50)
	MinStake       float64 // dollars; smaller stakes are rejected
}

// DefaultLimits returns the standard 15%/50% rules with a 10 cent floor.
func DefaultLimits() Limits {
	return Limits{
		MaxStakePct:    0.15,
		MaxExposurePct: 0.50,
		MinStake:       0.10,
	}
}

// OpenRequest describes the bet to place for a BUY signal.
type OpenRequest struct {
	GameID     string
	Home       string
	Away       string
	Side       string  // team being bet on
	EntryPrice float64 // market price for that side, 0-1 exclusive
	Date       string
	Signal     float64
}

// New creates a fresh portfolio.
func New(initialCapital float64) *Portfolio {
	return &Portfolio{
		Capital:        initialCapital,
		InitialCapital: initialCapital,
		Positions:      []Position{},
	}
}

// OpenStakes is the sum of stakes on OPEN positions.
func (p *Portfolio) OpenStakes() float64 {
	var sum float64
	for _, pos := range p.Positions {
		if pos.Status == StatusOpen {
			sum += pos.Stake
		}
	}
	return sum
}

// Bankroll is free cash plus deployed stakes.
func (p *Portfolio) Bankroll() float64 {
	return p.Capital + p.OpenStakes()
}

// ExposureRatio is the fraction of the bankroll committed to open positions.
func (p *Portfolio) ExposureRatio() float64 {
	bankroll := p.Bankroll()
	if bankroll <= 0 {
		return 1.0
	}
	return p.OpenStakes() / bankroll
}

// RemainingCapacity is how many dollars can still be staked before the
// exposure cap is reached. Never negative.
func (p *Portfolio) RemainingCapacity(lim Limits) float64 {
	return math.Max(0, lim.MaxExposurePct*p.Bankroll()-p.OpenStakes())
}

// HasOpenPosition reports whether an OPEN position already exists for the
// game, which is the duplicate-open protection for restarted batches.
func (p *Portfolio) HasOpenPosition(gameID string) bool {
	for _, pos := range p.Positions {
		if pos.Status == StatusOpen && pos.GameID == gameID {
			return true
		}
	}
	return false
}

// OpenPositions returns copies of all OPEN positions.
func (p *Portfolio) OpenPositions() []Position {
	var open []Position
	for _, pos := range p.Positions {
		if pos.Status == StatusOpen {
			open = append(open, pos)
		}
	}
	return open
}

// ROI is the return on initial capital as a fraction.
func (p *Portfolio) ROI() float64 {
	if p.InitialCapital == 0 {
		return 0
	}
	return (p.Bankroll() - p.InitialCapital) / p.InitialCapital
}

// WinRate returns the number of winning and resolved positions.
func (p *Portfolio) WinRate() (wins, resolved int) {
	for _, pos := range p.Positions {
		if pos.Status != StatusResolved {
			continue
		}
		resolved++
		if pos.PnL != nil && *pos.PnL > 0 {
			wins++
		}
	}
	return wins, resolved
}

// Open places a bet for a BUY signal, sizing the stake as
// min(MaxStakePct*bankroll, remaining exposure capacity). Non-BUY labels,
// duplicate games, an exhausted exposure cap, and dust stakes are all
// rejected without mutating the ledger.
func (p *Portfolio) Open(req OpenRequest, label nea.Label, lim Limits) (Position, error) {
	if label != nea.Buy {
		return Position{}, ErrNotBuy
	}
	if req.EntryPrice <= 0 || req.EntryPrice >= 1 {
		return Position{}, fmt.Errorf("entry price %.4f outside (0,1)", req.EntryPrice)
	}
	if p.HasOpenPosition(req.GameID) {
		return Position{}, ErrDuplicateGame
	}

	bankroll := p.Bankroll()
	capacity := lim.MaxExposurePct*bankroll - p.OpenStakes()
	if capacity <= 0 {
		return Position{}, ErrExposureCap
	}

	stake := mathutil.Round2(math.Min(lim.MaxStakePct*bankroll, capacity))
	if stake < lim.MinStake {
		return Position{}, ErrStakeTooSmall
	}

	pos := Position{
		ID:         uuid.New().String()[:8],
		GameID:     req.GameID,
		Home:       req.Home,
		Away:       req.Away,
		Side:       req.Side,
		Stake:      stake,
		EntryPrice: req.EntryPrice,
		Status:     StatusOpen,
		Date:       req.Date,
		Signal:     req.Signal,
	}

	p.Capital = mathutil.Round4(p.Capital - stake)
	p.Positions = append(p.Positions, pos)
	return pos, nil
}

// Resolve settles an open position given the winning team. A win credits
// stake/entryPrice (payout at implied odds) back to capital; a loss credits
// nothing, so losses are capped at the stake and capital never goes
// negative. Resolving an already-resolved position is rejected, which makes
// the operation idempotent per position.
func (p *Portfolio) Resolve(positionID, winner, finalScore string) (Position, error) {
	idx := -1
	for i := range p.Positions {
		if p.Positions[i].ID == positionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Position{}, ErrNotFound
	}

	pos := &p.Positions[idx]
	if pos.Status == StatusResolved {
		return *pos, ErrAlreadyResolved
	}

	var pnl float64
	if winner == pos.Side {
		payout := pos.Stake / pos.EntryPrice
		pnl = mathutil.Round4(payout - pos.Stake)
		p.Capital = mathutil.Round4(p.Capital + payout)
	} else {
		pnl = -pos.Stake
	}

	pos.Status = StatusResolved
	pos.PnL = &pnl
	pos.Result = winner
	pos.FinalScore = finalScore
	p.TotalPnL = mathutil.Round4(p.TotalPnL + pnl)
	return *pos, nil
}
