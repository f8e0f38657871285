package news

import "fmt"

// GameSheet is the per-game analysis sheet returned by the news service for
// the morning phase. Prices and probabilities arrive as integer percentage
// points; the engine converts them to [0,1] before scoring.
type GameSheet struct {
	Home           string `json:"home"`
	Away           string `json:"away"`
	BetOn          string `json:"bet_on"`
	MarketID       string `json:"market_id"`
	PolyPrice      int    `json:"poly_price"`       // market Yes price in cents, 1-99
	VegasProb      int    `json:"vegas_prob"`       // sportsbook-implied win %, 0-100
	NewsScore      int    `json:"news_score"`       // injury impact, -40..+20
	HomeAwayFactor int    `json:"home_away_factor"` // +5 home, -5 visitor
	StreakPct      int    `json:"streak_pct"`       // win % over last 5 games
	NewsSummary    string `json:"news_summary"`
	Rationale      string `json:"rationale"`
}

// MatchKey identifies a game the way the resolution service keys its
// answers: "Home|Away".
func (s GameSheet) MatchKey() string {
	return s.Home + "|" + s.Away
}

// Validate rejects sheets the scoring engine must not see: out-of-range or
// malformed collaborator data is treated the same as an unavailable service
// and the game is skipped.
func (s GameSheet) Validate() error {
	if s.Home == "" || s.Away == "" {
		return fmt.Errorf("missing team names")
	}
	if s.BetOn != s.Home && s.BetOn != s.Away {
		return fmt.Errorf("bet_on %q is neither home nor away team", s.BetOn)
	}
	if s.PolyPrice < 1 || s.PolyPrice > 99 {
		return fmt.Errorf("poly_price %d outside 1-99", s.PolyPrice)
	}
	if s.VegasProb < 0 || s.VegasProb > 100 {
		return fmt.Errorf("vegas_prob %d outside 0-100", s.VegasProb)
	}
	if s.NewsScore < -40 || s.NewsScore > 20 {
		return fmt.Errorf("news_score %d outside -40..20", s.NewsScore)
	}
	if s.HomeAwayFactor != 5 && s.HomeAwayFactor != -5 {
		return fmt.Errorf("home_away_factor %d is not +5 or -5", s.HomeAwayFactor)
	}
	if s.StreakPct < 0 || s.StreakPct > 100 {
		return fmt.Errorf("streak_pct %d outside 0-100", s.StreakPct)
	}
	return nil
}

// Game resolution statuses reported by the service.
const (
	StatusFinal      = "FINAL"
	StatusInProgress = "IN_PROGRESS"
	StatusPostponed  = "POSTPONED"
)

// Outcome is one game resolution from the evening phase.
type Outcome struct {
	Home       string `json:"home"`
	Away       string `json:"away"`
	Winner     string `json:"winner"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	FinalScore string `json:"final_score"`
	Status     string `json:"status"`
}

// MatchKey mirrors GameSheet.MatchKey.
func (o Outcome) MatchKey() string {
	return o.Home + "|" + o.Away
}

// OpenBet is the subset of an open position sent back to the resolution
// service so it knows which games to look up.
type OpenBet struct {
	Home  string `json:"home"`
	Away  string `json:"away"`
	BetOn string `json:"bet_on"`
}
