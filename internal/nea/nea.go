// Package nea implements the NBA Edge Alpha score: the difference between a
// prediction-market price and a weighted estimate of the fair win probability
// built from the sportsbook line, injury/news sentiment, home court, and
// recent form.
//
// All terms are expressed in percentage points on a [0,100] scale before
// weighting, so a signal of -12.5 means the market is pricing the side 12.5
// points below the weighted fair estimate.
package nea

import "nba-edge-bot/internal/mathutil"

// Component weights for the fair-probability estimate. They sum to 1.
const (
	WeightVegas  = 0.35
	WeightNews   = 0.50
	WeightHome   = 0.10
	WeightStreak = 0.05
)

// Sentiment bounds assigned by the news collaborator. Values outside this
// range are clamped before normalization.
const (
	SentimentMin = -40
	SentimentMax = 20
)

// Label thresholds in percentage points. The closed interval
// [BuyThreshold, AvoidThreshold] maps to NEUTRAL.
const (
	BuyThreshold   = -5.0
	AvoidThreshold = 5.0
)

// Home-court factor in points.
const (
	homePoints = 5.0
	awayPoints = -5.0
)

// Label is the categorical recommendation derived from a signal.
type Label string

const (
	Buy     Label = "BUY"
	Neutral Label = "NEUTRAL"
	Avoid   Label = "AVOID"
)

// Inputs are the per-game inputs to the score. MarketPrice and VegasProb are
// probabilities in [0,1]; Sentiment is the raw news score; FormRatio is the
// win fraction over the last 5 games in [0,1].
type Inputs struct {
	MarketPrice float64
	VegasProb   float64
	Sentiment   int
	IsHome      bool
	FormRatio   float64
}

// Breakdown is a signal with its weighted component contributions, used for
// logging, the dashboard, and the health check.
type Breakdown struct {
	Signal        float64
	Label         Label
	FairProb      float64 // weighted fair estimate in points
	VegasContrib  float64
	NewsContrib   float64
	HomeContrib   float64
	StreakContrib float64
}

// NormalizeSentiment maps a raw sentiment score onto [0,100] points.
// The raw value is clamped to [SentimentMin, SentimentMax] first.
func NormalizeSentiment(s int) float64 {
	clamped := mathutil.Clamp(float64(s), SentimentMin, SentimentMax)
	return (clamped - SentimentMin) / (SentimentMax - SentimentMin) * 100
}

// NormalizeForm maps a win fraction in [0,1] onto [0,100] points, clamping
// out-of-range values.
func NormalizeForm(r float64) float64 {
	return mathutil.Clamp(r, 0, 1) * 100
}

// HomeFactor returns the home-court term in points.
func HomeFactor(isHome bool) float64 {
	if isHome {
		return homePoints
	}
	return awayPoints
}

// Score computes the signal and its label for the given inputs. It is pure
// and deterministic; malformed inputs are a caller concern.
func Score(in Inputs) (float64, Label) {
	b := ScoreBreakdown(in)
	return b.Signal, b.Label
}

// ScoreBreakdown computes the signal along with each weighted contribution.
func ScoreBreakdown(in Inputs) Breakdown {
	b := Breakdown{
		VegasContrib:  WeightVegas * in.VegasProb * 100,
		NewsContrib:   WeightNews * NormalizeSentiment(in.Sentiment),
		HomeContrib:   WeightHome * HomeFactor(in.IsHome),
		StreakContrib: WeightStreak * NormalizeForm(in.FormRatio),
	}
	b.FairProb = b.VegasContrib + b.NewsContrib + b.HomeContrib + b.StreakContrib
	b.Signal = mathutil.Round3(in.MarketPrice*100 - b.FairProb)
	b.Label = Interpret(b.Signal)
	return b
}

// Interpret maps a signal onto its label. The three intervals are contiguous
// and cover the whole line; both boundaries belong to NEUTRAL.
func Interpret(signal float64) Label {
	switch {
	case signal < BuyThreshold:
		return Buy
	case signal > AvoidThreshold:
		return Avoid
	default:
		return Neutral
	}
}
