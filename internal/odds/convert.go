// Package odds converts between sportsbook moneylines, market prices in
// cents, and implied probabilities.
package odds

import "math"

// OddsToImplied converts odds to implied probability, auto-detecting format
// Handles:
// - American odds: -150, +130, etc. (|value| >= 100)
// - Market prices as cents: 1-99 (interpreted as 0.01-0.99)
func OddsToImplied(odds int) float64 {
	if odds == 0 {
		return 0
	}

	// Detect format based on value range
	absOdds := odds
	if absOdds < 0 {
		absOdds = -absOdds
	}

	// American odds are typically >= 100 in absolute value
	if absOdds >= 100 {
		return AmericanToImplied(odds)
	}

	// Values 1-99 are market Yes prices in cents
	// Convert to probability (e.g., 45 -> 0.45)
	if odds >= 1 && odds <= 99 {
		return float64(odds) / 100.0
	}

	// Fallback to American conversion for edge cases
	return AmericanToImplied(odds)
}

// AmericanToImplied converts American odds to implied probability
// Example: -150 → 0.6 (60%), +150 → 0.4 (40%)
func AmericanToImplied(odds int) float64 {
	if odds == 0 {
		return 0
	}

	if odds > 0 {
		// Underdog: probability = 100 / (odds + 100)
		return 100.0 / (float64(odds) + 100.0)
	}
	// Favorite: probability = |odds| / (|odds| + 100)
	return math.Abs(float64(odds)) / (math.Abs(float64(odds)) + 100.0)
}

// ImpliedToAmerican converts a probability back to American odds, rounded
// to the nearest integer. Probabilities outside (0,1) return 0.
func ImpliedToAmerican(prob float64) int {
	if prob <= 0 || prob >= 1 {
		return 0
	}
	if prob >= 0.5 {
		// Favorite
		return -int(math.Round(prob / (1 - prob) * 100))
	}
	// Underdog
	return int(math.Round((1 - prob) / prob * 100))
}
