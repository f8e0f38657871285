// Command score prints the full scoring breakdown for one game, for
// sanity-checking the formula against hand-computed numbers.
//
// Usage:
//
//	score -price 50 -vegas 30 -news 20 -home -streak 30
//	score -price 65 -ml -150 -mlopp 130 -news 0 -streak 60
package main

import (
	"flag"
	"fmt"
	"os"

	"nba-edge-bot/internal/nea"
	"nba-edge-bot/internal/odds"
)

func main() {
	price := flag.Int("price", 50, "market Yes price in cents (1-99)")
	vegas := flag.Int("vegas", 50, "Vegas implied win probability in percent")
	ml := flag.Int("ml", 0, "American moneyline for the team (overrides -vegas)")
	mlOpp := flag.Int("mlopp", 0, "opponent moneyline, devigs the pair when set with -ml")
	newsScore := flag.Int("news", 0, "news/injury score (-40 to 20)")
	home := flag.Bool("home", false, "team plays at home")
	streak := flag.Int("streak", 50, "win percent over last 5 games")
	flag.Parse()

	if *price < 1 || *price > 99 {
		fmt.Fprintln(os.Stderr, "price must be 1-99 cents")
		os.Exit(1)
	}

	vegasProb := float64(*vegas) / 100
	if *ml != 0 {
		if *mlOpp != 0 {
			vegasProb, _ = odds.RemoveVigFromAmerican(*ml, *mlOpp)
		} else {
			vegasProb = odds.AmericanToImplied(*ml)
		}
	}

	in := nea.Inputs{
		MarketPrice: float64(*price) / 100,
		VegasProb:   vegasProb,
		Sentiment:   *newsScore,
		IsHome:      *home,
		FormRatio:   float64(*streak) / 100,
	}
	b := nea.ScoreBreakdown(in)

	fmt.Println("=== SCORE BREAKDOWN ===")
	fmt.Printf("market price:   %d cents\n", *price)
	fmt.Printf("vegas prob:     %.1f%% (%+d american)\n", vegasProb*100, odds.ImpliedToAmerican(vegasProb))
	fmt.Printf("vegas contrib:  %.3f\n", b.VegasContrib)
	fmt.Printf("news contrib:   %.3f\n", b.NewsContrib)
	fmt.Printf("home contrib:   %.3f\n", b.HomeContrib)
	fmt.Printf("streak contrib: %.3f\n", b.StreakContrib)
	fmt.Printf("fair value:     %.3f points\n", b.FairProb)
	fmt.Println()
	fmt.Printf("signal: %.3f\n", b.Signal)
	fmt.Printf("verdict: %s\n", b.Label)
}
