// Command summary prints the current ledger from a state file.
//
// Usage:
//
//	summary -state /data/portfolio.json
//	summary -state /data/portfolio.json -all
package main

import (
	"flag"
	"fmt"
	"os"

	"nba-edge-bot/internal/portfolio"
)

func main() {
	statePath := flag.String("state", "/data/portfolio.json", "path to the portfolio state file")
	all := flag.Bool("all", false, "list resolved positions too")
	flag.Parse()

	p, err := portfolio.Read(*statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading state: %v\n", err)
		os.Exit(1)
	}

	wins, resolved := p.WinRate()

	fmt.Println("=== PORTFOLIO SUMMARY ===")
	fmt.Printf("capital:   $%.2f (started $%.2f)\n", p.Capital, p.InitialCapital)
	fmt.Printf("bankroll:  $%.2f\n", p.Bankroll())
	fmt.Printf("exposure:  $%.2f open (%.0f%% of bankroll)\n", p.OpenStakes(), p.ExposureRatio()*100)
	fmt.Printf("total pnl: $%+.4f\n", p.TotalPnL)
	fmt.Printf("roi:       %+.1f%%\n", p.ROI()*100)
	if resolved > 0 {
		fmt.Printf("record:    %d-%d (%.0f%% win rate)\n", wins, resolved-wins, float64(wins)/float64(resolved)*100)
	}

	open := p.OpenPositions()
	if len(open) > 0 {
		fmt.Printf("\nOPEN (%d):\n", len(open))
		for _, pos := range open {
			fmt.Printf("  %s  %s @ %s  bet=%s  $%.2f @ %.2f  signal=%.3f  [%s]\n",
				pos.Date, pos.Away, pos.Home, pos.Side, pos.Stake, pos.EntryPrice, pos.Signal, pos.ID)
		}
	}

	if *all {
		fmt.Println("\nRESOLVED:")
		for _, pos := range p.Positions {
			if pos.Status != portfolio.StatusResolved {
				continue
			}
			pnl := 0.0
			if pos.PnL != nil {
				pnl = *pos.PnL
			}
			fmt.Printf("  %s  %s @ %s  bet=%s  $%.2f  pnl=$%+.4f  %s\n",
				pos.Date, pos.Away, pos.Home, pos.Side, pos.Stake, pnl, pos.FinalScore)
		}
	}
}
