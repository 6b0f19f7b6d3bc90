package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/replay"
)

// #region main
func main() {
	fixturePath := flag.String("fixture", "", "path to a replay fixture JSON file (required)")
	verbose := flag.Bool("v", false, "print the full trace even when the replay matches")
	flag.Parse()

	if *fixturePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	fixture, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("load fixture: %v", err)
	}

	rr, err := replay.Replay(context.Background(), fixture)
	if err != nil {
		log.Fatalf("replay: %v", err)
	}

	if fixture.Description != "" {
		fmt.Printf("fixture: %s\n", fixture.Description)
	}
	fmt.Printf("verdict=%s overallPassed=%v finalScore=%.4f scorerCalls=%d published=%v\n",
		rr.Result.Verdict, rr.Result.OverallPassed, rr.Result.FinalScore, rr.ScorerCalls, rr.Published)

	if *verbose || !rr.OK() {
		for _, ev := range rr.Trace {
			fmt.Printf("  [step %d] %s: %s\n", ev.StepNumber, ev.Kind, ev.Message)
		}
	}

	if !rr.OK() {
		fmt.Println("divergence from expected outcome:")
		for _, m := range rr.Mismatches {
			fmt.Printf("  - %s\n", m)
		}
		os.Exit(1)
	}
	fmt.Println("replay matched expected outcome")
}
// #endregion main
