package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"sphere-ca/internal/logging"
	"sphere-ca/internal/sweep"
)

func main() {
	opts := sweep.DefaultOptions()
	flag.IntVar(&opts.Steps, "steps", opts.Steps, "ticks to simulate per scenario")
	flag.IntVar(&opts.Workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	flag.IntVar(&opts.Level, "subdivisions", opts.Level, "geodesic subdivision level")
	lo := flag.Int("lo", 1, "lowest neighbour count in the rule grid")
	hi := flag.Int("hi", 4, "highest neighbour count in the rule grid")
	seeds := flag.Int("seeds", 3, "seeds per rule pair")
	top := flag.Int("top", 5, "results to print")
	chartPath := flag.String("chart", "", "write a PNG chart of the best scenario to this path")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	log := logging.New(*level)
	opts.Log = log

	seedList := make([]int64, *seeds)
	for i := range seedList {
		seedList[i] = int64(i + 1)
	}
	rules := sweep.Rules(*lo, *hi)
	scenarios := sweep.Scenarios(rules, rules, seedList)
	log.Infof("sweeping %d scenarios (%d workers, %d steps, level %d)", len(scenarios), opts.Workers, opts.Steps, opts.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := sweep.Run(ctx, opts, scenarios)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}
	summaries := sweep.Summarize(results)
	sweep.Rank(results)

	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		r := results[i]
		fmt.Printf("%2d) %s paired=%d peakPairs=%d alive=%.1f±%.1f\n",
			i+1, r.Scenario, r.PairedTicks, r.PeakPairs, r.MeanAlive, r.StdAlive)
	}
	fmt.Println("\nPer rule pair:")
	for _, s := range summaries {
		fmt.Printf("S%d-%d/B%d-%d runs=%d paired=%.1f±%.1f alive=%.1f\n",
			s.Survival.Min, s.Survival.Max, s.Birth.Min, s.Birth.Max, s.Runs, s.MeanPaired, s.StdPaired, s.MeanAlive)
	}

	if *chartPath != "" && len(results) > 0 {
		f, err := os.Create(*chartPath)
		if err != nil {
			log.Fatalf("chart: %v", err)
		}
		defer f.Close()
		if err := sweep.WriteChart(f, results[0]); err != nil {
			log.Fatalf("chart: %v", err)
		}
		log.Infof("wrote %s", *chartPath)
	}
}
