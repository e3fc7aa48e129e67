package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/MJE43/wheel-sim-go/internal/engine"
	"github.com/MJE43/wheel-sim-go/internal/sim"
	"github.com/MJE43/wheel-sim-go/internal/stats"
	"github.com/MJE43/wheel-sim-go/internal/wheel"
)

func main() {
	configPath := flag.String("config", "wheel.yaml", "path to the wheel configuration (YAML)")
	spins := flag.Int("spins", 0, "number of Normal Mode spins to run")
	breaks := flag.Int("breaks", 0, "number of Remove-Hit-Slots Mode breaks to run")
	seed := flag.Int64("seed", 0, "random seed for reproducible runs (0 selects an entropy seed)")
	historyLimit := flag.Int("history", sim.DefaultHistoryLimit, "spin history cap")
	quiet := flag.Bool("quiet", false, "suppress the progress bar")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.LUTC)

	if *spins < 1 && *breaks < 1 {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -spins and/or -breaks")
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatalf("config_load_failed path=%s error=%v", *configPath, err)
	}
	cfg, err := wheel.ParseYAML(raw)
	if err != nil {
		log.Fatalf("config_invalid path=%s error=%v", *configPath, err)
	}

	var rng engine.Rand
	if *seed != 0 {
		rng = engine.NewRand(*seed)
	}
	session, err := sim.NewSession(*cfg, rng, *historyLimit)
	if err != nil {
		log.Fatalf("session_create_failed error=%v", err)
	}

	log.Printf(
		"run_start config=%s total_slots=%d prizes=%d spins=%d breaks=%d seeded=%t",
		*configPath, cfg.TotalSlots, len(cfg.Prizes), *spins, *breaks, *seed != 0,
	)

	if *spins > 0 {
		batch, err := runWithBar(session, *spins, *quiet, func(n int) (int, error) {
			res, err := session.SpinBatch(n)
			return len(res.Outcomes), err
		})
		if err != nil {
			log.Fatalf("spins_failed error=%v", err)
		}
		log.Printf("spins_completed spins=%d total_cost=%.2f", batch, float64(*spins)*cfg.PricePerSpin)
	}

	if *breaks > 0 {
		if !cfg.HasStopCondition() {
			log.Fatalf("breaks_failed error=%v", sim.ErrNoStopCondition)
		}
		total, err := runWithBar(session, *breaks, *quiet, func(n int) (int, error) {
			res, err := session.RunBreaks(n)
			return res.TotalSpins, err
		})
		if err != nil {
			log.Fatalf("breaks_failed error=%v", err)
		}
		log.Printf("breaks_completed breaks=%d total_spins=%d", *breaks, total)
	}

	printReport(os.Stdout, session, *breaks > 0)
}

// runWithBar executes one batch operation behind a progress bar fed by the
// session's chunk callback.
func runWithBar(session *sim.Session, count int, quiet bool, run func(n int) (int, error)) (int, error) {
	bar := pb.StartNew(count)
	if quiet {
		bar.SetWriter(io.Discard)
	}
	session.SetProgress(func(done, total int) {
		bar.SetCurrent(int64(done))
	})
	defer session.SetProgress(nil)
	defer bar.Finish()

	return run(count)
}

// printReport renders the final aggregate table plus the risk estimates.
func printReport(w io.Writer, session *sim.Session, ranBreaks bool) {
	snapshot := session.Stats()

	if err := stats.WriteReport(w, "Wheel Simulation Report", snapshot); err != nil {
		log.Fatalf("report_failed error=%v", err)
	}

	mode := stats.ModeNormal
	if ranBreaks {
		mode = stats.ModeRemoveHit
	}
	risk, err := stats.ShortTermRisk(snapshot, session.RiskParams(mode))
	if err != nil {
		log.Fatalf("risk_failed error=%v", err)
	}
	fmt.Fprintf(w, "\nShort-term risk (%s): %.4f\n", mode, risk)

	if ranBreaks && snapshot.BestBreak != nil {
		cfg := session.Config()
		probs := stats.BreakProbs(snapshot.BestBreak, snapshot.WorstBreak, snapshot.TotalBreaks, cfg.TotalSlots)
		fmt.Fprintf(w, "Best break recurrence:  empirical %.4f (95%% CI %.4f-%.4f), sequence %.3g\n",
			probs.Best.Empirical, probs.Best.CI.Lo, probs.Best.CI.Hi, probs.Best.Sequence)
		fmt.Fprintf(w, "Worst break recurrence: empirical %.4f (95%% CI %.4f-%.4f), sequence %.3g\n",
			probs.Worst.Empirical, probs.Worst.CI.Lo, probs.Worst.CI.Hi, probs.Worst.Sequence)
	}
}
