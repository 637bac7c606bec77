// Balancesim plays a scenario many times in parallel and reports win
// rates per difficulty tier. Used to sanity-check stat and formula
// changes before they ship.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/arena/internal/ai"
	"github.com/udisondev/arena/internal/config"
	"github.com/udisondev/arena/internal/data"
	"github.com/udisondev/arena/internal/game/battle"
	"github.com/udisondev/arena/internal/sim"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// tally accumulates outcomes across worker goroutines.
type tally struct {
	mu          sync.Mutex
	wins        int
	losses      int
	fled        int
	errors      int
	totalRounds int64
}

func (t *tally) record(out sim.Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch out.State {
	case battle.StateVictory:
		t.wins++
	case battle.StateDefeat:
		t.losses++
	case battle.StateFled:
		t.fled++
	default:
		t.errors++
	}
	t.totalRounds += int64(out.Rounds)
}

func run(ctx context.Context) error {
	var (
		configPath   = flag.String("config", "", "config file")
		scenarioPath = flag.String("scenario", "scenario.yaml", "scenario file")
		battles      = flag.Int("battles", 1000, "battles per difficulty tier")
		workers      = flag.Int("workers", runtime.GOMAXPROCS(0), "parallel workers")
		baseSeed     = flag.Uint64("seed", 0, "base seed (default derived from the scenario name)")
	)
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := config.DefaultSimulator()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadSimulator(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	scenario, err := data.LoadScenario(*scenarioPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	seed := *baseSeed
	if seed == 0 {
		seed = battle.DeriveSeed(scenario.Name)
	}

	slog.Info("balance run starting",
		"scenario", scenario.Name,
		"battles_per_tier", *battles,
		"workers", *workers)

	tiers := []ai.Difficulty{
		ai.DifficultyEasy, ai.DifficultyNormal, ai.DifficultyHard, ai.DifficultyExpert,
	}
	for _, tier := range tiers {
		t, err := runTier(ctx, cfg, scenario, tier, *battles, *workers, seed)
		if err != nil {
			return err
		}
		total := t.wins + t.losses + t.fled + t.errors
		if total == 0 {
			continue
		}
		fmt.Printf("%-8s  wins %5d (%.1f%%)  losses %5d  fled %4d  errors %d  avg rounds %.1f\n",
			tier,
			t.wins, 100*float64(t.wins)/float64(total),
			t.losses, t.fled, t.errors,
			float64(t.totalRounds)/float64(total))
	}
	return nil
}

// runTier plays the scenario n times at one difficulty. Each battle gets
// a distinct deterministic seed, so the whole run replays exactly.
func runTier(ctx context.Context, cfg config.Simulator, scenario data.Scenario, tier ai.Difficulty, n, workers int, baseSeed uint64) (*tally, error) {
	battleCfg := cfg.Battle
	battleCfg.Difficulty = string(tier)
	// Thinking delay only burns steps in batch runs.
	battleCfg.ThinkDelayMs = 1

	t := &tally{}
	jobs := make(chan int)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				opts, err := sim.BuildOptions(battleCfg, baseSeed+uint64(i)+1)
				if err != nil {
					return err
				}
				_, out, err := sim.RunBattle(gctx, scenario, opts, nil)
				if err != nil {
					return fmt.Errorf("battle %d at %s: %w", i, tier, err)
				}
				t.record(out)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}
