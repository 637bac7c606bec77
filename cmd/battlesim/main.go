package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/arena/internal/ai"
	"github.com/udisondev/arena/internal/config"
	"github.com/udisondev/arena/internal/data"
	"github.com/udisondev/arena/internal/db"
	"github.com/udisondev/arena/internal/game/battle"
	"github.com/udisondev/arena/internal/sim"
)

const ConfigPath = "config/battlesim.yaml"

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

func run(ctx context.Context) error {
	var (
		configPath   = flag.String("config", "", "config file (default "+ConfigPath+")")
		scenarioPath = flag.String("scenario", "", "scenario file (overrides config)")
		seed         = flag.Uint64("seed", 0, "battle seed (default derived from the scenario name)")
		aiDebug      = flag.Bool("ai-debug", false, "log AI decisions")
	)
	flag.Parse()

	cfgPath := ConfigPath
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	if *configPath != "" {
		cfgPath = *configPath
	}
	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))
	ai.EnableDebugLogging(*aiDebug)

	slog.Info("arena battle simulator starting")

	scnPath := cfg.ScenarioPath
	if *scenarioPath != "" {
		scnPath = *scenarioPath
	}
	scenario, err := data.LoadScenario(scnPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	if scenario.Difficulty != "" {
		cfg.Battle.Difficulty = scenario.Difficulty
	}

	battleSeed := *seed
	if battleSeed == 0 {
		battleSeed = battle.DeriveSeed(scenario.Name)
	}
	opts, err := sim.BuildOptions(cfg.Battle, battleSeed)
	if err != nil {
		return fmt.Errorf("building battle options: %w", err)
	}

	slog.Info("running scenario",
		"name", scenario.Name,
		"difficulty", opts.Difficulty,
		"seed", battleSeed)

	o, outcome, err := sim.RunBattle(ctx, scenario, opts, logEvents)
	if err != nil {
		return fmt.Errorf("running battle: %w", err)
	}

	fmt.Println()
	for _, e := range o.LogEntries() {
		fmt.Printf("[round %d] %s\n", e.Round, e.Message)
	}
	fmt.Println()

	slog.Info("battle finished",
		"result", outcome.State,
		"rounds", outcome.Rounds,
		"steps", outcome.Steps)
	if r := o.Rewards(); r != nil {
		slog.Info("rewards",
			"experience", r.Experience,
			"per_ally", r.PerAllyExperience,
			"currency", r.Currency,
			"items", len(r.Items))
	}

	if cfg.PersistReports {
		if err := persistReport(ctx, cfg, scenario, battleSeed, o); err != nil {
			return fmt.Errorf("persisting report: %w", err)
		}
	}
	return nil
}

func persistReport(ctx context.Context, cfg config.Simulator, scenario data.Scenario, seed uint64, o *battle.Orchestrator) error {
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	report, err := db.BuildReport(scenario.Name, cfg.Battle.Difficulty, seed, o)
	if err != nil {
		return err
	}
	return database.SaveReport(ctx, report)
}

func logEvents(ev battle.Event) {
	switch ev.Type {
	case battle.EventCombatantDefeated:
		slog.Info("combatant defeated", "name", ev.Combatant.Name, "side", ev.Combatant.Side)
	case battle.EventStatusApplied:
		slog.Debug("status applied", "target", ev.Combatant.Name, "effect", ev.EffectID)
	case battle.EventBattleEnded:
		slog.Info("battle ended", "result", ev.Result, "survivors", len(ev.Survivors))
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
