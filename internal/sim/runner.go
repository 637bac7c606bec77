// Package sim wires configuration, scenarios and the battle engine
// together for the simulator binaries.
package sim

import (
	"context"
	"fmt"

	"github.com/udisondev/arena/internal/ai"
	"github.com/udisondev/arena/internal/config"
	"github.com/udisondev/arena/internal/data"
	"github.com/udisondev/arena/internal/game/battle"
)

// StepMs is the simulated update step the runners drive battles with.
const StepMs int32 = 100

// maxSteps bounds one battle run so a pathological matchup (two
// combatants that cannot hurt each other) cannot loop forever.
const maxSteps = 200_000

// BuildOptions maps the YAML battle config onto engine options.
// Zero-valued fields keep the engine defaults; the difficulty must name
// a known tier when set.
func BuildOptions(cfg config.Battle, seed uint64) (battle.Options, error) {
	opts := battle.DefaultOptions()
	opts.Seed = seed
	opts.AllowRun = cfg.AllowRun

	if cfg.Difficulty != "" {
		d := ai.Difficulty(cfg.Difficulty)
		if !d.Valid() {
			return opts, fmt.Errorf("unknown difficulty %q", cfg.Difficulty)
		}
		opts.Difficulty = d
	}
	if cfg.TurnTimeLimitMs > 0 {
		opts.TurnTimeLimitMs = cfg.TurnTimeLimitMs
	}
	if cfg.RunChance > 0 {
		opts.RunChance = cfg.RunChance
	}
	if cfg.PhysicalProcChance > 0 {
		opts.PhysicalProcChance = cfg.PhysicalProcChance
	}
	if cfg.MagicalProcChance > 0 {
		opts.MagicalProcChance = cfg.MagicalProcChance
	}
	if len(cfg.ProcEffects) > 0 {
		opts.ProcEffects = cfg.ProcEffects
	}
	if cfg.ProcDurationMs > 0 {
		opts.ProcDurationMs = cfg.ProcDurationMs
	}
	if cfg.DefendDurationMs > 0 {
		opts.DefendDurationMs = cfg.DefendDurationMs
	}
	if cfg.ThinkDelayMs > 0 {
		opts.ThinkDelayMs = cfg.ThinkDelayMs
	}
	if cfg.LogCapacity > 0 {
		opts.LogCapacity = cfg.LogCapacity
	}
	if cfg.ExperienceFactor > 0 {
		opts.ExperienceFactor = cfg.ExperienceFactor
	}
	if cfg.CurrencyFactor > 0 {
		opts.CurrencyFactor = cfg.CurrencyFactor
	}
	return opts, nil
}

// Outcome summarizes one completed battle run.
type Outcome struct {
	State  battle.State
	Rounds int32
	Steps  int
}

// RunBattle plays a scenario to completion with the engine AI driving
// both sides. Fresh combatants are built per run, so repeated calls with
// different seeds are independent samples.
func RunBattle(ctx context.Context, scenario data.Scenario, opts battle.Options, sink battle.Sink) (*battle.Orchestrator, Outcome, error) {
	allies, enemies, err := scenario.Build()
	if err != nil {
		return nil, Outcome{}, fmt.Errorf("building scenario %q: %w", scenario.Name, err)
	}

	opts.AutoPilotAllies = true
	o := battle.New(opts, sink, nil)
	if err := o.Start(allies, enemies); err != nil {
		return nil, Outcome{}, fmt.Errorf("starting battle: %w", err)
	}

	steps := 0
	for !o.State().Terminal() && steps < maxSteps {
		if err := ctx.Err(); err != nil {
			return o, Outcome{State: o.State(), Rounds: o.Round(), Steps: steps}, err
		}
		o.Update(StepMs)
		steps++
	}
	if !o.State().Terminal() {
		return o, Outcome{}, fmt.Errorf("battle %q did not finish within %d steps", scenario.Name, maxSteps)
	}
	return o, Outcome{State: o.State(), Rounds: o.Round(), Steps: steps}, nil
}
