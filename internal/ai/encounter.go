package ai

import (
	"log/slog"

	"github.com/udisondev/arena/internal/model"
)

// Roller is the RNG surface used for behavior and target rolls.
// *rand.Rand (math/rand/v2) satisfies it.
type Roller interface {
	Float64() float64
	IntN(n int) int
}

// Difficulty selects the decision profile for non-player combatants.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// profile holds the tuned probabilities for a difficulty tier.
// Aggression is the chance to pick attack behavior; intelligence scales
// the defend window and enables smarter target selection.
type profile struct {
	aggression   float64
	intelligence float64
}

// profiles increase monotonically with tier.
var profiles = map[Difficulty]profile{
	DifficultyEasy:   {aggression: 0.50, intelligence: 0.20},
	DifficultyNormal: {aggression: 0.60, intelligence: 0.40},
	DifficultyHard:   {aggression: 0.70, intelligence: 0.60},
	DifficultyExpert: {aggression: 0.85, intelligence: 0.80},
}

// Valid reports whether d names a known difficulty tier.
func (d Difficulty) Valid() bool {
	_, ok := profiles[d]
	return ok
}

// Decision is a chosen action and target for one turn.
type Decision struct {
	Action model.Action
	Target *model.Combatant
}

// Decide picks an action and target for a non-player combatant.
//
// A single uniform roll selects the behavior: below aggression → attack;
// below aggression + intelligence×0.3 → defend; otherwise utility.
// Returns nil when the actor has no usable action — the caller must
// substitute a default attack rather than stall the turn.
func Decide(rng Roller, actor *model.Combatant, allies, enemies []*model.Combatant, difficulty Difficulty) *Decision {
	if len(actor.Actions) == 0 {
		return nil
	}
	p, ok := profiles[difficulty]
	if !ok {
		p = profiles[DifficultyNormal]
	}

	living := livingOf(enemies)
	roll := rng.Float64()

	var d *Decision
	switch {
	case roll < p.aggression && len(living) > 0:
		d = attackDecision(rng, actor, living, difficulty)
	case roll < p.aggression+p.intelligence*0.3:
		d = defendDecision(actor)
	default:
		d = utilityDecision(rng, actor)
	}

	// Behaviors can come up empty (no attack in the action set, no
	// utility actions). Fall through in attack → defend → utility order
	// before giving up.
	if d == nil {
		if len(living) > 0 {
			d = attackDecision(rng, actor, living, difficulty)
		}
	}
	if d == nil {
		d = defendDecision(actor)
	}
	if d == nil {
		d = utilityDecision(rng, actor)
	}

	if d != nil && IsDebugEnabled() {
		slog.Debug("ai decision",
			"actor", actor.Name,
			"difficulty", difficulty,
			"action", d.Action.Name,
			"kind", d.Action.Kind,
			"target", d.Target.Name)
	}
	return d
}

// attackDecision picks an offensive action and a tier-dependent target:
// easy → uniform random; normal → lowest current health;
// hard/expert → a living support-role opponent first, else lowest health.
func attackDecision(rng Roller, actor *model.Combatant, living []*model.Combatant, difficulty Difficulty) *Decision {
	action, ok := pickAction(rng, actor, func(a model.Action) bool {
		return a.Kind.IsOffensive() && !a.Healing
	})
	if !ok {
		return nil
	}

	var target *model.Combatant
	switch difficulty {
	case DifficultyEasy:
		target = living[rng.IntN(len(living))]
	case DifficultyHard, DifficultyExpert:
		target = supportTarget(living)
		if target == nil {
			target = lowestHealth(living)
		}
	default:
		target = lowestHealth(living)
	}
	return &Decision{Action: action, Target: target}
}

// defendDecision self-targets with a defend action if the actor has one.
func defendDecision(actor *model.Combatant) *Decision {
	for _, a := range actor.Actions {
		if a.Kind == model.ActionDefend {
			return &Decision{Action: a, Target: actor}
		}
	}
	return nil
}

// utilityDecision picks a random non-attack action, self-targeting.
func utilityDecision(rng Roller, actor *model.Combatant) *Decision {
	action, ok := pickAction(rng, actor, func(a model.Action) bool {
		return !a.Kind.IsOffensive() && a.Kind != model.ActionRun
	})
	if !ok {
		return nil
	}
	return &Decision{Action: action, Target: actor}
}

// pickAction selects a random affordable action matching the filter.
func pickAction(rng Roller, actor *model.Combatant, match func(model.Action) bool) (model.Action, bool) {
	candidates := make([]model.Action, 0, len(actor.Actions))
	for _, a := range actor.Actions {
		if match(a) && actor.Resource() >= a.Cost {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return model.Action{}, false
	}
	return candidates[rng.IntN(len(candidates))], true
}

// lowestHealth returns the living combatant with the least current health.
func lowestHealth(living []*model.Combatant) *model.Combatant {
	var best *model.Combatant
	for _, c := range living {
		if best == nil || c.HP() < best.HP() {
			best = c
		}
	}
	return best
}

// supportTarget returns the first living support-role combatant, or nil.
func supportTarget(living []*model.Combatant) *model.Combatant {
	for _, c := range living {
		if c.Role == model.RoleSupport {
			return c
		}
	}
	return nil
}

func livingOf(side []*model.Combatant) []*model.Combatant {
	out := make([]*model.Combatant, 0, len(side))
	for _, c := range side {
		if c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}
