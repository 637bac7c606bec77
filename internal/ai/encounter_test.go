package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/udisondev/arena/internal/model"
)

// scriptRoller returns scripted Float64 rolls; IntN always picks 0.
type scriptRoller struct {
	rolls []float64
	i     int
	intN  int
}

func (r *scriptRoller) Float64() float64 {
	if r.i < len(r.rolls) {
		v := r.rolls[r.i]
		r.i++
		return v
	}
	return 0.5
}

func (r *scriptRoller) IntN(n int) int {
	if r.intN >= n {
		return n - 1
	}
	return r.intN
}

func newActor(actions ...model.Action) *model.Combatant {
	c := model.NewCombatant(10, "Goblin", model.SideEnemy, 3, 50, 30, model.Stats{AttackPower: 10})
	c.Actions = actions
	return c
}

func enemyTeam() []*model.Combatant {
	a := model.NewCombatant(1, "Knight", model.SideAlly, 5, 100, 0, model.Stats{})
	b := model.NewCombatant(2, "Cleric", model.SideAlly, 5, 80, 40, model.Stats{})
	b.Role = model.RoleSupport
	c := model.NewCombatant(3, "Rogue", model.SideAlly, 5, 60, 0, model.Stats{})
	c.ReduceHP(40) // lowest health: 20
	return []*model.Combatant{a, b, c}
}

var (
	attackAction = model.Action{Kind: model.ActionAttack, Name: "Claw", Power: 8}
	defendAction = model.Action{Kind: model.ActionDefend, Name: "Guard"}
	utilAction   = model.Action{Kind: model.ActionItem, Name: "Herb", Power: 10, Healing: true}
)

func TestDecide_EmptyActionSet(t *testing.T) {
	actor := newActor()
	d := Decide(&scriptRoller{}, actor, nil, enemyTeam(), DifficultyNormal)
	if d != nil {
		t.Fatalf("expected nil decision for empty action set, got %+v", d)
	}
}

func TestDecide_AggressionSelectsAttack(t *testing.T) {
	actor := newActor(attackAction, defendAction)
	// Roll 0.1 < 0.60 aggression → attack behavior.
	d := Decide(&scriptRoller{rolls: []float64{0.1}}, actor, nil, enemyTeam(), DifficultyNormal)
	if d == nil || d.Action.Kind != model.ActionAttack {
		t.Fatalf("expected attack decision, got %+v", d)
	}
}

func TestDecide_DefendWindow(t *testing.T) {
	actor := newActor(attackAction, defendAction)
	// Normal: aggression 0.60, defend window up to 0.60+0.40×0.3 = 0.72.
	d := Decide(&scriptRoller{rolls: []float64{0.65}}, actor, nil, enemyTeam(), DifficultyNormal)
	if d == nil || d.Action.Kind != model.ActionDefend {
		t.Fatalf("expected defend decision, got %+v", d)
	}
	if d.Target != actor {
		t.Fatal("defend must self-target")
	}
}

func TestDecide_UtilitySelfTargets(t *testing.T) {
	actor := newActor(attackAction, utilAction)
	// Roll beyond defend window → utility behavior.
	d := Decide(&scriptRoller{rolls: []float64{0.95}}, actor, nil, enemyTeam(), DifficultyNormal)
	if d == nil || d.Action.Kind != model.ActionItem {
		t.Fatalf("expected utility decision, got %+v", d)
	}
	if d.Target != actor {
		t.Fatal("utility without a better target must self-target")
	}
}

func TestDecide_TargetSelectionByTier(t *testing.T) {
	team := enemyTeam()

	tests := []struct {
		difficulty Difficulty
		wantName   string
	}{
		{DifficultyEasy, "Knight"},  // uniform roll, IntN → 0
		{DifficultyNormal, "Rogue"}, // lowest current health
		{DifficultyHard, "Cleric"},  // support role preferred
		{DifficultyExpert, "Cleric"},
	}
	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			actor := newActor(attackAction)
			d := Decide(&scriptRoller{rolls: []float64{0.0}}, actor, nil, team, tt.difficulty)
			if d == nil {
				t.Fatal("expected decision")
			}
			if d.Target.Name != tt.wantName {
				t.Fatalf("target = %s, want %s", d.Target.Name, tt.wantName)
			}
		})
	}
}

func TestDecide_SupportFallbackToLowestHealth(t *testing.T) {
	team := enemyTeam()
	team[1].ReduceHP(80) // kill the Cleric
	actor := newActor(attackAction)

	d := Decide(&scriptRoller{rolls: []float64{0.0}}, actor, nil, team, DifficultyHard)
	if d == nil || d.Target.Name != "Rogue" {
		t.Fatalf("expected lowest-health fallback Rogue, got %+v", d)
	}
}

func TestDecide_SkipsUnaffordableActions(t *testing.T) {
	costly := model.Action{Kind: model.ActionMagic, Name: "Fireball", Power: 20, Cost: 100}
	actor := newActor(costly, attackAction)

	d := Decide(&scriptRoller{rolls: []float64{0.0}, intN: 1}, actor, nil, enemyTeam(), DifficultyNormal)
	if d == nil {
		t.Fatal("expected decision")
	}
	if d.Action.Name == "Fireball" {
		t.Fatal("must not pick an action the actor cannot afford")
	}
}

func TestDecide_AlwaysResolvesWithSeededRNG(t *testing.T) {
	// Any roll must produce a decision when the actor has actions.
	rng := rand.New(rand.NewPCG(3, 9))
	actor := newActor(attackAction, defendAction, utilAction)
	for range 200 {
		d := Decide(rng, actor, nil, enemyTeam(), DifficultyExpert)
		if d == nil {
			t.Fatal("non-empty action set must always yield a decision")
		}
	}
}
