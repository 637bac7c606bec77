package model

// ActionKind discriminates how an action is resolved.
type ActionKind string

const (
	ActionAttack ActionKind = "attack"
	ActionMagic  ActionKind = "magic"
	ActionItem   ActionKind = "item"
	ActionRun    ActionKind = "run"
	ActionDefend ActionKind = "defend"
)

// IsOffensive reports whether the action targets an opponent.
func (k ActionKind) IsOffensive() bool {
	return k == ActionAttack || k == ActionMagic
}

// Action is one entry in a combatant's available-action set.
// Power feeds the damage/healing formulas as base value; Cost is
// deducted from the actor's resource; EffectID names a status effect
// for utility actions (empty for plain attacks).
type Action struct {
	Kind     ActionKind
	Name     string
	Power    float64
	Element  string // magic only; empty = unresisted
	Cost     int32
	EffectID string // status effect applied by utility/defend actions
	Healing  bool   // item/magic actions that heal instead of damage
}

// DefaultAttack is substituted when an actor has no usable action.
var DefaultAttack = Action{Kind: ActionAttack, Name: "Strike", Power: 10}

// Item is an opaque reward object produced by an external generator.
type Item struct {
	ID   int32
	Name string
}
