package model

// Side identifies which roster a combatant fights on.
type Side int8

const (
	SideAlly Side = iota
	SideEnemy
)

// String returns the side name for logs.
func (s Side) String() string {
	if s == SideAlly {
		return "ally"
	}
	return "enemy"
}

// Opposite returns the opposing side.
func (s Side) Opposite() Side {
	if s == SideAlly {
		return SideEnemy
	}
	return SideAlly
}

// Role describes a combatant's battlefield role.
// Used by the opponent decision procedure for target prioritization.
type Role string

const (
	RoleFighter Role = "fighter"
	RoleSupport Role = "support"
	RoleCaster  Role = "caster"
)

// Combatant is a living participant in a battle.
// Built by external character/enemy generation; the battle core only
// mutates health, resource and the stat bundle.
//
// Not safe for concurrent use: a battle is a cooperative single-stream
// simulation, and each combatant belongs to exactly one battle.
type Combatant struct {
	ID    uint32
	Name  string
	Side  Side
	Role  Role
	Level int32

	hp          int32
	maxHP       int32
	resource    int32
	maxResource int32

	Stats   Stats
	Actions []Action
}

// NewCombatant creates a combatant at full health and resource.
func NewCombatant(id uint32, name string, side Side, level, maxHP, maxResource int32, stats Stats) *Combatant {
	if maxHP < 1 {
		maxHP = 1
	}
	if maxResource < 0 {
		maxResource = 0
	}
	return &Combatant{
		ID:          id,
		Name:        name,
		Side:        side,
		Role:        RoleFighter,
		Level:       level,
		hp:          maxHP,
		maxHP:       maxHP,
		resource:    maxResource,
		maxResource: maxResource,
		Stats:       stats,
	}
}

// HP returns current health.
func (c *Combatant) HP() int32 { return c.hp }

// MaxHP returns maximum health.
func (c *Combatant) MaxHP() int32 { return c.maxHP }

// SetHP sets current health, clamped to [0, MaxHP].
func (c *Combatant) SetHP(hp int32) {
	if hp < 0 {
		hp = 0
	}
	if hp > c.maxHP {
		hp = c.maxHP
	}
	c.hp = hp
}

// ReduceHP reduces health by damage (minimum 0).
func (c *Combatant) ReduceHP(damage int32) {
	c.SetHP(c.hp - damage)
}

// Heal restores health by amount (capped at MaxHP).
func (c *Combatant) Heal(amount int32) {
	c.SetHP(c.hp + amount)
}

// MissingHP returns how much health the combatant is below maximum.
func (c *Combatant) MissingHP() int32 { return c.maxHP - c.hp }

// IsDead reports whether the combatant has no health left.
func (c *Combatant) IsDead() bool { return c.hp <= 0 }

// IsAlive reports whether the combatant can still act.
func (c *Combatant) IsAlive() bool { return c.hp > 0 }

// HPPercentage returns current health as a fraction of maximum (0.0–1.0).
func (c *Combatant) HPPercentage() float64 {
	if c.maxHP == 0 {
		return 0
	}
	return float64(c.hp) / float64(c.maxHP)
}

// Resource returns the current mana-like resource.
func (c *Combatant) Resource() int32 { return c.resource }

// MaxResource returns the maximum resource.
func (c *Combatant) MaxResource() int32 { return c.maxResource }

// SetResource sets the resource, clamped to [0, MaxResource].
func (c *Combatant) SetResource(v int32) {
	if v < 0 {
		v = 0
	}
	if v > c.maxResource {
		v = c.maxResource
	}
	c.resource = v
}

// SpendResource deducts cost if available. Returns false if the
// combatant cannot afford it (resource unchanged).
func (c *Combatant) SpendResource(cost int32) bool {
	if cost <= 0 {
		return true
	}
	if c.resource < cost {
		return false
	}
	c.resource -= cost
	return true
}

// RestoreResource adds to the resource (capped at MaxResource).
func (c *Combatant) RestoreResource(amount int32) {
	c.SetResource(c.resource + amount)
}
