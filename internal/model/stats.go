package model

// Stat names used by status effects and damage formulas.
// Effects address stats by name (effect catalog stores deltas keyed by these).
const (
	StatAttackPower        = "attackPower"
	StatDefense            = "defense"
	StatSpellPower         = "spellPower"
	StatMagicResistance    = "magicResistance"
	StatCriticalChance     = "criticalChance"
	StatCriticalMultiplier = "criticalMultiplier"
	StatDodgeChance        = "dodgeChance"
	StatBlockChance        = "blockChance"
	StatMovementSpeed      = "movementSpeed"
	StatWisdom             = "wisdom"
)

// DefaultCriticalMultiplier is used when a combatant has no explicit
// criticalMultiplier stat (zero value).
const DefaultCriticalMultiplier = 2.0

// Stats is the mutable stat bundle of a combatant.
// Chance stats are probabilities in [0,1]; resistances are percent values.
type Stats struct {
	AttackPower        float64
	Defense            float64
	SpellPower         float64
	MagicResistance    float64
	CriticalChance     float64
	CriticalMultiplier float64
	DodgeChance        float64
	BlockChance        float64
	MovementSpeed      float64
	Wisdom             float64

	// ElementalResist maps element name → percent damage reduction (0..100).
	ElementalResist map[string]float64
	// StatusResist maps status effect id → percent application resistance (0..100).
	StatusResist map[string]float64
}

// Get returns the value of a named stat. Unknown names return 0.
func (s *Stats) Get(name string) float64 {
	switch name {
	case StatAttackPower:
		return s.AttackPower
	case StatDefense:
		return s.Defense
	case StatSpellPower:
		return s.SpellPower
	case StatMagicResistance:
		return s.MagicResistance
	case StatCriticalChance:
		return s.CriticalChance
	case StatCriticalMultiplier:
		return s.CriticalMultiplier
	case StatDodgeChance:
		return s.DodgeChance
	case StatBlockChance:
		return s.BlockChance
	case StatMovementSpeed:
		return s.MovementSpeed
	case StatWisdom:
		return s.Wisdom
	default:
		return 0
	}
}

// Add applies a delta to a named stat. Unknown names are ignored.
// Status effects call this with positive deltas on entry and the negated
// deltas on exit, so Add must be exactly reversible.
func (s *Stats) Add(name string, delta float64) {
	switch name {
	case StatAttackPower:
		s.AttackPower += delta
	case StatDefense:
		s.Defense += delta
	case StatSpellPower:
		s.SpellPower += delta
	case StatMagicResistance:
		s.MagicResistance += delta
	case StatCriticalChance:
		s.CriticalChance += delta
	case StatCriticalMultiplier:
		s.CriticalMultiplier += delta
	case StatDodgeChance:
		s.DodgeChance += delta
	case StatBlockChance:
		s.BlockChance += delta
	case StatMovementSpeed:
		s.MovementSpeed += delta
	case StatWisdom:
		s.Wisdom += delta
	}
}

// KnownStat reports whether name addresses a stat in the bundle.
// Loaders use it to reject typos instead of silently dropping them.
func KnownStat(name string) bool {
	switch name {
	case StatAttackPower, StatDefense, StatSpellPower, StatMagicResistance,
		StatCriticalChance, StatCriticalMultiplier, StatDodgeChance,
		StatBlockChance, StatMovementSpeed, StatWisdom:
		return true
	}
	return false
}

// CritMultiplier returns the effective critical multiplier,
// falling back to DefaultCriticalMultiplier when unset.
func (s *Stats) CritMultiplier() float64 {
	if s.CriticalMultiplier <= 0 {
		return DefaultCriticalMultiplier
	}
	return s.CriticalMultiplier
}

// ElementalResistance returns percent reduction for an element (0 if absent).
func (s *Stats) ElementalResistance(element string) float64 {
	if s.ElementalResist == nil {
		return 0
	}
	return s.ElementalResist[element]
}

// StatusResistance returns percent resistance against a status id (0 if absent).
func (s *Stats) StatusResistance(effectID string) float64 {
	if s.StatusResist == nil {
		return 0
	}
	return s.StatusResist[effectID]
}
