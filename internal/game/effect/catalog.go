package effect

// Category classifies a status effect for display and dispel logic.
type Category int8

const (
	CategoryBuff Category = iota
	CategoryDebuff
	CategoryNeutral
)

// String returns the category name for logs.
func (c Category) String() string {
	switch c {
	case CategoryBuff:
		return "buff"
	case CategoryDebuff:
		return "debuff"
	default:
		return "neutral"
	}
}

// Built-in effect ids.
const (
	StrengthBoost = "strength_boost"
	DefenseBoost  = "defense_boost"
	Regeneration  = "regeneration"
	Poison        = "poison"
	Weakness      = "weakness"
	Slow          = "slow"
	Stun          = "stun"
)

// Descriptor is the data definition of a status effect. Descriptors are
// plain data, not code: stat deltas are applied on entry and reversed on
// exit, tick amounts are HP per second (scaled by stacks).
type Descriptor struct {
	Name           string
	Category       Category
	StatDeltas     map[string]float64
	TickDamage     float64 // HP damage per second per stack
	TickHeal       float64 // HP healing per second per stack
	PreventsActing bool    // the holder skips its action while active
	MaxStacks      int32
}

// catalog maps effect id → descriptor. The seven built-ins below are a
// fixed contract; Register extends the table at initialization time.
var catalog = map[string]Descriptor{
	StrengthBoost: {
		Name:       "Strength Boost",
		Category:   CategoryBuff,
		StatDeltas: map[string]float64{"attackPower": 5},
		MaxStacks:  3,
	},
	DefenseBoost: {
		Name:       "Defense Boost",
		Category:   CategoryBuff,
		StatDeltas: map[string]float64{"defense": 10},
		MaxStacks:  3,
	},
	Regeneration: {
		Name:      "Regeneration",
		Category:  CategoryBuff,
		TickHeal:  2,
		MaxStacks: 3,
	},
	Poison: {
		Name:       "Poison",
		Category:   CategoryDebuff,
		TickDamage: 3,
		MaxStacks:  5,
	},
	Weakness: {
		Name:       "Weakness",
		Category:   CategoryDebuff,
		StatDeltas: map[string]float64{"attackPower": -3},
		MaxStacks:  3,
	},
	Slow: {
		Name:       "Slow",
		Category:   CategoryDebuff,
		StatDeltas: map[string]float64{"movementSpeed": -20},
		MaxStacks:  1,
	},
	Stun: {
		Name:           "Stun",
		Category:       CategoryNeutral,
		PreventsActing: true,
		MaxStacks:      1,
	},
}

// Lookup returns the descriptor for an effect id.
func Lookup(id string) (Descriptor, bool) {
	d, ok := catalog[id]
	return d, ok
}

// Register adds or replaces a descriptor in the catalog.
// Intended for game-specific extensions at startup; not safe to call
// while battles are running.
func Register(id string, d Descriptor) {
	if d.MaxStacks < 1 {
		d.MaxStacks = 1
	}
	catalog[id] = d
}

// IDs returns all registered effect ids (unordered).
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	return ids
}
