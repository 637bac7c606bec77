package combat

import (
	"math"

	"github.com/udisondev/arena/internal/model"
)

// Roller is the RNG surface the calculators roll against.
// *rand.Rand (math/rand/v2) satisfies it; tests inject fixed rollers.
type Roller interface {
	Float64() float64
}

// PhysicalResult reports the outcome of a physical hit.
// Dodge excludes crit and block: a total miss never partially applies a crit.
type PhysicalResult struct {
	Damage   int32
	Critical bool
	Dodged   bool
	Blocked  bool
}

// MagicalResult reports the outcome of a magical hit.
type MagicalResult struct {
	Damage   int32
	Resisted bool // elemental resistance reduced the damage
}

// HealResult reports the outcome of a heal.
type HealResult struct {
	Amount   int32
	Overheal bool // the cap at missing health was binding
}

// Physical computes physical damage attacker → defender.
//
// raw = base + attackPower − 0.5 × defense. Roll order:
//  1. dodge against defender.dodgeChance → damage 0, skip crit and block
//  2. crit against attacker.criticalChance → ×criticalMultiplier
//  3. block against defender.blockChance → halve
//
// Damage is floored to an integer, minimum 1 unless dodged.
// Defense mitigates fractionally rather than subtracting to zero so heavy
// armor reduces but never nullifies a hit.
func Physical(rng Roller, attacker, defender *model.Combatant, base float64) PhysicalResult {
	if rng.Float64() < defender.Stats.DodgeChance {
		return PhysicalResult{Damage: 0, Dodged: true}
	}

	raw := base + attacker.Stats.AttackPower - 0.5*defender.Stats.Defense

	var res PhysicalResult
	if rng.Float64() < attacker.Stats.CriticalChance {
		raw *= attacker.Stats.CritMultiplier()
		res.Critical = true
	}
	if rng.Float64() < defender.Stats.BlockChance {
		raw /= 2
		res.Blocked = true
	}

	res.Damage = floorMin1(raw)
	return res
}

// Magical computes magical damage attacker → defender for an element.
//
// raw = base + spellPower, reduced by the defender's elemental resistance
// percent (if any), then by magicResistance/200. Floored, minimum 1.
func Magical(attacker, defender *model.Combatant, base float64, element string) MagicalResult {
	raw := base + attacker.Stats.SpellPower

	var res MagicalResult
	if pct := defender.Stats.ElementalResistance(element); pct > 0 {
		raw *= 1 - pct/100
		res.Resisted = true
	}
	raw *= 1 - defender.Stats.MagicResistance/200

	res.Damage = floorMin1(raw)
	return res
}

// Healing computes a heal caster → target.
//
// raw = base + 0.5 × wisdom, capped at the target's missing health.
func Healing(caster, target *model.Combatant, base float64) HealResult {
	raw := base + 0.5*caster.Stats.Wisdom
	amount := int32(math.Floor(raw))
	if amount < 0 {
		amount = 0
	}

	missing := target.MissingHP()
	if amount > missing {
		return HealResult{Amount: missing, Overheal: true}
	}
	return HealResult{Amount: amount}
}

// floorMin1 floors raw damage to an integer with a minimum of 1.
func floorMin1(raw float64) int32 {
	dmg := int32(math.Floor(raw))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}
