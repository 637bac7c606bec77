package effect

import (
	"log/slog"
	"math"

	"github.com/udisondev/arena/internal/model"
)

// Roller is the RNG surface used for status resistance rolls.
// *rand.Rand (math/rand/v2) satisfies it.
type Roller interface {
	Float64() float64
}

// Apply failure reasons. Expected outcomes of play, returned as values.
const (
	ReasonApplied       = "Applied"
	ReasonRefreshed     = "Refreshed"
	ReasonImmune        = "Immune"
	ReasonResisted      = "Resisted"
	ReasonUnknownEffect = "UnknownEffect"
)

// ApplyResult is the typed outcome of Engine.Apply.
type ApplyResult struct {
	Applied   bool
	Refreshed bool
	Reason    string
}

// Active is one running status effect instance on a combatant.
type Active struct {
	ID          string
	Descriptor  Descriptor
	RemainingMs int32
	MaxMs       int32
	Stacks      int32

	// Sub-second tick carry so per-second rates survive uneven updates.
	tickAccumMs int32
}

// Engine tracks active status effects for a single combatant.
// Lifetime is one battle; instances never persist across battles.
//
// Single writer: the orchestrator during that combatant's tick.
// No locking — the battle is a cooperative single-stream simulation.
type Engine struct {
	owner      *model.Combatant
	active     map[string]*Active
	order      []string // application order, for deterministic ticking
	immunities map[string]struct{}
}

// NewEngine creates an empty effect engine for a combatant.
func NewEngine(owner *model.Combatant) *Engine {
	return &Engine{
		owner:  owner,
		active: make(map[string]*Active, 8),
	}
}

// Owner returns the combatant this engine belongs to.
func (e *Engine) Owner() *model.Combatant { return e.owner }

// AddImmunity marks the owner immune to an effect id.
func (e *Engine) AddImmunity(id string) {
	if e.immunities == nil {
		e.immunities = make(map[string]struct{}, 4)
	}
	e.immunities[id] = struct{}{}
}

// IsImmune reports whether the owner is immune to an effect id.
func (e *Engine) IsImmune(id string) bool {
	_, ok := e.immunities[id]
	return ok
}

// Apply creates or refreshes a status effect on the owner.
//
// Re-applying an active id refreshes duration to max(existing, incoming)
// and adds stacks up to the cap instead of creating a duplicate.
// Stat deltas are applied exactly once, on first creation.
func (e *Engine) Apply(rng Roller, id string, durationMs, stacks int32) ApplyResult {
	if e.IsImmune(id) {
		return ApplyResult{Reason: ReasonImmune}
	}
	desc, ok := Lookup(id)
	if !ok {
		return ApplyResult{Reason: ReasonUnknownEffect}
	}

	if stacks < 1 {
		stacks = 1
	}

	if existing, ok := e.active[id]; ok {
		if durationMs > existing.RemainingMs {
			existing.RemainingMs = durationMs
		}
		if durationMs > existing.MaxMs {
			existing.MaxMs = durationMs
		}
		existing.Stacks = min(existing.Stacks+stacks, desc.MaxStacks)
		return ApplyResult{Applied: true, Refreshed: true, Reason: ReasonRefreshed}
	}

	// Resistance roll only gates fresh applications.
	if pct := e.owner.Stats.StatusResistance(id); pct > 0 && rng != nil {
		if rng.Float64()*100 < pct {
			return ApplyResult{Reason: ReasonResisted}
		}
	}

	a := &Active{
		ID:          id,
		Descriptor:  desc,
		RemainingMs: durationMs,
		MaxMs:       durationMs,
		Stacks:      min(stacks, desc.MaxStacks),
	}
	e.active[id] = a
	e.order = append(e.order, id)

	for stat, delta := range desc.StatDeltas {
		e.owner.Stats.Add(stat, delta)
	}

	slog.Debug("status applied",
		"effect", id,
		"target", e.owner.Name,
		"duration_ms", durationMs,
		"stacks", a.Stacks)

	return ApplyResult{Applied: true, Reason: ReasonApplied}
}

// Remove deletes an active effect, reversing its stat deltas.
// Returns false if the effect is not active.
func (e *Engine) Remove(id string) bool {
	a, ok := e.active[id]
	if !ok {
		return false
	}
	for stat, delta := range a.Descriptor.StatDeltas {
		e.owner.Stats.Add(stat, -delta)
	}
	delete(e.active, id)
	for i, oid := range e.order {
		if oid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}

	slog.Debug("status removed", "effect", id, "target", e.owner.Name)
	return true
}

// RemoveAll clears every active effect, reversing stat deltas.
func (e *Engine) RemoveAll() {
	for _, id := range append([]string(nil), e.order...) {
		e.Remove(id)
	}
}

// TickResult summarizes one Tick for logging.
type TickResult struct {
	Damage  int32    // total damage-over-time applied
	Healing int32    // total healing-over-time applied
	Expired []string // effects removed this tick
}

// Tick advances all active effects by elapsedMs.
//
// Per-second tick rates are scaled by stacks and prorated through a
// millisecond accumulator, so uneven update steps lose no damage.
// Effects whose duration reaches zero get their final tick applied,
// then their deltas are reversed and the instance is removed.
func (e *Engine) Tick(elapsedMs int32) TickResult {
	var res TickResult
	if elapsedMs <= 0 {
		return res
	}

	for _, id := range append([]string(nil), e.order...) {
		a, ok := e.active[id]
		if !ok {
			continue
		}

		// Time past expiry earns no ticks.
		credit := elapsedMs
		if credit > a.RemainingMs {
			credit = a.RemainingMs
		}
		a.tickAccumMs += credit
		secs := a.tickAccumMs / 1000
		a.tickAccumMs %= 1000

		if secs > 0 {
			if a.Descriptor.TickDamage > 0 {
				dmg := int32(math.Floor(a.Descriptor.TickDamage*float64(a.Stacks))) * secs
				e.owner.ReduceHP(dmg)
				res.Damage += dmg
			}
			if a.Descriptor.TickHeal > 0 {
				heal := int32(math.Floor(a.Descriptor.TickHeal*float64(a.Stacks))) * secs
				e.owner.Heal(heal)
				res.Healing += heal
			}
		}

		a.RemainingMs -= elapsedMs
		if a.RemainingMs <= 0 {
			e.Remove(id)
			res.Expired = append(res.Expired, id)
		}
	}
	return res
}

// PreventsActing reports whether any active effect blocks the owner's action.
func (e *Engine) PreventsActing() bool {
	for _, a := range e.active {
		if a.Descriptor.PreventsActing {
			return true
		}
	}
	return false
}

// Has reports whether an effect id is currently active.
func (e *Engine) Has(id string) bool {
	_, ok := e.active[id]
	return ok
}

// Get returns the active instance for an id, or nil.
func (e *Engine) Get(id string) *Active {
	return e.active[id]
}

// ActiveEffects returns the active instances in application order.
// The slice is a copy; the instances are live (read-only view).
func (e *Engine) ActiveEffects() []*Active {
	out := make([]*Active, 0, len(e.order))
	for _, id := range e.order {
		if a, ok := e.active[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Count returns the number of active effects.
func (e *Engine) Count() int { return len(e.active) }
