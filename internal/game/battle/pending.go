package battle

import "github.com/udisondev/arena/internal/model"

// pendingAction is an AI decision whose execution is deferred by the
// think delay. It counts down in simulation time (no timers) and is an
// explicitly cancellable handle: any terminal transition cancels it so a
// stale action can never mutate a combatant after the battle concluded.
type pendingAction struct {
	actor       *model.Combatant
	action      model.Action
	target      *model.Combatant
	remainingMs int32
	cancelled   bool
}

// tick advances the countdown. Returns true when the action is due.
func (p *pendingAction) tick(elapsedMs int32) bool {
	if p.cancelled {
		return false
	}
	p.remainingMs -= elapsedMs
	return p.remainingMs <= 0
}

// cancel marks the action dead; a cancelled action never executes.
func (p *pendingAction) cancel() {
	p.cancelled = true
}
