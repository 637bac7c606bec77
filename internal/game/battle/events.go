package battle

import "github.com/udisondev/arena/internal/model"

// EventType names a battle lifecycle event.
type EventType string

const (
	EventBattleStarted     EventType = "battle-started"
	EventBattleEnded       EventType = "battle-ended"
	EventStatusApplied     EventType = "status-applied"
	EventStatusRemoved     EventType = "status-removed"
	EventCombatantDefeated EventType = "combatant-defeated"
)

// Event carries a lifecycle notification to external collaborators
// (rendering, audio, quest tracking). Fields beyond Type are populated
// per event type.
type Event struct {
	Type      EventType
	Result    string             // battle-ended: victory|defeat|fled|error
	Rewards   *Rewards           // battle-ended on victory
	Survivors []*model.Combatant // battle-ended
	Combatant *model.Combatant   // status-*, combatant-defeated
	EffectID  string             // status-*
}

// Sink receives battle events. Injected into the orchestrator so the
// core stays testable in isolation; a nil sink drops all events.
type Sink func(Event)

func (o *Orchestrator) emit(ev Event) {
	if o.sink != nil {
		o.sink(ev)
	}
}
