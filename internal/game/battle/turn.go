package battle

import (
	"sort"

	"github.com/udisondev/arena/internal/model"
)

// defaultTurnSpeed is used for combatants without a movementSpeed stat.
const defaultTurnSpeed = 30.0

// TurnEntry is one slot in the turn order. Speed is snapshotted at
// battle start, so later slows/hastes do not reshuffle the order.
type TurnEntry struct {
	Combatant *model.Combatant
	Side      model.Side
	Speed     float64
}

// TurnManager owns the speed-ordered turn sequence over living combatants.
//
// The cursor may sit at -1 transiently after the current entry is removed;
// the next Advance lands on the entry that followed the removed one.
type TurnManager struct {
	entries []TurnEntry
	cursor  int
	round   int32
}

// NewTurnManager returns an empty turn manager. Call Initialize before use.
func NewTurnManager() *TurnManager {
	return &TurnManager{round: 1}
}

// Initialize builds one entry per living combatant, sorted by speed
// descending. Ties keep input order (allies before enemies): stable sort.
// Resets the round to 1 and the cursor to the first entry.
func (tm *TurnManager) Initialize(allies, enemies []*model.Combatant) {
	tm.entries = tm.entries[:0]
	for _, c := range allies {
		if c.IsAlive() {
			tm.entries = append(tm.entries, TurnEntry{Combatant: c, Side: c.Side, Speed: speedOf(c)})
		}
	}
	for _, c := range enemies {
		if c.IsAlive() {
			tm.entries = append(tm.entries, TurnEntry{Combatant: c, Side: c.Side, Speed: speedOf(c)})
		}
	}
	sort.SliceStable(tm.entries, func(i, j int) bool {
		return tm.entries[i].Speed > tm.entries[j].Speed
	})
	tm.cursor = 0
	tm.round = 1
}

func speedOf(c *model.Combatant) float64 {
	if s := c.Stats.MovementSpeed; s > 0 {
		return s
	}
	return defaultTurnSpeed
}

// Current returns the entry at the cursor, or nil if the sequence is empty.
func (tm *TurnManager) Current() *TurnEntry {
	if len(tm.entries) == 0 {
		return nil
	}
	i := tm.cursor
	if i < 0 {
		i = 0
	}
	return &tm.entries[i]
}

// Advance moves the cursor to the next entry, wrapping to the first and
// incrementing the round when the end is reached. Returns the new current
// entry, or nil if the sequence is empty.
func (tm *TurnManager) Advance() *TurnEntry {
	if len(tm.entries) == 0 {
		return nil
	}
	tm.cursor++
	if tm.cursor >= len(tm.entries) {
		tm.cursor = 0
		tm.round++
	}
	return &tm.entries[tm.cursor]
}

// Remove deletes the entry for a combatant. If the removed index is at or
// before the cursor, the cursor is decremented so the next Advance
// addresses the same following entry — no turn is skipped or repeated.
// Returns false if the combatant has no entry.
func (tm *TurnManager) Remove(c *model.Combatant) bool {
	idx := -1
	for i := range tm.entries {
		if tm.entries[i].Combatant == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	tm.entries = append(tm.entries[:idx], tm.entries[idx+1:]...)
	if idx <= tm.cursor {
		tm.cursor--
	}
	return true
}

// Round returns the current round number (starts at 1).
func (tm *TurnManager) Round() int32 { return tm.round }

// Len returns the number of entries in the sequence.
func (tm *TurnManager) Len() int { return len(tm.entries) }

// Empty reports whether no combatants remain in the sequence.
func (tm *TurnManager) Empty() bool { return len(tm.entries) == 0 }

// Entries returns a snapshot copy of the turn order.
func (tm *TurnManager) Entries() []TurnEntry {
	out := make([]TurnEntry, len(tm.entries))
	copy(out, tm.entries)
	return out
}
