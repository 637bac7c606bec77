package battle

import (
	"testing"

	"github.com/udisondev/arena/internal/model"
)

func speedy(id uint32, name string, side model.Side, speed float64) *model.Combatant {
	return model.NewCombatant(id, name, side, 1, 100, 0, model.Stats{MovementSpeed: speed})
}

func TestTurnOrderSortedBySpeed(t *testing.T) {
	slow := speedy(1, "Slow", model.SideAlly, 20)
	fast := speedy(2, "Fast", model.SideEnemy, 60)
	mid := speedy(3, "Mid", model.SideAlly, 40)

	tm := NewTurnManager()
	tm.Initialize([]*model.Combatant{slow, mid}, []*model.Combatant{fast})

	entries := tm.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"Fast", "Mid", "Slow"}
	for i, name := range want {
		if entries[i].Combatant.Name != name {
			t.Errorf("slot %d: expected %s, got %s", i, name, entries[i].Combatant.Name)
		}
	}
}

func TestTurnOrderSpeedTieKeepsInputOrder(t *testing.T) {
	first := speedy(1, "First", model.SideAlly, 30)
	second := speedy(2, "Second", model.SideEnemy, 30)

	tm := NewTurnManager()
	tm.Initialize([]*model.Combatant{first}, []*model.Combatant{second})

	entries := tm.Entries()
	if entries[0].Combatant != first || entries[1].Combatant != second {
		t.Error("equal speeds should preserve input order")
	}
}

func TestTurnOrderDefaultSpeed(t *testing.T) {
	noSpeed := model.NewCombatant(1, "Plain", model.SideAlly, 1, 100, 0, model.Stats{})
	fast := speedy(2, "Fast", model.SideEnemy, 31)
	slow := speedy(3, "Slow", model.SideEnemy, 29)

	tm := NewTurnManager()
	tm.Initialize([]*model.Combatant{noSpeed}, []*model.Combatant{fast, slow})

	entries := tm.Entries()
	if entries[1].Combatant != noSpeed {
		t.Errorf("default speed 30 should slot between 31 and 29, got %s in the middle", entries[1].Combatant.Name)
	}
}

func TestTurnOrderSkipsDead(t *testing.T) {
	alive := speedy(1, "Alive", model.SideAlly, 30)
	dead := speedy(2, "Dead", model.SideEnemy, 50)
	dead.SetHP(0)

	tm := NewTurnManager()
	tm.Initialize([]*model.Combatant{alive}, []*model.Combatant{dead})

	if tm.Len() != 1 {
		t.Fatalf("dead combatants must not enter the order, got %d entries", tm.Len())
	}
	if tm.Current().Combatant != alive {
		t.Error("expected the living combatant first")
	}
}

func TestAdvanceWrapsAndIncrementsRound(t *testing.T) {
	a := speedy(1, "A", model.SideAlly, 40)
	b := speedy(2, "B", model.SideEnemy, 20)

	tm := NewTurnManager()
	tm.Initialize([]*model.Combatant{a}, []*model.Combatant{b})

	if tm.Round() != 1 {
		t.Fatalf("round should start at 1, got %d", tm.Round())
	}
	tm.Advance() // -> B
	if tm.Round() != 1 {
		t.Errorf("round must not change mid-cycle, got %d", tm.Round())
	}
	next := tm.Advance() // wrap -> A
	if next.Combatant != a {
		t.Errorf("expected wrap to A, got %s", next.Combatant.Name)
	}
	if tm.Round() != 2 {
		t.Errorf("round should increment on wrap, got %d", tm.Round())
	}
}

func TestRemoveCurrentDoesNotSkipNext(t *testing.T) {
	a := speedy(1, "A", model.SideAlly, 60)
	b := speedy(2, "B", model.SideEnemy, 40)
	c := speedy(3, "C", model.SideAlly, 20)

	tm := NewTurnManager()
	tm.Initialize([]*model.Combatant{a, c}, []*model.Combatant{b})

	// A's turn; A dies mid-turn. B must act next, not be skipped.
	if !tm.Remove(a) {
		t.Fatal("remove should succeed for a present combatant")
	}
	next := tm.Advance()
	if next.Combatant != b {
		t.Errorf("expected B after removing current A, got %s", next.Combatant.Name)
	}
}

func TestRemoveBeforeCursor(t *testing.T) {
	a := speedy(1, "A", model.SideAlly, 60)
	b := speedy(2, "B", model.SideEnemy, 40)
	c := speedy(3, "C", model.SideAlly, 20)

	tm := NewTurnManager()
	tm.Initialize([]*model.Combatant{a, c}, []*model.Combatant{b})

	tm.Advance() // cursor on B
	tm.Remove(a) // removal before the cursor
	if tm.Current().Combatant != b {
		t.Errorf("current should remain B, got %s", tm.Current().Combatant.Name)
	}
	if tm.Advance().Combatant != c {
		t.Error("expected C after B")
	}
}

func TestRemoveAbsentCombatant(t *testing.T) {
	a := speedy(1, "A", model.SideAlly, 30)
	stranger := speedy(9, "Stranger", model.SideEnemy, 30)

	tm := NewTurnManager()
	tm.Initialize([]*model.Combatant{a}, nil)

	if tm.Remove(stranger) {
		t.Error("removing an absent combatant should report false")
	}
	if tm.Remove(a) && tm.Remove(a) {
		t.Error("second removal of the same combatant should report false")
	}
}

func TestEmptyManager(t *testing.T) {
	tm := NewTurnManager()
	if !tm.Empty() {
		t.Error("fresh manager should be empty")
	}
	if tm.Current() != nil {
		t.Error("Current on empty manager should be nil")
	}
	if tm.Advance() != nil {
		t.Error("Advance on empty manager should be nil")
	}
}
