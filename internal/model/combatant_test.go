package model

import "testing"

func newTestCombatant(maxHP, maxResource int32) *Combatant {
	return NewCombatant(1, "Test", SideAlly, 5, maxHP, maxResource, Stats{
		AttackPower: 20,
		Defense:     10,
	})
}

func TestCombatant_HealthBounds(t *testing.T) {
	c := newTestCombatant(100, 50)

	// Arbitrary damage/heal sequence must never leave [0, MaxHP].
	steps := []struct {
		damage int32
		heal   int32
	}{
		{30, 0}, {0, 10}, {200, 0}, {0, 500}, {99, 0}, {0, 1}, {5, 5},
	}
	for _, s := range steps {
		c.ReduceHP(s.damage)
		c.Heal(s.heal)
		if c.HP() < 0 || c.HP() > c.MaxHP() {
			t.Fatalf("HP %d out of bounds [0, %d]", c.HP(), c.MaxHP())
		}
	}
}

func TestCombatant_DeathAtZero(t *testing.T) {
	c := newTestCombatant(30, 0)
	c.ReduceHP(29)
	if c.IsDead() {
		t.Fatal("combatant with 1 HP should be alive")
	}
	c.ReduceHP(1)
	if !c.IsDead() {
		t.Fatal("combatant with 0 HP should be dead")
	}
	// Overkill damage clamps at zero.
	c.ReduceHP(100)
	if c.HP() != 0 {
		t.Fatalf("HP = %d, want 0", c.HP())
	}
}

func TestCombatant_SpendResource(t *testing.T) {
	c := newTestCombatant(100, 20)

	if !c.SpendResource(15) {
		t.Fatal("should afford cost 15 with 20 resource")
	}
	if c.Resource() != 5 {
		t.Fatalf("Resource() = %d, want 5", c.Resource())
	}
	if c.SpendResource(6) {
		t.Fatal("should not afford cost 6 with 5 resource")
	}
	if c.Resource() != 5 {
		t.Fatalf("failed spend must not mutate resource, got %d", c.Resource())
	}
	if !c.SpendResource(0) {
		t.Fatal("zero cost is always affordable")
	}
}

func TestStats_AddIsReversible(t *testing.T) {
	s := Stats{AttackPower: 20, Defense: 10, MovementSpeed: 90}

	deltas := map[string]float64{
		StatAttackPower:   5,
		StatDefense:       10,
		StatMovementSpeed: -20,
	}
	for name, d := range deltas {
		s.Add(name, d)
	}
	if s.AttackPower != 25 || s.Defense != 20 || s.MovementSpeed != 70 {
		t.Fatalf("after apply: %+v", s)
	}
	for name, d := range deltas {
		s.Add(name, -d)
	}
	if s.AttackPower != 20 || s.Defense != 10 || s.MovementSpeed != 90 {
		t.Fatalf("after reverse: %+v", s)
	}
}

func TestStats_CritMultiplierDefault(t *testing.T) {
	s := Stats{}
	if got := s.CritMultiplier(); got != DefaultCriticalMultiplier {
		t.Fatalf("CritMultiplier() = %v, want %v", got, DefaultCriticalMultiplier)
	}
	s.CriticalMultiplier = 2.5
	if got := s.CritMultiplier(); got != 2.5 {
		t.Fatalf("CritMultiplier() = %v, want 2.5", got)
	}
}
