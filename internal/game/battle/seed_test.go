package battle

import "testing"

func TestDeriveSeedStable(t *testing.T) {
	if DeriveSeed("goblin-ambush") != DeriveSeed("goblin-ambush") {
		t.Error("same name must derive the same seed")
	}
	if DeriveSeed("goblin-ambush") == DeriveSeed("dragon-lair") {
		t.Error("different names should derive different seeds")
	}
	if DeriveSeed("goblin-ambush") == 0 {
		t.Error("derived seed should not be zero")
	}
}
