package battle

import "github.com/udisondev/arena/internal/model"

// Per-level reward factors. Deterministic given the defeated roster.
const (
	DefaultExperienceFactor int32 = 25
	DefaultCurrencyFactor   int32 = 10
)

// Rewards is the payload computed on victory.
type Rewards struct {
	Experience        int32 // total over all defeated enemies
	PerAllyExperience int32 // Experience floor-divided across surviving allies
	Currency          int32
	Items             []model.Item
}

// ItemGenerator produces loot for a defeated enemy. Items are opaque to
// the battle core; nil disables item rewards.
type ItemGenerator func(defeated *model.Combatant) []model.Item

// computeRewards sums level × factor over the defeated enemies and splits
// experience evenly (integer floor) across surviving allies.
func computeRewards(defeated []*model.Combatant, survivors int, expFactor, currencyFactor int32, gen ItemGenerator) *Rewards {
	r := &Rewards{}
	for _, c := range defeated {
		r.Experience += c.Level * expFactor
		r.Currency += c.Level * currencyFactor
		if gen != nil {
			r.Items = append(r.Items, gen(c)...)
		}
	}
	if survivors > 0 {
		r.PerAllyExperience = r.Experience / int32(survivors)
	}
	return r
}
