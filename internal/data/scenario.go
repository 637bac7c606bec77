package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/arena/internal/model"
)

// Scenario describes the two rosters of one battle in YAML form.
type Scenario struct {
	Name       string          `yaml:"name"`
	Difficulty string          `yaml:"difficulty"`
	Allies     []CombatantSpec `yaml:"allies"`
	Enemies    []CombatantSpec `yaml:"enemies"`
}

// CombatantSpec is the YAML shape of one combatant.
type CombatantSpec struct {
	Name            string             `yaml:"name"`
	Role            string             `yaml:"role"`
	Level           int32              `yaml:"level"`
	HP              int32              `yaml:"hp"`
	Resource        int32              `yaml:"resource"`
	Stats           map[string]float64 `yaml:"stats"`
	ElementalResist map[string]float64 `yaml:"elemental_resist"`
	StatusResist    map[string]float64 `yaml:"status_resist"`
	Actions         []ActionSpec       `yaml:"actions"`
}

// ActionSpec is the YAML shape of one available action.
type ActionSpec struct {
	Kind    string  `yaml:"kind"`
	Name    string  `yaml:"name"`
	Power   float64 `yaml:"power"`
	Element string  `yaml:"element"`
	Cost    int32   `yaml:"cost"`
	Effect  string  `yaml:"effect"`
	Healing bool    `yaml:"healing"`
}

// LoadScenario loads a scenario from a YAML file. Unlike the simulator
// config there is no default fallback: a battle needs real rosters.
func LoadScenario(path string) (Scenario, error) {
	var s Scenario
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if len(s.Allies) == 0 || len(s.Enemies) == 0 {
		return s, fmt.Errorf("scenario %s: both sides must have combatants", path)
	}
	return s, nil
}

// Build materializes the scenario into combatants with sequential ids
// (allies first). Specs without actions get the default attack.
func (s Scenario) Build() (allies, enemies []*model.Combatant, err error) {
	var nextID uint32 = 1
	for i := range s.Allies {
		c, err := s.Allies[i].build(nextID, model.SideAlly)
		if err != nil {
			return nil, nil, fmt.Errorf("ally %d: %w", i, err)
		}
		allies = append(allies, c)
		nextID++
	}
	for i := range s.Enemies {
		c, err := s.Enemies[i].build(nextID, model.SideEnemy)
		if err != nil {
			return nil, nil, fmt.Errorf("enemy %d: %w", i, err)
		}
		enemies = append(enemies, c)
		nextID++
	}
	slog.Info("scenario built",
		"name", s.Name,
		"allies", len(allies),
		"enemies", len(enemies))
	return allies, enemies, nil
}

func (spec CombatantSpec) build(id uint32, side model.Side) (*model.Combatant, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("combatant has no name")
	}
	if spec.HP < 1 {
		return nil, fmt.Errorf("%s: hp must be positive, got %d", spec.Name, spec.HP)
	}

	var stats model.Stats
	for name, value := range spec.Stats {
		if !model.KnownStat(name) {
			return nil, fmt.Errorf("%s: unknown stat %q", spec.Name, name)
		}
		stats.Add(name, value)
	}
	if len(spec.ElementalResist) > 0 {
		stats.ElementalResist = make(map[string]float64, len(spec.ElementalResist))
		for k, v := range spec.ElementalResist {
			stats.ElementalResist[k] = v
		}
	}
	if len(spec.StatusResist) > 0 {
		stats.StatusResist = make(map[string]float64, len(spec.StatusResist))
		for k, v := range spec.StatusResist {
			stats.StatusResist[k] = v
		}
	}

	role, err := parseRole(spec.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name, err)
	}
	c := model.NewCombatant(id, spec.Name, side, max(spec.Level, 1), spec.HP, spec.Resource, stats)
	c.Role = role

	for _, as := range spec.Actions {
		action, err := as.build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		c.Actions = append(c.Actions, action)
	}
	if len(c.Actions) == 0 {
		c.Actions = []model.Action{model.DefaultAttack}
	}
	return c, nil
}

func (as ActionSpec) build() (model.Action, error) {
	kind := model.ActionKind(as.Kind)
	switch kind {
	case model.ActionAttack, model.ActionMagic, model.ActionItem, model.ActionRun, model.ActionDefend:
	default:
		return model.Action{}, fmt.Errorf("action %q: unknown kind %q", as.Name, as.Kind)
	}
	return model.Action{
		Kind:     kind,
		Name:     as.Name,
		Power:    as.Power,
		Element:  as.Element,
		Cost:     as.Cost,
		EffectID: as.Effect,
		Healing:  as.Healing,
	}, nil
}

func parseRole(s string) (model.Role, error) {
	switch s {
	case "", string(model.RoleFighter):
		return model.RoleFighter, nil
	case string(model.RoleSupport):
		return model.RoleSupport, nil
	case string(model.RoleCaster):
		return model.RoleCaster, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}
