package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arena/internal/config"
	"github.com/udisondev/arena/internal/data"
	"github.com/udisondev/arena/internal/game/battle"
)

func TestBuildOptionsDefaults(t *testing.T) {
	opts, err := BuildOptions(config.Battle{AllowRun: true}, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), opts.Seed)
	assert.Equal(t, int32(30000), opts.TurnTimeLimitMs)
	assert.Equal(t, 0.10, opts.PhysicalProcChance)
	assert.True(t, opts.AllowRun)
}

func TestBuildOptionsOverrides(t *testing.T) {
	opts, err := BuildOptions(config.Battle{
		Difficulty:       "expert",
		TurnTimeLimitMs:  5000,
		RunChance:        0.9,
		ProcEffects:      []string{"poison"},
		ExperienceFactor: 100,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "expert", string(opts.Difficulty))
	assert.Equal(t, int32(5000), opts.TurnTimeLimitMs)
	assert.Equal(t, 0.9, opts.RunChance)
	assert.Equal(t, []string{"poison"}, opts.ProcEffects)
	assert.Equal(t, int32(100), opts.ExperienceFactor)
}

func TestBuildOptionsRejectsUnknownDifficulty(t *testing.T) {
	_, err := BuildOptions(config.Battle{Difficulty: "nightmare"}, 1)
	require.Error(t, err)
}

func TestRunBattleCompletes(t *testing.T) {
	scenario := data.Scenario{
		Name: "skirmish",
		Allies: []data.CombatantSpec{
			{Name: "Aria", Level: 3, HP: 120, Stats: map[string]float64{
				"attackPower": 18, "movementSpeed": 50,
			}},
		},
		Enemies: []data.CombatantSpec{
			{Name: "Grub", Level: 2, HP: 60, Stats: map[string]float64{
				"attackPower": 6, "movementSpeed": 20,
			}},
		},
	}

	opts, err := BuildOptions(config.Battle{}, battle.DeriveSeed(scenario.Name))
	require.NoError(t, err)
	opts.ThinkDelayMs = 0

	o, outcome, err := RunBattle(context.Background(), scenario, opts, nil)
	require.NoError(t, err)
	assert.True(t, outcome.State.Terminal())
	assert.Positive(t, outcome.Steps)
	assert.GreaterOrEqual(t, outcome.Rounds, int32(1))
	assert.NotEmpty(t, o.LogEntries())
}
