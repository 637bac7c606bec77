package db

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arena/internal/game/battle"
	"github.com/udisondev/arena/internal/model"
)

func finishedBattle(t *testing.T) *battle.Orchestrator {
	t.Helper()
	ally := model.NewCombatant(1, "Aria", model.SideAlly, 2, 100, 0, model.Stats{
		AttackPower: 20, MovementSpeed: 50,
	})
	ally.Actions = []model.Action{model.DefaultAttack}
	enemy := model.NewCombatant(2, "Grub", model.SideEnemy, 3, 30, 0, model.Stats{
		AttackPower: 1, MovementSpeed: 10,
	})
	enemy.Actions = []model.Action{model.DefaultAttack}

	opts := battle.DefaultOptions()
	opts.AutoPilotAllies = true
	opts.ProcEffects = nil
	opts.ThinkDelayMs = 0
	opts.Seed = 1

	o := battle.New(opts, nil, nil)
	require.NoError(t, o.Start([]*model.Combatant{ally}, []*model.Combatant{enemy}))
	for i := 0; i < 1000 && !o.State().Terminal(); i++ {
		o.Update(100)
	}
	require.True(t, o.State().Terminal(), "battle did not finish")
	return o
}

func TestBuildReport(t *testing.T) {
	o := finishedBattle(t)

	report, err := BuildReport("goblin-ambush", "normal", 42, o)
	require.NoError(t, err)

	assert.Equal(t, "goblin-ambush", report.Scenario)
	assert.Equal(t, battle.ResultVictory, report.Result)
	assert.Equal(t, int64(42), report.Seed)
	assert.Equal(t, int32(75), report.Experience, "level 3 enemy × 25")
	assert.Equal(t, int32(30), report.Currency)

	var participants []map[string]any
	require.NoError(t, json.Unmarshal(report.Participants, &participants))
	require.Len(t, participants, 2, "survivor plus defeated enemy")

	byName := map[string]map[string]any{}
	for _, p := range participants {
		byName[p["name"].(string)] = p
	}
	assert.Equal(t, true, byName["Aria"]["alive"])
	assert.Equal(t, false, byName["Grub"]["alive"])
	assert.Equal(t, "enemy", byName["Grub"]["side"])

	var logEntries []map[string]any
	require.NoError(t, json.Unmarshal(report.BattleLog, &logEntries))
	assert.NotEmpty(t, logEntries)
}

func TestBuildReportRejectsActiveBattle(t *testing.T) {
	ally := model.NewCombatant(1, "Aria", model.SideAlly, 2, 100, 0, model.Stats{})
	enemy := model.NewCombatant(2, "Grub", model.SideEnemy, 2, 100, 0, model.Stats{})

	o := battle.New(battle.DefaultOptions(), nil, nil)
	require.NoError(t, o.Start([]*model.Combatant{ally}, []*model.Combatant{enemy}))

	_, err := BuildReport("x", "normal", 1, o)
	require.Error(t, err)
}
