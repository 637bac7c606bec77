package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/udisondev/arena/internal/game/battle"
	"github.com/udisondev/arena/internal/model"
)

// BattleReport is the persisted outcome of one finished battle.
type BattleReport struct {
	Scenario   string
	Difficulty string
	Result     string
	Rounds     int32
	Seed       int64 // battle RNG seed, kept for replays
	Experience int32
	Currency   int32

	Participants json.RawMessage
	BattleLog    json.RawMessage
}

type reportParticipant struct {
	Name  string `json:"name"`
	Side  string `json:"side"`
	Level int32  `json:"level"`
	HP    int32  `json:"hp"`
	MaxHP int32  `json:"max_hp"`
	Alive bool   `json:"alive"`
}

type reportLogEntry struct {
	Round   int32  `json:"round"`
	Message string `json:"message"`
}

// BuildReport snapshots a finished battle into a report.
// Returns an error if the battle has not reached a terminal state.
func BuildReport(scenario, difficulty string, seed uint64, o *battle.Orchestrator) (*BattleReport, error) {
	state := o.State()
	if !state.Terminal() {
		return nil, fmt.Errorf("battle still %s, nothing to report", state)
	}

	participants := make([]reportParticipant, 0, len(o.Survivors())+len(o.DefeatedEnemies()))
	snapshot := func(c *model.Combatant) {
		participants = append(participants, reportParticipant{
			Name:  c.Name,
			Side:  c.Side.String(),
			Level: c.Level,
			HP:    c.HP(),
			MaxHP: c.MaxHP(),
			Alive: c.IsAlive(),
		})
	}
	for _, c := range o.Survivors() {
		snapshot(c)
	}
	for _, c := range o.DefeatedEnemies() {
		snapshot(c)
	}
	participantsJSON, err := json.Marshal(participants)
	if err != nil {
		return nil, fmt.Errorf("marshaling participants: %w", err)
	}

	entries := o.LogEntries()
	logEntries := make([]reportLogEntry, len(entries))
	for i, e := range entries {
		logEntries[i] = reportLogEntry{Round: e.Round, Message: e.Message}
	}
	logJSON, err := json.Marshal(logEntries)
	if err != nil {
		return nil, fmt.Errorf("marshaling battle log: %w", err)
	}

	report := &BattleReport{
		Scenario:     scenario,
		Difficulty:   difficulty,
		Result:       resultOf(state),
		Rounds:       o.Round(),
		Seed:         int64(seed),
		Participants: participantsJSON,
		BattleLog:    logJSON,
	}
	if r := o.Rewards(); r != nil {
		report.Experience = r.Experience
		report.Currency = r.Currency
	}
	return report, nil
}

func resultOf(s battle.State) string {
	switch s {
	case battle.StateVictory:
		return battle.ResultVictory
	case battle.StateDefeat:
		return battle.ResultDefeat
	case battle.StateFled:
		return battle.ResultFled
	default:
		return battle.ResultError
	}
}

// SaveReport inserts a battle report.
func (d *DB) SaveReport(ctx context.Context, r *BattleReport) error {
	_, err := d.pool.Exec(ctx,
		`INSERT INTO battle_reports
		 (scenario, difficulty, result, rounds, seed, experience, currency, participants, battle_log)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.Scenario, r.Difficulty, r.Result, r.Rounds, r.Seed,
		r.Experience, r.Currency, r.Participants, r.BattleLog,
	)
	if err != nil {
		return fmt.Errorf("saving battle report for %q: %w", r.Scenario, err)
	}
	slog.Info("battle report saved",
		"scenario", r.Scenario,
		"result", r.Result,
		"rounds", r.Rounds)
	return nil
}

// RecentReports returns the newest reports for a scenario, newest first.
func (d *DB) RecentReports(ctx context.Context, scenario string, limit int) ([]BattleReport, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT scenario, difficulty, result, rounds, seed, experience, currency, participants, battle_log
		 FROM battle_reports
		 WHERE scenario = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, scenario, limit)
	if err != nil {
		return nil, fmt.Errorf("querying reports for %q: %w", scenario, err)
	}
	defer rows.Close()

	var out []BattleReport
	for rows.Next() {
		var r BattleReport
		if err := rows.Scan(
			&r.Scenario, &r.Difficulty, &r.Result, &r.Rounds, &r.Seed,
			&r.Experience, &r.Currency, &r.Participants, &r.BattleLog,
		); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
