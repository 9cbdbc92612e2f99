package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/boristopalov/gambit/pkg/config"
	"github.com/boristopalov/gambit/pkg/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	agent_type TEXT NOT NULL,
	seed TEXT NOT NULL,
	reward_probability REAL NOT NULL,
	initial_threshold INTEGER NOT NULL,
	learning_rate REAL NOT NULL,
	max_steps INTEGER NOT NULL,
	requested_generations INTEGER NOT NULL,
	completed_generations INTEGER NOT NULL,
	total_steps INTEGER NOT NULL,
	total_rewards INTEGER NOT NULL,
	total_punishments INTEGER NOT NULL,
	mean_lifespan REAL NOT NULL,
	median_lifespan REAL NOT NULL,
	min_lifespan INTEGER NOT NULL,
	max_lifespan INTEGER NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS generations (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	generation INTEGER NOT NULL,
	lifespan INTEGER NOT NULL,
	rewards INTEGER NOT NULL,
	punishments INTEGER NOT NULL,
	reason TEXT NOT NULL,
	threshold INTEGER NOT NULL,
	final_consecutive_punishments INTEGER NOT NULL,
	PRIMARY KEY (run_id, generation)
);
`

// WriteSQLite stores the run and its generations in a SQLite database.
// Writing the same run twice replaces the earlier rows.
func WriteSQLite(ctx context.Context, path string, result *core.SimulationResult, cfg *config.ExperimentConfig) (err error) {
	if cfg == nil {
		return errors.New("sqlite report needs a config")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM generations WHERE run_id = ?`, result.RunID); err != nil {
		return err
	}

	s := result.Summary
	env := result.Environment
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			run_id, name, agent_type, seed, reward_probability, initial_threshold,
			learning_rate, max_steps, requested_generations, completed_generations,
			total_steps, total_rewards, total_punishments, mean_lifespan,
			median_lifespan, min_lifespan, max_lifespan, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			completed_generations = excluded.completed_generations,
			total_steps = excluded.total_steps,
			total_rewards = excluded.total_rewards,
			total_punishments = excluded.total_punishments,
			mean_lifespan = excluded.mean_lifespan,
			median_lifespan = excluded.median_lifespan,
			min_lifespan = excluded.min_lifespan,
			max_lifespan = excluded.max_lifespan,
			finished_at = excluded.finished_at
	`,
		result.RunID,
		cfg.Name,
		cfg.AgentType,
		strconv.FormatUint(result.Seed, 10),
		cfg.RewardProbability,
		cfg.AgentInitialThreshold,
		cfg.LearningRate,
		cfg.MaxStepsPerGeneration,
		result.RequestedGenerations,
		len(result.Records),
		env.TotalSteps,
		env.TotalRewards,
		env.TotalPunishments,
		s.MeanLifespan,
		s.MedianLifespan,
		s.MinLifespan,
		s.MaxLifespan,
		result.StartTime.Format(time.RFC3339Nano),
		result.EndTime.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO generations (
			run_id, generation, lifespan, rewards, punishments, reason,
			threshold, final_consecutive_punishments
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range result.Records {
		_, err = stmt.ExecContext(ctx,
			result.RunID,
			r.Generation,
			r.Lifespan,
			r.Rewards,
			r.Punishments,
			string(r.Reason),
			r.Threshold,
			r.FinalConsecutivePunishments,
		)
		if err != nil {
			return fmt.Errorf("insert generation %d: %w", r.Generation, err)
		}
	}

	return tx.Commit()
}
