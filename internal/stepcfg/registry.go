package stepcfg

import (
	"context"
	"database/sql"
	"fmt"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS step_configs (
	pipeline_id          TEXT NOT NULL,
	step_number          INTEGER NOT NULL,
	name                 TEXT NOT NULL,
	threshold            REAL NOT NULL,
	instruction_template TEXT NOT NULL,
	PRIMARY KEY (pipeline_id, step_number)
);
`
// #endregion schema

// #region registry-struct
// Registry loads ordered step configs for a pipeline, falling back to the
// built-in defaults when nothing is persisted. The pipeline itself only
// reads; SaveSteps exists for offline authoring tools.
type Registry struct {
	db *sql.DB
}

// NewRegistry runs migrations and returns a registry.
func NewRegistry(db *sql.DB) (*Registry, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate step configs: %w", err)
	}
	return &Registry{db: db}, nil
}
// #endregion registry-struct

// #region load-steps
// LoadSteps returns the persisted configs for pipelineID ordered by step
// number, or DefaultSteps when none exist. The returned list is validated
// and never empty.
func (r *Registry) LoadSteps(ctx context.Context, pipelineID string) ([]StepConfig, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT step_number, name, threshold, instruction_template
		 FROM step_configs WHERE pipeline_id = ? ORDER BY step_number ASC`, pipelineID,
	)
	if err != nil {
		return nil, fmt.Errorf("load steps for %s: %w", pipelineID, err)
	}
	defer rows.Close()

	var steps []StepConfig
	for rows.Next() {
		var s StepConfig
		if err := rows.Scan(&s.StepNumber, &s.Name, &s.Threshold, &s.InstructionTemplate); err != nil {
			return nil, fmt.Errorf("scan step config: %w", err)
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load steps for %s: %w", pipelineID, err)
	}

	if len(steps) == 0 {
		steps = DefaultSteps()
	}
	if err := ValidateSteps(steps); err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", pipelineID, err)
	}
	return steps, nil
}
// #endregion load-steps

// #region save-steps
// SaveSteps validates steps and atomically replaces pipelineID's configs.
func (r *Registry) SaveSteps(ctx context.Context, pipelineID string, steps []StepConfig) error {
	if err := ValidateSteps(steps); err != nil {
		return fmt.Errorf("pipeline %s: %w", pipelineID, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save steps: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM step_configs WHERE pipeline_id = ?`, pipelineID,
	); err != nil {
		return fmt.Errorf("clear steps for %s: %w", pipelineID, err)
	}
	for _, s := range steps {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO step_configs (pipeline_id, step_number, name, threshold, instruction_template)
			 VALUES (?, ?, ?, ?, ?)`,
			pipelineID, s.StepNumber, s.Name, s.Threshold, s.InstructionTemplate,
		); err != nil {
			return fmt.Errorf("insert step %d for %s: %w", s.StepNumber, pipelineID, err)
		}
	}
	return tx.Commit()
}
// #endregion save-steps
