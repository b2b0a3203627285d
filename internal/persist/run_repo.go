package persist

import (
	"context"
	"fmt"
)

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Start opens a run row and returns its id.
func (r *RunRepo) Start(ctx context.Context, seed int64) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO runs (seed) VALUES ($1) RETURNING id`, seed,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("start run: %w", err)
	}
	return id, nil
}

// Finish records how the run ended.
func (r *RunRepo) Finish(ctx context.Context, runID int64, outcome string, day, balance uint) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE runs SET finished_at = now(), outcome = $2, final_day = $3, final_balance = $4
		 WHERE id = $1`,
		runID, outcome, int32(day), int32(balance),
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finish run: run %d not found", runID)
	}
	return nil
}
