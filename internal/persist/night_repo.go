package persist

import (
	"context"
	"fmt"
)

// NightRecord is one finished night with its day-start settlement.
type NightRecord struct {
	RunID        int64
	Day          uint
	Elapsed      float64
	Kills        int
	Contacts     int
	Died         bool
	UnsafeRest   float64
	Banked       uint
	BalanceAfter uint
}

// PurchaseRecord is one upgrade bought during a day.
type PurchaseRecord struct {
	RunID       int64
	Day         uint
	Upgrade     string
	Cost        uint
	BalanceLeft uint
}

type NightRepo struct {
	db *DB
}

func NewNightRepo(db *DB) *NightRepo {
	return &NightRepo{db: db}
}

// Record writes a batch of nights and purchases in a single transaction.
// Either everything lands or nothing does.
func (r *NightRepo) Record(ctx context.Context, nights []NightRecord, purchases []PurchaseRecord) error {
	if len(nights) == 0 && len(purchases) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("record begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, n := range nights {
		if _, err := tx.Exec(ctx,
			`INSERT INTO nights (run_id, day, elapsed, kills, contacts, died, unsafe_rest, banked, balance_after)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			n.RunID, int32(n.Day), n.Elapsed, int32(n.Kills), int32(n.Contacts), n.Died,
			n.UnsafeRest, int32(n.Banked), int32(n.BalanceAfter),
		); err != nil {
			return fmt.Errorf("insert night: %w", err)
		}
	}
	for _, p := range purchases {
		if _, err := tx.Exec(ctx,
			`INSERT INTO purchases (run_id, day, upgrade, cost, balance_left)
			 VALUES ($1, $2, $3, $4, $5)`,
			p.RunID, int32(p.Day), p.Upgrade, int32(p.Cost), int32(p.BalanceLeft),
		); err != nil {
			return fmt.Errorf("insert purchase: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// CountNights returns how many nights a run has logged.
func (r *NightRepo) CountNights(ctx context.Context, runID int64) (int, error) {
	var n int
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM nights WHERE run_id = $1`, runID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count nights: %w", err)
	}
	return n, nil
}
