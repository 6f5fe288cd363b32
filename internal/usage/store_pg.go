package usage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"recruitedge-api/internal/shared/storage/db"
)

type pgStore struct {
	DB  *sql.DB
	now func() time.Time
}

// NewPGStore constructs a Postgres-backed usage store.
func NewPGStore(database *sql.DB) *pgStore {
	return &pgStore{DB: database, now: func() time.Time { return time.Now().UTC() }}
}

func (s *pgStore) Get(ctx context.Context, userID string) (Usage, error) {
	var u Usage
	err := db.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		var err error
		u, err = s.lockAndEnsure(ctx, tx, userID)
		return err
	})
	return u, err
}

func (s *pgStore) Consume(ctx context.Context, userID string, n int) (Usage, error) {
	var u Usage
	err := db.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		var err error
		u, err = s.lockAndEnsure(ctx, tx, userID)
		if err != nil || n <= 0 {
			return err
		}
		if u.Used+n > u.Limit {
			return ErrLimitReached
		}
		u.Used += n
		_, err = tx.ExecContext(ctx, `UPDATE usage SET used = $1 WHERE user_id = $2`, u.Used, userID)
		return err
	})
	return u, err
}

func (s *pgStore) Refund(ctx context.Context, userID string, n int) (Usage, error) {
	var u Usage
	err := db.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		var err error
		u, err = s.lockAndEnsure(ctx, tx, userID)
		if err != nil || n <= 0 {
			return err
		}
		u.Used = max(u.Used-n, 0)
		_, err = tx.ExecContext(ctx, `UPDATE usage SET used = $1 WHERE user_id = $2`, u.Used, userID)
		return err
	})
	return u, err
}

func (s *pgStore) SetPlan(ctx context.Context, userID, plan string) (Usage, error) {
	var u Usage
	err := db.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		var err error
		u, err = s.lockAndEnsure(ctx, tx, userID)
		if err != nil {
			return err
		}
		u.Plan = plan
		u.Limit = LimitFor(plan)
		_, err = tx.ExecContext(ctx, `UPDATE usage SET plan = $1, limit_amount = $2 WHERE user_id = $3`, u.Plan, u.Limit, userID)
		return err
	})
	return u, err
}

func (s *pgStore) Reset(ctx context.Context, userID string) (Usage, error) {
	var u Usage
	err := db.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		var err error
		u, err = s.lockAndEnsure(ctx, tx, userID)
		if err != nil {
			return err
		}
		u.Used = 0
		u.ResetsAt = s.now().Add(Window)
		_, err = tx.ExecContext(ctx, `UPDATE usage SET used = 0, resets_at = $1 WHERE user_id = $2`, u.ResetsAt, userID)
		return err
	})
	return u, err
}

func (s *pgStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, userID string) (Usage, error) {
	var u Usage
	row := tx.QueryRowContext(ctx, `
SELECT plan, limit_amount, used, resets_at FROM usage WHERE user_id = $1 FOR UPDATE`, userID)
	err := row.Scan(&u.Plan, &u.Limit, &u.Used, &u.ResetsAt)
	now := s.now()
	if errors.Is(err, sql.ErrNoRows) {
		u = freshUsage(PlanFree, now)
		_, err = tx.ExecContext(ctx, `
INSERT INTO usage (user_id, plan, limit_amount, used, resets_at) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO NOTHING`,
			userID, u.Plan, u.Limit, u.Used, u.ResetsAt)
		return u, err
	}
	if err != nil {
		return Usage{}, err
	}

	var rolled bool
	if u, rolled = roll(u, now); rolled {
		if _, err := tx.ExecContext(ctx, `UPDATE usage SET used = $1, resets_at = $2 WHERE user_id = $3`, u.Used, u.ResetsAt, userID); err != nil {
			return Usage{}, err
		}
	}
	return u, nil
}
