package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// checkinRepo implements CheckinRepo keyed by ISO calendar date.
type checkinRepo struct {
	db *sqlx.DB
}

func (r *checkinRepo) ByDate(ctx context.Context, date string) (*CheckinRecord, error) {
	var rec CheckinRecord
	err := r.db.GetContext(ctx, &rec, `
		SELECT date, is_checked_in, score, questions_correct, questions_total
		FROM checkins WHERE date = ?`, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query checkin %s: %w", date, err)
	}
	return &rec, nil
}

func (r *checkinRepo) Upsert(ctx context.Context, rec *CheckinRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO checkins (date, is_checked_in, score, questions_correct, questions_total)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			is_checked_in     = excluded.is_checked_in,
			score             = excluded.score,
			questions_correct = excluded.questions_correct,
			questions_total   = excluded.questions_total`,
		rec.Date, rec.IsCheckedIn, rec.Score, rec.QuestionsCorrect, rec.QuestionsTotal)
	if err != nil {
		return fmt.Errorf("upsert checkin %s: %w", rec.Date, err)
	}
	return nil
}

func (r *checkinRepo) All(ctx context.Context) ([]CheckinRecord, error) {
	var recs []CheckinRecord
	err := r.db.SelectContext(ctx, &recs, `
		SELECT date, is_checked_in, score, questions_correct, questions_total
		FROM checkins ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query checkins: %w", err)
	}
	return recs, nil
}

func (r *checkinRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM checkins`); err != nil {
		return 0, fmt.Errorf("count checkins: %w", err)
	}
	return n, nil
}
