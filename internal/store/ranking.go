package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// rankingRepo implements RankingRepo over the seeded snapshot.
type rankingRepo struct {
	db *sqlx.DB
}

func (r *rankingRepo) All(ctx context.Context) ([]RankingEntry, error) {
	var entries []RankingEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT "rank", name, score, level, streak
		FROM rankings ORDER BY score DESC, "rank" ASC`)
	if err != nil {
		return nil, fmt.Errorf("query rankings: %w", err)
	}
	return entries, nil
}

func (r *rankingRepo) ReplaceAll(ctx context.Context, entries []RankingEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rankings tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rankings`); err != nil {
		return fmt.Errorf("clear rankings: %w", err)
	}
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO rankings ("rank", name, score, level, streak)
			VALUES (?, ?, ?, ?, ?)`,
			e.Rank, e.Name, e.Score, e.Level, e.Streak)
		if err != nil {
			return fmt.Errorf("insert ranking %d: %w", e.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rankings: %w", err)
	}
	return nil
}

func (r *rankingRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM rankings`); err != nil {
		return 0, fmt.Errorf("count rankings: %w", err)
	}
	return n, nil
}
