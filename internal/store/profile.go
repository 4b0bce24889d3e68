package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// profileRepo implements ProfileRepo over the singleton profile row.
type profileRepo struct {
	db *sqlx.DB
}

func (r *profileRepo) Get(ctx context.Context) (*Profile, error) {
	var p Profile
	err := r.db.GetContext(ctx, &p,
		`SELECT total_score, level, streak, "rank" FROM profile WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) Save(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profile (id, total_score, level, streak, "rank")
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			total_score = excluded.total_score,
			level       = excluded.level,
			streak      = excluded.streak,
			"rank"      = excluded."rank"`,
		p.TotalScore, p.Level, p.Streak, p.Rank)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
