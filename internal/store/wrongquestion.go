package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// wrongQuestionRepo implements WrongQuestionRepo. Entries are never
// deleted; reviewed is a one-way flag.
type wrongQuestionRepo struct {
	db *sqlx.DB
}

func (r *wrongQuestionRepo) Insert(ctx context.Context, wq *WrongQuestion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wrong_questions (id, question, correct_answer, user_answer, category, level, date, reviewed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		wq.ID, wq.Question, wq.CorrectAnswer, wq.UserAnswer, wq.Category, wq.Level, wq.Date, wq.Reviewed)
	if err != nil {
		return fmt.Errorf("insert wrong question: %w", err)
	}
	return nil
}

func (r *wrongQuestionRepo) MarkReviewed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE wrong_questions SET reviewed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark reviewed %s: %w", id, err)
	}
	return nil
}

// All returns entries newest first. ULIDs sort lexicographically by
// creation time, so ordering by id is ordering by insertion.
func (r *wrongQuestionRepo) All(ctx context.Context) ([]WrongQuestion, error) {
	var wqs []WrongQuestion
	err := r.db.SelectContext(ctx, &wqs, `
		SELECT id, question, correct_answer, user_answer, category, level, date, reviewed
		FROM wrong_questions ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query wrong questions: %w", err)
	}
	return wqs, nil
}

func (r *wrongQuestionRepo) CountUnreviewed(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM wrong_questions WHERE reviewed = 0`)
	if err != nil {
		return 0, fmt.Errorf("count unreviewed: %w", err)
	}
	return n, nil
}

func (r *wrongQuestionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM wrong_questions`); err != nil {
		return 0, fmt.Errorf("count wrong questions: %w", err)
	}
	return n, nil
}
