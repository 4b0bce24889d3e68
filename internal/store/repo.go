package store

import "context"

// Profile is the singleton learner record. Level, Streak and Rank are
// display caches refreshed on mutation; the authoritative streak and rank
// are always derived from the check-in and ranking collections.
type Profile struct {
	TotalScore int    `db:"total_score"`
	Level      string `db:"level"`
	Streak     int    `db:"streak"`
	Rank       int    `db:"rank"`
}

// CheckinRecord is one completed-session aggregate per calendar date.
type CheckinRecord struct {
	Date             string `db:"date"` // 2006-01-02
	IsCheckedIn      bool   `db:"is_checked_in"`
	Score            int    `db:"score"`
	QuestionsCorrect int    `db:"questions_correct"`
	QuestionsTotal   int    `db:"questions_total"`
}

// WrongQuestion is one missed answer. IDs are ULIDs, so lexicographic
// order is creation order.
type WrongQuestion struct {
	ID            string `db:"id"`
	Question      string `db:"question"`
	CorrectAnswer string `db:"correct_answer"`
	UserAnswer    string `db:"user_answer"`
	Category      string `db:"category"`
	Level         string `db:"level"`
	Date          string `db:"date"` // 2006-01-02
	Reviewed      bool   `db:"reviewed"`
}

// RankingEntry is one row of the seeded leaderboard snapshot.
type RankingEntry struct {
	Rank   int    `db:"rank"`
	Name   string `db:"name"`
	Score  int    `db:"score"`
	Level  string `db:"level"`
	Streak int    `db:"streak"`
}

// ProfileRepo manages the singleton profile row.
type ProfileRepo interface {
	// Get returns the profile, or nil if none has been persisted.
	Get(ctx context.Context) (*Profile, error)

	// Save upserts the profile.
	Save(ctx context.Context, p *Profile) error
}

// CheckinRepo manages per-date check-in records.
type CheckinRepo interface {
	// ByDate returns the record for an ISO date, or nil if absent.
	ByDate(ctx context.Context, date string) (*CheckinRecord, error)

	// Upsert inserts or replaces the record for its date.
	Upsert(ctx context.Context, rec *CheckinRecord) error

	// All returns every record, most recent date first.
	All(ctx context.Context) ([]CheckinRecord, error)

	// Count returns the number of records.
	Count(ctx context.Context) (int, error)
}

// WrongQuestionRepo manages the append-only wrong-question log.
type WrongQuestionRepo interface {
	// Insert adds a new entry.
	Insert(ctx context.Context, wq *WrongQuestion) error

	// MarkReviewed sets reviewed=true. Unknown ids are a no-op.
	MarkReviewed(ctx context.Context, id string) error

	// All returns every entry, newest first.
	All(ctx context.Context) ([]WrongQuestion, error)

	// CountUnreviewed returns the number of entries with reviewed=false.
	CountUnreviewed(ctx context.Context) (int, error)

	// Count returns the number of entries.
	Count(ctx context.Context) (int, error)
}

// RankingRepo manages the static leaderboard snapshot.
type RankingRepo interface {
	// All returns the snapshot sorted by score descending.
	All(ctx context.Context) ([]RankingEntry, error)

	// ReplaceAll replaces the whole snapshot.
	ReplaceAll(ctx context.Context, entries []RankingEntry) error

	// Count returns the number of entries.
	Count(ctx context.Context) (int, error)
}
