// Package progress tracks one learner's quiz activity: the profile,
// daily check-ins, the wrong-question log and the ranking snapshot.
//
// Read operations never fail from the caller's perspective: missing or
// unreadable state degrades to defaults or empty results with a warning
// on stderr. Write operations return errors so the host can surface
// lost updates.
package progress

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lumeng/mathquest/internal/level"
	"github.com/lumeng/mathquest/internal/store"
)

// Default profile values persisted on first access. These mirror the
// demo seed data rather than a clean-zero state.
const (
	DefaultTotalScore = 430
	DefaultStreak     = 5
	DefaultRank       = 38
)

// SessionResult reports one completed quiz session.
type SessionResult struct {
	Score            int
	QuestionsCorrect int
	QuestionsTotal   int
}

// WrongDetail describes one missed answer.
type WrongDetail struct {
	Question      string
	CorrectAnswer string
	UserAnswer    string
	Category      string
	Level         string
}

// Tracker is the progress store service. Construct with NewTracker;
// the zero value is not usable.
type Tracker struct {
	profiles store.ProfileRepo
	checkins store.CheckinRepo
	wrongs   store.WrongQuestionRepo
	rankings store.RankingRepo

	now     func() time.Time
	entropy io.Reader
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithNow replaces the clock, for deterministic tests.
func WithNow(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithEntropy replaces the ULID entropy source, for deterministic tests.
func WithEntropy(r io.Reader) Option {
	return func(t *Tracker) { t.entropy = r }
}

// NewTracker creates a Tracker over the store's repositories.
func NewTracker(st *store.Store, opts ...Option) *Tracker {
	t := &Tracker{
		profiles: st.ProfileRepo(),
		checkins: st.CheckinRepo(),
		wrongs:   st.WrongQuestionRepo(),
		rankings: st.RankingRepo(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.entropy == nil {
		t.entropy = ulid.Monotonic(rand.New(rand.NewSource(t.now().UnixNano())), 0)
	}
	return t
}

// today returns the current ISO calendar date.
func (t *Tracker) today() string {
	return t.now().Format(time.DateOnly)
}

// Profile returns the current profile, or the seed defaults if none is
// persisted or the stored row is unreadable.
func (t *Tracker) Profile(ctx context.Context) store.Profile {
	p, err := t.profiles.Get(ctx)
	if err != nil {
		warnf("read profile: %v", err)
	}
	if p == nil {
		return store.Profile{
			TotalScore: DefaultTotalScore,
			Level:      level.LabelForScore(DefaultTotalScore),
			Streak:     DefaultStreak,
			Rank:       DefaultRank,
		}
	}
	return *p
}

// RecordCheckin folds a completed session into today's check-in record,
// creating it when absent and accumulating when present, then updates
// the profile: total score, recomputed level and refreshed caches.
func (t *Tracker) RecordCheckin(ctx context.Context, res SessionResult) error {
	today := t.today()

	rec, err := t.checkins.ByDate(ctx, today)
	if err != nil {
		warnf("read checkin %s: %v", today, err)
	}
	if rec == nil {
		rec = &store.CheckinRecord{Date: today}
	}
	rec.IsCheckedIn = true
	rec.Score += res.Score
	rec.QuestionsCorrect += res.QuestionsCorrect
	rec.QuestionsTotal += res.QuestionsTotal

	if err := t.checkins.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("record checkin: %w", err)
	}

	p := t.Profile(ctx)
	p.TotalScore += res.Score
	p.Level = level.LabelForScore(p.TotalScore)
	p.Streak = t.Streak(ctx)
	p.Rank = t.rankFor(ctx, p.TotalScore)

	if err := t.profiles.Save(ctx, &p); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// RecordWrongQuestion appends a missed answer to the log. Repeated
// misses of the same question produce separate entries.
func (t *Tracker) RecordWrongQuestion(ctx context.Context, d WrongDetail) error {
	id := ulid.MustNew(ulid.Timestamp(t.now()), t.entropy)

	wq := &store.WrongQuestion{
		ID:            id.String(),
		Question:      d.Question,
		CorrectAnswer: d.CorrectAnswer,
		UserAnswer:    d.UserAnswer,
		Category:      d.Category,
		Level:         d.Level,
		Date:          t.today(),
		Reviewed:      false,
	}
	if err := t.wrongs.Insert(ctx, wq); err != nil {
		return fmt.Errorf("record wrong question: %w", err)
	}
	return nil
}

// MarkReviewed flips a wrong question to reviewed. Unknown ids are a
// no-op; the transition is one-way.
func (t *Tracker) MarkReviewed(ctx context.Context, id string) error {
	if err := t.wrongs.MarkReviewed(ctx, id); err != nil {
		return fmt.Errorf("mark reviewed: %w", err)
	}
	return nil
}

// Streak counts consecutive checked-in days ending today. A missing or
// not-checked-in record for today yields 0. This derived value is the
// authoritative streak; the profile field is only a display cache.
func (t *Tracker) Streak(ctx context.Context) int {
	recs, err := t.checkins.All(ctx)
	if err != nil {
		warnf("read checkins: %v", err)
		return 0
	}
	checked := make(map[string]bool, len(recs))
	for _, r := range recs {
		checked[r.Date] = r.IsCheckedIn
	}

	streak := 0
	day := t.now()
	for {
		if !checked[day.Format(time.DateOnly)] {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// IsTodayCheckedIn reports whether today has a checked-in record.
func (t *Tracker) IsTodayCheckedIn(ctx context.Context) bool {
	rec, err := t.checkins.ByDate(ctx, t.today())
	if err != nil {
		warnf("read checkin: %v", err)
		return false
	}
	return rec != nil && rec.IsCheckedIn
}

// UnreviewedCount returns the number of wrong questions not yet reviewed.
func (t *Tracker) UnreviewedCount(ctx context.Context) int {
	n, err := t.wrongs.CountUnreviewed(ctx)
	if err != nil {
		warnf("count unreviewed: %v", err)
		return 0
	}
	return n
}

// WrongQuestions returns the wrong-question log, newest first.
func (t *Tracker) WrongQuestions(ctx context.Context) []store.WrongQuestion {
	wqs, err := t.wrongs.All(ctx)
	if err != nil {
		warnf("read wrong questions: %v", err)
		return nil
	}
	return wqs
}

// Checkins returns all check-in records, most recent first.
func (t *Tracker) Checkins(ctx context.Context) []store.CheckinRecord {
	recs, err := t.checkins.All(ctx)
	if err != nil {
		warnf("read checkins: %v", err)
		return nil
	}
	return recs
}

// Rankings returns the leaderboard snapshot, score descending.
func (t *Tracker) Rankings(ctx context.Context) []store.RankingEntry {
	entries, err := t.rankings.All(ctx)
	if err != nil {
		warnf("read rankings: %v", err)
		return nil
	}
	return entries
}

// CurrentUserRank computes the learner's effective rank against the
// snapshot: the rank of the first entry whose score does not exceed the
// learner's total. Outscoring every entry yields rank 1; scoring below
// every entry yields one past the last rank.
func (t *Tracker) CurrentUserRank(ctx context.Context) int {
	return t.rankFor(ctx, t.Profile(ctx).TotalScore)
}

func (t *Tracker) rankFor(ctx context.Context, score int) int {
	entries := t.Rankings(ctx)
	for _, e := range entries {
		if e.Score <= score {
			return e.Rank
		}
	}
	return len(entries) + 1
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
