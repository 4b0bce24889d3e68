// Package seed populates empty collections with the demo data set the
// app ships with. Seeding is an explicit host-invoked step, never a
// side effect of opening the store, so tests control whether it runs.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lumeng/mathquest/internal/level"
	"github.com/lumeng/mathquest/internal/progress"
	"github.com/lumeng/mathquest/internal/store"
)

const (
	checkinDays    = 30
	rankingEntries = 50
)

// namePool feeds the demo leaderboard.
var namePool = []string{"小明", "小红", "小刚", "小丽", "小强", "小华", "小美", "小军", "小艳", "小伟"}

// demoWrongQuestions is the canned wrong-question log, newest first.
var demoWrongQuestions = []store.WrongQuestion{
	{Question: "2^3 = ?", CorrectAnswer: "8", UserAnswer: "6", Date: "2024-01-20", Reviewed: false},
	{Question: "√16 = ?", CorrectAnswer: "4", UserAnswer: "8", Date: "2024-01-20", Reviewed: false},
	{Question: "5! = ?", CorrectAnswer: "120", UserAnswer: "100", Date: "2024-01-19", Reviewed: true},
	{Question: "3^2 + 2^3 = ?", CorrectAnswer: "17", UserAnswer: "15", Date: "2024-01-19", Reviewed: false},
	{Question: "log₂(8) = ?", CorrectAnswer: "3", UserAnswer: "2", Date: "2024-01-18", Reviewed: false},
	{Question: "sin(90°) = ?", CorrectAnswer: "1", UserAnswer: "0", Date: "2024-01-18", Reviewed: false},
	{Question: "15 ÷ 3 × 2 = ?", CorrectAnswer: "10", UserAnswer: "2.5", Date: "2024-01-17", Reviewed: true},
	{Question: "2x + 3 = 11, x = ?", CorrectAnswer: "4", UserAnswer: "5", Date: "2024-01-17", Reviewed: false},
}

// Ensure seeds each empty collection with demo data. Collections that
// already hold data are left untouched, so calling it on every startup
// is safe.
func Ensure(ctx context.Context, st *store.Store, rng *rand.Rand, now func() time.Time) error {
	if err := ensureProfile(ctx, st.ProfileRepo()); err != nil {
		return err
	}
	if err := ensureCheckins(ctx, st.CheckinRepo(), rng, now); err != nil {
		return err
	}
	if err := ensureWrongQuestions(ctx, st.WrongQuestionRepo(), rng, now); err != nil {
		return err
	}
	if err := ensureRankings(ctx, st.RankingRepo(), rng); err != nil {
		return err
	}
	return nil
}

func ensureProfile(ctx context.Context, repo store.ProfileRepo) error {
	p, err := repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("seed profile: %w", err)
	}
	if p != nil {
		return nil
	}
	err = repo.Save(ctx, &store.Profile{
		TotalScore: progress.DefaultTotalScore,
		Level:      level.LabelForScore(progress.DefaultTotalScore),
		Streak:     progress.DefaultStreak,
		Rank:       progress.DefaultRank,
	})
	if err != nil {
		return fmt.Errorf("seed profile: %w", err)
	}
	return nil
}

// ensureCheckins writes the last 30 calendar days, each checked in with
// probability 0.7. Missed days keep zeroed counters.
func ensureCheckins(ctx context.Context, repo store.CheckinRepo, rng *rand.Rand, now func() time.Time) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed checkins: %w", err)
	}
	if n > 0 {
		return nil
	}

	today := now()
	for i := checkinDays - 1; i >= 0; i-- {
		rec := store.CheckinRecord{
			Date: today.AddDate(0, 0, -i).Format(time.DateOnly),
		}
		if rng.Float64() > 0.3 {
			rec.IsCheckedIn = true
			rec.Score = rng.Intn(5) + 3
			rec.QuestionsCorrect = rng.Intn(8) + 2
			rec.QuestionsTotal = 10
		}
		if err := repo.Upsert(ctx, &rec); err != nil {
			return fmt.Errorf("seed checkins: %w", err)
		}
	}
	return nil
}

// ensureWrongQuestions inserts the canned log oldest first so that
// ULID ordering matches the intended newest-first listing.
func ensureWrongQuestions(ctx context.Context, repo store.WrongQuestionRepo, rng *rand.Rand, now func() time.Time) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed wrong questions: %w", err)
	}
	if n > 0 {
		return nil
	}

	entropy := ulid.Monotonic(rng, 0)
	ts := ulid.Timestamp(now())
	for i := len(demoWrongQuestions) - 1; i >= 0; i-- {
		wq := demoWrongQuestions[i]
		wq.ID = ulid.MustNew(ts, entropy).String()
		if err := repo.Insert(ctx, &wq); err != nil {
			return fmt.Errorf("seed wrong questions: %w", err)
		}
	}
	return nil
}

// ensureRankings generates 50 entries from the name pool with loosely
// descending random scores, then sorts and renumbers so ranks are
// contiguous from 1.
func ensureRankings(ctx context.Context, repo store.RankingRepo, rng *rand.Rand) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed rankings: %w", err)
	}
	if n > 0 {
		return nil
	}

	entries := make([]store.RankingEntry, 0, rankingEntries)
	for i := 0; i < rankingEntries; i++ {
		name := namePool[i%len(namePool)]
		if i > 9 {
			name = fmt.Sprintf("%s%d", name, i/10)
		}
		score := rng.Intn(1000) + 500 - i*10
		entries = append(entries, store.RankingEntry{
			Name:   name,
			Score:  score,
			Level:  level.LabelForScore(score),
			Streak: rng.Intn(20) + 1,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	if err := repo.ReplaceAll(ctx, entries); err != nil {
		return fmt.Errorf("seed rankings: %w", err)
	}
	return nil
}
