package seed

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumeng/mathquest/internal/store"
)

var testNow = time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

func nowFn() time.Time { return testNow }

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestEnsureSeedsEmptyStore(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	if err := Ensure(ctx, st, rng, nowFn); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	p, err := st.ProfileRepo().Get(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p == nil {
		t.Fatal("expected seeded profile")
	}
	if p.TotalScore != 430 || p.Level != "数学小将" || p.Streak != 5 || p.Rank != 38 {
		t.Errorf("profile = %+v", p)
	}

	if n, _ := st.CheckinRepo().Count(ctx); n != 30 {
		t.Errorf("checkins = %d, want 30", n)
	}
	if n, _ := st.WrongQuestionRepo().Count(ctx); n != 8 {
		t.Errorf("wrong questions = %d, want 8", n)
	}
	if n, _ := st.RankingRepo().Count(ctx); n != 50 {
		t.Errorf("rankings = %d, want 50", n)
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := Ensure(ctx, st, rand.New(rand.NewSource(1)), nowFn); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	wqs, err := st.WrongQuestionRepo().All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}

	// A second run with a different rand source must not touch anything.
	if err := Ensure(ctx, st, rand.New(rand.NewSource(99)), nowFn); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	wqs2, err := st.WrongQuestionRepo().All(ctx)
	if err != nil {
		t.Fatalf("all (second): %v", err)
	}
	if len(wqs) != len(wqs2) {
		t.Fatalf("len changed: %d -> %d", len(wqs), len(wqs2))
	}
	for i := range wqs {
		if wqs[i] != wqs2[i] {
			t.Errorf("entry %d changed: %+v -> %+v", i, wqs[i], wqs2[i])
		}
	}
	if n, _ := st.CheckinRepo().Count(ctx); n != 30 {
		t.Errorf("checkins = %d, want 30", n)
	}
}

func TestEnsureLeavesExistingProfile(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	want := &store.Profile{TotalScore: 999, Level: "数学专家", Streak: 2, Rank: 5}
	if err := st.ProfileRepo().Save(ctx, want); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	if err := Ensure(ctx, st, rand.New(rand.NewSource(1)), nowFn); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	p, err := st.ProfileRepo().Get(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if *p != *want {
		t.Errorf("profile = %+v, want %+v", p, want)
	}
}

func TestSeededWrongQuestionsNewestFirst(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := Ensure(ctx, st, rand.New(rand.NewSource(1)), nowFn); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	wqs, err := st.WrongQuestionRepo().All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(wqs) != 8 {
		t.Fatalf("len = %d, want 8", len(wqs))
	}
	if wqs[0].Question != "2^3 = ?" {
		t.Errorf("first entry = %q, want the newest canned question", wqs[0].Question)
	}
	if wqs[7].Question != "2x + 3 = 11, x = ?" {
		t.Errorf("last entry = %q, want the oldest canned question", wqs[7].Question)
	}
}

func TestSeededRankingsContiguousAndSorted(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := Ensure(ctx, st, rand.New(rand.NewSource(7)), nowFn); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	entries, err := st.RankingRepo().All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(entries) != 50 {
		t.Fatalf("len = %d, want 50", len(entries))
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("rank at %d = %d, want %d", i, e.Rank, i+1)
		}
		if i > 0 && e.Score > entries[i-1].Score {
			t.Errorf("not score-descending at %d", i)
		}
	}
}
