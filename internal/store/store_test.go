package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"profile", "checkins", "wrong_questions", "rankings"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	// No profile yet.
	p, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if p != nil {
		t.Fatal("expected nil profile when none persisted")
	}

	want := &Profile{TotalScore: 430, Level: "数学小将", Streak: 5, Rank: 38}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	p, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *p != *want {
		t.Errorf("profile = %+v, want %+v", p, want)
	}

	// Save again replaces, never duplicates.
	want.TotalScore = 436
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save (update): %v", err)
	}
	p, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("get (update): %v", err)
	}
	if p.TotalScore != 436 {
		t.Errorf("total score = %d, want 436", p.TotalScore)
	}
}

func TestCheckinUpsertByDate(t *testing.T) {
	s := openTestStore(t)
	repo := s.CheckinRepo()
	ctx := context.Background()

	rec, err := repo.ByDate(ctx, "2026-08-31")
	if err != nil {
		t.Fatalf("by date (empty): %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil record when none exists")
	}

	err = repo.Upsert(ctx, &CheckinRecord{
		Date: "2026-08-31", IsCheckedIn: true,
		Score: 6, QuestionsCorrect: 8, QuestionsTotal: 10,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Replacing the same date leaves a single row.
	err = repo.Upsert(ctx, &CheckinRecord{
		Date: "2026-08-31", IsCheckedIn: true,
		Score: 12, QuestionsCorrect: 16, QuestionsTotal: 20,
	})
	if err != nil {
		t.Fatalf("upsert (replace): %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}

	rec, err = repo.ByDate(ctx, "2026-08-31")
	if err != nil {
		t.Fatalf("by date: %v", err)
	}
	if rec.Score != 12 || rec.QuestionsCorrect != 16 || rec.QuestionsTotal != 20 {
		t.Errorf("record = %+v", rec)
	}
}

func TestCheckinAllNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.CheckinRepo()
	ctx := context.Background()

	for _, d := range []string{"2026-08-29", "2026-08-31", "2026-08-30"} {
		if err := repo.Upsert(ctx, &CheckinRecord{Date: d, IsCheckedIn: true}); err != nil {
			t.Fatalf("upsert %s: %v", d, err)
		}
	}

	recs, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	want := []string{"2026-08-31", "2026-08-30", "2026-08-29"}
	if len(recs) != len(want) {
		t.Fatalf("len = %d, want %d", len(recs), len(want))
	}
	for i, d := range want {
		if recs[i].Date != d {
			t.Errorf("recs[%d].Date = %s, want %s", i, recs[i].Date, d)
		}
	}
}

func TestWrongQuestionLog(t *testing.T) {
	s := openTestStore(t)
	repo := s.WrongQuestionRepo()
	ctx := context.Background()

	ids := []string{"01AA", "01AB", "01AC"}
	for _, id := range ids {
		err := repo.Insert(ctx, &WrongQuestion{
			ID: id, Question: "2^3 = ?", CorrectAnswer: "8", UserAnswer: "6",
			Date: "2026-08-31",
		})
		if err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	wqs, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(wqs) != 3 {
		t.Fatalf("len = %d, want 3", len(wqs))
	}
	// Newest (highest id) first.
	if wqs[0].ID != "01AC" || wqs[2].ID != "01AA" {
		t.Errorf("order = [%s %s %s]", wqs[0].ID, wqs[1].ID, wqs[2].ID)
	}

	n, err := repo.CountUnreviewed(ctx)
	if err != nil {
		t.Fatalf("count unreviewed: %v", err)
	}
	if n != 3 {
		t.Errorf("unreviewed = %d, want 3", n)
	}

	if err := repo.MarkReviewed(ctx, "01AB"); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}
	// Unknown id is a no-op, not an error.
	if err := repo.MarkReviewed(ctx, "zzz"); err != nil {
		t.Fatalf("mark reviewed (unknown): %v", err)
	}

	n, err = repo.CountUnreviewed(ctx)
	if err != nil {
		t.Fatalf("count unreviewed: %v", err)
	}
	if n != 2 {
		t.Errorf("unreviewed = %d, want 2", n)
	}
}

func TestRankingReplaceAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.RankingRepo()
	ctx := context.Background()

	entries := []RankingEntry{
		{Rank: 1, Name: "小明", Score: 1200, Level: "数学大师", Streak: 12},
		{Rank: 2, Name: "小红", Score: 900, Level: "数学专家", Streak: 7},
		{Rank: 3, Name: "小刚", Score: 500, Level: "数学小将", Streak: 3},
	}
	if err := repo.ReplaceAll(ctx, entries); err != nil {
		t.Fatalf("replace all: %v", err)
	}

	got, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("not score-descending at %d: %d > %d", i, got[i].Score, got[i-1].Score)
		}
	}

	// Replacing again drops the old snapshot.
	if err := repo.ReplaceAll(ctx, entries[:1]); err != nil {
		t.Fatalf("replace all (shrink): %v", err)
	}
	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
