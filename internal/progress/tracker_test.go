package progress

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumeng/mathquest/internal/store"
)

var testNow = time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T) (*Tracker, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	tr := NewTracker(st, WithNow(func() time.Time { return testNow }))
	return tr, st
}

func TestProfileDefaults(t *testing.T) {
	tr, _ := newTestTracker(t)
	p := tr.Profile(context.Background())

	if p.TotalScore != 430 {
		t.Errorf("total score = %d, want 430", p.TotalScore)
	}
	if p.Level != "数学小将" {
		t.Errorf("level = %q, want 数学小将", p.Level)
	}
	if p.Streak != 5 {
		t.Errorf("streak = %d, want 5", p.Streak)
	}
	if p.Rank != 38 {
		t.Errorf("rank = %d, want 38", p.Rank)
	}
}

func TestRecordCheckinFirstSession(t *testing.T) {
	tr, st := newTestTracker(t)
	ctx := context.Background()

	err := tr.RecordCheckin(ctx, SessionResult{Score: 6, QuestionsCorrect: 8, QuestionsTotal: 10})
	if err != nil {
		t.Fatalf("record checkin: %v", err)
	}

	p := tr.Profile(ctx)
	if p.TotalScore != 436 {
		t.Errorf("total score = %d, want 436", p.TotalScore)
	}
	if p.Level != "数学小将" {
		t.Errorf("level = %q, want 数学小将 (still the 400 tier)", p.Level)
	}

	rec, err := st.CheckinRepo().ByDate(ctx, "2026-08-31")
	if err != nil {
		t.Fatalf("by date: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record for today")
	}
	if !rec.IsCheckedIn || rec.Score != 6 || rec.QuestionsCorrect != 8 || rec.QuestionsTotal != 10 {
		t.Errorf("record = %+v", rec)
	}
}

func TestRecordCheckinAccumulatesSameDay(t *testing.T) {
	tr, st := newTestTracker(t)
	ctx := context.Background()

	sessions := []SessionResult{
		{Score: 6, QuestionsCorrect: 8, QuestionsTotal: 10},
		{Score: 4, QuestionsCorrect: 4, QuestionsTotal: 10},
		{Score: 10, QuestionsCorrect: 10, QuestionsTotal: 10},
	}
	for i, s := range sessions {
		if err := tr.RecordCheckin(ctx, s); err != nil {
			t.Fatalf("record checkin %d: %v", i, err)
		}
	}

	n, err := st.CheckinRepo().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("records for the day = %d, want 1", n)
	}

	rec, err := st.CheckinRepo().ByDate(ctx, "2026-08-31")
	if err != nil {
		t.Fatalf("by date: %v", err)
	}
	if rec.Score != 20 || rec.QuestionsCorrect != 22 || rec.QuestionsTotal != 30 {
		t.Errorf("accumulated = %+v, want score 20, correct 22, total 30", rec)
	}
	if !rec.IsCheckedIn {
		t.Error("expected isCheckedIn true")
	}

	if got := tr.Profile(ctx).TotalScore; got != 450 {
		t.Errorf("total score = %d, want 450", got)
	}
}

func seedCheckins(t *testing.T, st *store.Store, dates map[string]bool) {
	t.Helper()
	ctx := context.Background()
	for d, in := range dates {
		err := st.CheckinRepo().Upsert(ctx, &store.CheckinRecord{Date: d, IsCheckedIn: in})
		if err != nil {
			t.Fatalf("seed %s: %v", d, err)
		}
	}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates map[string]bool
		want  int
	}{
		{"no records", nil, 0},
		{"today missing", map[string]bool{"2026-08-30": true, "2026-08-29": true}, 0},
		{"today not checked in", map[string]bool{"2026-08-31": false, "2026-08-30": true}, 0},
		{"today only", map[string]bool{"2026-08-31": true}, 1},
		{"three consecutive", map[string]bool{
			"2026-08-31": true, "2026-08-30": true, "2026-08-29": true,
		}, 3},
		{"gap two days back", map[string]bool{
			"2026-08-31": true, "2026-08-30": true, "2026-08-28": true,
		}, 2},
		{"unchecked record breaks the run", map[string]bool{
			"2026-08-31": true, "2026-08-30": false, "2026-08-29": true,
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, st := newTestTracker(t)
			seedCheckins(t, st, tt.dates)
			if got := tr.Streak(context.Background()); got != tt.want {
				t.Errorf("streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecordCheckinRefreshesStreakCache(t *testing.T) {
	tr, st := newTestTracker(t)
	ctx := context.Background()

	seedCheckins(t, st, map[string]bool{"2026-08-30": true, "2026-08-29": true})

	if err := tr.RecordCheckin(ctx, SessionResult{Score: 5, QuestionsCorrect: 5, QuestionsTotal: 10}); err != nil {
		t.Fatalf("record checkin: %v", err)
	}

	if got := tr.Streak(ctx); got != 3 {
		t.Errorf("derived streak = %d, want 3", got)
	}
	if got := tr.Profile(ctx).Streak; got != 3 {
		t.Errorf("cached streak = %d, want 3", got)
	}
}

func TestIsTodayCheckedIn(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	if tr.IsTodayCheckedIn(ctx) {
		t.Error("expected false before any session")
	}
	if err := tr.RecordCheckin(ctx, SessionResult{Score: 1, QuestionsCorrect: 1, QuestionsTotal: 1}); err != nil {
		t.Fatalf("record checkin: %v", err)
	}
	if !tr.IsTodayCheckedIn(ctx) {
		t.Error("expected true after a session")
	}
}

func TestRecordWrongQuestionNeverDeduplicates(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	d := WrongDetail{Question: "2^3 = ?", CorrectAnswer: "8", UserAnswer: "6"}
	if err := tr.RecordWrongQuestion(ctx, d); err != nil {
		t.Fatalf("record wrong question: %v", err)
	}
	if err := tr.RecordWrongQuestion(ctx, d); err != nil {
		t.Fatalf("record wrong question (repeat): %v", err)
	}

	wqs := tr.WrongQuestions(ctx)
	if len(wqs) != 2 {
		t.Fatalf("entries = %d, want 2", len(wqs))
	}
	if wqs[0].ID == wqs[1].ID {
		t.Errorf("expected distinct ids, both %q", wqs[0].ID)
	}
	for _, wq := range wqs {
		if wq.Reviewed {
			t.Error("new entry should not be reviewed")
		}
		if wq.Date != "2026-08-31" {
			t.Errorf("date = %q, want today", wq.Date)
		}
	}
	if got := tr.UnreviewedCount(ctx); got != 2 {
		t.Errorf("unreviewed = %d, want 2", got)
	}
}

func TestMarkReviewedIdempotent(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	if err := tr.RecordWrongQuestion(ctx, WrongDetail{Question: "√16 = ?", CorrectAnswer: "4", UserAnswer: "8"}); err != nil {
		t.Fatalf("record wrong question: %v", err)
	}
	id := tr.WrongQuestions(ctx)[0].ID

	for i := 0; i < 2; i++ {
		if err := tr.MarkReviewed(ctx, id); err != nil {
			t.Fatalf("mark reviewed (call %d): %v", i+1, err)
		}
	}
	if got := tr.UnreviewedCount(ctx); got != 0 {
		t.Errorf("unreviewed = %d, want 0", got)
	}

	// Unknown id changes nothing.
	if err := tr.MarkReviewed(ctx, "01XXXXXXXXXXXXXXXXXXXXXXXX"); err != nil {
		t.Fatalf("mark reviewed (unknown): %v", err)
	}
	if got := len(tr.WrongQuestions(ctx)); got != 1 {
		t.Errorf("entries = %d, want 1", got)
	}
}

func TestCurrentUserRank(t *testing.T) {
	entries := []store.RankingEntry{
		{Rank: 1, Name: "小明", Score: 1200, Level: "数学大师", Streak: 9},
		{Rank: 2, Name: "小红", Score: 800, Level: "数学专家", Streak: 4},
		{Rank: 3, Name: "小刚", Score: 400, Level: "数学小将", Streak: 2},
	}

	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"outscores everyone", 1500, 1},
		{"between first and second", 900, 2},
		{"equal to an entry", 800, 2},
		{"default profile score", 430, 3},
		{"below everyone", 100, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, st := newTestTracker(t)
			ctx := context.Background()
			if err := st.RankingRepo().ReplaceAll(ctx, entries); err != nil {
				t.Fatalf("seed rankings: %v", err)
			}
			err := st.ProfileRepo().Save(ctx, &store.Profile{TotalScore: tt.score, Level: "x"})
			if err != nil {
				t.Fatalf("seed profile: %v", err)
			}
			if got := tr.CurrentUserRank(ctx); got != tt.want {
				t.Errorf("rank = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRankingsScoreDescending(t *testing.T) {
	tr, st := newTestTracker(t)
	ctx := context.Background()

	entries := []store.RankingEntry{
		{Rank: 1, Name: "a", Score: 700, Level: "数学高手", Streak: 1},
		{Rank: 2, Name: "b", Score: 650, Level: "数学高手", Streak: 1},
		{Rank: 3, Name: "c", Score: 300, Level: "数学新手", Streak: 1},
	}
	if err := st.RankingRepo().ReplaceAll(ctx, entries); err != nil {
		t.Fatalf("seed rankings: %v", err)
	}

	got := tr.Rankings(ctx)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("not descending at %d", i)
		}
	}
}
