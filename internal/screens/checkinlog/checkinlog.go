package checkinlog

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumeng/mathquest/internal/progress"
	"github.com/lumeng/mathquest/internal/screen"
	"github.com/lumeng/mathquest/internal/store"
	"github.com/lumeng/mathquest/internal/ui/layout"
	"github.com/lumeng/mathquest/internal/ui/theme"
)

type loadedMsg struct {
	Records []store.CheckinRecord
	Streak  int
}

// CheckinLogScreen shows the daily check-in history and the current
// streak.
type CheckinLogScreen struct {
	tracker *progress.Tracker

	records []store.CheckinRecord
	streak  int
	offset  int
	loaded  bool
}

var _ screen.Screen = (*CheckinLogScreen)(nil)
var _ screen.KeyHintProvider = (*CheckinLogScreen)(nil)

// New creates the check-in log screen.
func New(tracker *progress.Tracker) *CheckinLogScreen {
	return &CheckinLogScreen{tracker: tracker}
}

func (s *CheckinLogScreen) Init() tea.Cmd {
	return s.load
}

func (s *CheckinLogScreen) load() tea.Msg {
	ctx := context.Background()
	return loadedMsg{
		Records: s.tracker.Checkins(ctx),
		Streak:  s.tracker.Streak(ctx),
	}
}

func (s *CheckinLogScreen) Title() string {
	return "打卡记录"
}

func (s *CheckinLogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "滚动"},
		{Key: "Esc", Description: "返回"},
	}
}

func (s *CheckinLogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.records = msg.Records
		s.streak = msg.Streak
		s.loaded = true
		return s, nil

	case screen.RefreshMsg:
		return s, s.load

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.records)-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *CheckinLogScreen) View(width, height int) string {
	if !s.loaded {
		return theme.Hint.Render("  加载中...")
	}

	header := theme.Title.Render("打卡记录") + "  " +
		theme.Hint.Render(fmt.Sprintf("连续打卡 %d 天", s.streak))

	if len(s.records) == 0 {
		return lipgloss.NewStyle().Padding(1, 4).Render(
			header + "\n\n" + theme.Hint.Render("还没有打卡记录，完成一次训练即可打卡。"))
	}

	maxRows := height - 5
	if maxRows < 1 {
		maxRows = 1
	}

	var list string
	for i := s.offset; i < len(s.records) && i < s.offset+maxRows; i++ {
		r := s.records[i]
		if r.IsCheckedIn {
			acc := "—"
			if r.QuestionsTotal > 0 {
				acc = fmt.Sprintf("%d/%d", r.QuestionsCorrect, r.QuestionsTotal)
			}
			list += fmt.Sprintf("%s %s  得分 %-3d 答对 %s\n",
				theme.Correct.Render("✓"), r.Date, r.Score, acc)
		} else {
			list += theme.Hint.Render(fmt.Sprintf("✗ %s  未打卡", r.Date)) + "\n"
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", list)
	return lipgloss.NewStyle().Padding(1, 4).Render(body)
}
