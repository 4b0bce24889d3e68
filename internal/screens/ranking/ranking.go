package ranking

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
	Entries  []store.RankingEntry
	UserRank int
	Profile  store.Profile
}

// RankingScreen shows the leaderboard snapshot with the learner's
// effective position marked against it.
type RankingScreen struct {
	tracker *progress.Tracker

	entries  []store.RankingEntry
	userRank int
	profile  store.Profile
	offset   int
	loaded   bool
}

var _ screen.Screen = (*RankingScreen)(nil)
var _ screen.KeyHintProvider = (*RankingScreen)(nil)

// New creates the ranking screen.
func New(tracker *progress.Tracker) *RankingScreen {
	return &RankingScreen{tracker: tracker}
}

func (s *RankingScreen) Init() tea.Cmd {
	return s.load
}

func (s *RankingScreen) load() tea.Msg {
	ctx := context.Background()
	return loadedMsg{
		Entries:  s.tracker.Rankings(ctx),
		UserRank: s.tracker.CurrentUserRank(ctx),
		Profile:  s.tracker.Profile(ctx),
	}
}

func (s *RankingScreen) Title() string {
	return "排行榜"
}

func (s *RankingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "滚动"},
		{Key: "Esc", Description: "返回"},
	}
}

func (s *RankingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.entries = msg.Entries
		s.userRank = msg.UserRank
		s.profile = msg.Profile
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
			if s.offset < len(s.entries)-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *RankingScreen) View(width, height int) string {
	if !s.loaded {
		return theme.Hint.Render("  加载中...")
	}

	header := theme.Title.Render("排行榜") + "  " +
		theme.Hint.Render(fmt.Sprintf("你的名次: 第 %d 名（%d 分）", s.userRank, s.profile.TotalScore))

	if len(s.entries) == 0 {
		return lipgloss.NewStyle().Padding(1, 4).Render(
			header + "\n\n" + theme.Hint.Render("暂无排行数据"))
	}

	maxRows := height - 5
	if maxRows < 1 {
		maxRows = 1
	}

	var list string
	for i := s.offset; i < len(s.entries) && i < s.offset+maxRows; i++ {
		e := s.entries[i]
		line := fmt.Sprintf("%3d  %-8s %5d 分  %s  🔥%d", e.Rank, e.Name, e.Score, e.Level, e.Streak)
		if e.Rank == s.userRank {
			// The learner slots in at this position.
			list += theme.Selected.Render(line+"   ← 你在这里") + "\n"
		} else {
			list += theme.Body.Render(line) + "\n"
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", list)
	return lipgloss.NewStyle().Padding(1, 4).Render(body)
}
