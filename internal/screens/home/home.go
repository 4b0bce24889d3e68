package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumeng/mathquest/internal/progress"
	"github.com/lumeng/mathquest/internal/questionbank"
	"github.com/lumeng/mathquest/internal/router"
	"github.com/lumeng/mathquest/internal/screen"
	"github.com/lumeng/mathquest/internal/screens/checkinlog"
	"github.com/lumeng/mathquest/internal/screens/ranking"
	"github.com/lumeng/mathquest/internal/screens/training"
	"github.com/lumeng/mathquest/internal/screens/wrongbook"
	"github.com/lumeng/mathquest/internal/store"
	"github.com/lumeng/mathquest/internal/ui/components"
	"github.com/lumeng/mathquest/internal/ui/theme"
)

type dashboardMsg struct {
	Profile    store.Profile
	Streak     int
	CheckedIn  bool
	Unreviewed int
}

// HomeScreen is the app dashboard: profile summary, today's check-in
// state and the main navigation menu.
type HomeScreen struct {
	tracker *progress.Tracker
	bank    *questionbank.Bank

	menu   components.Menu
	data   dashboardMsg
	loaded bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(tracker *progress.Tracker, bank *questionbank.Bank) *HomeScreen {
	s := &HomeScreen{tracker: tracker, bank: bank}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "专项训练", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: training.New(tracker, bank)}
			}
		}},
		{Label: "错题本", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: wrongbook.New(tracker)}
			}
		}},
		{Label: "打卡记录", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: checkinlog.New(tracker)}
			}
		}},
		{Label: "排行榜", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: ranking.New(tracker)}
			}
		}},
		{Label: "退出", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *HomeScreen) Init() tea.Cmd {
	return s.load
}

func (s *HomeScreen) load() tea.Msg {
	ctx := context.Background()
	return dashboardMsg{
		Profile:    s.tracker.Profile(ctx),
		Streak:     s.tracker.Streak(ctx),
		CheckedIn:  s.tracker.IsTodayCheckedIn(ctx),
		Unreviewed: s.tracker.UnreviewedCount(ctx),
	}
}

func (s *HomeScreen) Title() string {
	return "首页"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		s.data = msg
		s.loaded = true
		s.refreshBadges()
		return s, nil

	case screen.RefreshMsg:
		return s, s.load
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// refreshBadges updates menu badges that depend on loaded data.
func (s *HomeScreen) refreshBadges() {
	for i := range s.menu.Items {
		if s.menu.Items[i].Label == "错题本" {
			if s.data.Unreviewed > 0 {
				s.menu.Items[i].Badge = fmt.Sprintf("%d 待复习", s.data.Unreviewed)
			} else {
				s.menu.Items[i].Badge = ""
			}
		}
	}
}

func (s *HomeScreen) View(width, height int) string {
	if !s.loaded {
		return theme.Hint.Render("  加载中...")
	}

	p := s.data.Profile

	checkin := theme.Incorrect.Render("今日未打卡")
	if s.data.CheckedIn {
		checkin = theme.Correct.Render("今日已打卡 ✓")
	}

	card := theme.Card.Render(fmt.Sprintf(
		"%s\n\n总积分  %d\n等级    %s\n连续    %d 天\n%s",
		theme.Title.Render("我的进度"),
		p.TotalScore, p.Level, s.data.Streak, checkin,
	))

	body := lipgloss.JoinVertical(lipgloss.Left,
		card,
		"",
		s.menu.View(),
	)

	return lipgloss.NewStyle().Padding(1, 4).Render(body)
}
