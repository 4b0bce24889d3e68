package training

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumeng/mathquest/internal/progress"
	"github.com/lumeng/mathquest/internal/questionbank"
	"github.com/lumeng/mathquest/internal/router"
	"github.com/lumeng/mathquest/internal/screen"
	"github.com/lumeng/mathquest/internal/screens/quiz"
	"github.com/lumeng/mathquest/internal/ui/layout"
	"github.com/lumeng/mathquest/internal/ui/theme"
)

// TrainingScreen lets the learner pick a (stage, topic) category and a
// level, then starts a quiz session on that bucket.
type TrainingScreen struct {
	tracker *progress.Tracker
	bank    *questionbank.Bank

	categories []questionbank.Category
	catIndex   int

	pickingLevel bool
	levelIndex   int
}

var _ screen.Screen = (*TrainingScreen)(nil)
var _ screen.KeyHintProvider = (*TrainingScreen)(nil)

// New creates the training picker.
func New(tracker *progress.Tracker, bank *questionbank.Bank) *TrainingScreen {
	s := &TrainingScreen{tracker: tracker, bank: bank}
	s.categories = bank.Categories()
	return s
}

func (s *TrainingScreen) Init() tea.Cmd {
	return nil
}

func (s *TrainingScreen) Title() string {
	return "专项训练"
}

func (s *TrainingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter", Description: "确认"},
		{Key: "Esc", Description: "返回"},
	}
}

func (s *TrainingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.RefreshMsg:
		// The catalog may have finished loading while we were covered
		// or while it was still pending.
		s.categories = s.bank.Categories()
		if s.catIndex >= len(s.categories) {
			s.catIndex = 0
		}
		return s, nil

	case tea.KeyMsg:
		if len(s.categories) == 0 {
			return s, nil
		}
		if s.pickingLevel {
			return s.updateLevelPick(msg)
		}
		return s.updateCategoryPick(msg)
	}
	return s, nil
}

func (s *TrainingScreen) updateCategoryPick(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.catIndex > 0 {
			s.catIndex--
		}
	case "down", "j":
		if s.catIndex < len(s.categories)-1 {
			s.catIndex++
		}
	case "enter":
		s.pickingLevel = true
		s.levelIndex = 0
	}
	return s, nil
}

func (s *TrainingScreen) updateLevelPick(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	cat := s.categories[s.catIndex]
	switch msg.String() {
	case "up", "k":
		if s.levelIndex > 0 {
			s.levelIndex--
		}
	case "down", "j":
		if s.levelIndex < len(cat.Levels)-1 {
			s.levelIndex++
		}
	case "left", "h":
		s.pickingLevel = false
	case "enter":
		lvl := cat.Levels[s.levelIndex]
		return s, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: quiz.New(s.tracker, s.bank, cat.Stage, cat.Topic, lvl),
			}
		}
	}
	return s, nil
}

func (s *TrainingScreen) View(width, height int) string {
	switch s.bank.Status() {
	case questionbank.StatusPending:
		return theme.Hint.Render("  题库加载中...")
	case questionbank.StatusFailed:
		return theme.Incorrect.Render("  题库加载失败") + "\n\n" +
			theme.Hint.Render("  当前没有可用的题目，请检查题库配置后重启。")
	}

	if len(s.categories) == 0 {
		return theme.Hint.Render("  题库为空")
	}

	var left string
	left += theme.Title.Render("选择类别") + "\n\n"
	for i, c := range s.categories {
		line := fmt.Sprintf("%s · %s", c.Stage, c.Topic)
		if i == s.catIndex {
			left += theme.Selected.Render("  ▸ "+line) + "\n"
		} else {
			left += theme.Unselected.Render("    "+line) + "\n"
		}
	}

	var right string
	if s.pickingLevel {
		cat := s.categories[s.catIndex]
		right += theme.Title.Render("选择难度") + "\n\n"
		for i, lvl := range cat.Levels {
			if i == s.levelIndex {
				right += theme.Selected.Render("  ▸ "+lvl) + "\n"
			} else {
				right += theme.Unselected.Render("    "+lvl) + "\n"
			}
		}
	} else {
		right = theme.Hint.Render("按 Enter 查看难度")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(width/2).Render(left),
		right,
	)
	return lipgloss.NewStyle().Padding(1, 4).Render(body)
}
