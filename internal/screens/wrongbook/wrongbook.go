package wrongbook

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumeng/mathquest/internal/progress"
	"github.com/lumeng/mathquest/internal/screen"
	"github.com/lumeng/mathquest/internal/store"
	"github.com/lumeng/mathquest/internal/ui/components"
	"github.com/lumeng/mathquest/internal/ui/layout"
	"github.com/lumeng/mathquest/internal/ui/theme"
)

type loadedMsg struct {
	Entries    []store.WrongQuestion
	Unreviewed int
}

type reviewedMsg struct{ Err error }

// WrongbookScreen lists missed questions, newest first, with a text
// filter. Entries can be marked reviewed one at a time.
type WrongbookScreen struct {
	tracker *progress.Tracker

	entries    []store.WrongQuestion
	unreviewed int
	selected   int
	loaded     bool

	search components.SearchBox
	errMsg string
}

var _ screen.Screen = (*WrongbookScreen)(nil)
var _ screen.KeyHintProvider = (*WrongbookScreen)(nil)

// New creates the wrong-question book screen.
func New(tracker *progress.Tracker) *WrongbookScreen {
	return &WrongbookScreen{
		tracker: tracker,
		search:  components.NewSearchBox("题目或类别"),
	}
}

func (s *WrongbookScreen) Init() tea.Cmd {
	return s.load
}

func (s *WrongbookScreen) load() tea.Msg {
	ctx := context.Background()
	return loadedMsg{
		Entries:    s.tracker.WrongQuestions(ctx),
		Unreviewed: s.tracker.UnreviewedCount(ctx),
	}
}

func (s *WrongbookScreen) Title() string {
	return "错题本"
}

func (s *WrongbookScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused {
		return []layout.KeyHint{
			{Key: "Enter", Description: "应用筛选"},
			{Key: "Esc", Description: "返回"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "标记已复习"},
		{Key: "/", Description: "搜索"},
		{Key: "↑↓", Description: "选择"},
		{Key: "Esc", Description: "返回"},
	}
}

// visible applies the search filter.
func (s *WrongbookScreen) visible() []store.WrongQuestion {
	q := strings.TrimSpace(s.search.Query())
	if q == "" {
		return s.entries
	}
	var out []store.WrongQuestion
	for _, wq := range s.entries {
		if strings.Contains(wq.Question, q) || strings.Contains(wq.Category, q) {
			out = append(out, wq)
		}
	}
	return out
}

func (s *WrongbookScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.entries = msg.Entries
		s.unreviewed = msg.Unreviewed
		s.loaded = true
		if s.selected >= len(s.entries) {
			s.selected = 0
		}
		return s, nil

	case reviewedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.load

	case screen.RefreshMsg:
		return s, s.load

	case tea.KeyMsg:
		if s.search.Focused {
			if msg.String() == "enter" {
				s.search.Blur()
				s.selected = 0
				return s, nil
			}
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			return s, cmd
		}

		visible := s.visible()
		switch msg.String() {
		case "/":
			return s, s.search.Focus()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(visible)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(visible) && !visible[s.selected].Reviewed {
				id := visible[s.selected].ID
				return s, func() tea.Msg {
					return reviewedMsg{Err: s.tracker.MarkReviewed(context.Background(), id)}
				}
			}
		}
	}
	return s, nil
}

func (s *WrongbookScreen) View(width, height int) string {
	if !s.loaded {
		return theme.Hint.Render("  加载中...")
	}
	if s.errMsg != "" {
		return theme.Incorrect.Render("  " + s.errMsg)
	}

	header := theme.Title.Render("错题本") + "  " +
		theme.Hint.Render(fmt.Sprintf("%d 条，%d 待复习", len(s.entries), s.unreviewed))

	visible := s.visible()
	if len(visible) == 0 {
		return lipgloss.NewStyle().Padding(1, 4).Render(
			header + "\n\n" + s.search.View() + "\n\n" + theme.Hint.Render("没有匹配的错题"))
	}

	// Leave room for header, search box and padding.
	maxRows := height - 7
	if maxRows < 1 {
		maxRows = 1
	}
	start := 0
	if s.selected >= maxRows {
		start = s.selected - maxRows + 1
	}

	var list string
	for i := start; i < len(visible) && i < start+maxRows; i++ {
		wq := visible[i]
		mark := theme.Incorrect.Render("●")
		if wq.Reviewed {
			mark = theme.Correct.Render("✓")
		}
		line := fmt.Sprintf("%s %s  %s", mark, wq.Date,
			fmt.Sprintf("%s  正确: %s  你的答案: %s", wq.Question, wq.CorrectAnswer, wq.UserAnswer))
		if i == s.selected {
			list += theme.Selected.Render("▸ ") + line + "\n"
		} else {
			list += "  " + line + "\n"
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		s.search.View(),
		"",
		list,
	)
	return lipgloss.NewStyle().Padding(1, 4).Render(body)
}
