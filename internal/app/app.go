package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumeng/mathquest/internal/progress"
	"github.com/lumeng/mathquest/internal/questionbank"
	"github.com/lumeng/mathquest/internal/router"
	"github.com/lumeng/mathquest/internal/screen"
	"github.com/lumeng/mathquest/internal/screens/home"
	"github.com/lumeng/mathquest/internal/ui/layout"
)

// Options carries the app's dependencies.
type Options struct {
	Tracker *progress.Tracker
	Bank    *questionbank.Bank
}

type headerStatsMsg struct {
	Score  int
	Streak int
}

type catalogLoadedMsg struct{ Err error }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int

	score  int
	streak int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		opts:   opts,
		router: router.New(home.New(opts.Tracker, opts.Bank)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Active().Init(),
		m.loadHeaderStats,
		m.loadCatalog,
	)
}

func (m AppModel) loadHeaderStats() tea.Msg {
	ctx := context.Background()
	return headerStatsMsg{
		Score:  m.opts.Tracker.Profile(ctx).TotalScore,
		Streak: m.opts.Tracker.Streak(ctx),
	}
}

// loadCatalog performs the one-time catalog fetch. Queries issued
// before it completes see an empty pending bank rather than blocking.
func (m AppModel) loadCatalog() tea.Msg {
	return catalogLoadedMsg{Err: m.opts.Bank.Load(context.Background())}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerStatsMsg:
		m.score = msg.Score
		m.streak = msg.Streak
		return m, nil

	case catalogLoadedMsg:
		if msg.Err != nil {
			fmt.Fprintln(os.Stderr, "warning: question catalog unavailable:", msg.Err)
		}
		// Let the active screen pick up the new bank status.
		cmd := m.router.Update(screen.RefreshMsg{})
		return m, cmd

	case screen.RefreshMsg:
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.loadHeaderStats)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.score, m.streak, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter", Description: "确认"},
		{Key: "Ctrl+C", Description: "退出"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
