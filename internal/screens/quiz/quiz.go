package quiz

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumeng/mathquest/internal/progress"
	"github.com/lumeng/mathquest/internal/questionbank"
	"github.com/lumeng/mathquest/internal/router"
	"github.com/lumeng/mathquest/internal/screen"
	"github.com/lumeng/mathquest/internal/ui/components"
	"github.com/lumeng/mathquest/internal/ui/layout"
	"github.com/lumeng/mathquest/internal/ui/theme"
)

// SessionSize is the number of questions drawn per training session.
const SessionSize = 10

type wrongRecordedMsg struct{ Err error }
type checkinRecordedMsg struct{ Err error }

// QuizScreen runs one training session: answer sampled questions one by
// one, log misses to the wrong-question book, and report the completed
// session as a check-in.
type QuizScreen struct {
	tracker *progress.Tracker
	bank    *questionbank.Bank

	stage, topic, level string

	questions []questionbank.Question
	current   int
	score     int
	choice    components.MultiChoice

	completed  bool
	persistErr error
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New samples a session's worth of questions and starts at the first.
func New(tracker *progress.Tracker, bank *questionbank.Bank, stage, topic, level string) *QuizScreen {
	s := &QuizScreen{
		tracker: tracker,
		bank:    bank,
		stage:   stage,
		topic:   topic,
		level:   level,
	}
	s.questions = bank.Sample(stage, topic, level, SessionSize)
	if len(s.questions) > 0 {
		s.choice = newChoice(s.questions[0])
	}
	return s
}

func newChoice(q questionbank.Question) components.MultiChoice {
	return components.NewMultiChoice(q.Prompt, q.Options, q.AnswerIndex)
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return fmt.Sprintf("%s · %s · %s", s.stage, s.topic, s.level)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.completed {
		return []layout.KeyHint{
			{Key: "R", Description: "再来一组"},
			{Key: "Esc", Description: "返回"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter", Description: "确认"},
		{Key: "Esc", Description: "退出本组"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wrongRecordedMsg:
		if msg.Err != nil {
			s.persistErr = msg.Err
		}
		return s, nil

	case checkinRecordedMsg:
		if msg.Err != nil {
			s.persistErr = msg.Err
		}
		return s, nil

	case tea.KeyMsg:
		if len(s.questions) == 0 {
			return s, nil
		}
		if s.completed {
			if msg.String() == "r" {
				fresh := New(s.tracker, s.bank, s.stage, s.topic, s.level)
				return s, func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: fresh}
				}
			}
			return s, nil
		}

		if s.choice.Submitted {
			if msg.String() == "enter" {
				return s, s.advance()
			}
			return s, nil
		}

		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			return s, s.afterSubmit()
		}
		return s, cmd
	}
	return s, nil
}

// afterSubmit scores the answer and logs a miss.
func (s *QuizScreen) afterSubmit() tea.Cmd {
	if s.choice.IsCorrect() {
		s.score++
		return nil
	}

	detail := progress.WrongDetail{
		Question:      s.questions[s.current].Prompt,
		CorrectAnswer: s.choice.Correct(),
		UserAnswer:    s.choice.Chosen(),
		Category:      fmt.Sprintf("%s-%s", s.stage, s.topic),
		Level:         s.level,
	}
	return func() tea.Msg {
		return wrongRecordedMsg{Err: s.tracker.RecordWrongQuestion(context.Background(), detail)}
	}
}

// advance moves to the next question, or completes the session and
// reports it as a check-in.
func (s *QuizScreen) advance() tea.Cmd {
	if s.current < len(s.questions)-1 {
		s.current++
		s.choice = newChoice(s.questions[s.current])
		return nil
	}

	s.completed = true
	result := progress.SessionResult{
		Score:            s.score,
		QuestionsCorrect: s.score,
		QuestionsTotal:   len(s.questions),
	}
	return func() tea.Msg {
		return checkinRecordedMsg{Err: s.tracker.RecordCheckin(context.Background(), result)}
	}
}

func (s *QuizScreen) View(width, height int) string {
	if len(s.questions) == 0 {
		return theme.Hint.Render("  该类别暂无题目")
	}
	if s.completed {
		return s.summaryView(width)
	}

	bar := components.ProgressBar{
		Label:       fmt.Sprintf("第 %d/%d 题", s.current+1, len(s.questions)),
		Percent:     float64(s.current) / float64(len(s.questions)),
		ShowPercent: false,
		Width:       width - 12,
	}

	var feedback string
	if s.choice.Submitted {
		if s.choice.IsCorrect() {
			feedback = theme.Correct.Render("回答正确！") + theme.Hint.Render("  回车继续")
		} else {
			feedback = theme.Incorrect.Render("回答错误，已记入错题本") + theme.Hint.Render("  回车继续")
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		bar.View(),
		"",
		s.choice.View(),
		feedback,
	)
	return lipgloss.NewStyle().Padding(1, 4).Render(body)
}

func (s *QuizScreen) summaryView(width int) string {
	total := len(s.questions)
	accuracy := float64(s.score) / float64(total)

	verdict := "需要强化！ 💪"
	switch {
	case s.score == total:
		verdict = "完美通关！ 🎉"
	case accuracy >= 0.8:
		verdict = "表现优秀！ 👍"
	case accuracy >= 0.6:
		verdict = "继续加油！ 😊"
	}

	lines := fmt.Sprintf(
		"%s\n\n本次得分：%d / %d\n准确率：%.0f%%\n\n今日打卡已更新",
		theme.Title.Render(verdict), s.score, total, accuracy*100,
	)
	if s.persistErr != nil {
		lines += "\n" + theme.Incorrect.Render("部分结果保存失败: "+s.persistErr.Error())
	}

	return lipgloss.NewStyle().Padding(1, 4).Render(theme.Card.Render(lines))
}
