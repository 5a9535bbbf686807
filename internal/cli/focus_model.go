package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/estudia-cli/estudia/internal/cli/formatter"
	"github.com/estudia-cli/estudia/internal/domain"
	"github.com/estudia-cli/estudia/internal/timer"
)

type focusKeyMap struct {
	Pause key.Binding
	Quit  key.Binding
}

var focusKeys = focusKeyMap{
	Pause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pausar/continuar"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "abandonar"),
	),
}

type tickMsg time.Duration

type phaseDoneMsg domain.PomodoroPhase

// focusModel renders one running pomodoro countdown. The timer handle runs
// in its own goroutine and feeds the model through the events channel.
type focusModel struct {
	phase     domain.PomodoroPhase
	label     string
	total     time.Duration
	remaining time.Duration

	handle *timer.Handle
	events chan tea.Msg
	bar    progress.Model

	completed bool
	abandoned bool
}

func newFocusModel(phase domain.PomodoroPhase, label string, total time.Duration) focusModel {
	events := make(chan tea.Msg, 8)
	handle := timer.Start(phase, total, time.Second, timer.Callbacks{
		OnTick: func(remaining time.Duration) { events <- tickMsg(remaining) },
		OnDone: func(p domain.PomodoroPhase) { events <- phaseDoneMsg(p) },
	})
	bar := progress.New(progress.WithGradient("#fe8019", "#8ec07c"))
	return focusModel{
		phase:     phase,
		label:     label,
		total:     total,
		remaining: total,
		handle:    handle,
		events:    events,
		bar:       bar,
	}
}

func (m focusModel) Init() tea.Cmd {
	return m.waitEvent
}

func (m focusModel) waitEvent() tea.Msg {
	return <-m.events
}

func (m focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, focusKeys.Quit):
			m.abandoned = true
			m.handle.Stop()
			return m, tea.Quit
		case key.Matches(msg, focusKeys.Pause):
			if m.handle.Paused() {
				m.handle.Resume()
			} else {
				m.handle.Pause()
			}
			return m, nil
		}
		return m, nil

	case tickMsg:
		m.remaining = time.Duration(msg)
		return m, m.waitEvent

	case phaseDoneMsg:
		m.remaining = 0
		m.completed = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.bar.Width = width
		}
		return m, nil
	}
	return m, nil
}

func (m focusModel) View() string {
	title := phaseTitle(m.phase)
	if m.label != "" {
		title += " · " + m.label
	}

	elapsed := m.total - m.remaining
	ratio := 0.0
	if m.total > 0 {
		ratio = float64(elapsed) / float64(m.total)
	}

	state := ""
	switch {
	case m.completed:
		state = formatter.StyleGreen.Render("¡Completado!")
	case m.abandoned:
		state = formatter.StyleRed.Render("Abandonado")
	case m.handle.Paused():
		state = formatter.StyleYellow.Render("En pausa")
	}

	body := fmt.Sprintf("%s\n\n%s  %s\n\n%s\n\n%s",
		formatter.Header(title),
		formatter.Bold(clock(m.remaining)),
		state,
		m.bar.ViewAs(ratio),
		formatter.Dim("p pausar · q abandonar"))
	return body + "\n"
}

// ElapsedMinutes reports whole minutes consumed, for session accounting.
func (m focusModel) ElapsedMinutes() int {
	return int((m.total - m.remaining) / time.Minute)
}

func phaseTitle(phase domain.PomodoroPhase) string {
	switch phase {
	case domain.PhaseShortBreak:
		return "Descanso corto"
	case domain.PhaseLongBreak:
		return "Descanso largo"
	default:
		return "Sesión de enfoque"
	}
}

func clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
