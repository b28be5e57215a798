package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/horas/internal/auth"
	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/timecalc"
)

// SessionControl is the part of the tracker the timer drives
type SessionControl interface {
	Pause(ctx context.Context, owner auth.Owner, sessionID string) (*models.Session, error)
	Resume(ctx context.Context, owner auth.Owner, sessionID string) (*models.Session, error)
	Finish(ctx context.Context, owner auth.Owner, sessionID string) (*models.Session, error)
}

type timerKeyMap struct {
	Pause  key.Binding
	Resume key.Binding
	Finish key.Binding
	Quit   key.Binding
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Resume, k.Finish, k.Quit}
}

func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newTimerKeyMap() timerKeyMap {
	return timerKeyMap{
		Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Resume: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		Finish: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "leave running")),
	}
}

// TimerModel is the live clock for one session. Elapsed time is always
// derived from the stored session and the clock, never counted in memory.
type TimerModel struct {
	width  int
	height int

	ctx     context.Context
	ctl     SessionControl
	owner   auth.Owner
	session *models.Session
	item    *models.WorkItem
	now     func() time.Time

	keys timerKeyMap
	help help.Model

	frame   int
	busy    bool
	leaving bool
	err     error
}

// timerTickMsg is sent every second to redraw the clock
type timerTickMsg time.Time

// sessionMsg carries the result of a pause, resume or finish
type sessionMsg struct {
	session *models.Session
	err     error
}

// NewTimerModel creates a timer for session. Pause, resume and finish run
// under ctx.
func NewTimerModel(ctx context.Context, ctl SessionControl, owner auth.Owner, session *models.Session, now func() time.Time) TimerModel {
	if now == nil {
		now = time.Now
	}
	m := TimerModel{
		ctx:     ctx,
		ctl:     ctl,
		owner:   owner,
		session: session,
		item:    session.WorkItem,
		now:     now,
		keys:    newTimerKeyMap(),
		help:    help.New(),
	}
	m.syncKeys()
	return m
}

// Session returns the session as last stored
func (m TimerModel) Session() *models.Session {
	return m.session
}

// Elapsed returns the session's seconds as of now
func (m TimerModel) Elapsed() int64 {
	return timecalc.SessionSeconds(m.session, m.now())
}

// Err returns the last failed action, if any
func (m TimerModel) Err() error {
	return m.err
}

// Leaving reports whether the user quit with the session still open
func (m TimerModel) Leaving() bool {
	return m.leaving
}

func (m TimerModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// syncKeys enables only the actions legal from the current status
func (m *TimerModel) syncKeys() {
	status := m.session.Status
	m.keys.Pause.SetEnabled(!m.busy && status == models.SessionActive)
	m.keys.Resume.SetEnabled(!m.busy && status == models.SessionPaused)
	m.keys.Finish.SetEnabled(!m.busy && status != models.SessionFinished)
}

func (m TimerModel) run(action func(context.Context, auth.Owner, string) (*models.Session, error)) tea.Cmd {
	id := m.session.ID
	return func() tea.Msg {
		s, err := action(m.ctx, m.owner, id)
		return sessionMsg{session: s, err: err}
	}
}

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.frame = (m.frame + 1) % 4
		if m.leaving || m.session.Status == models.SessionFinished {
			return m, nil
		}
		return m, tick()

	case sessionMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			if msg.session.WorkItem == nil {
				msg.session.WorkItem = m.item
			}
			m.session = msg.session
		}
		m.syncKeys()
		if m.session.Status == models.SessionFinished {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.leaving = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.busy = true
			m.syncKeys()
			return m, m.run(m.ctl.Pause)
		case key.Matches(msg, m.keys.Resume):
			m.busy = true
			m.syncKeys()
			return m, m.run(m.ctl.Resume)
		case key.Matches(msg, m.keys.Finish):
			m.busy = true
			m.syncKeys()
			return m, m.run(m.ctl.Finish)
		}
	}

	return m, nil
}

func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var components []string
	width := m.width

	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)

	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	header := fmt.Sprintf("%s  TRACKING TIME  %s", animChars[m.frame], animChars[m.frame])
	if m.session.Status != models.SessionActive {
		header = "TRACKING TIME"
	}
	components = append(components, center.
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Render(header))

	if m.item != nil {
		name := m.item.Name
		if width > 7 && len(name) > width-4 {
			name = name[:width-7] + "..."
		}
		components = append(components, center.
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Bold(true).
			Render(name))
	}

	for _, line := range strings.Split(renderBigClock(m.Elapsed()), "\n") {
		components = append(components, center.Render(line))
	}

	components = append(components, center.Render(m.renderStatus()))

	info := fmt.Sprintf("Started at %s", m.session.StartedAt.Local().Format("15:04:05"))
	components = append(components, center.
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Render(info))

	if m.err != nil {
		components = append(components, center.
			Foreground(lipgloss.Color(ColorError)).
			Render(m.err.Error()))
	}

	content := strings.Join(components, "\n")
	panel := lipgloss.NewStyle().
		Width(width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)

	helpBar := center.Render(m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, panel, helpBar)
}

func (m TimerModel) renderStatus() string {
	color := ColorSuccess
	switch m.session.Status {
	case models.SessionPaused:
		color = ColorWarning
	case models.SessionFinished:
		color = ColorDisabledText
	}
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(m.session.Status))
	return "Status: " + label
}

// bigDigits is 5-row block art for the clock
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// clockText is HH:MM:SS, or MM:SS under an hour
func clockText(seconds int64) string {
	if seconds >= 3600 {
		return timecalc.FormatDurationHHMMSS(seconds)
	}
	return timecalc.FormatDurationHHMMSS(seconds)[3:]
}

func renderBigClock(seconds int64) string {
	var lines [5]strings.Builder
	for _, ch := range clockText(seconds) {
		art := bigDigits[ch]
		for i := range lines {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	rows := make([]string, len(lines))
	for i := range lines {
		rows[i] = style.Render(lines[i].String())
	}
	return strings.Join(rows, "\n")
}
