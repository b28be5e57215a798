package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/horas/internal/auth"
	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/timecalc"
)

// fakeControl applies transitions in memory against a fixed clock
type fakeControl struct {
	now   time.Time
	calls []string
}

func (f *fakeControl) apply(event string, s *models.Session) *models.Session {
	f.calls = append(f.calls, event)
	out := *s
	switch event {
	case "pause":
		acc := timecalc.Elapsed(s.StartedAt, f.now)
		out.AccumulatedSeconds = &acc
		out.Status = models.SessionPaused
	case "resume":
		out.StartedAt = timecalc.RebaseStart(s.Accumulated(), f.now)
		out.AccumulatedSeconds = nil
		out.Status = models.SessionActive
	case "finish":
		acc := timecalc.SessionSeconds(s, f.now)
		end := f.now
		out.AccumulatedSeconds = &acc
		out.FinishedAt = &end
		out.Status = models.SessionFinished
	}
	return &out
}

type controlFor struct {
	f       *fakeControl
	current *models.Session
	ctxs    []context.Context
}

func (c *controlFor) do(event string) (*models.Session, error) {
	c.current = c.f.apply(event, c.current)
	return c.current, nil
}

func (c *controlFor) Pause(ctx context.Context, _ auth.Owner, _ string) (*models.Session, error) {
	c.ctxs = append(c.ctxs, ctx)
	return c.do("pause")
}

func (c *controlFor) Resume(ctx context.Context, _ auth.Owner, _ string) (*models.Session, error) {
	c.ctxs = append(c.ctxs, ctx)
	return c.do("resume")
}

func (c *controlFor) Finish(ctx context.Context, _ auth.Owner, _ string) (*models.Session, error) {
	c.ctxs = append(c.ctxs, ctx)
	return c.do("finish")
}

func keyPress(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends k and, when it starts an action, feeds the result back
func press(t *testing.T, m TimerModel, k string) (TimerModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyPress(k))
	m = next.(TimerModel)
	if cmd == nil {
		return m, nil
	}
	msg := cmd()
	if sm, ok := msg.(sessionMsg); ok {
		next, cmd = m.Update(sm)
		return next.(TimerModel), cmd
	}
	return m, cmd
}

func newTestTimer(t *testing.T) (TimerModel, *fakeControl) {
	t.Helper()
	m, f, _ := newTestTimerWithContext(t, context.Background())
	return m, f
}

func newTestTimerWithContext(t *testing.T, ctx context.Context) (TimerModel, *fakeControl, *controlFor) {
	t.Helper()
	start := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	f := &fakeControl{now: start}
	session := &models.Session{
		ID:        "s1",
		StartedAt: start,
		Status:    models.SessionActive,
		WorkItem:  &models.WorkItem{Name: "Invoice export"},
	}
	owner, err := auth.NewOwner("alice")
	if err != nil {
		t.Fatal(err)
	}
	ctl := &controlFor{f: f, current: session}
	m := NewTimerModel(ctx, ctl, owner, session, func() time.Time { return f.now })
	return m, f, ctl
}

func TestTimerPauseResumeFinish(t *testing.T) {
	m, f := newTestTimer(t)

	f.now = f.now.Add(100 * time.Second)
	if got := m.Elapsed(); got != 100 {
		t.Fatalf("Elapsed = %d, want 100", got)
	}

	m, _ = press(t, m, "p")
	if m.Session().Status != models.SessionPaused {
		t.Fatalf("status = %s, want PAUSED", m.Session().Status)
	}

	f.now = f.now.Add(time.Hour)
	if got := m.Elapsed(); got != 100 {
		t.Errorf("paused Elapsed = %d, want 100", got)
	}

	m, _ = press(t, m, "r")
	f.now = f.now.Add(150 * time.Second)
	if got := m.Elapsed(); got != 250 {
		t.Errorf("resumed Elapsed = %d, want 250", got)
	}

	m, cmd := press(t, m, "f")
	if m.Session().Status != models.SessionFinished {
		t.Fatalf("status = %s, want FINISHED", m.Session().Status)
	}
	if m.Session().Accumulated() != 250 {
		t.Errorf("accumulated = %d, want 250", m.Session().Accumulated())
	}
	if cmd == nil {
		t.Fatal("finish should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("finish should return tea.Quit")
	}
}

type ctxKey struct{}

func TestTimerActionsUseCallerContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "cli")
	m, _, ctl := newTestTimerWithContext(t, ctx)

	m, _ = press(t, m, "p")
	m, _ = press(t, m, "r")
	press(t, m, "f")

	if len(ctl.ctxs) != 3 {
		t.Fatalf("got %d calls, want 3", len(ctl.ctxs))
	}
	for i, got := range ctl.ctxs {
		if got.Value(ctxKey{}) != "cli" {
			t.Errorf("call %d ran without the caller's context", i)
		}
	}
}

func TestTimerIgnoresIllegalKeys(t *testing.T) {
	m, f := newTestTimer(t)

	// resume while ACTIVE
	m, cmd := press(t, m, "r")
	if cmd != nil || len(f.calls) != 0 {
		t.Errorf("resume on an active session should do nothing, calls %v", f.calls)
	}

	m, _ = press(t, m, "p")
	m, _ = press(t, m, "p")
	if len(f.calls) != 1 {
		t.Errorf("second pause should be ignored, calls %v", f.calls)
	}
	if m.Session().Status != models.SessionPaused {
		t.Errorf("status = %s, want PAUSED", m.Session().Status)
	}
}

func TestTimerQuitLeavesSessionRunning(t *testing.T) {
	m, f := newTestTimer(t)

	next, cmd := m.Update(keyPress("q"))
	m = next.(TimerModel)
	if !m.Leaving() {
		t.Error("expected Leaving after q")
	}
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if len(f.calls) != 0 {
		t.Errorf("q must not touch the session, calls %v", f.calls)
	}
	if m.Session().Status != models.SessionActive {
		t.Errorf("status = %s, want ACTIVE", m.Session().Status)
	}
}

func TestTimerView(t *testing.T) {
	m, f := newTestTimer(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(TimerModel)
	f.now = f.now.Add(65 * time.Second)

	view := m.View()
	for _, want := range []string{"Invoice export", "ACTIVE", "pause"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}
}

func TestClockText(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00"},
		{65, "01:05"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
	}
	for _, tt := range tests {
		if got := clockText(tt.seconds); got != tt.want {
			t.Errorf("clockText(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
