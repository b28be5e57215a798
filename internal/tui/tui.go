// Package tui renders the interactive session timer
package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/horas/internal/auth"
	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/timecalc"
)

// RunTimer runs the timer for session until it is finished, the user
// leaves or ctx is cancelled, then prints the outcome to out. now is the
// clock the session was stored with.
func RunTimer(ctx context.Context, out io.Writer, ctl SessionControl, owner auth.Owner, session *models.Session, now func() time.Time) error {
	model := NewTimerModel(ctx, ctl, owner, session, now)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(TimerModel)
	if !ok {
		return nil
	}
	if m.Err() != nil {
		fmt.Fprintf(out, "❌ Error: %v\n", m.Err())
	}

	s := m.Session()
	switch {
	case s.Status == models.SessionFinished:
		fmt.Fprintf(out, "⏹️  Finished session %s\n", s.ID)
		fmt.Fprintf(out, "📊 Session duration: %s\n", timecalc.FormatDuration(s.Accumulated()))
	case m.Leaving():
		fmt.Fprintf(out, "\n💡 Session %s is still %s (%s so far)\n", s.ID, s.Status, timecalc.FormatDuration(m.Elapsed()))
		fmt.Fprintln(out, "   Use 'horas timer <session-id>' to reopen it or 'horas finish <session-id>' to stop it.")
	}
	return nil
}
