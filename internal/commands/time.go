package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/horas/internal/auth"
	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/parser"
	"github.com/balkashynov/horas/internal/timecalc"
	"github.com/balkashynov/horas/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start <work-item-id>",
	Short: "Start a session on a work item",
	Long: `Start a session on a work item. Opens the interactive timer by default,
use --no-ui for a plain start.

Examples:
  horas start 3f2a         # Start and open the timer
  horas start 3f2a --no-ui # Start without the timer`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runStart),
}

func runStart(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	itemID, err := resolveWorkItemID(ctx, a, args[0])
	if err != nil {
		return err
	}

	session, err := a.tracker.Start(ctx, a.owner, itemID)
	if err != nil {
		return err
	}

	if noUI, _ := cmd.Flags().GetBool("no-ui"); noUI {
		w := out(cmd)
		fmt.Fprintf(w, "⏱️  Started session %s\n", shortID(session.ID))
		fmt.Fprintf(w, "Started at: %s\n", session.StartedAt.In(a.tracker.Location()).Format("15:04:05"))
		return nil
	}
	return openTimer(cmd, a, session.ID)
}

var timerCmd = &cobra.Command{
	Use:   "timer <session-id>",
	Short: "Open the live timer for a session",
	Long:  "Open the live timer for a session. Keys: p pause, r resume, f finish, q leave running.",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := resolveSessionID(cmd.Context(), a, args[0])
		if err != nil {
			return err
		}
		return openTimer(cmd, a, id)
	}),
}

// openTimer reloads the session with its work item and runs the TUI
func openTimer(cmd *cobra.Command, a *app, sessionID string) error {
	view, err := a.tracker.GetSession(cmd.Context(), a.owner, sessionID)
	if err != nil {
		return err
	}
	session := view.Session
	return tui.RunTimer(cmd.Context(), out(cmd), a.tracker, a.owner, &session, a.tracker.Now)
}

type sessionAction func(ctx context.Context, owner auth.Owner, sessionID string) (*models.Session, error)

// sessionCommand builds pause, resume and finish, which differ only in
// the tracker call and the message
func sessionCommand(use, short, verb string, action func(a *app) sessionAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <session-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, a, args[0])
			if err != nil {
				return err
			}
			session, err := action(a)(ctx, a.owner, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%s session %s (%s, %s)\n",
				verb,
				shortID(session.ID),
				session.Status,
				timecalc.FormatDuration(timecalc.SessionSeconds(session, a.tracker.Now())))
			return nil
		}),
	}
}

var pauseCmd = sessionCommand("pause", "Pause an active session", "⏸️  Paused",
	func(a *app) sessionAction { return a.tracker.Pause })

var resumeCmd = sessionCommand("resume", "Resume a paused session", "▶️  Resumed",
	func(a *app) sessionAction { return a.tracker.Resume })

var finishCmd = sessionCommand("finish", "Finish a session", "⏹️  Finished",
	func(a *app) sessionAction { return a.tracker.Finish })

var logCmd = &cobra.Command{
	Use:   "log <work-item-id> <duration>",
	Short: "Log time already worked as a finished session",
	Long: `Log time already worked as a finished session ending now.

Duration formats: 1:30 (HH:MM), 1:30:15, 90m, 1h30m, 5400 (seconds).`,
	Args: cobra.ExactArgs(2),
	RunE: withApp(runLog),
}

func runLog(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	itemID, err := resolveWorkItemID(ctx, a, args[0])
	if err != nil {
		return err
	}
	seconds, err := parser.ParseDuration(args[1])
	if err != nil {
		return err
	}

	session, err := a.tracker.LogManual(ctx, a.owner, itemID, seconds)
	if err != nil {
		return err
	}
	fmt.Fprintf(out(cmd), "Logged %s as session %s\n", timecalc.FormatDuration(session.Accumulated()), shortID(session.ID))
	return nil
}

var dropCmd = &cobra.Command{
	Use:   "drop <session-id>",
	Short: "Delete a session",
	Long:  "Delete a session in any status, including finished ones.",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		id, err := resolveSessionID(ctx, a, args[0])
		if err != nil {
			return err
		}
		if err := a.tracker.DeleteSession(ctx, a.owner, id); err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "Deleted session %s\n", shortID(id))
		return nil
	}),
}

var activeCmd = &cobra.Command{
	Use:     "active",
	Aliases: []string{"status"},
	Short:   "Show running sessions",
	Args:    cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		sessions, err := a.tracker.ListActiveSessions(cmd.Context(), a.owner)
		if err != nil {
			return err
		}

		w := out(cmd)
		if len(sessions) == 0 {
			fmt.Fprintln(w, "No active sessions")
			return nil
		}
		loc := a.tracker.Location()
		for _, s := range sessions {
			name := ""
			if s.WorkItem != nil {
				name = s.WorkItem.Name
			}
			fmt.Fprintf(w, "⏱️  %s  %s  started %s  elapsed %s\n",
				shortID(s.ID),
				truncate(name, 40),
				s.StartedAt.In(loc).Format("15:04:05"),
				timecalc.FormatDurationHHMMSS(s.Seconds))
		}
		return nil
	}),
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start without the interactive timer")
}
