package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/parser"
	"github.com/balkashynov/horas/internal/timecalc"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List work items",
	Long:    "List work items, newest reference date first, with the time tracked on each",
	Args:    cobra.NoArgs,
	RunE:    withApp(runList),
}

func runList(cmd *cobra.Command, args []string, a *app) error {
	items, err := a.tracker.ListWorkItems(cmd.Context(), a.owner)
	if err != nil {
		return err
	}

	w := out(cmd)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "No work items found. Use 'horas add \"name\"' to create your first one.")
		return nil
	}

	statusFilter, _ := cmd.Flags().GetString("status")
	var want models.WorkItemStatus
	if statusFilter != "" {
		if want, err = parser.ParseStatus(statusFilter); err != nil {
			return err
		}
	}

	loc := a.tracker.Location()
	fmt.Fprintf(w, "%-8s  %-11s  %-10s  %-6s  %-10s  %s\n", "ID", "STATUS", "DATE", "BILLED", "TIME", "NAME")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, item := range items {
		if want != "" && item.Status != want {
			continue
		}
		billed := ""
		if item.Billed {
			billed = "yes"
		}
		fmt.Fprintf(w, "%-8s  %-11s  %-10s  %-6s  %-10s  %s\n",
			shortID(item.ID),
			item.Status,
			item.ReferenceAt.In(loc).Format("02/01/2006"),
			billed,
			timecalc.FormatDuration(item.TotalSeconds),
			truncate(item.Name, 40))
	}
	return nil
}

var showCmd = &cobra.Command{
	Use:   "show <work-item-id>",
	Short: "Show a work item with its session history",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runShow),
}

func runShow(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	id, err := resolveWorkItemID(ctx, a, args[0])
	if err != nil {
		return err
	}
	detail, err := a.tracker.GetWorkItem(ctx, a.owner, id)
	if err != nil {
		return err
	}

	w := out(cmd)
	loc := a.tracker.Location()
	now := time.Now().In(loc)
	item := detail.Item

	fmt.Fprintf(w, "%s  %s\n", shortID(item.ID), item.Name)
	if item.Description != "" {
		fmt.Fprintf(w, "  %s\n", item.Description)
	}
	fmt.Fprintf(w, "  Date:   %s\n", parser.FormatReferenceDate(item.ReferenceAt, now))
	fmt.Fprintf(w, "  Status: %s\n", item.Status)
	if item.CompletedAt != nil {
		fmt.Fprintf(w, "  Completed: %s\n", item.CompletedAt.In(loc).Format("02/01/2006 15:04"))
	}
	fmt.Fprintf(w, "  Billed: %t\n", item.Billed)
	if item.Note != "" {
		fmt.Fprintf(w, "  Note:   %s\n", item.Note)
	}
	fmt.Fprintf(w, "  Total:  %s\n", timecalc.FormatDuration(detail.TotalSeconds))

	if len(detail.History) == 0 {
		fmt.Fprintln(w, "\nNo sessions yet.")
		return nil
	}

	fmt.Fprintf(w, "\n%-8s  %-9s  %-16s  %-16s  %s\n", "SESSION", "STATUS", "STARTED", "FINISHED", "DURATION")
	for _, h := range detail.History {
		finished := "-"
		if h.FinishedAt != nil {
			finished = h.FinishedAt.In(loc).Format("02/01/2006 15:04")
		}
		fmt.Fprintf(w, "%-8s  %-9s  %-16s  %-16s  %s\n",
			shortID(h.ID),
			h.Status,
			h.StartedAt.In(loc).Format("02/01/2006 15:04"),
			finished,
			timecalc.FormatDurationHHMMSS(h.Seconds))
	}
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func init() {
	listCmd.Flags().StringP("status", "s", "", "Filter by status: open, in_progress, testing, done")
	listCmd.Flags().Bool("json", false, "JSON output")
}
