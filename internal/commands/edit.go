package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/horas/internal/parser"
	"github.com/balkashynov/horas/internal/tracker"
)

var editCmd = &cobra.Command{
	Use:   "edit <work-item-id>",
	Short: "Edit an existing work item",
	Long: `Edit an existing work item. Only the flags given are changed.

Examples:
  horas edit 3f2a --name "Landing page v2"
  horas edit 3f2a --status done --billed`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runEdit),
}

func runEdit(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	id, err := resolveWorkItemID(ctx, a, args[0])
	if err != nil {
		return err
	}

	patch, err := patchFromFlags(cmd, time.Now().In(a.tracker.Location()))
	if err != nil {
		return err
	}

	item, err := a.tracker.UpdateWorkItem(ctx, a.owner, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(out(cmd), "Updated work item %s: %s (%s)\n", shortID(item.ID), item.Name, item.Status)
	return nil
}

// patchFromFlags builds a patch from the flags that were set
func patchFromFlags(cmd *cobra.Command, now time.Time) (tracker.WorkItemPatch, error) {
	var patch tracker.WorkItemPatch
	flags := cmd.Flags()

	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		patch.Name = &name
	}
	if flags.Changed("desc") {
		desc, _ := flags.GetString("desc")
		patch.Description = &desc
	}
	if flags.Changed("note") {
		note, _ := flags.GetString("note")
		patch.Note = &note
	}
	if flags.Changed("billed") {
		billed, _ := flags.GetBool("billed")
		patch.Billed = &billed
	}
	if flags.Changed("date") {
		raw, _ := flags.GetString("date")
		ref, err := parser.ParseReferenceDate(raw, now)
		if err != nil {
			return patch, err
		}
		patch.ReferenceAt = &ref
	}
	if flags.Changed("status") {
		raw, _ := flags.GetString("status")
		status, err := parser.ParseStatus(raw)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	return patch, nil
}

var removeCmd = &cobra.Command{
	Use:     "rm <work-item-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a work item and all its sessions",
	Args:    cobra.ExactArgs(1),
	RunE:    withApp(runRemove),
}

func runRemove(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	id, err := resolveWorkItemID(ctx, a, args[0])
	if err != nil {
		return err
	}
	if err := a.tracker.DeleteWorkItem(ctx, a.owner, id); err != nil {
		return err
	}
	fmt.Fprintf(out(cmd), "Deleted work item %s\n", shortID(id))
	return nil
}

func init() {
	editCmd.Flags().String("name", "", "New name")
	editCmd.Flags().String("desc", "", "New description")
	editCmd.Flags().String("note", "", "New note")
	editCmd.Flags().Bool("billed", false, "Billed flag (--billed=false to clear)")
	editCmd.Flags().String("date", "", "New reference date")
	editCmd.Flags().String("status", "", "New status: open, in_progress, testing, done")
}
