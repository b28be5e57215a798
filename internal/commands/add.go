package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/parser"
	"github.com/balkashynov/horas/internal/tracker"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new work item",
	Long: `Add a new work item with optional metadata.

Smart parsing syntax:
  +billed        Mark the item as billed (also +faturado)
  status:done    Status: open, in_progress, testing, done
  date:yesterday Reference date: yyyy-mm-dd, dd/mm/yyyy, today, yesterday, 3 days ago

Examples:
  horas add "Landing page review"
  horas add "Invoice export +billed date:yesterday"
  horas add "Bug triage" --date 2026-02-20 --desc "Weekly triage"`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(runAdd),
}

func runAdd(cmd *cobra.Command, args []string, a *app) error {
	now := time.Now().In(a.tracker.Location())
	parsed := parser.ParseTitle(strings.Join(args, " "), now)
	if len(parsed.Errors) > 0 {
		return fmt.Errorf("could not parse %q: %s", strings.Join(args, " "), strings.Join(parsed.Errors, ", "))
	}

	input := tracker.WorkItemInput{
		Name:        parsed.Name,
		ReferenceAt: parsed.ReferenceAt,
		Status:      parsed.Status,
		Billed:      parsed.Billed,
	}

	// Flags take precedence over inline syntax
	flags := cmd.Flags()
	if flags.Changed("billed") {
		input.Billed, _ = flags.GetBool("billed")
	}
	if raw, _ := flags.GetString("date"); raw != "" {
		ref, err := parser.ParseReferenceDate(raw, now)
		if err != nil {
			return err
		}
		input.ReferenceAt = ref
	}
	if raw, _ := flags.GetString("status"); raw != "" {
		status, err := parser.ParseStatus(raw)
		if err != nil {
			return err
		}
		input.Status = status
	}
	input.Description, _ = flags.GetString("desc")
	input.Note, _ = flags.GetString("note")

	item, err := a.tracker.CreateWorkItem(cmd.Context(), a.owner, input)
	if err != nil {
		return err
	}

	w := out(cmd)
	fmt.Fprintf(w, "Created work item %s: %s\n", shortID(item.ID), item.Name)
	fmt.Fprintf(w, "  Date: %s\n", parser.FormatReferenceDate(item.ReferenceAt, now))
	if item.Status != models.WorkItemOpen {
		fmt.Fprintf(w, "  Status: %s\n", item.Status)
	}
	if item.Billed {
		fmt.Fprintln(w, "  Billed: yes")
	}
	return nil
}

func init() {
	addCmd.Flags().Bool("billed", false, "Mark the item as billed")
	addCmd.Flags().String("date", "", "Reference date: yyyy-mm-dd, dd/mm/yyyy, today, yesterday, X days ago")
	addCmd.Flags().String("status", "", "Status: open, in_progress, testing, done")
	addCmd.Flags().String("desc", "", "Description")
	addCmd.Flags().String("note", "", "Additional notes")
}
