package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/horas/internal/export"
	"github.com/balkashynov/horas/internal/report"
	"github.com/balkashynov/horas/internal/timecalc"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"report"},
	Short:   "Show day, week or month totals",
	Long: `Show the dashboard for a day, week or month. Work items count in the
period of their reference date.

Examples:
  horas dashboard                      # this week
  horas dashboard --period month -o -1 # last month
  horas dashboard --pdf week.pdf       # also write a PDF`,
	Args: cobra.NoArgs,
	RunE: withApp(runDashboard),
}

func runDashboard(cmd *cobra.Command, args []string, a *app) error {
	rawKind, _ := cmd.Flags().GetString("period")
	kind, err := report.ParseKind(rawKind)
	if err != nil {
		return err
	}
	offset, _ := cmd.Flags().GetInt("offset")

	d, err := a.tracker.Dashboard(cmd.Context(), a.owner, kind, offset)
	if err != nil {
		return err
	}

	printDashboard(out(cmd), d)

	if path, _ := cmd.Flags().GetString("pdf"); path != "" {
		if err := export.DashboardPDF(path, d); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}
		fmt.Fprintf(out(cmd), "\nPDF written to %s\n", path)
	}
	return nil
}

func printDashboard(w io.Writer, d *report.Dashboard) {
	p := d.Period
	fmt.Fprintf(w, "%s %s to %s\n",
		strings.ToUpper(string(p.Kind)),
		p.Start.Format("02/01/2006"),
		p.End.Format("02/01/2006"))
	fmt.Fprintln(w, strings.Repeat("-", 40))

	s := d.Summary
	fmt.Fprintf(w, "%-16s %sh (%s)\n", "Worked", export.Hours(s.WorkedHours), timecalc.FormatDuration(s.TotalSeconds))
	fmt.Fprintf(w, "%-16s %sh\n", "Billed", export.Hours(timecalc.Hours(s.BilledSeconds)))
	fmt.Fprintf(w, "%-16s %d\n", "In progress", s.ActiveCount)
	fmt.Fprintf(w, "%-16s %d\n", "Completed", s.CompletedCount)
	fmt.Fprintf(w, "%-16s %d\n", "Billed items", s.BilledCount)
	fmt.Fprintf(w, "%-16s %s x %s = %s\n", "Value",
		export.Hours(timecalc.Hours(s.BilledSeconds)),
		export.Money(s.HourlyRate),
		export.Money(s.EstimatedValue))

	fmt.Fprintf(w, "\n%-5s %8s %8s %8s\n", "DAY", "HOURS", "BILLED", "UNBILLED")
	for i, h := range d.HoursByWeekday {
		fmt.Fprintf(w, "%-5s %8s %8d %8d\n",
			h.Day,
			export.Hours(h.Hours),
			d.BilledByWeekday[i].Count,
			d.UnbilledByWeekday[i].Count)
	}

	if len(d.ItemsByDate) > 0 {
		fmt.Fprintln(w, "\nItems per date:")
		for _, dc := range d.ItemsByDate {
			fmt.Fprintf(w, "  %s  %d\n", dc.Date, dc.Total)
		}
	}
}

var rateCmd = &cobra.Command{
	Use:   "rate [hourly-rate]",
	Short: "Show or set the hourly rate",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		if len(args) == 0 {
			cfg, err := a.tracker.GetConfig(ctx, a.owner)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Hourly rate: %s (updated %s)\n", export.Money(cfg.HourlyRate), humanize.Time(cfg.UpdatedAt))
			return nil
		}

		rate, err := strconv.ParseFloat(strings.ReplaceAll(args[0], ",", "."), 64)
		if err != nil {
			return fmt.Errorf("invalid hourly rate %q", args[0])
		}
		cfg, err := a.tracker.SetHourlyRate(ctx, a.owner, rate)
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "Hourly rate set to %s\n", export.Money(cfg.HourlyRate))
		return nil
	}),
}

func init() {
	dashboardCmd.Flags().StringP("period", "p", "week", "Period: day, week or month")
	dashboardCmd.Flags().IntP("offset", "o", 0, "Periods relative to the current one, e.g. -1 for the previous")
	dashboardCmd.Flags().String("pdf", "", "Also write the dashboard to this PDF file")
}
