// Package export renders dashboards for output outside the terminal.
package export

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/balkashynov/horas/internal/report"
	"github.com/balkashynov/horas/internal/timecalc"
)

// Money formats a monetary value with thousands separators and two decimals
func Money(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// Hours formats decimal hours with two decimals
func Hours(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

var tableStyle = props.TableList{
	HeaderProp: props.TableListContent{
		Size:      10,
		GridSizes: []uint{6, 6},
	},
	ContentProp: props.TableListContent{
		Size:      10,
		GridSizes: []uint{6, 6},
	},
	Align:                consts.Center,
	AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
	HeaderContentSpace:   1,
	Line:                 false,
}

// DashboardPDF writes d as a one-page report to path
func DashboardPDF(path string, d *report.Dashboard) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	// Header
	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Dashboard", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				dateRange := fmt.Sprintf("%s: %s - %s", d.Period.Kind, d.Period.Start.Format("2006-01-02"), d.Period.End.Format("2006-01-02"))
				m.Text(dateRange, props.Text{
					Top:   3,
					Style: consts.Normal,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})

	section(m, "Summary")
	s := d.Summary
	m.TableList([]string{"Metric", "Value"}, [][]string{
		{"Worked hours", Hours(s.WorkedHours)},
		{"Tracked time", timecalc.FormatDuration(s.TotalSeconds)},
		{"Completed", fmt.Sprint(s.CompletedCount)},
		{"In progress", fmt.Sprint(s.ActiveCount)},
		{"Billed", fmt.Sprint(s.BilledCount)},
		{"Hourly rate", Money(s.HourlyRate)},
		{"Estimated value", Money(s.EstimatedValue)},
	}, tableStyle)

	section(m, "Hours by weekday")
	weekdayRows := make([][]string, 0, len(d.HoursByWeekday))
	for i, h := range d.HoursByWeekday {
		weekdayRows = append(weekdayRows, []string{
			h.Day,
			Hours(h.Hours),
			fmt.Sprint(d.BilledByWeekday[i].Count),
			fmt.Sprint(d.UnbilledByWeekday[i].Count),
		})
	}
	weekdayStyle := tableStyle
	weekdayStyle.HeaderProp.GridSizes = []uint{3, 3, 3, 3}
	weekdayStyle.ContentProp.GridSizes = []uint{3, 3, 3, 3}
	m.TableList([]string{"Day", "Hours", "Done billed", "Done unbilled"}, weekdayRows, weekdayStyle)

	if len(d.ItemsByDate) > 0 {
		section(m, "Work items by date")
		dateRows := make([][]string, 0, len(d.ItemsByDate))
		for _, dc := range d.ItemsByDate {
			dateRows = append(dateRows, []string{dc.Date, fmt.Sprint(dc.Total)})
		}
		m.TableList([]string{"Date", "Items"}, dateRows, tableStyle)
	}

	return m.OutputFileAndClose(path)
}

func section(m pdf.Maroto, title string) {
	m.Row(10, func() {
		m.Col(12, func() {
			m.Text(title, props.Text{
				Top:   5,
				Style: consts.Bold,
				Size:  14,
			})
		})
	})
}
