package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mbianchi/horas/internal/stats"
	"github.com/mbianchi/horas/internal/store"
	"github.com/mbianchi/horas/internal/timefmt"
)

// reportsModel shows a stacked per-project bar chart of minutes over a
// 7-day window, navigable back in time.
type reportsModel struct {
	store  *store.Store
	width  int
	height int

	totals []stats.DailyTotal
	offset int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	totals []stats.DailyTotal
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.window()
		entries, err := r.store.ListEntries(store.EntryFilter{
			From:  &from,
			To:    &to,
			Order: store.OrderDateAsc,
		})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		projects, err := r.store.ListProjects()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return reportsDataMsg{totals: stats.DailyByProject(entries, stats.ProjectIndex(projects))}
	}
}

// window returns the inclusive 7-day span for the current offset.
func (r reportsModel) window() (string, string) {
	today := time.Now()
	end := today.AddDate(0, 0, -7*r.offset)
	start := end.AddDate(0, 0, -6)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.totals = msg.totals
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, _ := r.window()
	start, _ := time.Parse("2006-01-02", from)

	var bars []barchart.BarData
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon 02")

		var values []barchart.BarValue
		for _, t := range r.totals {
			if t.Date == dateStr {
				hours := float64(t.Minutes) / 60.0
				style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.ProjectColor))
				values = append(values, barchart.BarValue{
					Name:  t.ProjectName,
					Value: hours,
					Style: style,
				})
			}
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	from, to := r.window()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s a %s", timefmt.DateES(from), timefmt.DateES(to)))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Informes"), "  ", dateLabel,
	)

	chartView := r.chart.View()
	tableView := r.renderTable(w)
	legend := r.renderLegend()

	nav := mutedStyle.Render("  ←/→: navegar semanas")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) renderTable(w int) string {
	if len(r.totals) == 0 {
		return mutedStyle.Render("  Sin datos para este período")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %-20s %10s %10s", "Fecha", "Proyecto", "Duración", "Registros"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 56))))

	for _, t := range r.totals {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(t.ProjectColor)).Render("●")
		rows = append(rows, fmt.Sprintf("  %-12s %s %-18s %10s %10d",
			timefmt.DateES(t.Date), dot, t.ProjectName, timefmt.Minutes(t.Minutes), t.EntryCount,
		))
	}

	return strings.Join(rows, "\n")
}

func (r reportsModel) renderLegend() string {
	seen := make(map[string]bool)
	var items []string
	for _, t := range r.totals {
		if seen[t.ProjectID] {
			continue
		}
		seen[t.ProjectID] = true
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(t.ProjectColor)).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, t.ProjectName))
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "  ")
}
