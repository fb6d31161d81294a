package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mbianchi/horas/internal/stats"
	"github.com/mbianchi/horas/internal/store"
	"github.com/mbianchi/horas/internal/timefmt"
)

const recentCount = 5

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	global       stats.GlobalStats
	projectCount int
	recent       []stats.RecentEntry
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{store: s}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	entries  []store.TimeEntry
	projects []store.Project
}

// loadData fetches a fresh snapshot; all aggregation happens later over
// that snapshot, never incrementally.
func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		entries, err := d.store.ListEntries(store.EntryFilter{Order: store.OrderCreatedDesc})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		projects, err := d.store.ListProjects()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return dashboardDataMsg{entries: entries, projects: projects}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		today := time.Now().Format("2006-01-02")
		index := stats.ProjectIndex(msg.projects)
		d.global = stats.Global(msg.entries, today)
		d.projectCount = len(msg.projects)
		d.recent = stats.Recent(msg.entries, index, recentCount)
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	cards := d.renderCards(contentWidth)
	recent := d.renderRecentPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, cards, recent)
}

func (d dashboardModel) renderCards(w int) string {
	cardWidth := w/4 - 2
	if cardWidth < 14 {
		cardWidth = 14
	}

	card := func(label, value string) string {
		return cardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				mutedStyle.Render(label),
				cardValueStyle.Render(value),
			),
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Proyectos", fmt.Sprintf("%d", d.projectCount)),
		card("Horas de hoy", timefmt.Minutes(d.global.TodayMinutes)),
		card("Horas del mes", timefmt.Minutes(d.global.MonthMinutes)),
		card("Registros", fmt.Sprintf("%d", d.global.EntryCount)),
	)
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Actividad Reciente")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Sin actividad todavía"),
		)
		return panelStyle.Width(w).Render(content)
	}

	today := time.Now()
	var rows []string
	rows = append(rows, title)
	for _, e := range d.recent {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(e.ProjectColor)).Render("●")
		row := fmt.Sprintf("  %s %-12s %-20s %10s  %s",
			dot,
			e.ActionType,
			e.ProjectName,
			highlightStyle.Render(timefmt.Minutes(e.DurationMinutes)),
			mutedStyle.Render(timefmt.DayLabel(e.EntryDate, today)),
		)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
