package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mbianchi/horas/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings []store.Setting

	formActive bool
	form       *huh.Form
	formColor  *string
}

func newSettingsModel(s *store.Store) settingsModel {
	color := ""
	return settingsModel{store: s, formColor: &color}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := m.store.GetAllSettings()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return settingsDataMsg{settings: settings}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.settings = msg.settings
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Edit) {
			return m.showColorForm()
		}
	}
	return m, nil
}

func (m settingsModel) showColorForm() (settingsModel, tea.Cmd) {
	*m.formColor = store.DefaultColor
	for _, s := range m.settings {
		if s.Key == "default_color" {
			*m.formColor = s.Value
		}
	}

	colorOptions := make([]huh.Option[string], len(projectColors))
	for i, c := range projectColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Color por defecto").Options(colorOptions...).Value(m.formColor),
		),
	).WithShowHelp(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		color := *m.formColor
		return m, tea.Sequence(
			func() tea.Msg {
				if err := m.store.SetSetting("default_color", color); err != nil {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
				return statusMsg{text: "Ajustes guardados"}
			},
			m.refresh(),
		)
	}

	return m, cmd
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Ajustes"), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Ajustes"))
	rows = append(rows, "")

	if len(m.settings) == 0 {
		rows = append(rows, mutedStyle.Render("  Cargando..."))
	}
	for _, s := range m.settings {
		rows = append(rows, fmt.Sprintf("  %-16s %s", s.Key, highlightStyle.Render(s.Value)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  e: editar color por defecto"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
