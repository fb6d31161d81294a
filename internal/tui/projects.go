package tui

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mbianchi/horas/internal/daterange"
	"github.com/mbianchi/horas/internal/export"
	"github.com/mbianchi/horas/internal/stats"
	"github.com/mbianchi/horas/internal/store"
	"github.com/mbianchi/horas/internal/timefmt"
)

var projectColors = []string{"#6366F1", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

// Sentinel option for a free-form activity label in the entry form.
const actionOther = "OTRO"

type projectsModel struct {
	store  *store.Store
	width  int
	height int

	projects []store.Project
	cursor   int

	// Detail view state for the selected project.
	viewingDetail bool
	entries       []store.TimeEntry
	entryCursor   int
	projStats     stats.ProjectStats

	// Export quick-range picker overlay.
	exportPicking bool
	exportCursor  int

	formActive bool
	form       *huh.Form
	formType   string // project, edit_project, entry, export_custom, confirm_project, confirm_entry

	// Form field pointers (survive value copies).
	formName     *string
	formDesc     *string
	formColor    *string
	formAction   *string
	formCustom   *string
	formDuration *string
	formNotes    *string
	formDate     *string
	formFrom     *string
	formTo       *string
	formConfirm  *bool

	editingID string // project being edited
}

func newProjectsModel(s *store.Store) projectsModel {
	name, desc, color := "", "", projectColors[0]
	action, custom, duration, notes, date := "", "", "", "", ""
	from, to := "", ""
	confirm := false
	return projectsModel{
		store:        s,
		formName:     &name,
		formDesc:     &desc,
		formColor:    &color,
		formAction:   &action,
		formCustom:   &custom,
		formDuration: &duration,
		formNotes:    &notes,
		formDate:     &date,
		formFrom:     &from,
		formTo:       &to,
		formConfirm:  &confirm,
	}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p projectsModel) selected() *store.Project {
	if p.cursor >= len(p.projects) {
		return nil
	}
	return &p.projects[p.cursor]
}

type projectsDataMsg struct {
	projects []store.Project
}

type entriesDataMsg struct {
	entries []store.TimeEntry
}

func (p projectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		projects, err := p.store.ListProjects()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return projectsDataMsg{projects: projects}
	}
}

func (p projectsModel) refreshEntries() tea.Cmd {
	proj := p.selected()
	if proj == nil {
		return nil
	}
	pid := proj.ID
	return func() tea.Msg {
		entries, err := p.store.ListEntries(store.EntryFilter{ProjectID: &pid})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return entriesDataMsg{entries: entries}
	}
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		p.projects = msg.projects
		if p.cursor >= len(p.projects) {
			p.cursor = max(0, len(p.projects)-1)
		}
		return p, nil

	case entriesDataMsg:
		p.entries = msg.entries
		p.projStats = stats.ForProject(msg.entries)
		if p.entryCursor >= len(p.entries) {
			p.entryCursor = max(0, len(p.entries)-1)
		}
		return p, nil

	case entryLoggedMsg:
		return p, tea.Batch(p.refreshEntries(), func() tea.Msg {
			return statusMsg{text: "Tiempo registrado"}
		})

	case projectSavedMsg:
		return p, p.refresh()

	case tea.KeyMsg:
		if p.exportPicking {
			return p.updateExportPicker(msg)
		}
		if p.viewingDetail {
			return p.updateDetail(msg)
		}
		return p.updateList(msg)
	}
	return p, nil
}

func (p projectsModel) updateList(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.projects)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(p.projects) > 0 {
			p.viewingDetail = true
			p.entryCursor = 0
			return p, p.refreshEntries()
		}
	case key.Matches(msg, keys.New):
		return p.showProjectForm(false)
	case key.Matches(msg, keys.Edit):
		if len(p.projects) > 0 {
			return p.showProjectForm(true)
		}
	case key.Matches(msg, keys.Delete):
		if len(p.projects) > 0 {
			return p.showConfirmForm("confirm_project",
				fmt.Sprintf("¿Eliminar %q y todos sus registros?", p.selected().Name))
		}
	}
	return p, nil
}

func (p projectsModel) updateDetail(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		p.viewingDetail = false
		return p, nil
	case key.Matches(msg, keys.Up):
		if p.entryCursor > 0 {
			p.entryCursor--
		}
	case key.Matches(msg, keys.Down):
		if p.entryCursor < len(p.entries)-1 {
			p.entryCursor++
		}
	case key.Matches(msg, keys.New), key.Matches(msg, keys.Log):
		return p.showEntryForm()
	case key.Matches(msg, keys.Delete):
		if len(p.entries) > 0 {
			return p.showConfirmForm("confirm_entry", "¿Eliminar este registro?")
		}
	case key.Matches(msg, keys.Export):
		p.exportPicking = true
		p.exportCursor = 0
		return p, nil
	}
	return p, nil
}

// --- Export flow ---

func (p projectsModel) updateExportPicker(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.exportCursor > 0 {
			p.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if p.exportCursor < len(daterange.Quick)-1 {
			p.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		p.exportPicking = false
		r := daterange.Quick[p.exportCursor].Range
		if r == daterange.Custom {
			return p.showExportCustomForm()
		}
		from, to, err := daterange.Resolve(r, time.Now())
		if err != nil {
			return p, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return p, p.doExport(from, to)
	case key.Matches(msg, keys.Back):
		p.exportPicking = false
	}
	return p, nil
}

// doExport writes the XLSX for the selected project into the home
// directory. The empty-range case is an expected outcome, not a fault.
func (p projectsModel) doExport(from, to string) tea.Cmd {
	proj := p.selected()
	if proj == nil {
		return nil
	}
	project := *proj
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		path, err := export.ProjectXLSX(p.store, project, from, to, home)
		if errors.Is(err, export.ErrNoData) {
			return statusMsg{text: err.Error(), isError: true}
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error al exportar: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

// --- Forms ---

func (p projectsModel) showProjectForm(edit bool) (projectsModel, tea.Cmd) {
	if edit {
		proj := p.selected()
		*p.formName = proj.Name
		*p.formDesc = proj.Description
		*p.formColor = proj.Color
		p.formType = "edit_project"
		p.editingID = proj.ID
	} else {
		*p.formName = ""
		*p.formDesc = ""
		*p.formColor = projectColors[0]
		p.formType = "project"
	}

	colorOptions := make([]huh.Option[string], len(projectColors))
	for i, c := range projectColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Nombre").Value(p.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("el nombre es obligatorio")
					}
					return nil
				}),
			huh.NewInput().Title("Descripción").Value(p.formDesc),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(p.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) showEntryForm() (projectsModel, tea.Cmd) {
	*p.formAction = store.DefaultActions[0]
	*p.formCustom = ""
	*p.formDuration = ""
	*p.formNotes = ""
	*p.formDate = time.Now().Format("2006-01-02")
	p.formType = "entry"

	actionOptions := make([]huh.Option[string], 0, len(store.DefaultActions)+1)
	for _, a := range store.DefaultActions {
		actionOptions = append(actionOptions, huh.NewOption(a, a))
	}
	actionOptions = append(actionOptions, huh.NewOption("Otro...", actionOther))

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Actividad").Options(actionOptions...).Value(p.formAction),
			huh.NewInput().Title("Actividad personalizada (si Otro)").Value(p.formCustom).
				Validate(func(s string) error {
					if *p.formAction == actionOther && strings.TrimSpace(s) == "" {
						return errors.New("ingresá el tipo de actividad")
					}
					return nil
				}),
			huh.NewInput().Title("Duración (min)").Value(p.formDuration).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return errors.New("ingresá una cantidad de minutos mayor a cero")
					}
					return nil
				}),
			huh.NewInput().Title("Fecha (YYYY-MM-DD)").Value(p.formDate).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return errors.New("fecha inválida")
					}
					return nil
				}),
			huh.NewInput().Title("Comentario").Value(p.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) showExportCustomForm() (projectsModel, tea.Cmd) {
	*p.formFrom = ""
	*p.formTo = ""
	p.formType = "export_custom"

	dateValidate := func(s string) error {
		if s == "" {
			return errors.New("seleccioná ambas fechas")
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return errors.New("fecha inválida (YYYY-MM-DD)")
		}
		return nil
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Desde (YYYY-MM-DD)").Value(p.formFrom).Validate(dateValidate),
			huh.NewInput().Title("Hasta (YYYY-MM-DD)").Value(p.formTo).Validate(dateValidate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) showConfirmForm(formType, title string) (projectsModel, tea.Cmd) {
	*p.formConfirm = false
	p.formType = formType

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Eliminar").Negative("Cancelar").Value(p.formConfirm),
		),
	).WithShowHelp(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		return p.submitForm()
	}

	return p, cmd
}

func (p projectsModel) submitForm() (projectsModel, tea.Cmd) {
	switch p.formType {
	case "project":
		name, desc, color := *p.formName, *p.formDesc, *p.formColor
		return p, func() tea.Msg {
			if _, err := p.store.CreateProject(name, desc, color); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return projectSavedMsg{}
		}

	case "edit_project":
		id, name, desc, color := p.editingID, *p.formName, *p.formDesc, *p.formColor
		return p, func() tea.Msg {
			if err := p.store.UpdateProject(id, name, desc, color); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return projectSavedMsg{}
		}

	case "entry":
		proj := p.selected()
		if proj == nil {
			return p, nil
		}
		action := *p.formAction
		if action == actionOther {
			// Custom labels are normalized to uppercase here, at
			// creation time only.
			action = strings.ToUpper(strings.TrimSpace(*p.formCustom))
		}
		duration, _ := strconv.Atoi(strings.TrimSpace(*p.formDuration))
		pid, notes, date := proj.ID, *p.formNotes, *p.formDate
		return p, func() tea.Msg {
			entry, err := p.store.LogEntry(pid, action, duration, notes, date)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return entryLoggedMsg{entry: entry}
		}

	case "export_custom":
		// Bounds are validated before any fetch happens.
		from, to, err := daterange.ResolveCustom(*p.formFrom, *p.formTo)
		if err != nil {
			return p, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Rango inválido: %v", err), isError: true}
			}
		}
		return p, p.doExport(from, to)

	case "confirm_project":
		if !*p.formConfirm {
			return p, nil
		}
		id := p.selected().ID
		return p, func() tea.Msg {
			if err := p.store.DeleteProject(id); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return projectSavedMsg{}
		}

	case "confirm_entry":
		if !*p.formConfirm || p.entryCursor >= len(p.entries) {
			return p, nil
		}
		id := p.entries[p.entryCursor].ID
		return p, tea.Sequence(
			func() tea.Msg {
				if err := p.store.DeleteEntry(id); err != nil {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
				return statusMsg{text: "Registro eliminado"}
			},
			p.refreshEntries(),
		)
	}
	return p, nil
}

// --- Views ---

func (p projectsModel) view() string {
	if p.formActive && p.form != nil {
		title := titleStyle.Render(p.formTitle())
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(p.width - 4).Render(content)
	}

	if p.exportPicking {
		return p.renderExportPicker()
	}
	if p.viewingDetail {
		return p.renderDetail()
	}
	return p.renderList()
}

func (p projectsModel) formTitle() string {
	switch p.formType {
	case "project":
		return "Nuevo Proyecto"
	case "edit_project":
		return "Editar Proyecto"
	case "entry":
		return "Registrar Tiempo"
	case "export_custom":
		return "Exportar: rango personalizado"
	}
	return "Confirmar"
}

func (p projectsModel) renderList() string {
	w := p.width - 4
	title := titleStyle.Render("Proyectos")

	if len(p.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Sin proyectos todavía. Presioná n para crear uno."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, proj := range p.projects {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(proj.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		desc := ""
		if proj.Description != "" {
			desc = mutedStyle.Render("  " + proj.Description)
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-24s", cursor, dot, proj.Name))+desc)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: nuevo  e: editar  d: eliminar  enter: detalle"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p projectsModel) renderDetail() string {
	w := p.width - 4
	proj := p.selected()
	if proj == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Proyecto no encontrado"))
	}

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(proj.Color)).Render("●")
	title := titleStyle.Render(fmt.Sprintf("%s %s", dot, proj.Name))

	var rows []string
	rows = append(rows, title)
	if proj.Description != "" {
		rows = append(rows, mutedStyle.Render("  "+proj.Description))
	}
	rows = append(rows, "")
	rows = append(rows, p.renderProjectStats())
	rows = append(rows, "")

	if len(p.entries) == 0 {
		rows = append(rows, mutedStyle.Render("  Sin registros. Presioná n para registrar tiempo."))
	} else {
		header := mutedStyle.Render(fmt.Sprintf("  %-12s %-14s %10s  %s", "Fecha", "Actividad", "Duración", "Comentario"))
		rows = append(rows, header)
		for i, e := range p.entries {
			cursor := "  "
			style := normalItemStyle
			if i == p.entryCursor {
				cursor = "> "
				style = selectedItemStyle
			}
			notes := e.Notes
			if len(notes) > 30 {
				notes = notes[:30] + "…"
			}
			rows = append(rows, style.Render(fmt.Sprintf("%s%-12s %-14s %10s  %s",
				cursor, timefmt.DateES(e.EntryDate), e.ActionType, timefmt.Minutes(e.DurationMinutes), notes)))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: registrar  d: eliminar  x: exportar  esc: volver"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p projectsModel) renderProjectStats() string {
	total := fmt.Sprintf("  Total: %s en %d registros",
		highlightStyle.Render(timefmt.Minutes(p.projStats.TotalMinutes)), p.projStats.EntryCount)

	if len(p.projStats.ByAction) == 0 {
		return total
	}

	// Display order is this view's concern; the engine keeps no order.
	actions := make([]string, 0, len(p.projStats.ByAction))
	for a := range p.projStats.ByAction {
		actions = append(actions, a)
	}
	sort.Strings(actions)

	var parts []string
	for _, a := range actions {
		parts = append(parts, fmt.Sprintf("%s %s", a, timefmt.Minutes(p.projStats.ByAction[a])))
	}
	return total + "\n" + mutedStyle.Render("  "+strings.Join(parts, "  ·  "))
}

func (p projectsModel) renderExportPicker() string {
	w := p.width - 4
	proj := p.selected()
	name := ""
	if proj != nil {
		name = proj.Name
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Exportar Informe: "+name))
	rows = append(rows, "")
	for i, q := range daterange.Quick {
		cursor := "  "
		style := normalItemStyle
		if i == p.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		label := q.Label
		if q.Range != daterange.Custom {
			if from, to, err := daterange.Resolve(q.Range, time.Now()); err == nil {
				label = fmt.Sprintf("%-18s %s", q.Label, mutedStyle.Render(from+" → "+to))
			}
		}
		rows = append(rows, style.Render(cursor+label))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: exportar  esc: cancelar"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
