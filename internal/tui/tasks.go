package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mbianchi/horas/internal/store"
	"github.com/mbianchi/horas/internal/timefmt"
)

// tasksModel is the first-generation to-do screen: free-standing tasks
// with their own time logs, untouched by the project-centric model.
type tasksModel struct {
	store  *store.Store
	width  int
	height int

	tasks  []store.Task
	cursor int

	viewingLogs bool
	logs        []store.TimeLog

	formActive bool
	form       *huh.Form
	formType   string // task, log, confirm_task

	formTitle    *string
	formClient   *string
	formDuration *string
	formNotes    *string
	formConfirm  *bool
}

func newTasksModel(s *store.Store) tasksModel {
	title, client, duration, notes := "", "", "", ""
	confirm := false
	return tasksModel{
		store:        s,
		formTitle:    &title,
		formClient:   &client,
		formDuration: &duration,
		formNotes:    &notes,
		formConfirm:  &confirm,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t tasksModel) selected() *store.Task {
	if t.cursor >= len(t.tasks) {
		return nil
	}
	return &t.tasks[t.cursor]
}

type tasksDataMsg struct {
	tasks []store.Task
}

type taskLogsMsg struct {
	logs []store.TimeLog
}

func (t tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, err := t.store.ListTasks()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return tasksDataMsg{tasks: tasks}
	}
}

func (t tasksModel) refreshLogs() tea.Cmd {
	task := t.selected()
	if task == nil {
		return nil
	}
	id := task.ID
	return func() tea.Msg {
		logs, err := t.store.ListTaskLogs(id)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return taskLogsMsg{logs: logs}
	}
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		t.tasks = msg.tasks
		if t.cursor >= len(t.tasks) {
			t.cursor = max(0, len(t.tasks)-1)
		}
		return t, nil

	case taskLogsMsg:
		t.logs = msg.logs
		return t, nil

	case taskSavedMsg:
		return t, t.refresh()

	case tea.KeyMsg:
		if t.viewingLogs {
			if key.Matches(msg, keys.Back) {
				t.viewingLogs = false
			}
			return t, nil
		}
		return t.updateList(msg)
	}
	return t, nil
}

func (t tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(msg, keys.Down):
		if t.cursor < len(t.tasks)-1 {
			t.cursor++
		}
	case key.Matches(msg, keys.New):
		return t.showTaskForm()
	case key.Matches(msg, keys.Log):
		if len(t.tasks) > 0 {
			return t.showLogForm()
		}
	case key.Matches(msg, keys.Complete):
		if task := t.selected(); task != nil {
			status := store.TaskCompleted
			if task.Status == store.TaskCompleted {
				status = store.TaskActive
			}
			id := task.ID
			return t, tea.Sequence(
				func() tea.Msg {
					if err := t.store.UpdateTaskStatus(id, status); err != nil {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
					return taskSavedMsg{}
				},
			)
		}
	case key.Matches(msg, keys.Delete):
		if len(t.tasks) > 0 {
			return t.showConfirmForm()
		}
	case key.Matches(msg, keys.Enter):
		if len(t.tasks) > 0 {
			t.viewingLogs = true
			return t, t.refreshLogs()
		}
	}
	return t, nil
}

func (t tasksModel) showTaskForm() (tasksModel, tea.Cmd) {
	*t.formTitle = ""
	*t.formClient = ""
	t.formType = "task"

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("¿En qué vas a trabajar?").Value(t.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("el título es obligatorio")
					}
					return nil
				}),
			huh.NewInput().Title("Cliente (opcional)").Value(t.formClient),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) showLogForm() (tasksModel, tea.Cmd) {
	*t.formDuration = ""
	*t.formNotes = ""
	t.formType = "log"

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Duración (min)").Value(t.formDuration).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return errors.New("ingresá una cantidad de minutos mayor a cero")
					}
					return nil
				}),
			huh.NewInput().Title("Notas").Value(t.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) showConfirmForm() (tasksModel, tea.Cmd) {
	*t.formConfirm = false
	t.formType = "confirm_task"

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("¿Eliminar la tarea %q?", t.selected().Title)).
				Affirmative("Eliminar").Negative("Cancelar").
				Value(t.formConfirm),
		),
	).WithShowHelp(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		return t.submitForm()
	}

	return t, cmd
}

func (t tasksModel) submitForm() (tasksModel, tea.Cmd) {
	switch t.formType {
	case "task":
		title, client := *t.formTitle, *t.formClient
		return t, func() tea.Msg {
			if _, err := t.store.CreateTask(title, client); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return taskSavedMsg{}
		}

	case "log":
		task := t.selected()
		if task == nil {
			return t, nil
		}
		duration, _ := strconv.Atoi(strings.TrimSpace(*t.formDuration))
		id, notes := task.ID, *t.formNotes
		today := time.Now().Format("2006-01-02")
		return t, func() tea.Msg {
			if _, err := t.store.LogTime(id, duration, today, notes); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return statusMsg{text: "Tiempo registrado"}
		}

	case "confirm_task":
		if !*t.formConfirm {
			return t, nil
		}
		id := t.selected().ID
		return t, func() tea.Msg {
			if err := t.store.DeleteTask(id); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return taskSavedMsg{}
		}
	}
	return t, nil
}

func (t tasksModel) view() string {
	if t.formActive && t.form != nil {
		title := "Nueva Tarea"
		if t.formType == "log" {
			title = "Registrar Tiempo"
		} else if t.formType == "confirm_task" {
			title = "Confirmar"
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", t.form.View())
		return panelStyle.Width(t.width - 4).Render(content)
	}

	if t.viewingLogs {
		return t.renderLogs()
	}
	return t.renderList()
}

func (t tasksModel) renderList() string {
	w := t.width - 4
	title := titleStyle.Render("Tareas")

	if len(t.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Sin tareas. Presioná n para crear una."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, task := range t.tasks {
		mark := "○"
		style := normalItemStyle
		switch task.Status {
		case store.TaskCompleted:
			mark = successStyle.Render("✓")
			style = mutedStyle
		case store.TaskArchived:
			mark = mutedStyle.Render("▪")
			style = mutedStyle
		}
		cursor := "  "
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		client := ""
		if task.Client != "" {
			client = mutedStyle.Render("  [" + task.Client + "]")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, mark, task.Title))+client)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: nueva  l: registrar  c: completar  d: eliminar  enter: registros"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t tasksModel) renderLogs() string {
	w := t.width - 4
	task := t.selected()
	if task == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Tarea no encontrada"))
	}

	var rows []string
	rows = append(rows, titleStyle.Render(task.Title+": Registros"))
	rows = append(rows, "")

	if len(t.logs) == 0 {
		rows = append(rows, mutedStyle.Render("  Sin registros para esta tarea."))
	} else {
		total := 0
		for _, l := range t.logs {
			total += l.Duration
			notes := l.Notes
			if len(notes) > 40 {
				notes = notes[:40] + "…"
			}
			rows = append(rows, fmt.Sprintf("  %-12s %10s  %s",
				timefmt.DateES(l.Date), timefmt.Minutes(l.Duration), mutedStyle.Render(notes)))
		}
		rows = append(rows, "")
		rows = append(rows, fmt.Sprintf("  Total: %s", highlightStyle.Render(timefmt.Minutes(total))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  esc: volver"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
