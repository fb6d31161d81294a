package tui

import (
	"github.com/mbianchi/horas/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewProjects
	viewTasks
	viewReports
	viewSettings
)

var viewNames = []string{"Inicio", "Proyectos", "Tareas", "Informes", "Ajustes"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type entryLoggedMsg struct {
	entry *store.TimeEntry
}

type projectSavedMsg struct{}

type taskSavedMsg struct{}
