package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mbianchi/horas/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sizedApp(t *testing.T) App {
	t.Helper()
	a := NewApp(newTestStore(t))
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m.(App)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ============================================================
// Root model
// ============================================================

func TestNewAppDefaults(t *testing.T) {
	a := NewApp(newTestStore(t))
	if a.activeView != viewDashboard {
		t.Errorf("initial view = %d, want dashboard", a.activeView)
	}
	if a.isFormActive() {
		t.Error("no form should be active at startup")
	}
}

func TestViewNamesCoverAllViews(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("got %d view names, want 5", len(viewNames))
	}
}

func TestTabSwitching(t *testing.T) {
	tests := []struct {
		press string
		want  viewState
	}{
		{"2", viewProjects},
		{"3", viewTasks},
		{"4", viewReports},
		{"5", viewSettings},
		{"1", viewDashboard},
	}

	a := sizedApp(t)
	for _, tt := range tests {
		m, _ := a.Update(keyMsg(tt.press))
		a = m.(App)
		if a.activeView != tt.want {
			t.Fatalf("after pressing %q: view = %d, want %d", tt.press, a.activeView, tt.want)
		}
	}
}

func TestTabCycles(t *testing.T) {
	a := sizedApp(t)
	for i := 0; i < 5; i++ {
		m, _ := a.Update(tea.KeyMsg{Type: tea.KeyTab})
		a = m.(App)
	}
	if a.activeView != viewDashboard {
		t.Fatalf("five tab presses should land back on dashboard, got %d", a.activeView)
	}
}

func TestQuit(t *testing.T) {
	a := sizedApp(t)
	_, cmd := a.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("got %v, want tea.Quit", msg)
	}
}

func TestHeaderShowsTabs(t *testing.T) {
	a := sizedApp(t)
	view := a.View()
	for _, name := range viewNames {
		if !strings.Contains(view, name) {
			t.Errorf("header missing tab %q", name)
		}
	}
	if !strings.Contains(view, "horas") {
		t.Error("header missing app title")
	}
}

func TestStatusShownInFooter(t *testing.T) {
	a := sizedApp(t)
	m, _ := a.Update(statusMsg{text: "Tiempo registrado"})
	a = m.(App)
	if !strings.Contains(a.View(), "Tiempo registrado") {
		t.Fatal("footer should show the status message")
	}
}

func TestExportDoneStatus(t *testing.T) {
	a := sizedApp(t)
	m, _ := a.Update(exportDoneMsg{path: "/tmp/Acme_20240101_20240131.xlsx"})
	a = m.(App)
	if !strings.Contains(a.status, "Exportado a ") {
		t.Fatalf("status = %q", a.status)
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardAggregatesSnapshot(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("Acme", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.LogEntry(p.ID, "LLAMADO", 60, "", "2024-01-05"); err != nil {
		t.Fatal(err)
	}

	d := newDashboardModel(s)
	msg := d.loadData()()
	data, ok := msg.(dashboardDataMsg)
	if !ok {
		t.Fatalf("loadData returned %T", msg)
	}

	d, _ = d.update(data)
	if d.projectCount != 1 {
		t.Errorf("projectCount = %d, want 1", d.projectCount)
	}
	if d.global.TotalMinutes != 60 || d.global.EntryCount != 1 {
		t.Errorf("global = %+v", d.global)
	}
	if len(d.recent) != 1 || d.recent[0].ProjectName != "Acme" {
		t.Errorf("recent = %+v", d.recent)
	}
}

func TestDashboardViewRendersCards(t *testing.T) {
	d := newDashboardModel(newTestStore(t))
	d.setSize(100, 30)

	view := d.view()
	for _, label := range []string{"Proyectos", "Horas de hoy", "Horas del mes", "Registros"} {
		if !strings.Contains(view, label) {
			t.Errorf("dashboard missing card %q", label)
		}
	}
	if !strings.Contains(view, "Sin actividad todavía") {
		t.Error("empty dashboard should show the placeholder")
	}
}

// ============================================================
// Projects view
// ============================================================

func TestProjectsRefreshLoadsData(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateProject("Acme", "", ""); err != nil {
		t.Fatal(err)
	}

	p := newProjectsModel(s)
	p.setSize(100, 30)
	msg := p.refresh()()
	data, ok := msg.(projectsDataMsg)
	if !ok {
		t.Fatalf("refresh returned %T", msg)
	}
	p, _ = p.update(data)

	if !strings.Contains(p.view(), "Acme") {
		t.Fatal("project list should show the project")
	}
}

func TestProjectFormCapturesInput(t *testing.T) {
	a := sizedApp(t)

	m, _ := a.Update(keyMsg("2"))
	a = m.(App)

	// "n" opens the new-project form; further keys go to the form.
	m, _ = a.Update(keyMsg("n"))
	a = m.(App)
	if !a.isFormActive() {
		t.Fatal("n should open the project form")
	}
}
