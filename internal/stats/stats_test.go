package stats

import (
	"testing"

	"github.com/mbianchi/horas/internal/store"
)

func entry(projectID, action string, minutes int, date string) store.TimeEntry {
	return store.TimeEntry{
		ProjectID:       projectID,
		ActionType:      action,
		DurationMinutes: minutes,
		EntryDate:       date,
	}
}

// ============================================================
// Per-project aggregation
// ============================================================

func TestForProject(t *testing.T) {
	entries := []store.TimeEntry{
		entry("p1", "LLAMADO", 60, "2024-01-01"),
		entry("p1", "REUNION", 30, "2024-01-02"),
		entry("p1", "LLAMADO", 15, "2024-01-03"),
	}

	ps := ForProject(entries)

	if ps.TotalMinutes != 105 {
		t.Errorf("TotalMinutes = %d, want 105", ps.TotalMinutes)
	}
	if ps.EntryCount != 3 {
		t.Errorf("EntryCount = %d, want 3", ps.EntryCount)
	}
	if ps.ByAction["LLAMADO"] != 75 {
		t.Errorf("ByAction[LLAMADO] = %d, want 75", ps.ByAction["LLAMADO"])
	}
	if ps.ByAction["REUNION"] != 30 {
		t.Errorf("ByAction[REUNION] = %d, want 30", ps.ByAction["REUNION"])
	}
}

func TestForProjectSumInvariant(t *testing.T) {
	entries := []store.TimeEntry{
		entry("p1", "LLAMADO", 60, "2024-01-01"),
		entry("p1", "VISITA", 45, "2024-01-02"),
		entry("p1", "OBRA", 120, "2024-01-03"),
		entry("p1", "VISITA", 5, "2024-01-04"),
	}

	ps := ForProject(entries)

	sum := 0
	for _, m := range ps.ByAction {
		sum += m
	}
	if sum != ps.TotalMinutes {
		t.Fatalf("sum(ByAction) = %d, TotalMinutes = %d", sum, ps.TotalMinutes)
	}
}

func TestForProjectEmpty(t *testing.T) {
	ps := ForProject(nil)
	if ps.TotalMinutes != 0 || ps.EntryCount != 0 {
		t.Fatalf("empty set should aggregate to zeros, got %+v", ps)
	}
	if ps.ByAction == nil {
		t.Fatal("ByAction must be an empty map, not nil")
	}
}

func TestForProjectCaseSensitiveLabels(t *testing.T) {
	// Labels are grouped literally; nothing normalizes case here.
	entries := []store.TimeEntry{
		entry("p1", "LLAMADO", 10, "2024-01-01"),
		entry("p1", "llamado", 20, "2024-01-01"),
	}

	ps := ForProject(entries)
	if len(ps.ByAction) != 2 {
		t.Fatalf("expected 2 distinct labels, got %v", ps.ByAction)
	}
}

// ============================================================
// Dashboard aggregation
// ============================================================

func TestGlobal(t *testing.T) {
	entries := []store.TimeEntry{
		entry("p1", "LLAMADO", 60, "2024-03-10"), // today
		entry("p1", "REUNION", 30, "2024-03-01"), // this month
		entry("p2", "VISITA", 45, "2024-02-28"),  // older
	}

	gs := Global(entries, "2024-03-10")

	if gs.TotalMinutes != 135 {
		t.Errorf("TotalMinutes = %d, want 135", gs.TotalMinutes)
	}
	if gs.TodayMinutes != 60 {
		t.Errorf("TodayMinutes = %d, want 60", gs.TodayMinutes)
	}
	if gs.MonthMinutes != 90 {
		t.Errorf("MonthMinutes = %d, want 90", gs.MonthMinutes)
	}
	if gs.EntryCount != 3 {
		t.Errorf("EntryCount = %d, want 3", gs.EntryCount)
	}
}

func TestGlobalEmpty(t *testing.T) {
	gs := Global(nil, "2024-03-10")
	if gs != (GlobalStats{}) {
		t.Fatalf("empty set should aggregate to zeros, got %+v", gs)
	}
}

// ============================================================
// Recent activity join
// ============================================================

func TestRecent(t *testing.T) {
	projects := map[string]store.Project{
		"p1": {ID: "p1", Name: "Casa Pérez", Color: "#ef4444"},
	}
	entries := []store.TimeEntry{
		entry("p1", "LLAMADO", 30, "2024-03-10"),
		entry("gone", "VISITA", 60, "2024-03-09"),
	}

	recent := Recent(entries, projects, 5)

	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].ProjectName != "Casa Pérez" || recent[0].ProjectColor != "#ef4444" {
		t.Errorf("joined entry = %+v", recent[0])
	}
	if recent[1].ProjectName != NoProjectName {
		t.Errorf("orphan name = %q, want %q", recent[1].ProjectName, NoProjectName)
	}
	if recent[1].ProjectColor != store.DefaultColor {
		t.Errorf("orphan color = %q, want %q", recent[1].ProjectColor, store.DefaultColor)
	}
}

func TestRecentCapped(t *testing.T) {
	var entries []store.TimeEntry
	for i := 0; i < 8; i++ {
		entries = append(entries, entry("p1", "LLAMADO", 10, "2024-03-01"))
	}

	if got := len(Recent(entries, nil, 5)); got != 5 {
		t.Fatalf("len = %d, want 5", got)
	}
	if got := len(Recent(entries[:2], nil, 5)); got != 2 {
		t.Fatalf("len = %d, want 2 when fewer entries than cap", got)
	}
}

// ============================================================
// Daily grouping for reports
// ============================================================

func TestDailyByProject(t *testing.T) {
	projects := map[string]store.Project{
		"p1": {ID: "p1", Name: "Casa Pérez", Color: "#ef4444"},
		"p2": {ID: "p2", Name: "Oficina Sur", Color: "#22c55e"},
	}
	entries := []store.TimeEntry{
		entry("p1", "LLAMADO", 30, "2024-03-01"),
		entry("p1", "REUNION", 60, "2024-03-01"),
		entry("p2", "VISITA", 45, "2024-03-01"),
		entry("p1", "LLAMADO", 15, "2024-03-02"),
	}

	totals := DailyByProject(entries, projects)

	if len(totals) != 3 {
		t.Fatalf("len = %d, want 3 groups", len(totals))
	}
	// First-seen order.
	if totals[0].Date != "2024-03-01" || totals[0].ProjectID != "p1" {
		t.Errorf("totals[0] = %+v", totals[0])
	}
	if totals[0].Minutes != 90 || totals[0].EntryCount != 2 {
		t.Errorf("totals[0] = %+v, want 90 minutes over 2 entries", totals[0])
	}
	if totals[1].ProjectID != "p2" || totals[1].Minutes != 45 {
		t.Errorf("totals[1] = %+v", totals[1])
	}
	if totals[2].Date != "2024-03-02" || totals[2].Minutes != 15 {
		t.Errorf("totals[2] = %+v", totals[2])
	}
	if totals[0].ProjectName != "Casa Pérez" {
		t.Errorf("name = %q", totals[0].ProjectName)
	}
}

func TestProjectIndex(t *testing.T) {
	idx := ProjectIndex([]store.Project{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})
	if len(idx) != 2 || idx["a"].Name != "A" || idx["b"].Name != "B" {
		t.Fatalf("index = %v", idx)
	}
}
