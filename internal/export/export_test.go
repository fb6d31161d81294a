package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

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

func sampleEntries() []store.TimeEntry {
	return []store.TimeEntry{
		{ActionType: "LLAMADO", DurationMinutes: 60, EntryDate: "2024-01-05", Notes: "llamado inicial"},
		{ActionType: "REUNION", DurationMinutes: 30, EntryDate: "2024-01-10", Notes: ""},
	}
}

// ============================================================
// Filename
// ============================================================

func TestFilename(t *testing.T) {
	got := Filename("Acme", "2024-01-01", "2024-01-31")
	if got != "Acme_20240101_20240131.xlsx" {
		t.Fatalf("Filename = %q", got)
	}
}

func TestFilenameKeepsProjectNameVerbatim(t *testing.T) {
	got := Filename("Casa Pérez", "2024-01-01", "2024-01-31")
	if got != "Casa Pérez_20240101_20240131.xlsx" {
		t.Fatalf("Filename = %q", got)
	}
}

// ============================================================
// Workbook layout
// ============================================================

func TestBuildWorkbookSheets(t *testing.T) {
	f, err := BuildWorkbook("Acme", sampleEntries())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets = %v, want detail + summary", sheets)
	}
	if sheets[0] != "Acme" {
		t.Errorf("detail sheet = %q, want project name", sheets[0])
	}
	if sheets[1] != SummarySheet {
		t.Errorf("summary sheet = %q, want %q", sheets[1], SummarySheet)
	}
}

func TestBuildWorkbookDetailRows(t *testing.T) {
	f, err := BuildWorkbook("Acme", sampleEntries())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Acme")
	if err != nil {
		t.Fatal(err)
	}

	// Header + one row per entry + TOTAL.
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0][0] != "Fecha" || rows[0][4] != "Comentario" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "05/01/2024" {
		t.Errorf("date cell = %q, want dd/mm/yyyy", rows[1][0])
	}
	if rows[1][1] != "LLAMADO" || rows[1][2] != "60" || rows[1][3] != "1h" {
		t.Errorf("first entry row = %v", rows[1])
	}

	total := rows[3]
	if total[1] != "TOTAL" || total[2] != "90" || total[3] != "1h 30min" {
		t.Errorf("total row = %v", total)
	}
}

func TestBuildWorkbookSummaryRows(t *testing.T) {
	entries := append(sampleEntries(),
		store.TimeEntry{ActionType: "LLAMADO", DurationMinutes: 15, EntryDate: "2024-01-12"},
	)

	f, err := BuildWorkbook("Acme", entries)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatal(err)
	}

	// Header + one row per distinct activity + TOTAL.
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	// First-seen label order.
	if rows[1][0] != "LLAMADO" || rows[1][1] != "2" || rows[1][2] != "75" || rows[1][3] != "1h 15min" {
		t.Errorf("LLAMADO row = %v", rows[1])
	}
	if rows[2][0] != "REUNION" || rows[2][1] != "1" || rows[2][2] != "30" {
		t.Errorf("REUNION row = %v", rows[2])
	}
	total := rows[3]
	if total[0] != "TOTAL" || total[1] != "3" || total[2] != "105" || total[3] != "1h 45min" {
		t.Errorf("total row = %v", total)
	}
}

func TestBuildWorkbookTruncatesSheetName(t *testing.T) {
	long := strings.Repeat("a", 40)
	f, err := BuildWorkbook(long, sampleEntries())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want := strings.Repeat("a", 31)
	if got := f.GetSheetList()[0]; got != want {
		t.Fatalf("sheet name = %q (%d chars), want 31-char truncation", got, len(got))
	}
}

// ============================================================
// End-to-end export
// ============================================================

func TestProjectXLSX(t *testing.T) {
	s := newTestStore(t)

	p, err := s.CreateProject("Acme", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.LogEntry(p.ID, "LLAMADO", 60, "", "2024-01-05"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LogEntry(p.ID, "REUNION", 30, "", "2024-01-10"); err != nil {
		t.Fatal(err)
	}
	// Outside the range, must be excluded.
	if _, err := s.LogEntry(p.ID, "VISITA", 45, "", "2024-02-01"); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := ProjectXLSX(s, *p, "2024-01-01", "2024-01-31", dir)
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Base(path) != "Acme_20240101_20240131.xlsx" {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
}

func TestProjectXLSXNoData(t *testing.T) {
	s := newTestStore(t)

	p, err := s.CreateProject("Acme", "", "")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	_, err = ProjectXLSX(s, *p, "2024-01-01", "2024-01-31", dir)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}

	files, _ := os.ReadDir(dir)
	if len(files) != 0 {
		t.Fatalf("no file should be written on empty range, found %d", len(files))
	}
}
