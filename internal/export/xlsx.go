// Package export builds the two-sheet XLSX report for a project over a
// date range: one detail row per entry plus a derived per-activity
// summary, each closed by a TOTAL row.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mbianchi/horas/internal/stats"
	"github.com/mbianchi/horas/internal/store"
	"github.com/mbianchi/horas/internal/timefmt"
)

// ErrNoData means the date-filtered entry set was empty. Exporting an
// empty range is refused rather than producing an empty file; the UI
// shows this as a plain message.
var ErrNoData = errors.New("no hay registros en el rango seleccionado")

// SummarySheet is the fixed name of the per-activity sheet. The detail
// sheet carries the project name, so "Resumen" can never collide with
// it (sheet names cap at 31 chars, below).
const SummarySheet = "Resumen"

const maxSheetName = 31

// Filename is deterministic: {project}_{from}_{to}.xlsx with the dashes
// stripped from both dates. Project names are used as-is; a name with
// filesystem-unsafe characters produces an unsafe filename (known gap).
func Filename(projectName, dateFrom, dateTo string) string {
	from := strings.ReplaceAll(dateFrom, "-", "")
	to := strings.ReplaceAll(dateTo, "-", "")
	return fmt.Sprintf("%s_%s_%s.xlsx", projectName, from, to)
}

// BuildWorkbook assembles the workbook from an already-fetched entry
// set, assumed ordered ascending by entry date. Pure apart from the
// in-memory excelize file.
func BuildWorkbook(projectName string, entries []store.TimeEntry) (*excelize.File, error) {
	f := excelize.NewFile()

	detail := truncateSheetName(projectName)
	if err := f.SetSheetName("Sheet1", detail); err != nil {
		return nil, fmt.Errorf("name detail sheet: %w", err)
	}

	ps := stats.ForProject(entries)

	if err := writeDetailSheet(f, detail, entries, ps.TotalMinutes); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, entries, ps); err != nil {
		return nil, err
	}
	return f, nil
}

// ProjectXLSX fetches the project's entries in [dateFrom, dateTo]
// inclusive, builds the workbook, and writes it under dir. It returns
// the written path, or ErrNoData when the range is empty (no file is
// produced). Nothing in the store is mutated.
func ProjectXLSX(s *store.Store, project store.Project, dateFrom, dateTo, dir string) (string, error) {
	entries, err := s.ListEntries(store.EntryFilter{
		ProjectID: &project.ID,
		From:      &dateFrom,
		To:        &dateTo,
		Order:     store.OrderDateAsc,
	})
	if err != nil {
		return "", fmt.Errorf("fetch entries: %w", err)
	}
	if len(entries) == 0 {
		return "", ErrNoData
	}

	f, err := BuildWorkbook(project.Name, entries)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, Filename(project.Name, dateFrom, dateTo))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func writeDetailSheet(f *excelize.File, sheet string, entries []store.TimeEntry, totalMinutes int) error {
	headers := []string{"Fecha", "Actividad", "Duración (min)", "Duración (horas)", "Comentario"}
	widths := []float64{14, 16, 16, 16, 40}
	if err := writeHeader(f, sheet, headers, widths); err != nil {
		return err
	}

	row := 2
	for _, e := range entries {
		cells := []any{
			timefmt.DateES(e.EntryDate),
			e.ActionType,
			e.DurationMinutes,
			timefmt.Minutes(e.DurationMinutes),
			e.Notes,
		}
		if err := writeRow(f, sheet, row, cells); err != nil {
			return err
		}
		row++
	}

	total := []any{"", "TOTAL", totalMinutes, timefmt.Minutes(totalMinutes), ""}
	return writeRow(f, sheet, row, total)
}

func writeSummarySheet(f *excelize.File, entries []store.TimeEntry, ps stats.ProjectStats) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}

	headers := []string{"Actividad", "Cantidad", "Total (min)", "Total (horas)"}
	widths := []float64{16, 10, 14, 14}
	if err := writeHeader(f, SummarySheet, headers, widths); err != nil {
		return err
	}

	// Rows follow first-seen label order so the sheet is stable for a
	// given entry set.
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		if _, seen := counts[e.ActionType]; !seen {
			order = append(order, e.ActionType)
		}
		counts[e.ActionType]++
	}

	row := 2
	for _, action := range order {
		mins := ps.ByAction[action]
		cells := []any{action, counts[action], mins, timefmt.Minutes(mins)}
		if err := writeRow(f, SummarySheet, row, cells); err != nil {
			return err
		}
		row++
	}

	total := []any{"TOTAL", ps.EntryCount, ps.TotalMinutes, timefmt.Minutes(ps.TotalMinutes)}
	return writeRow(f, SummarySheet, row, total)
}

func writeHeader(f *excelize.File, sheet string, headers []string, widths []float64) error {
	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return writeRow(f, sheet, 1, toAny(headers))
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// truncateSheetName enforces the hard 31-character sheet name limit of
// the XLSX format.
func truncateSheetName(name string) string {
	r := []rune(name)
	if len(r) > maxSheetName {
		return string(r[:maxSheetName])
	}
	return name
}
