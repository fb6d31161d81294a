// Package stats aggregates time entries already fetched from the
// store. Everything here is pure computation: fetching is the caller's
// job, and every function returns fresh values, so the same code serves
// both the per-project and the whole-store views.
package stats

import "github.com/mbianchi/horas/internal/store"

// ProjectStats summarizes a pre-filtered entry set.
type ProjectStats struct {
	TotalMinutes int
	ByAction     map[string]int
	EntryCount   int
}

// ForProject aggregates an entry set. Grouping is case-sensitive on the
// literal action label; normalization happens at entry creation, never
// here. An empty set yields zeros and an empty map.
func ForProject(entries []store.TimeEntry) ProjectStats {
	ps := ProjectStats{ByAction: make(map[string]int)}
	for _, e := range entries {
		ps.TotalMinutes += e.DurationMinutes
		ps.ByAction[e.ActionType] += e.DurationMinutes
		ps.EntryCount++
	}
	return ps
}

// GlobalStats extends ProjectStats with the time buckets shown on the
// dashboard cards.
type GlobalStats struct {
	TotalMinutes int
	TodayMinutes int
	MonthMinutes int
	EntryCount   int
}

// Global aggregates the full entry set in a single pass. today is the
// caller's current YYYY-MM-DD date; the month bucket matches on its
// YYYY-MM prefix.
func Global(entries []store.TimeEntry, today string) GlobalStats {
	var gs GlobalStats
	month := ""
	if len(today) >= 7 {
		month = today[:7]
	}
	for _, e := range entries {
		gs.TotalMinutes += e.DurationMinutes
		gs.EntryCount++
		if e.EntryDate == today {
			gs.TodayMinutes += e.DurationMinutes
		}
		if month != "" && len(e.EntryDate) >= 7 && e.EntryDate[:7] == month {
			gs.MonthMinutes += e.DurationMinutes
		}
	}
	return gs
}

// Fallbacks when an entry's project no longer exists. The gap is
// tolerated, not reported: the entry still shows up in the feed.
const (
	NoProjectName = "Sin proyecto"
)

// RecentEntry is a time entry annotated with its project's display
// name and color for the activity feed.
type RecentEntry struct {
	ProjectName     string
	ProjectColor    string
	ActionType      string
	DurationMinutes int
	EntryDate       string
}

// Recent takes entries ordered newest-created first and returns up to n
// of them joined against the project lookup table.
func Recent(entries []store.TimeEntry, projects map[string]store.Project, n int) []RecentEntry {
	if n > len(entries) {
		n = len(entries)
	}
	recent := make([]RecentEntry, 0, n)
	for _, e := range entries[:n] {
		name, color := NoProjectName, store.DefaultColor
		if p, ok := projects[e.ProjectID]; ok {
			name, color = p.Name, p.Color
		}
		recent = append(recent, RecentEntry{
			ProjectName:     name,
			ProjectColor:    color,
			ActionType:      e.ActionType,
			DurationMinutes: e.DurationMinutes,
			EntryDate:       e.EntryDate,
		})
	}
	return recent
}

// DailyTotal is one project's minutes on one day, for the reports
// chart.
type DailyTotal struct {
	Date         string
	ProjectID    string
	ProjectName  string
	ProjectColor string
	Minutes      int
	EntryCount   int
}

// DailyByProject groups entries by (date, project). Callers that want a
// stable display order should pass entries sorted by date; groups keep
// first-seen order.
func DailyByProject(entries []store.TimeEntry, projects map[string]store.Project) []DailyTotal {
	type key struct{ date, project string }
	index := make(map[key]int)
	var totals []DailyTotal

	for _, e := range entries {
		k := key{e.EntryDate, e.ProjectID}
		i, ok := index[k]
		if !ok {
			name, color := NoProjectName, store.DefaultColor
			if p, found := projects[e.ProjectID]; found {
				name, color = p.Name, p.Color
			}
			totals = append(totals, DailyTotal{
				Date:         e.EntryDate,
				ProjectID:    e.ProjectID,
				ProjectName:  name,
				ProjectColor: color,
			})
			i = len(totals) - 1
			index[k] = i
		}
		totals[i].Minutes += e.DurationMinutes
		totals[i].EntryCount++
	}
	return totals
}

// ProjectIndex builds the in-memory lookup table the join helpers use.
func ProjectIndex(projects []store.Project) map[string]store.Project {
	m := make(map[string]store.Project, len(projects))
	for _, p := range projects {
		m[p.ID] = p
	}
	return m
}
