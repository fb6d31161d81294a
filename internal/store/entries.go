package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation failures reported before any statement is executed.
var (
	ErrZeroDuration = errors.New("duration must be greater than zero")
	ErrEmptyAction  = errors.New("action type must not be empty")
	ErrBadDate      = errors.New("entry date must be YYYY-MM-DD")
)

// LogEntry records a duration in whole minutes against a project.
// entryDate defaults to today (local calendar date) when empty.
func (s *Store) LogEntry(projectID, actionType string, durationMinutes int, notes, entryDate string) (*TimeEntry, error) {
	if durationMinutes <= 0 {
		return nil, ErrZeroDuration
	}
	if actionType == "" {
		return nil, ErrEmptyAction
	}
	if entryDate == "" {
		entryDate = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", entryDate); err != nil {
		return nil, ErrBadDate
	}

	userID, err := s.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO time_entries (id, project_id, user_id, action_type, duration_minutes, notes, entry_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, projectID, userID, actionType, durationMinutes, notes, entryDate, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	return s.GetEntry(id)
}

func (s *Store) GetEntry(id string) (*TimeEntry, error) {
	e := &TimeEntry{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, project_id, user_id, action_type, duration_minutes, notes, entry_date, created_at
		 FROM time_entries WHERE id = ?`, id,
	).Scan(&e.ID, &e.ProjectID, &e.UserID, &e.ActionType, &e.DurationMinutes, &e.Notes, &e.EntryDate, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", id, err)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

func (s *Store) ListEntries(f EntryFilter) ([]TimeEntry, error) {
	query := `SELECT id, project_id, user_id, action_type, duration_minutes, notes, entry_date, created_at
	          FROM time_entries WHERE 1=1`
	var args []any

	if f.ProjectID != nil {
		query += ` AND project_id = ?`
		args = append(args, *f.ProjectID)
	}
	if f.From != nil {
		query += ` AND entry_date >= ?`
		args = append(args, *f.From)
	}
	if f.To != nil {
		query += ` AND entry_date <= ?`
		args = append(args, *f.To)
	}

	switch f.Order {
	case OrderDateAsc:
		query += ` ORDER BY entry_date ASC, created_at ASC`
	case OrderCreatedDesc:
		query += ` ORDER BY created_at DESC`
	default:
		query += ` ORDER BY entry_date DESC, created_at DESC`
	}
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		var e TimeEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.UserID, &e.ActionType, &e.DurationMinutes, &e.Notes, &e.EntryDate, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteEntry(id string) error {
	_, err := s.db.Exec(`DELETE FROM time_entries WHERE id = ?`, id)
	return err
}
