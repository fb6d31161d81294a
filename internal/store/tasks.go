package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Legacy first-generation model: free-standing tasks with their own
// duration logs, not unified with projects/time_entries.

const (
	TaskActive    = "active"
	TaskCompleted = "completed"
	TaskArchived  = "archived"
)

func (s *Store) CreateTask(title, client string) (*Task, error) {
	userID, err := s.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO tasks (id, user_id, title, client, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, title, client, TaskActive, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return s.GetTask(id)
}

func (s *Store) GetTask(id string) (*Task, error) {
	t := &Task{}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT id, user_id, title, client, status, created_at FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.Client, &t.Status, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return t, nil
}

func (s *Store) ListTasks() ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, title, client, status, created_at FROM tasks ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var createdAt string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Client, &t.Status, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTaskStatus(id, status string) error {
	_, err := s.db.Exec(`UPDATE tasks SET status = ? WHERE id = ?`, status, id)
	return err
}

// DeleteTask removes a task and, via cascade, its time logs.
func (s *Store) DeleteTask(id string) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// LogTime records minutes against a legacy task.
func (s *Store) LogTime(taskID string, duration int, date, notes string) (*TimeLog, error) {
	if duration <= 0 {
		return nil, ErrZeroDuration
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	userID, err := s.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO time_logs (id, task_id, user_id, duration, date, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, taskID, userID, duration, date, notes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert time log: %w", err)
	}

	l := &TimeLog{ID: id, TaskID: taskID, UserID: userID, Duration: duration, Date: date, Notes: notes}
	l.CreatedAt, _ = time.Parse(time.RFC3339, now)
	return l, nil
}

func (s *Store) ListTaskLogs(taskID string) ([]TimeLog, error) {
	rows, err := s.db.Query(
		`SELECT id, task_id, user_id, duration, date, notes, created_at
		 FROM time_logs WHERE task_id = ? ORDER BY date DESC`, taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("list time logs: %w", err)
	}
	defer rows.Close()

	var logs []TimeLog
	for rows.Next() {
		var l TimeLog
		var createdAt string
		if err := rows.Scan(&l.ID, &l.TaskID, &l.UserID, &l.Duration, &l.Date, &l.Notes, &createdAt); err != nil {
			return nil, err
		}
		l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
