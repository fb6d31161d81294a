package store

import "time"

// Default quick-pick activity labels. Any non-empty uppercase string is
// a valid action type; these only drive the entry form.
var DefaultActions = []string{"LLAMADO", "REUNION", "VISITA"}

// DefaultColor is used for new projects and as the fallback when an
// entry's project no longer exists.
const DefaultColor = "#6366f1"

type Project struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TimeEntry is a single logged duration of billable activity against a
// project, dated to a calendar day. Entries are immutable once created
// except for deletion.
type TimeEntry struct {
	ID              string
	ProjectID       string
	UserID          string
	ActionType      string
	DurationMinutes int
	Notes           string
	EntryDate       string // YYYY-MM-DD
	CreatedAt       time.Time
}

// Task and TimeLog are the first-generation schema, kept alongside the
// project-centric model without migration.
type Task struct {
	ID        string
	UserID    string
	Title     string
	Client    string
	Status    string // active, completed, archived
	CreatedAt time.Time
}

type TimeLog struct {
	ID        string
	TaskID    string
	UserID    string
	Duration  int // minutes
	Date      string
	Notes     string
	CreatedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// EntryOrder selects the sort order for ListEntries.
type EntryOrder int

const (
	OrderDateDesc EntryOrder = iota
	OrderDateAsc
	OrderCreatedDesc
)

// EntryFilter is used to filter time entries in queries. From/To are
// inclusive YYYY-MM-DD bounds on entry_date.
type EntryFilter struct {
	ProjectID *string
	From      *string
	To        *string
	Order     EntryOrder
	Limit     int
}
