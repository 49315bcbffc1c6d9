package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Todo is a single task owned by a user.
type Todo struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description *string
	Completed   bool
	Priority    Priority
	DueDate     *time.Time
	CategoryID  *uuid.UUID
	Category    *CategoryRef // Populated on reads when CategoryID is set.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatusFilter selects todos by completion.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusCompleted StatusFilter = "completed"
	StatusPending   StatusFilter = "pending"
)

// IsValid checks if the StatusFilter is a valid value.
func (s StatusFilter) IsValid() bool {
	switch s {
	case StatusAll, StatusCompleted, StatusPending:
		return true
	default:
		return false
	}
}

// PriorityAll disables priority filtering.
const PriorityAll = "all"

// TodoFilter narrows a list of todos. Zero values match everything.
type TodoFilter struct {
	Search   string
	Status   StatusFilter
	Priority string // a Priority value or PriorityAll
}

// Matches reports whether t passes every criterion of the filter.
func (f TodoFilter) Matches(t *Todo) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		inTitle := strings.Contains(strings.ToLower(t.Title), term)
		inDescription := t.Description != nil && strings.Contains(strings.ToLower(*t.Description), term)
		if !inTitle && !inDescription {
			return false
		}
	}

	switch f.Status {
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusPending:
		if t.Completed {
			return false
		}
	}

	if f.Priority != "" && f.Priority != PriorityAll && Priority(f.Priority) != t.Priority {
		return false
	}

	return true
}

// Apply returns the todos that match the filter, keeping their order.
func (f TodoFilter) Apply(todos []*Todo) []*Todo {
	filtered := make([]*Todo, 0, len(todos))
	for _, t := range todos {
		if f.Matches(t) {
			filtered = append(filtered, t)
		}
	}

	return filtered
}

// TodoStats summarizes a user's todo list.
type TodoStats struct {
	Total               int `json:"total"`
	Completed           int `json:"completed"`
	Pending             int `json:"pending"`
	HighPriorityPending int `json:"highPriorityPending"`
}

// ComputeTodoStats counts todos by completion and pending high-priority items.
func ComputeTodoStats(todos []*Todo) TodoStats {
	stats := TodoStats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			stats.Completed++

			continue
		}
		stats.Pending++
		if t.Priority == PriorityHigh {
			stats.HighPriorityPending++
		}
	}

	return stats
}
