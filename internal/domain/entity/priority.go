package entity

import "strings"

// Priority is the urgency of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is applied when a todo is created without one.
const DefaultPriority = PriorityMedium

// String returns the string representation of the Priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid checks if the Priority is a valid value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority normalizes s and falls back to DefaultPriority when s is empty.
// ok is false for any other unknown value.
func ParsePriority(s string) (p Priority, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPriority, true
	}

	p = Priority(s)

	return p, p.IsValid()
}
