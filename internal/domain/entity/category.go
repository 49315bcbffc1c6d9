package entity

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Category is a user-defined label used to group todos.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID // Owner of the category.
	Name      string
	Color     string // "#RRGGBB"
	CreatedAt time.Time
}

// CategoryRef is the part of a category shown next to a todo.
type CategoryRef struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// IsValidColor reports whether c is a "#RRGGBB" hex color.
func IsValidColor(c string) bool {
	return hexColorPattern.MatchString(c)
}
