package model

import (
	"time"

	"github.com/google/uuid"
)

// TodoModel mirrors the 'todos' table. category_id is set to NULL when the category is deleted.
type TodoModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_todos_user_created,priority:1"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description *string    `gorm:"type:text"`
	Completed   bool       `gorm:"not null;default:false"`
	Priority    string     `gorm:"type:varchar(10);not null;default:medium"`
	DueDate     *time.Time `gorm:"type:date"`
	CategoryID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"index:idx_todos_user_created,priority:2,sort:desc"`
	UpdatedAt   time.Time

	Category *CategoryModel `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (TodoModel) TableName() string {
	return "todos"
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Color     string    `gorm:"type:varchar(7);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}
