package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies articles in the catalog. Categories are effectively
// immutable once articles reference them.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DisplayName string    `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName keeps the historical table name for article categories.
func (Category) TableName() string { return "article_categories" }
