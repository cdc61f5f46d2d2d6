package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Article is a sellable catalog item with a fixed manufacturing cost.
// Sales reference articles; deletion is rejected while referenced.
type Article struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code              string          `gorm:"uniqueIndex;not null"`
	CategoryID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"index;not null"`
	ManufacturingCost decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
