package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale records one transaction: an author sold a quantity of one article at a
// unit price on a calendar date.
type Sale struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date             time.Time       `gorm:"type:date;not null;index"`
	AuthorID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticleID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity         int             `gorm:"not null"`
	UnitSellingPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Author  *User    `gorm:"foreignKey:AuthorID"`
	Article *Article `gorm:"foreignKey:ArticleID"`
}

// TotalSellingPrice is derived, never persisted: quantity × unit price.
func (s *Sale) TotalSellingPrice() decimal.Decimal {
	return s.UnitSellingPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
