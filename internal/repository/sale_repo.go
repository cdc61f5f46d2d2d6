package repository

import (
	"context"

	"salestrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaleRepository defines the data access contract for sales. Services depend
// on this interface, not on the concrete GORM implementation, enabling clean
// unit testing via stubs.
type SaleRepository interface {
	Create(ctx context.Context, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	Update(ctx context.Context, s *model.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByArticle(ctx context.Context, articleID uuid.UUID) (int64, error)

	// ListByArticleTx loads the ENTIRE filtered set for one article inside the
	// caller-held transaction, so row page and aggregates observe the same
	// snapshot. Ordering and pagination happen in the service pipeline.
	ListByArticleTx(tx *gorm.DB, articleID uuid.UUID) ([]model.Sale, error)

	// ListTx returns one page plus the pre-pagination count for the unfiltered
	// listing. orderExpr must already be a validated SQL ordering expression.
	ListTx(tx *gorm.DB, orderExpr string, limit, offset int) ([]model.Sale, int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Article.Category").First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update persists the sale row only. The Article/Category associations are
// populated from the preload and must not be written back.
func (r *saleRepo) Update(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *saleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Sale{}, "id = ?", id).Error
}

func (r *saleRepo) CountByArticle(ctx context.Context, articleID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Where("article_id = ?", articleID).Count(&n).Error
	return n, err
}

func (r *saleRepo) ListByArticleTx(tx *gorm.DB, articleID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := tx.Preload("Article.Category").
		Where("article_id = ?", articleID).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListTx(tx *gorm.DB, orderExpr string, limit, offset int) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := tx.Model(&model.Sale{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := tx.Preload("Article.Category").
		Order(orderExpr).
		Limit(limit).Offset(offset).
		Find(&sales).Error
	return sales, total, err
}
