package repository

import (
	"context"

	"salestrack/internal/dto"
	"salestrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArticleRepository interface {
	Create(ctx context.Context, a *model.Article) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	FindByCode(ctx context.Context, code string) (*model.Article, error)
	List(ctx context.Context, filter dto.ArticleFilter) ([]model.Article, int64, error)
	Update(ctx context.Context, a *model.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type articleRepo struct{ db *gorm.DB }

func NewArticleRepository(db *gorm.DB) ArticleRepository { return &articleRepo{db: db} }

func (r *articleRepo) Create(ctx context.Context, a *model.Article) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *articleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	var a model.Article
	err := r.db.WithContext(ctx).Preload("Category").First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepo) FindByCode(ctx context.Context, code string) (*model.Article, error) {
	var a model.Article
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepo) List(ctx context.Context, filter dto.ArticleFilter) ([]model.Article, int64, error) {
	var articles []model.Article
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Article{})
	if filter.Category != "" {
		q = q.Where("category_id = ?", filter.Category)
	}
	if filter.Code != "" {
		q = q.Where("code = ?", filter.Code)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Category").
		Order("code ASC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&articles).Error
	return articles, total, err
}

// Update persists the article row only; the preloaded Category association is
// not written back.
func (r *articleRepo) Update(ctx context.Context, a *model.Article) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error
}

func (r *articleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Article{}, "id = ?", id).Error
}
