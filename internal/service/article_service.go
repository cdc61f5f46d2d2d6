package service

import (
	"context"
	"errors"
	"fmt"

	"salestrack/internal/apierror"
	"salestrack/internal/dto"
	"salestrack/internal/model"
	"salestrack/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ArticleService interface {
	Create(ctx context.Context, req dto.CreateArticleRequest) (*dto.ArticleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error)
	List(ctx context.Context, filter dto.ArticleFilter) (*dto.ArticleListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateArticleRequest) (*dto.ArticleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type articleService struct {
	repo         repository.ArticleRepository
	categoryRepo repository.CategoryRepository
	saleRepo     repository.SaleRepository
	pageSize     int
	maxPageSize  int
}

func NewArticleService(
	repo repository.ArticleRepository,
	categoryRepo repository.CategoryRepository,
	saleRepo repository.SaleRepository,
	pageSize, maxPageSize int,
) ArticleService {
	return &articleService{
		repo:         repo,
		categoryRepo: categoryRepo,
		saleRepo:     saleRepo,
		pageSize:     pageSize,
		maxPageSize:  maxPageSize,
	}
}

func (s *articleService) Create(ctx context.Context, req dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	if req.ManufacturingCost.LessThan(decimal.Zero) {
		return nil, apierror.Invalid("manufacturing_cost", "must not be negative")
	}

	categoryID, err := uuid.Parse(req.Category)
	if err != nil {
		return nil, apierror.Invalid("category", "must be a valid id")
	}
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Invalid("category", "referenced category does not exist")
		}
		return nil, err
	}

	// Business code must be unique across the catalog.
	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, apierror.Invalid("code", "an article with this code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	article := &model.Article{
		Code:              req.Code,
		CategoryID:        categoryID,
		Name:              req.Name,
		ManufacturingCost: req.ManufacturingCost,
	}
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	article.Category = category
	return articleToResponse(article), nil
}

func (s *articleService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article: %w", apierror.ErrNotFound)
		}
		return nil, err
	}
	return articleToResponse(article), nil
}

func (s *articleService) List(ctx context.Context, filter dto.ArticleFilter) (*dto.ArticleListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = s.pageSize
	}
	if filter.Limit > s.maxPageSize {
		filter.Limit = s.maxPageSize
	}

	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		results = append(results, *articleToResponse(&articles[i]))
	}

	resp := &dto.ArticleListResponse{Count: total, Results: results}
	resp.Next, resp.Previous = PageTokens(total, filter.Limit, filter.Offset)
	return resp, nil
}

func (s *articleService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article: %w", apierror.ErrNotFound)
		}
		return nil, err
	}

	if req.Code != nil && *req.Code != article.Code {
		if _, err := s.repo.FindByCode(ctx, *req.Code); err == nil {
			return nil, apierror.Invalid("code", "an article with this code already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		article.Code = *req.Code
	}
	if req.Category != nil {
		categoryID, err := uuid.Parse(*req.Category)
		if err != nil {
			return nil, apierror.Invalid("category", "must be a valid id")
		}
		category, err := s.categoryRepo.FindByID(ctx, categoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Invalid("category", "referenced category does not exist")
			}
			return nil, err
		}
		article.CategoryID = categoryID
		article.Category = category
	}
	if req.Name != nil {
		article.Name = *req.Name
	}
	if req.ManufacturingCost != nil {
		if req.ManufacturingCost.LessThan(decimal.Zero) {
			return nil, apierror.Invalid("manufacturing_cost", "must not be negative")
		}
		article.ManufacturingCost = *req.ManufacturingCost
	}

	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return articleToResponse(article), nil
}

// Delete rejects removal while any sale still references the article, keeping
// referential integrity explicit rather than relying on a cascade.
func (s *articleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("article: %w", apierror.ErrNotFound)
		}
		return err
	}
	n, err := s.saleRepo.CountByArticle(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Invalid("id", "article is referenced by existing sales")
	}
	return s.repo.Delete(ctx, id)
}

func articleToResponse(a *model.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		ID:                a.ID.String(),
		Code:              a.Code,
		Category:          a.CategoryID.String(),
		Name:              a.Name,
		ManufacturingCost: a.ManufacturingCost,
	}
}

// PageTokens derives the next/previous offset tokens of the limit/offset
// pagination scheme; nil marks a missing page.
func PageTokens(count int64, limit, offset int) (next, previous *int) {
	if int64(offset+limit) < count {
		n := offset + limit
		next = &n
	}
	if offset > 0 {
		p := offset - limit
		if p < 0 {
			p = 0
		}
		previous = &p
	}
	return next, previous
}
