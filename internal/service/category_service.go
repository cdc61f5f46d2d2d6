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
	"gorm.io/gorm"
)

// CategoryService defines business operations for article categories.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, DisplayName: c.DisplayName}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	// Check for duplicate name
	existing, err := s.repo.FindByName(ctx, req.DisplayName)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoryResponse{}, err
	}
	if existing != nil {
		return dto.CategoryResponse{}, apierror.Invalid("display_name", "a category with this name already exists")
	}

	c := &model.Category{DisplayName: req.DisplayName}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, mapCategory(c))
	}
	return resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, fmt.Errorf("category: %w", apierror.ErrNotFound)
		}
		return dto.CategoryResponse{}, err
	}
	if req.DisplayName != nil {
		c.DisplayName = *req.DisplayName
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

// Delete rejects removal while articles still reference the category.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category: %w", apierror.ErrNotFound)
		}
		return err
	}
	n, err := s.repo.CountArticles(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Invalid("id", "category is referenced by existing articles")
	}
	return s.repo.Delete(ctx, id)
}
