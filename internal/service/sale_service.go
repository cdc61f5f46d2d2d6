package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salestrack/internal/apierror"
	"salestrack/internal/config"
	"salestrack/internal/dto"
	"salestrack/internal/model"
	"salestrack/internal/policy"
	"salestrack/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type SaleService interface {
	Create(ctx context.Context, callerID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResult, error)
	Update(ctx context.Context, callerID uuid.UUID, id uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error)
	Delete(ctx context.Context, callerID uuid.UUID, id uuid.UUID) error
}

type saleService struct {
	repo        repository.SaleRepository
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
	pageSize    int
	maxPageSize int
}

func NewSaleService(
	repo repository.SaleRepository,
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
	cfg *config.Config,
) SaleService {
	return &saleService{
		repo:        repo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		pageSize:    cfg.PageSize,
		maxPageSize: cfg.MaxPageSize,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ───────────────────────────────────────────────────────────────────

func (s *saleService) Create(ctx context.Context, callerID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, apierror.Invalid("date", "must be a YYYY-MM-DD date")
	}

	articleID, err := uuid.Parse(req.Article)
	if err != nil {
		return nil, apierror.Invalid("article", "must be a valid id")
	}
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Invalid("article", "referenced article does not exist")
		}
		return nil, err
	}

	// The author defaults to the authenticated caller. The caller identity is
	// passed in explicitly; business logic never reads request state.
	authorID := callerID
	if req.Author != nil {
		authorID, err = uuid.Parse(*req.Author)
		if err != nil {
			return nil, apierror.Invalid("author", "must be a valid id")
		}
	}
	if _, err := s.userRepo.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Invalid("author", "referenced user does not exist")
		}
		return nil, err
	}

	sale := &model.Sale{
		Date:             date,
		AuthorID:         authorID,
		ArticleID:        articleID,
		Quantity:         req.Quantity,
		UnitSellingPrice: req.UnitSellingPrice,
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	sale.Article = article
	return saleToResponse(sale), nil
}

// ── Read paths ───────────────────────────────────────────────────────────────

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sale: %w", apierror.ErrNotFound)
		}
		return nil, err
	}
	return saleToResponse(sale), nil
}

// List runs the query/aggregation pipeline. With an article_id filter the
// whole filtered set is loaded in one transaction, mapped to row totals,
// sorted, reduced to the three aggregates, and only then paginated — so the
// aggregates always reflect the full set. Without the filter it is a plain
// transactional count + page query. Nothing is cached; every call recomputes
// from current store state.
func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResult, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = s.pageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	offset := filter.Offset

	if filter.ArticleID == "" {
		var (
			sales []model.Sale
			total int64
		)
		txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			var err error
			sales, total, err = s.repo.ListTx(tx, saleOrderExpr(filter.Ordering), limit, offset)
			return err
		})
		if txErr != nil {
			return nil, txErr
		}
		results := make([]dto.SaleResponse, 0, len(sales))
		for i := range sales {
			results = append(results, *saleToResponse(&sales[i]))
		}
		return &dto.SaleListResult{Count: total, Limit: limit, Offset: offset, Results: results}, nil
	}

	articleID, err := uuid.Parse(filter.ArticleID)
	if err != nil {
		return nil, apierror.Invalid("article_id", "must be a valid id")
	}
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article: %w", apierror.ErrNotFound)
		}
		return nil, err
	}

	var sales []model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		sales, err = s.repo.ListByArticleTx(tx, articleID)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	rows := buildRows(sales)
	sortRows(rows, filter.Ordering)
	agg := aggregateRows(rows, article.ManufacturingCost)
	page := pageRows(rows, offset, limit)

	results := make([]dto.SaleResponse, 0, len(page))
	for i := range page {
		results = append(results, *saleToResponse(&page[i].sale))
	}
	return &dto.SaleListResult{
		Count:      int64(len(rows)),
		Limit:      limit,
		Offset:     offset,
		Aggregates: &agg,
		Results:    results,
	}, nil
}

// ── Mutations (ownership-gated) ──────────────────────────────────────────────

func (s *saleService) Update(ctx context.Context, callerID uuid.UUID, id uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := s.loadOwned(ctx, callerID, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, apierror.Invalid("date", "must be a YYYY-MM-DD date")
		}
		sale.Date = date
	}
	if req.Author != nil {
		authorID, err := uuid.Parse(*req.Author)
		if err != nil {
			return nil, apierror.Invalid("author", "must be a valid id")
		}
		if _, err := s.userRepo.FindByID(ctx, authorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Invalid("author", "referenced user does not exist")
			}
			return nil, err
		}
		sale.AuthorID = authorID
	}
	if req.Article != nil {
		articleID, err := uuid.Parse(*req.Article)
		if err != nil {
			return nil, apierror.Invalid("article", "must be a valid id")
		}
		article, err := s.articleRepo.FindByID(ctx, articleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Invalid("article", "referenced article does not exist")
			}
			return nil, err
		}
		sale.ArticleID = articleID
		sale.Article = article
	}
	if req.Quantity != nil {
		sale.Quantity = *req.Quantity
	}
	if req.UnitSellingPrice != nil {
		if req.UnitSellingPrice.LessThan(decimal.Zero) {
			return nil, apierror.Invalid("unit_selling_price", "must not be negative")
		}
		sale.UnitSellingPrice = *req.UnitSellingPrice
	}

	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) Delete(ctx context.Context, callerID uuid.UUID, id uuid.UUID) error {
	if _, err := s.loadOwned(ctx, callerID, id, policy.ActionDelete); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// loadOwned fetches the sale and applies the owner-or-read-only rule for the
// attempted action. A missing sale is reported as not found before any
// ownership decision is made.
func (s *saleService) loadOwned(ctx context.Context, callerID uuid.UUID, id uuid.UUID, action policy.Action) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sale: %w", apierror.ErrNotFound)
		}
		return nil, err
	}

	actor := policy.Actor{UserID: callerID, Authenticated: true}
	res := policy.Resource{OwnerID: &sale.AuthorID}
	if !policy.All(policy.IsAuthenticated, policy.IsOwnerOrReadOnly)(action, actor, res) {
		return nil, fmt.Errorf("only the sale's author may modify it: %w", apierror.ErrForbidden)
	}
	return sale, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	var article dto.ArticleSummary
	if s.Article != nil {
		article.Name = s.Article.Name
		if s.Article.Category != nil {
			article.Category = s.Article.Category.DisplayName
		}
	}
	return &dto.SaleResponse{
		ID:                s.ID.String(),
		Date:              s.Date.Format(dateLayout),
		Author:            s.AuthorID.String(),
		Article:           article,
		Quantity:          s.Quantity,
		UnitSellingPrice:  s.UnitSellingPrice,
		TotalSellingPrice: s.TotalSellingPrice(),
	}
}
