package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateArticleRequest struct {
	Code              string          `json:"code"     validate:"required,min=1,max=64"`
	Category          string          `json:"category" validate:"required,uuid"`
	Name              string          `json:"name"     validate:"required,min=1,max=120"`
	ManufacturingCost decimal.Decimal `json:"manufacturing_cost" validate:"min=0"`
}

type UpdateArticleRequest struct {
	Code              *string          `json:"code"     validate:"omitempty,min=1,max=64"`
	Category          *string          `json:"category" validate:"omitempty,uuid"`
	Name              *string          `json:"name"     validate:"omitempty,min=1,max=120"`
	ManufacturingCost *decimal.Decimal `json:"manufacturing_cost" validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ArticleFilter struct {
	Category string `form:"category" validate:"omitempty,uuid"`
	Code     string `form:"code"`
	Limit    int    `form:"limit"  validate:"min=0"`
	Offset   int    `form:"offset" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ArticleResponse struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"`
	Category          string          `json:"category"`
	Name              string          `json:"name"`
	ManufacturingCost decimal.Decimal `json:"manufacturing_cost"`
}

type ArticleListResponse struct {
	Count    int64             `json:"count"`
	Next     *int              `json:"next"`
	Previous *int              `json:"previous"`
	Results  []ArticleResponse `json:"results"`
}
