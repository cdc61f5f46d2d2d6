package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sale.
type SaleFilter struct {
	// ArticleID restricts the listing to one article and switches on the
	// aggregate rollup fields in the response.
	ArticleID string `form:"article_id" validate:"omitempty,uuid"`
	// Ordering accepts a whitelisted field name, "-"-prefixed for descending:
	// id, date, quantity, unit_selling_price, total_selling_price.
	Ordering string `form:"ordering"`
	Limit    int    `form:"limit"  validate:"min=0"`
	Offset   int    `form:"offset" validate:"min=0"`
}

// ArticleSummary is the nested article payload embedded in every sale row.
type ArticleSummary struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

// SaleResponse is one row of GET /v1/sale results.
type SaleResponse struct {
	ID                string          `json:"id"`
	Date              string          `json:"date"` // YYYY-MM-DD
	Author            string          `json:"author"`
	Article           ArticleSummary  `json:"article"`
	Quantity          int             `json:"quantity"`
	UnitSellingPrice  decimal.Decimal `json:"unit_selling_price"`
	TotalSellingPrice decimal.Decimal `json:"total_selling_price"`
}

// SaleAggregates are the scalar rollups computed over the ENTIRE filtered
// set — never over the current page. LastSellingDate is null when the
// filtered set is empty. The cost sum is an operand of profit and stays off
// the wire.
type SaleAggregates struct {
	TotalOfTotalSellingPrice decimal.Decimal `json:"total_of_total_selling_price"`
	TotalOfTotalCostPrice    decimal.Decimal `json:"-"`
	Profit                   decimal.Decimal `json:"profit"`
	LastSellingDate          *string         `json:"last_selling_date"`
}

// SaleListResponse is the paginated envelope without aggregate fields,
// returned when no article_id filter was supplied.
type SaleListResponse struct {
	Count    int64          `json:"count"`
	Next     *int           `json:"next"`
	Previous *int           `json:"previous"`
	Results  []SaleResponse `json:"results"`
}

// SaleAggregatedListResponse is the envelope returned when article_id was
// supplied: same pagination fields plus the flattened aggregate rollup.
type SaleAggregatedListResponse struct {
	Count    int64 `json:"count"`
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
	SaleAggregates
	Results []SaleResponse `json:"results"`
}

// SaleListResult is what the aggregation stage hands to the response
// assembler: page rows, pre-pagination count, pagination window, and the
// rollup (nil unless article_id was supplied).
type SaleListResult struct {
	Count      int64
	Limit      int
	Offset     int
	Aggregates *SaleAggregates
	Results    []SaleResponse
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateSaleRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	// Author is optional; it defaults to the authenticated caller.
	Author           *string         `json:"author"   validate:"omitempty,uuid"`
	Article          string          `json:"article"  validate:"required,uuid"`
	Quantity         int             `json:"quantity" validate:"required,min=1"`
	UnitSellingPrice decimal.Decimal `json:"unit_selling_price" validate:"min=0"`
}

type UpdateSaleRequest struct {
	Date             *string          `json:"date"    validate:"omitempty,datetime=2006-01-02"`
	Author           *string          `json:"author"  validate:"omitempty,uuid"`
	Article          *string          `json:"article" validate:"omitempty,uuid"`
	Quantity         *int             `json:"quantity" validate:"omitempty,min=1"`
	UnitSellingPrice *decimal.Decimal `json:"unit_selling_price" validate:"omitempty,min=0"`
}
