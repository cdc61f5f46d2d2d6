package service

import (
	"sort"
	"strings"
	"time"

	"salestrack/internal/dto"
	"salestrack/internal/model"

	"github.com/shopspring/decimal"
)

// The sale listing is a staged pipeline over the filtered set: map each row to
// its derived total, sort, reduce to the three scalar aggregates, then slice
// out the requested page. Every stage is a pure function over its input so the
// aggregates always reflect the full set regardless of pagination.

type saleRow struct {
	sale  model.Sale
	total decimal.Decimal
}

// buildRows computes row_total = quantity × unit_selling_price per sale.
func buildRows(sales []model.Sale) []saleRow {
	rows := make([]saleRow, len(sales))
	for i, s := range sales {
		rows[i] = saleRow{sale: s, total: s.TotalSellingPrice()}
	}
	return rows
}

// saleOrderFields whitelists the ordering parameter. Unknown fields are
// ignored and the default ordering applies.
var saleOrderFields = map[string]func(a, b saleRow) int{
	"id":                 func(a, b saleRow) int { return strings.Compare(a.sale.ID.String(), b.sale.ID.String()) },
	"date":               func(a, b saleRow) int { return a.sale.Date.Compare(b.sale.Date) },
	"quantity":           func(a, b saleRow) int { return a.sale.Quantity - b.sale.Quantity },
	"unit_selling_price": func(a, b saleRow) int { return a.sale.UnitSellingPrice.Cmp(b.sale.UnitSellingPrice) },
	"total_selling_price": func(a, b saleRow) int { return a.total.Cmp(b.total) },
}

// sortRows orders the filtered set. Without an explicit ordering parameter the
// set is sorted by row total descending. Ties are always broken by ascending
// sale ID so repeated identical requests produce identical output.
func sortRows(rows []saleRow, ordering string) {
	field, desc := "total_selling_price", true
	if ordering != "" {
		name := strings.TrimPrefix(ordering, "-")
		if _, ok := saleOrderFields[name]; ok {
			field = name
			desc = strings.HasPrefix(ordering, "-")
		}
	}
	cmp := saleOrderFields[field]

	sort.SliceStable(rows, func(i, j int) bool {
		c := cmp(rows[i], rows[j])
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return rows[i].sale.ID.String() < rows[j].sale.ID.String()
	})
}

// saleOrderExpr translates the ordering parameter into a SQL ordering
// expression for the unfiltered listing. Only whitelisted fields pass through;
// total_selling_price maps to its defining expression. The trailing id keeps
// the order total.
func saleOrderExpr(ordering string) string {
	columns := map[string]string{
		"id":                  "id",
		"date":                "date",
		"quantity":            "quantity",
		"unit_selling_price":  "unit_selling_price",
		"total_selling_price": "quantity * unit_selling_price",
	}
	name := strings.TrimPrefix(ordering, "-")
	col, ok := columns[name]
	if !ok {
		return "id ASC"
	}
	dir := "ASC"
	if strings.HasPrefix(ordering, "-") {
		dir = "DESC"
	}
	if name == "id" {
		return col + " " + dir
	}
	return col + " " + dir + ", id ASC"
}

// aggregateRows reduces the ENTIRE filtered set to the three scalar rollups.
// Sums start at zero so an empty set never yields a null sum, and the last
// selling date is only set when at least one row exists — the empty set is a
// defined case, not a fault.
func aggregateRows(rows []saleRow, manufacturingCost decimal.Decimal) dto.SaleAggregates {
	selling := decimal.Zero
	cost := decimal.Zero
	var last *time.Time

	for i := range rows {
		selling = selling.Add(rows[i].total)
		qty := decimal.NewFromInt(int64(rows[i].sale.Quantity))
		cost = cost.Add(manufacturingCost.Mul(qty))
		if last == nil || rows[i].sale.Date.After(*last) {
			d := rows[i].sale.Date
			last = &d
		}
	}

	agg := dto.SaleAggregates{
		TotalOfTotalSellingPrice: selling,
		TotalOfTotalCostPrice:    cost,
		Profit:                   selling.Sub(cost),
	}
	if last != nil {
		s := last.Format("2006-01-02")
		agg.LastSellingDate = &s
	}
	return agg
}

// pageRows slices the sorted set; aggregates are computed before this stage
// and are never affected by it.
func pageRows(rows []saleRow, offset, limit int) []saleRow {
	if offset >= len(rows) {
		return nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}
