/*
Package reporting derives financial views from the sale ledger.

PURPOSE:
  Read-only aggregation: revenue/profit totals and per-product unit
  rankings over an unbounded or month-bounded window. Nothing here
  mutates state, so every operation is idempotent - two calls with no
  intervening sale return identical results.

SHAPE:
  Aggregation is a fold over the loaded sale records, not a
  storage-side query language. The store only narrows by time range;
  grouping and summing happen here so the same code runs against
  sqlite and the in-memory store.

EMPTY WINDOWS:
  A window with no sales yields zero totals or an empty ranking, never
  an error. Callers render "no sales" distinctly from a failed request.
*/
package reporting

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sugarcraft/confectionery-engine/sales"
)

// Summary is the dashboard view of a window: total revenue, total
// estimated profit, and how many sales were recorded.
type Summary struct {
	Revenue   decimal.Decimal
	Profit    decimal.Decimal
	SaleCount int
}

// ProductTotal is one row of a product ranking: a product-name
// snapshot and the summed quantity sold under that name.
type ProductTotal struct {
	Name     string
	Quantity decimal.Decimal
}

// MonthReport combines a month's revenue with its product breakdown.
type MonthReport struct {
	Revenue  decimal.Decimal
	Products []ProductTotal
}

// Aggregator reads the sale ledger. It holds no state of its own.
type Aggregator struct {
	ledger sales.Ledger
}

func NewAggregator(ledger sales.Ledger) *Aggregator {
	return &Aggregator{ledger: ledger}
}

// Summary sums revenue, profit and sale count over the window.
func (a *Aggregator) Summary(ctx context.Context, w Window) (Summary, error) {
	recs, err := a.ledger.ListSalesInRange(ctx, w.Start, w.End)
	if err != nil {
		return Summary{}, err
	}

	return fold(recs, Summary{Revenue: decimal.Zero, Profit: decimal.Zero},
		func(acc Summary, s sales.Sale) Summary {
			acc.Revenue = acc.Revenue.Add(s.Revenue)
			acc.Profit = acc.Profit.Add(s.Profit)
			acc.SaleCount++
			return acc
		}), nil
}

// TopProducts ranks product-name snapshots by total quantity sold,
// descending. A nil window aggregates the full ledger. Ties keep the
// sort's encounter order; no further ordering is promised.
func (a *Aggregator) TopProducts(ctx context.Context, w *Window) ([]ProductTotal, error) {
	recs, err := a.load(ctx, w)
	if err != nil {
		return nil, err
	}
	return rankProducts(recs), nil
}

// MonthReport returns the month's total revenue and its per-product
// quantity breakdown, sorted descending.
func (a *Aggregator) MonthReport(ctx context.Context, w Window) (MonthReport, error) {
	recs, err := a.ledger.ListSalesInRange(ctx, w.Start, w.End)
	if err != nil {
		return MonthReport{}, err
	}

	revenue := fold(recs, decimal.Zero, func(acc decimal.Decimal, s sales.Sale) decimal.Decimal {
		return acc.Add(s.Revenue)
	})
	return MonthReport{Revenue: revenue, Products: rankProducts(recs)}, nil
}

func (a *Aggregator) load(ctx context.Context, w *Window) ([]sales.Sale, error) {
	if w == nil {
		return a.ledger.ListSales(ctx)
	}
	return a.ledger.ListSalesInRange(ctx, w.Start, w.End)
}

// fold reduces a sequence of sale records into an accumulator.
func fold[T any](recs []sales.Sale, seed T, step func(T, sales.Sale) T) T {
	acc := seed
	for _, s := range recs {
		acc = step(acc, s)
	}
	return acc
}

func rankProducts(recs []sales.Sale) []ProductTotal {
	totals := fold(recs, map[string]decimal.Decimal{},
		func(acc map[string]decimal.Decimal, s sales.Sale) map[string]decimal.Decimal {
			for _, item := range s.Items {
				acc[item.ProductName] = acc[item.ProductName].Add(item.Quantity)
			}
			return acc
		})

	ranking := make([]ProductTotal, 0, len(totals))
	for name, qty := range totals {
		ranking = append(ranking, ProductTotal{Name: name, Quantity: qty})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Quantity.GreaterThan(ranking[j].Quantity)
	})
	return ranking
}
