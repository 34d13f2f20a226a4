package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugarcraft/confectionery-engine/reporting"
	"github.com/sugarcraft/confectionery-engine/sales"
	"github.com/sugarcraft/confectionery-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func saleAt(t *testing.T, store *memory.Store, at time.Time, product, qty, revenue, profit string) {
	t.Helper()
	err := store.AppendSale(context.Background(), sales.Sale{
		ID:      sales.NewSaleID(),
		At:      at,
		Items:   []sales.Item{{ProductName: product, Quantity: dec(qty)}},
		Revenue: dec(revenue),
		Profit:  dec(profit),
	})
	require.NoError(t, err)
}

var march = reporting.Month(2026, time.March, time.UTC)

// =============================================================================
// SUMMARY
// =============================================================================

func TestSummary_SumsWindowedSales(t *testing.T) {
	// GIVEN: Two March sales and one April sale
	store := memory.New()
	agg := reporting.NewAggregator(store)

	saleAt(t, store, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), "Cake", "3", "150.00", "90.00")
	saleAt(t, store, time.Date(2026, 3, 20, 16, 0, 0, 0, time.UTC), "Cookie", "10", "50.00", "30.00")
	saleAt(t, store, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), "Cake", "1", "50.00", "30.00")

	// WHEN: Summarizing March
	sum, err := agg.Summary(context.Background(), march)

	// THEN: Only the two March sales count
	require.NoError(t, err)
	assert.Equal(t, 2, sum.SaleCount)
	assert.True(t, sum.Revenue.Equal(dec("200.00")), "revenue %s", sum.Revenue)
	assert.True(t, sum.Profit.Equal(dec("120.00")), "profit %s", sum.Profit)
}

func TestSummary_EmptyWindowIsZero(t *testing.T) {
	store := memory.New()
	agg := reporting.NewAggregator(store)

	sum, err := agg.Summary(context.Background(), march)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.SaleCount)
	assert.True(t, sum.Revenue.IsZero())
	assert.True(t, sum.Profit.IsZero())
}

func TestSummary_IncludesWindowBoundaries(t *testing.T) {
	store := memory.New()
	agg := reporting.NewAggregator(store)

	saleAt(t, store, march.Start, "Cake", "1", "50.00", "30.00")
	saleAt(t, store, march.End, "Cake", "1", "50.00", "30.00")

	sum, err := agg.Summary(context.Background(), march)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.SaleCount)
}

func TestSummary_IsIdempotent(t *testing.T) {
	store := memory.New()
	agg := reporting.NewAggregator(store)
	saleAt(t, store, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), "Cake", "3", "150.00", "90.00")

	first, err := agg.Summary(context.Background(), march)
	require.NoError(t, err)
	second, err := agg.Summary(context.Background(), march)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// =============================================================================
// TOP PRODUCTS
// =============================================================================

func TestTopProducts_RanksByQuantityDescending(t *testing.T) {
	store := memory.New()
	agg := reporting.NewAggregator(store)

	saleAt(t, store, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), "Cake", "2", "100.00", "60.00")
	saleAt(t, store, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), "Cookie", "12", "60.00", "36.00")
	saleAt(t, store, time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC), "Cake", "3", "150.00", "90.00")

	totals, err := agg.TopProducts(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, totals, 2)
	assert.Equal(t, "Cookie", totals[0].Name)
	assert.True(t, totals[0].Quantity.Equal(dec("12")))
	assert.Equal(t, "Cake", totals[1].Name)
	assert.True(t, totals[1].Quantity.Equal(dec("5")), "summed across sales")
}

func TestTopProducts_GroupsByNameSnapshot(t *testing.T) {
	// Reports reflect what was sold even after the catalog changes:
	// grouping is by the snapshotted name, not any live product.
	store := memory.New()
	agg := reporting.NewAggregator(store)

	saleAt(t, store, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), "Cake", "2", "100.00", "60.00")
	saleAt(t, store, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), "Deluxe Cake", "1", "75.00", "49.00")

	totals, err := agg.TopProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, totals, 2, "renamed product counts separately")
}

func TestTopProducts_WindowedAndEmpty(t *testing.T) {
	store := memory.New()
	agg := reporting.NewAggregator(store)
	saleAt(t, store, time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC), "Cake", "2", "100.00", "60.00")

	totals, err := agg.TopProducts(context.Background(), &march)
	require.NoError(t, err)
	assert.Empty(t, totals, "empty window is an empty ranking, not an error")
}

// =============================================================================
// MONTH REPORT
// =============================================================================

func TestMonthReport_RevenueAndBreakdown(t *testing.T) {
	store := memory.New()
	agg := reporting.NewAggregator(store)

	saleAt(t, store, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), "Cake", "3", "150.00", "90.00")
	saleAt(t, store, time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC), "Cookie", "5", "25.00", "15.00")
	saleAt(t, store, time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC), "Cake", "9", "450.00", "270.00")

	report, err := agg.MonthReport(context.Background(), march)
	require.NoError(t, err)

	assert.True(t, report.Revenue.Equal(dec("175.00")), "February excluded, got %s", report.Revenue)
	require.Len(t, report.Products, 2)
	assert.Equal(t, "Cookie", report.Products[0].Name)
}

// =============================================================================
// WINDOWS
// =============================================================================

func TestParseMonth(t *testing.T) {
	w, err := reporting.ParseMonth("2026-03", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.True(t, w.Contains(time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))

	_, err = reporting.ParseMonth("March 2026", time.UTC)
	assert.ErrorIs(t, err, reporting.ErrInvalidMonthKey)

	_, err = reporting.ParseMonth("", time.UTC)
	assert.ErrorIs(t, err, reporting.ErrInvalidMonthKey)
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2026, 12, 15, 13, 30, 0, 0, time.UTC)
	w := reporting.CurrentMonth(now)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.True(t, w.Contains(time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
}
