package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugarcraft/confectionery-engine/catalog"
	"github.com/sugarcraft/confectionery-engine/inventory"
	"github.com/sugarcraft/confectionery-engine/sales"
	"github.com/sugarcraft/confectionery-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestIngredientRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ing := inventory.Ingredient{
		ID:        inventory.NewIngredientID(),
		Name:      "Flour",
		UnitCost:  dec("2.00"),
		Stock:     dec("100.5"),
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveIngredient(ctx, ing))

	got, err := store.GetIngredient(ctx, ing.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Flour", got.Name)
	assert.True(t, got.UnitCost.Equal(dec("2.00")))
	assert.True(t, got.Stock.Equal(dec("100.5")))

	// Save again overwrites in place
	ing.Name = "Bread Flour"
	require.NoError(t, store.SaveIngredient(ctx, ing))
	got, err = store.GetIngredient(ctx, ing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread Flour", got.Name)

	list, err := store.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, store.DeleteIngredient(ctx, ing.ID))
	got, err = store.GetIngredient(ctx, ing.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdjustStock(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ing := inventory.Ingredient{
		ID:        inventory.NewIngredientID(),
		Name:      "Eggs",
		UnitCost:  dec("0.30"),
		Stock:     dec("12"),
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.SaveIngredient(ctx, ing))

	next, err := store.AdjustStock(ctx, ing.ID, dec("-5"))
	require.NoError(t, err)
	assert.True(t, next.Equal(dec("7")))

	// Over-deduction fails and leaves stock unchanged
	_, err = store.AdjustStock(ctx, ing.ID, dec("-8"))
	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Eggs", stockErr.Name)

	got, err := store.GetIngredient(ctx, ing.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(dec("7")))

	_, err = store.AdjustStock(ctx, "no-such-id", dec("-1"))
	assert.ErrorIs(t, err, inventory.ErrIngredientNotFound)
}

func TestProductRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := catalog.Product{
		ID:             catalog.NewProductID(),
		Name:           "Cake",
		Price:          dec("50"),
		ProductionCost: dec("20.00"),
		Recipe: []catalog.RecipeLine{
			{IngredientID: "ing-1", IngredientName: "Flour", Quantity: dec("10")},
			{IngredientID: "ing-2", IngredientName: "Sugar", Quantity: dec("2.5")},
		},
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveProduct(ctx, p))

	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Cake", got.Name)
	assert.True(t, got.ProductionCost.Equal(dec("20.00")))
	require.Len(t, got.Recipe, 2)
	assert.Equal(t, "Flour", got.Recipe[0].IngredientName)
	assert.True(t, got.Recipe[1].Quantity.Equal(dec("2.5")))

	require.NoError(t, store.DeleteProduct(ctx, p.ID))
	got, err = store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaleLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	s1 := sales.Sale{
		ID:      sales.NewSaleID(),
		At:      time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
		Items:   []sales.Item{{ProductName: "Cake", Quantity: dec("3")}},
		Revenue: dec("150.00"),
		Profit:  dec("90.00"),
	}
	s2 := sales.Sale{
		ID:      sales.NewSaleID(),
		At:      time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		Items:   []sales.Item{{ProductName: "Cookie", Quantity: dec("10")}},
		Revenue: dec("50.00"),
		Profit:  dec("30.00"),
	}
	require.NoError(t, store.AppendSale(ctx, s1))
	require.NoError(t, store.AppendSale(ctx, s2))

	all, err := store.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, s1.ID, all[0].ID, "ordered by time")
	assert.True(t, all[0].Revenue.Equal(dec("150.00")))
	require.Len(t, all[0].Items, 1)
	assert.Equal(t, "Cake", all[0].Items[0].ProductName)

	march, err := store.ListSalesInRange(ctx,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, march, 1)
	assert.Equal(t, s1.ID, march[0].ID)
}
