package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugarcraft/confectionery-engine/inventory"
	"github.com/sugarcraft/confectionery-engine/store/memory"
)

func newTestLedger(t *testing.T) *inventory.Ledger {
	t.Helper()
	return inventory.NewLedger(memory.New())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedger_AddAndGet(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	ing, err := ledger.Add(ctx, "Flour", dec("2.00"), dec("100"))
	require.NoError(t, err)
	require.NotEmpty(t, ing.ID)

	got, err := ledger.Get(ctx, ing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flour", got.Name)
	assert.True(t, got.UnitCost.Equal(dec("2.00")))
	assert.True(t, got.Stock.Equal(dec("100")))
}

func TestLedger_Add_RejectsInvalidInput(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Add(ctx, "", dec("1"), dec("1"))
	assert.ErrorIs(t, err, inventory.ErrNameRequired)

	_, err = ledger.Add(ctx, "Flour", dec("-1"), dec("1"))
	assert.ErrorIs(t, err, inventory.ErrNegativeUnitCost)

	_, err = ledger.Add(ctx, "Flour", dec("1"), dec("-1"))
	assert.ErrorIs(t, err, inventory.ErrNegativeStock)
}

func TestLedger_Get_NotFound(t *testing.T) {
	ledger := newTestLedger(t)

	_, err := ledger.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, inventory.ErrIngredientNotFound)
}

func TestLedger_SetStock(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	ing, err := ledger.Add(ctx, "Sugar", dec("0.50"), dec("10"))
	require.NoError(t, err)

	require.NoError(t, ledger.SetStock(ctx, ing.ID, dec("42.5")))

	got, err := ledger.Get(ctx, ing.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(dec("42.5")))
}

func TestLedger_SetStock_Errors(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	err := ledger.SetStock(ctx, "no-such-id", dec("5"))
	assert.ErrorIs(t, err, inventory.ErrIngredientNotFound)

	ing, err := ledger.Add(ctx, "Sugar", dec("0.50"), dec("10"))
	require.NoError(t, err)

	err = ledger.SetStock(ctx, ing.ID, dec("-5"))
	assert.ErrorIs(t, err, inventory.ErrNegativeStock)

	// Stock untouched by the failed overwrite
	got, _ := ledger.Get(ctx, ing.ID)
	assert.True(t, got.Stock.Equal(dec("10")))
}

func TestLedger_AdjustStock_AppliesDelta(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	ing, err := ledger.Add(ctx, "Eggs", dec("0.30"), dec("12"))
	require.NoError(t, err)

	got, err := ledger.AdjustStock(ctx, ing.ID, dec("-5"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("7")))

	got, err = ledger.AdjustStock(ctx, ing.ID, dec("3"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("10")))
}

func TestLedger_AdjustStock_InsufficientLeavesStockUnchanged(t *testing.T) {
	// GIVEN: 12 eggs on hand
	ledger := newTestLedger(t)
	ctx := context.Background()

	ing, err := ledger.Add(ctx, "Eggs", dec("0.30"), dec("12"))
	require.NoError(t, err)

	// WHEN: Deducting 13
	_, err = ledger.AdjustStock(ctx, ing.ID, dec("-13"))

	// THEN: InsufficientStock naming the ingredient, quantity unchanged
	require.Error(t, err)
	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Eggs", stockErr.Name)
	assert.True(t, stockErr.Required.Equal(dec("13")))
	assert.True(t, stockErr.Available.Equal(dec("12")))

	got, _ := ledger.Get(ctx, ing.ID)
	assert.True(t, got.Stock.Equal(dec("12")))
}

func TestLedger_AdjustStock_ToExactlyZero(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	ing, err := ledger.Add(ctx, "Butter", dec("1.20"), dec("4"))
	require.NoError(t, err)

	got, err := ledger.AdjustStock(ctx, ing.ID, dec("-4"))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestLedger_Remove(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	ing, err := ledger.Add(ctx, "Flour", dec("2.00"), dec("100"))
	require.NoError(t, err)

	require.NoError(t, ledger.Remove(ctx, ing.ID))

	_, err = ledger.Get(ctx, ing.ID)
	assert.ErrorIs(t, err, inventory.ErrIngredientNotFound)

	// Removing again is a no-op, matching delete semantics of the store
	assert.NoError(t, ledger.Remove(ctx, ing.ID))
}

func TestLedger_List(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Add(ctx, "Flour", dec("2.00"), dec("100"))
	require.NoError(t, err)
	_, err = ledger.Add(ctx, "Sugar", dec("0.50"), dec("50"))
	require.NoError(t, err)

	ings, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ings, 2)
}
