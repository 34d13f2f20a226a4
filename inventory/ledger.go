/*
ledger.go - Ingredient ledger operations

PURPOSE:
  The Ledger validates input and delegates persistence to a Store.
  It is the only write path for ingredient records.

WRITE PATHS:
  Add         - create a new ingredient (cost/stock must be non-negative)
  SetStock    - overwrite on-hand quantity
  AdjustStock - apply a delta (the sale processor's deduction path)
  Remove      - delete the record; no cascade into product recipes

NO CASCADE ON REMOVE:
  A product whose recipe still references a removed ingredient keeps its
  stale name snapshot. Cost computation treats the missing ingredient as
  zero (see costing package); sale validation treats it as unavailable.
  Referential integrity across collections is an explicit non-goal.
*/
package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger owns ingredient records. Construct with NewLedger; pass the same
// instance to every component that needs ingredient access.
type Ledger struct {
	store Store
	now   func() time.Time
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// Add creates a new ingredient. Fails with an InvalidArgument error when
// the name is empty or either quantity is negative.
func (l *Ledger) Add(ctx context.Context, name string, unitCost, initialStock decimal.Decimal) (*Ingredient, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if unitCost.IsNegative() {
		return nil, ErrNegativeUnitCost
	}
	if initialStock.IsNegative() {
		return nil, ErrNegativeStock
	}

	ing := Ingredient{
		ID:        NewIngredientID(),
		Name:      name,
		UnitCost:  unitCost,
		Stock:     initialStock,
		CreatedAt: l.now(),
	}
	if err := l.store.SaveIngredient(ctx, ing); err != nil {
		return nil, err
	}
	return &ing, nil
}

// Get returns the ingredient or ErrIngredientNotFound.
func (l *Ledger) Get(ctx context.Context, id IngredientID) (*Ingredient, error) {
	ing, err := l.store.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, ErrIngredientNotFound
	}
	return ing, nil
}

// List returns all ingredients. Order is not guaranteed.
func (l *Ledger) List(ctx context.Context) ([]Ingredient, error) {
	return l.store.ListIngredients(ctx)
}

// SetStock overwrites the on-hand quantity.
func (l *Ledger) SetStock(ctx context.Context, id IngredientID, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return ErrNegativeStock
	}

	ing, err := l.store.GetIngredient(ctx, id)
	if err != nil {
		return err
	}
	if ing == nil {
		return ErrIngredientNotFound
	}

	ing.Stock = quantity
	return l.store.SaveIngredient(ctx, *ing)
}

// AdjustStock atomically applies quantity += delta and returns the new
// quantity. A delta that would drive stock negative fails with an
// *InsufficientStockError and leaves the quantity unchanged.
func (l *Ledger) AdjustStock(ctx context.Context, id IngredientID, delta decimal.Decimal) (decimal.Decimal, error) {
	return l.store.AdjustStock(ctx, id, delta)
}

// Remove deletes the ingredient. Removing an absent id is a no-op.
func (l *Ledger) Remove(ctx context.Context, id IngredientID) error {
	return l.store.DeleteIngredient(ctx, id)
}
