package inventory

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store handles ingredient persistence.
//
// Individual operations are atomic single-record reads/writes. Cross-record
// atomicity (a sale spanning several ingredients) is NOT provided here; the
// sale processor serializes around it.
type Store interface {
	// SaveIngredient inserts or fully replaces an ingredient record.
	SaveIngredient(ctx context.Context, ing Ingredient) error

	// GetIngredient returns the ingredient or (nil, nil) when absent.
	GetIngredient(ctx context.Context, id IngredientID) (*Ingredient, error)

	// ListIngredients returns all ingredients. Order is not guaranteed.
	ListIngredients(ctx context.Context) ([]Ingredient, error)

	// DeleteIngredient removes the record. Deleting an absent id is a no-op.
	DeleteIngredient(ctx context.Context, id IngredientID) error

	// AdjustStock atomically applies stock += delta and returns the new
	// quantity. Fails with ErrIngredientNotFound if the id is absent, or
	// an *InsufficientStockError (stock unchanged) if the result would be
	// negative.
	AdjustStock(ctx context.Context, id IngredientID, delta decimal.Decimal) (decimal.Decimal, error)
}
