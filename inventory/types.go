/*
Package inventory tracks raw materials: what each one costs and how much
is on hand.

PURPOSE:
  The ingredient ledger is the single owner of ingredient records. Other
  packages hold references (IngredientID) plus name snapshots, never the
  record itself. Stock only moves through SetStock (direct overwrite) or
  AdjustStock (delta, used by the sale processor), and it can never go
  negative.

KEY CONCEPTS:
  - Ingredient: unit cost + on-hand quantity, both decimal
  - Ledger: the service enforcing the non-negative stock invariant
  - Store: persistence interface (sqlite in production, memory in tests)

SEE ALSO:
  - ledger.go: Ledger operations and validation
  - errors.go: Error types returned by this package
  - store/sqlite, store/memory: Store implementations
*/
package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientID is an opaque unique identifier for an ingredient.
type IngredientID string

// NewIngredientID generates a fresh ingredient id.
func NewIngredientID() IngredientID {
	return IngredientID(uuid.NewString())
}

// Ingredient is a raw material tracked by unit cost and on-hand quantity.
//
// INVARIANTS:
//   - UnitCost >= 0
//   - Stock >= 0 at all times (enforced by Ledger and Store.AdjustStock)
type Ingredient struct {
	ID        IngredientID
	Name      string
	UnitCost  decimal.Decimal
	Stock     decimal.Decimal
	CreatedAt time.Time
}
