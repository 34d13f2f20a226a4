/*
Package catalog manages sellable products and their recipe-derived cost.

PURPOSE:
  A product couples a sale price with a recipe (ingredient references +
  quantities). Production cost is derived: recomputed via the costing
  package and persisted every time the recipe is set or replaced, never
  entered directly.

NAME SNAPSHOTS:
  Each recipe line carries a copy of the ingredient's name taken at
  write time. It is a display cache, not a live join - it goes stale if
  the ingredient is renamed or deleted, and is never re-resolved.

SEE ALSO:
  - catalog.go: Catalog operations
  - costing: cost derivation
  - inventory: the ingredient records recipes point at
*/
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sugarcraft/confectionery-engine/inventory"
)

// ProductID is an opaque unique identifier for a product.
type ProductID string

// NewProductID generates a fresh product id.
func NewProductID() ProductID {
	return ProductID(uuid.NewString())
}

// RecipeLine is one ingredient requirement within a product's recipe.
// IngredientName is a snapshot taken when the recipe was written and
// may be stale.
type RecipeLine struct {
	IngredientID   inventory.IngredientID
	IngredientName string
	Quantity       decimal.Decimal // needed per one unit of product, always > 0
}

// Product is a sellable item.
//
// INVARIANT:
//   ProductionCost == round2(Σ line.Quantity × ingredient(line).UnitCost)
//   as of the last create/replace. Ingredient cost changes after that
//   point are not applied retroactively.
type Product struct {
	ID             ProductID
	Name           string
	Price          decimal.Decimal
	ProductionCost decimal.Decimal
	Recipe         []RecipeLine
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
