/*
Package costing derives a product's production cost from its recipe.

PURPOSE:
  Pure computation, no persistence, no side effects. The catalog calls
  this every time a recipe is created or replaced and persists the
  result; cost is never entered directly.

MISSING INGREDIENTS:
  A recipe line whose ingredient cannot be resolved (deleted after the
  recipe was written) contributes zero to the cost instead of failing
  the whole computation. This keeps a product priceable after one of
  its ingredients was removed. Sale validation deliberately does NOT
  share this policy: there a missing ingredient means the sale cannot
  proceed.
*/
package costing

import "github.com/shopspring/decimal"

// Line is one ingredient requirement within a recipe: the referenced
// ingredient and the quantity needed per unit of product.
type Line struct {
	IngredientID string
	Quantity     decimal.Decimal
}

// CostLookup resolves an ingredient id to its current unit cost.
// The second return is false when the ingredient does not exist.
type CostLookup func(ingredientID string) (decimal.Decimal, bool)

// ProductionCost sums unitCost × quantity over all resolvable lines,
// rounded half-up to 2 decimal places. Unresolvable lines contribute
// zero.
func ProductionCost(lines []Line, lookup CostLookup) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		unitCost, ok := lookup(line.IngredientID)
		if !ok {
			continue
		}
		total = total.Add(unitCost.Mul(line.Quantity))
	}
	return total.Round(2)
}
