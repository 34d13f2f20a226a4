/*
catalog.go - Product catalog operations

COST DERIVATION:
  Create and Replace resolve every recipe line against the current
  ingredient ledger, snapshot the ingredient name, and persist the
  product with a freshly computed production cost. Replace never
  preserves the old cost - a recipe swap always reprices.

DELETION:
  Removing a product does not touch past sales. Sale records are
  immutable snapshots, not references, so reports stay correct even
  after the catalog changes.
*/
package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sugarcraft/confectionery-engine/costing"
	"github.com/sugarcraft/confectionery-engine/inventory"
)

// Store handles product persistence.
type Store interface {
	// SaveProduct inserts or fully replaces a product record.
	SaveProduct(ctx context.Context, p Product) error

	// GetProduct returns the product or (nil, nil) when absent.
	GetProduct(ctx context.Context, id ProductID) (*Product, error)

	// ListProducts returns all products. Order is not guaranteed.
	ListProducts(ctx context.Context) ([]Product, error)

	// DeleteProduct removes the record. Deleting an absent id is a no-op.
	DeleteProduct(ctx context.Context, id ProductID) error
}

// IngredientSource is the slice of the ingredient ledger the catalog
// needs: resolving recipe lines to current cost and name.
type IngredientSource interface {
	GetIngredient(ctx context.Context, id inventory.IngredientID) (*inventory.Ingredient, error)
}

// LineInput is the caller-supplied shape of a recipe line.
type LineInput struct {
	IngredientID inventory.IngredientID
	Quantity     decimal.Decimal
}

// Catalog owns product records. Construct with NewCatalog.
type Catalog struct {
	store       Store
	ingredients IngredientSource
	now         func() time.Time
}

func NewCatalog(store Store, ingredients IngredientSource) *Catalog {
	return &Catalog{store: store, ingredients: ingredients, now: time.Now}
}

// Create validates input, derives production cost from current
// ingredient state, and persists a new product.
func (c *Catalog) Create(ctx context.Context, name string, price decimal.Decimal, lines []LineInput) (*Product, error) {
	recipe, cost, err := c.buildRecipe(ctx, name, price, lines)
	if err != nil {
		return nil, err
	}

	now := c.now()
	p := Product{
		ID:             NewProductID(),
		Name:           name,
		Price:          price,
		ProductionCost: cost,
		Recipe:         recipe,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := c.store.SaveProduct(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns the product or ErrProductNotFound.
func (c *Catalog) Get(ctx context.Context, id ProductID) (*Product, error) {
	p, err := c.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// List returns all products. Order is not guaranteed.
func (c *Catalog) List(ctx context.Context) ([]Product, error) {
	return c.store.ListProducts(ctx)
}

// Replace fully overwrites name, price and recipe, recomputing the
// production cost from current ingredient state. The old cost is never
// carried over.
func (c *Catalog) Replace(ctx context.Context, id ProductID, name string, price decimal.Decimal, lines []LineInput) (*Product, error) {
	existing, err := c.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	recipe, cost, err := c.buildRecipe(ctx, name, price, lines)
	if err != nil {
		return nil, err
	}

	p := Product{
		ID:             id,
		Name:           name,
		Price:          price,
		ProductionCost: cost,
		Recipe:         recipe,
		CreatedAt:      existing.CreatedAt,
		UpdatedAt:      c.now(),
	}
	if err := c.store.SaveProduct(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Remove deletes the product. Past sale records are unaffected.
func (c *Catalog) Remove(ctx context.Context, id ProductID) error {
	return c.store.DeleteProduct(ctx, id)
}

// buildRecipe validates input, snapshots ingredient names, and derives
// the production cost. A recipe line whose ingredient no longer exists
// keeps an empty name snapshot and contributes zero cost.
func (c *Catalog) buildRecipe(ctx context.Context, name string, price decimal.Decimal, lines []LineInput) ([]RecipeLine, decimal.Decimal, error) {
	if name == "" {
		return nil, decimal.Zero, ErrNameRequired
	}
	if price.IsNegative() {
		return nil, decimal.Zero, ErrNegativePrice
	}

	recipe := make([]RecipeLine, 0, len(lines))
	costs := make(map[string]decimal.Decimal, len(lines))
	costLines := make([]costing.Line, 0, len(lines))

	for _, in := range lines {
		if !in.Quantity.IsPositive() {
			return nil, decimal.Zero, ErrInvalidRecipeLine
		}

		line := RecipeLine{IngredientID: in.IngredientID, Quantity: in.Quantity}
		ing, err := c.ingredients.GetIngredient(ctx, in.IngredientID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if ing != nil {
			line.IngredientName = ing.Name
			costs[string(ing.ID)] = ing.UnitCost
		}

		recipe = append(recipe, line)
		costLines = append(costLines, costing.Line{
			IngredientID: string(in.IngredientID),
			Quantity:     in.Quantity,
		})
	}

	cost := costing.ProductionCost(costLines, func(id string) (decimal.Decimal, bool) {
		c, ok := costs[id]
		return c, ok
	})
	return recipe, cost, nil
}
