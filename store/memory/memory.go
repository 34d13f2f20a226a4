// Package memory provides an in-memory store implementation (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sugarcraft/confectionery-engine/catalog"
	"github.com/sugarcraft/confectionery-engine/inventory"
	"github.com/sugarcraft/confectionery-engine/sales"
)

// =============================================================================
// MEMORY STORE - Implements inventory.Store, catalog.Store and sales.Ledger
// =============================================================================

type Store struct {
	mu          sync.RWMutex
	ingredients map[inventory.IngredientID]inventory.Ingredient
	products    map[catalog.ProductID]catalog.Product
	sales       []sales.Sale
}

func New() *Store {
	return &Store{
		ingredients: make(map[inventory.IngredientID]inventory.Ingredient),
		products:    make(map[catalog.ProductID]catalog.Product),
	}
}

// -----------------------------------------------------------------------------
// inventory.Store
// -----------------------------------------------------------------------------

func (s *Store) SaveIngredient(_ context.Context, ing inventory.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients[ing.ID] = cloneIngredient(ing)
	return nil
}

func (s *Store) GetIngredient(_ context.Context, id inventory.IngredientID) (*inventory.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ing, ok := s.ingredients[id]
	if !ok {
		return nil, nil
	}
	out := cloneIngredient(ing)
	return &out, nil
}

func (s *Store) ListIngredients(_ context.Context) ([]inventory.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]inventory.Ingredient, 0, len(s.ingredients))
	for _, ing := range s.ingredients {
		out = append(out, cloneIngredient(ing))
	}
	return out, nil
}

func (s *Store) DeleteIngredient(_ context.Context, id inventory.IngredientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ingredients, id)
	return nil
}

// AdjustStock applies the delta under the write lock, so the check and
// the write are one atomic step per ingredient.
func (s *Store) AdjustStock(_ context.Context, id inventory.IngredientID, delta decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ing, ok := s.ingredients[id]
	if !ok {
		return decimal.Zero, inventory.ErrIngredientNotFound
	}

	next := ing.Stock.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, &inventory.InsufficientStockError{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Required:     delta.Neg(),
			Available:    ing.Stock,
		}
	}

	ing.Stock = next
	s.ingredients[id] = ing
	return next, nil
}

// -----------------------------------------------------------------------------
// catalog.Store
// -----------------------------------------------------------------------------

func (s *Store) SaveProduct(_ context.Context, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = cloneProduct(p)
	return nil
}

func (s *Store) GetProduct(_ context.Context, id catalog.ProductID) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	out := cloneProduct(p)
	return &out, nil
}

func (s *Store) ListProducts(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (s *Store) DeleteProduct(_ context.Context, id catalog.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	return nil
}

// -----------------------------------------------------------------------------
// sales.Ledger (append-only)
// -----------------------------------------------------------------------------

func (s *Store) AppendSale(_ context.Context, sale sales.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Binary search for the insertion point keeps the slice ordered by
	// time without a full re-sort per append.
	i := sort.Search(len(s.sales), func(i int) bool {
		return s.sales[i].At.After(sale.At)
	})
	s.sales = append(s.sales, sales.Sale{})
	copy(s.sales[i+1:], s.sales[i:])
	s.sales[i] = cloneSale(sale)
	return nil
}

func (s *Store) ListSales(_ context.Context) ([]sales.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]sales.Sale, len(s.sales))
	for i, sale := range s.sales {
		out[i] = cloneSale(sale)
	}
	return out, nil
}

func (s *Store) ListSalesInRange(_ context.Context, from, to time.Time) ([]sales.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []sales.Sale
	for _, sale := range s.sales {
		if !sale.At.Before(from) && !sale.At.After(to) {
			out = append(out, cloneSale(sale))
		}
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Copies - callers never share backing slices with the store
// -----------------------------------------------------------------------------

func cloneIngredient(ing inventory.Ingredient) inventory.Ingredient {
	return ing
}

func cloneProduct(p catalog.Product) catalog.Product {
	out := p
	out.Recipe = append([]catalog.RecipeLine(nil), p.Recipe...)
	return out
}

func cloneSale(s sales.Sale) sales.Sale {
	out := s
	out.Items = append([]sales.Item(nil), s.Items...)
	return out
}
