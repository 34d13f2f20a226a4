/*
processor.go - The sale transaction

PURPOSE:
  Sell() is the one operation that spans all three collections: it
  reads the product, checks and deducts ingredient stock, and appends
  to the sale ledger.

TRANSACTION PROTOCOL:
  1. Resolve the product (NotFound if absent)
  2. Validation pass, read-only: every recipe line must have
     stock >= lineQty × saleQty. A missing ingredient fails the same
     way as short stock. First failure aborts the whole sale.
  3. Deduction pass: AdjustStock(-required) per line
  4. Append the immutable sale record

SERIALIZATION:
  AdjustStock protects one ingredient at a time; it cannot give the
  cross-ingredient atomicity a multi-line recipe needs. Two concurrent
  sales could both pass validation against the same borderline stock
  and over-deplete it. The processor therefore holds a mutex across
  validate+deduct+append. This is a hard requirement, not an
  optimization.

FAILURE HANDLING:
  Validation failures leave all state untouched. A deduction or append
  failure after validation is unexpected under the mutex (store-level
  I/O errors only); previously applied deductions are compensated so
  the no-partial-state promise holds on every path.
*/
package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sugarcraft/confectionery-engine/catalog"
	"github.com/sugarcraft/confectionery-engine/inventory"
)

// ErrInvalidQuantity is returned when the sale quantity is zero or
// negative.
var ErrInvalidQuantity = errors.New("sale quantity must be positive")

// ProductSource is the slice of the catalog the processor needs.
type ProductSource interface {
	GetProduct(ctx context.Context, id catalog.ProductID) (*catalog.Product, error)
}

// Processor executes sale transactions. One instance per ledger; the
// internal mutex is what serializes sales, so do not create several
// processors over the same stores.
type Processor struct {
	mu          sync.Mutex
	products    ProductSource
	ingredients inventory.Store
	ledger      Ledger
	now         func() time.Time
}

func NewProcessor(products ProductSource, ingredients inventory.Store, ledger Ledger) *Processor {
	return &Processor{
		products:    products,
		ingredients: ingredients,
		ledger:      ledger,
		now:         time.Now,
	}
}

// Sell validates and executes a sale of quantity units of the given
// product. On success the returned Sale has been appended to the
// ledger and every recipe ingredient's stock reduced by
// lineQty × quantity. On any error no state has changed.
func (p *Processor) Sell(ctx context.Context, productID catalog.ProductID, quantity decimal.Decimal) (*Sale, error) {
	if !quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	product, err := p.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, catalog.ErrProductNotFound
	}

	// Validation pass. Read-only: no mutation until every line clears.
	required := make([]decimal.Decimal, len(product.Recipe))
	for i, line := range product.Recipe {
		need := line.Quantity.Mul(quantity)
		required[i] = need

		ing, err := p.ingredients.GetIngredient(ctx, line.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			// Deleted mid-catalog: unavailable, not zero-cost.
			return nil, &inventory.InsufficientStockError{
				IngredientID: line.IngredientID,
				Name:         lineName(line),
				Required:     need,
				Available:    decimal.Zero,
			}
		}
		if ing.Stock.LessThan(need) {
			return nil, &inventory.InsufficientStockError{
				IngredientID: ing.ID,
				Name:         ing.Name,
				Required:     need,
				Available:    ing.Stock,
			}
		}
	}

	// Deduction pass. Validation confirmed sufficiency and the mutex
	// keeps other sales out, so failures here are store I/O errors.
	for i, line := range product.Recipe {
		if _, err := p.ingredients.AdjustStock(ctx, line.IngredientID, required[i].Neg()); err != nil {
			p.compensate(ctx, product.Recipe[:i], required[:i])
			return nil, fmt.Errorf("deducting %s: %w", lineName(line), err)
		}
	}

	sale := Sale{
		ID:      NewSaleID(),
		At:      p.now(),
		Items:   []Item{{ProductName: product.Name, Quantity: quantity}},
		Revenue: product.Price.Mul(quantity),
		Profit:  product.Price.Sub(product.ProductionCost).Mul(quantity),
	}
	if err := p.ledger.AppendSale(ctx, sale); err != nil {
		p.compensate(ctx, product.Recipe, required)
		return nil, fmt.Errorf("recording sale: %w", err)
	}
	return &sale, nil
}

// compensate re-adds deductions already applied when a later step
// fails, restoring the pre-sale stock levels.
func (p *Processor) compensate(ctx context.Context, lines []catalog.RecipeLine, required []decimal.Decimal) {
	for i, line := range lines {
		p.ingredients.AdjustStock(ctx, line.IngredientID, required[i])
	}
}

func lineName(line catalog.RecipeLine) string {
	if line.IngredientName != "" {
		return line.IngredientName
	}
	return string(line.IngredientID)
}
