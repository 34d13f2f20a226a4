/*
Package sales executes sale transactions and owns the append-only sale
ledger.

PURPOSE:
  A sale checks an entire recipe against available stock, deducts every
  consumed ingredient, and appends an immutable record of what was sold
  and what it earned. The ledger is the source of truth for all
  reporting.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: sale records are never updated or deleted
  2. SNAPSHOT: a record stores the product name and the computed totals,
     never live references - deleting the product later does not change
     history
  3. ALL-OR-NOTHING: either every ingredient is deducted and the record
     written, or nothing changes at all

SEE ALSO:
  - processor.go: the validate-then-deduct transaction
  - reporting: read-only aggregation over this ledger
*/
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleID is an opaque unique identifier for a sale record.
type SaleID string

// NewSaleID generates a fresh sale id.
func NewSaleID() SaleID {
	return SaleID(uuid.NewString())
}

// Item is one line of a sale: a product-name snapshot and the quantity
// sold. The name is copied at sale time and never re-resolved.
type Item struct {
	ProductName string
	Quantity    decimal.Decimal
}

// Sale is an immutable ledger entry recording a completed transaction.
//
// Revenue and Profit are derived at sale time from the product's price
// and production cost as they were then; later catalog changes are not
// applied retroactively.
type Sale struct {
	ID      SaleID
	At      time.Time
	Items   []Item
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// Ledger is the append-only store of sale records.
type Ledger interface {
	// AppendSale persists a sale record. This is the ONLY write
	// operation; there is no update or delete.
	AppendSale(ctx context.Context, s Sale) error

	// ListSales returns all sales ordered by time.
	ListSales(ctx context.Context) ([]Sale, error)

	// ListSalesInRange returns sales with At in [from, to], ordered by
	// time.
	ListSalesInRange(ctx context.Context, from, to time.Time) ([]Sale, error)
}
