/*
errors.go - Error types for the ingredient ledger

PURPOSE:
  All inventory errors in one place. Callers match sentinels with
  errors.Is and pull detail from structured errors with errors.As.
  The API layer translates these into HTTP status codes.

ERROR CATEGORIES:
  1. NotFound        - referenced ingredient id does not exist
  2. InvalidArgument - negative cost/stock, empty name
  3. InsufficientStock - an adjustment would drive stock below zero
*/
package inventory

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrIngredientNotFound is returned when a referenced ingredient id
	// does not exist in the ledger.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrNameRequired is returned when creating an ingredient without a name.
	ErrNameRequired = errors.New("ingredient name is required")

	// ErrNegativeUnitCost is returned for a negative unit cost.
	ErrNegativeUnitCost = errors.New("unit cost cannot be negative")

	// ErrNegativeStock is returned for a negative stock quantity.
	ErrNegativeStock = errors.New("stock cannot be negative")

	// ErrInsufficientStock is returned when an adjustment or sale would
	// drive an ingredient's stock below zero. The stock is left unchanged.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError names the offending ingredient and how much was
// required. The sale processor returns this for the first recipe line
// that fails validation.
type InsufficientStockError struct {
	IngredientID IngredientID
	Name         string
	Required     decimal.Decimal
	Available    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock of %s: need %s, have %s",
		e.Name, e.Required, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// IsInvalidArgument reports whether err is a client-input validation error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrNegativeUnitCost) ||
		errors.Is(err, ErrNegativeStock)
}
