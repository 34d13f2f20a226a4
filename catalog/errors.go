package catalog

import "errors"

var (
	// ErrProductNotFound is returned when a referenced product id does
	// not exist in the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrNameRequired is returned when creating a product without a name.
	ErrNameRequired = errors.New("product name is required")

	// ErrNegativePrice is returned for a negative sale price.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrInvalidRecipeLine is returned when a recipe line's quantity is
	// zero or negative.
	ErrInvalidRecipeLine = errors.New("recipe line quantity must be positive")
)

// IsInvalidArgument reports whether err is a client-input validation error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrNegativePrice) ||
		errors.Is(err, ErrInvalidRecipeLine)
}
