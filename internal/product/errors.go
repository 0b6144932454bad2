package product

import "errors"

var (
	// ErrProductNotFound signals that the product id is unknown.
	ErrProductNotFound = errors.New("product not found")
	// ErrMissingFields signals that a required create field was not supplied.
	ErrMissingFields = errors.New("name, quantity, price are required")
	// ErrInvalidNumber signals a quantity or price that does not parse as a
	// non-negative number.
	ErrInvalidNumber = errors.New("quantity and price must be non-negative numbers")
)
