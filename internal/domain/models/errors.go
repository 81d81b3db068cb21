package models

import (
	"errors"
	"fmt"
)

// Validation failures. All of them wrap ErrValidation so callers can match the
// whole family with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrProductNameRequired = fmt.Errorf("%w: product_name is required", ErrValidation)
	ErrSupplierRequired    = fmt.Errorf("%w: supplier is required", ErrValidation)
	ErrProductIDRequired   = fmt.Errorf("%w: product_id is required", ErrValidation)
	ErrNegativePrice       = fmt.Errorf("%w: price must be greater than or equal to 0", ErrValidation)
	ErrInvalidQuantity     = fmt.Errorf("%w: quantity must be greater than 0", ErrValidation)
)

var (
	// ErrNotFound signals that the referenced product_id does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock signals a sale quantity above the available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// BackendError wraps a persistence backend failure. The core never retries;
// callers decide what to do with the wrapped cause.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// NewBackendError tags err with the failing store operation.
func NewBackendError(op string, err error) *BackendError {
	return &BackendError{Op: op, Err: err}
}

// PartialSaleError reports a sale whose stock decrement succeeded but whose
// sale-record append failed. The decrement is not rolled back; the caller is
// expected to reconcile manually.
type PartialSaleError struct {
	ProductID string
	Quantity  int
	Err       error
}

func (e *PartialSaleError) Error() string {
	return fmt.Sprintf("sale partially applied for product %s: stock reduced by %d but sale record not persisted: %v", e.ProductID, e.Quantity, e.Err)
}

func (e *PartialSaleError) Unwrap() error { return e.Err }
