package apperrors

import (
	"errors"
	"fmt"
)

// ErrInsufficientStock is the sentinel matched by errors.Is for any stock shortfall.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError reports an out-direction movement that would take a
// product's stock below zero. It carries enough detail for the handler to
// render the operator-facing message.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s. Available: %d, Required: %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ErrOverReturn is the sentinel for return quantities exceeding the returnable remainder.
var ErrOverReturn = errors.New("return quantity exceeds returnable quantity")

// OverReturnError reports a sale-return line asking for more units than remain
// returnable on the original sale line.
type OverReturnError struct {
	ProductID string
	Sold      int64
	Returned  int64
	Requested int64
}

func (e *OverReturnError) Error() string {
	return fmt.Sprintf("return quantity for product exceeds available quantity. Available for return: %d",
		e.Sold-e.Returned)
}

func (e *OverReturnError) Unwrap() error {
	return ErrOverReturn
}

// ErrLineNotFound is the sentinel for return lines naming a product absent from the original sale.
var ErrLineNotFound = errors.New("product not part of the original sale")

// LineNotFoundError reports a sale-return line for a product the referenced
// sale never contained.
type LineNotFoundError struct {
	ProductID string
	SaleID    string
}

func (e *LineNotFoundError) Error() string {
	return fmt.Sprintf("product %s was not found in the original sale", e.ProductID)
}

func (e *LineNotFoundError) Unwrap() error {
	return ErrLineNotFound
}
