package order

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrProductMissing = errors.New("product no longer exists")
	ErrForbidden      = errors.New("order belongs to another user")
)

// InsufficientStockError names the product that blocked checkout and how
// many units are actually available, so the caller can show an actionable
// message. Checkout fails as a whole; nothing is persisted.
type InsufficientStockError struct {
	ProductID int    `json:"productID"`
	Name      string `json:"productName"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (product %d): requested %d, only %d available",
		e.Name, e.ProductID, e.Requested, e.Available)
}

// InvalidTransitionError reports a status change that violates the order
// state machine. No state is mutated when it is returned.
type InvalidTransitionError struct {
	From   Status `json:"currentStatus"`
	To     Status `json:"requestedStatus"`
	Reason string `json:"reason,omitempty"`
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot change order status from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}
