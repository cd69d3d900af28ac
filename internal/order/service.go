package order

import (
	"fmt"
	"time"

	"github.com/awwalu253-ctrl/captain-signature/internal/cart"
	"github.com/awwalu253-ctrl/captain-signature/internal/pricing"
	"github.com/awwalu253-ctrl/captain-signature/internal/settings"
)

// Notifier receives order lifecycle events. Delivery failures are logged and
// swallowed; notifications never block or fail an order operation.
type Notifier interface {
	OrderPlaced(ord Order) error
	OrderStatusChanged(ord Order, old Status, actor Actor) error
}

// CheckoutInput carries the shipping and payment details collected on the
// checkout page. Everything priced comes from the cart and settings instead.
type CheckoutInput struct {
	UserID        int
	ShippingName  string
	Address       string
	City          string
	State         string
	Phone         string
	Email         string
	PaymentMethod string
	CustomerNotes string
}

type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

// Checkout prices the cart, builds the order snapshot and hands it to the
// repository for atomic persistence. The quote is recomputed here from live
// settings so a stale cart page can never fix the delivery fee.
func (s *Service) Checkout(crt *cart.Cart, cartSessionID string, in CheckoutInput, cfg settings.Settings) (Order, error) {
	items := crt.Items()
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	quote := pricing.Compute(crt.Subtotal(), cfg.DeliveryFee, cfg.FreeDeliveryThreshold)

	if in.PaymentMethod == "" {
		in.PaymentMethod = PaymentCashOnDelivery
	}

	ord := Order{
		OrderNumber: NewOrderNumber(),
		UserID:      in.UserID,
		OrderDate:   s.now().UTC(),
		Status:      StatusPending,

		Subtotal:    quote.Subtotal,
		DeliveryFee: quote.DeliveryFee,
		Total:       quote.Total,

		ShippingName:    in.ShippingName,
		ShippingAddress: in.Address,
		ShippingCity:    in.City,
		ShippingState:   in.State,
		ShippingPhone:   in.Phone,
		ShippingEmail:   in.Email,

		PaymentMethod: in.PaymentMethod,
		PaymentStatus: PaymentStatusPending,
		CustomerNotes: in.CustomerNotes,
	}
	for _, it := range items {
		ord.Items = append(ord.Items, LineItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		})
	}

	placed, err := s.repo.Checkout(ord, cartSessionID)
	if err != nil {
		return Order{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(placed); err != nil {
			fmt.Printf("warning: failed to send order confirmation for %s: %v\n", placed.OrderNumber, err)
		}
	}
	return placed, nil
}

// Cancel is the customer-facing cancellation. The order must belong to the
// caller; the state machine enforces the cancellation window.
func (s *Service) Cancel(orderID, userID int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrForbidden
	}

	old := ord.Status
	updated, err := s.repo.UpdateStatus(orderID, StatusCancelled, ActorCustomer,
		"Order cancelled by customer", s.now().UTC())
	if err != nil {
		return Order{}, err
	}
	s.notifyStatusChanged(updated, old, ActorCustomer)
	return updated, nil
}

// SetStatus is the admin status update. An empty description gets a generated
// one so the tracking trail stays readable.
func (s *Service) SetStatus(orderID int, next Status, description string) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}

	old := ord.Status
	if description == "" {
		description = fmt.Sprintf("Order status updated from %s to %s", old, next)
	}
	updated, err := s.repo.UpdateStatus(orderID, next, ActorAdmin, description, s.now().UTC())
	if err != nil {
		return Order{}, err
	}
	s.notifyStatusChanged(updated, old, ActorAdmin)
	return updated, nil
}

func (s *Service) notifyStatusChanged(ord Order, old Status, actor Actor) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.OrderStatusChanged(ord, old, actor); err != nil {
		fmt.Printf("warning: failed to send status update for %s: %v\n", ord.OrderNumber, err)
	}
}

// Track looks an order up by its public order number.
func (s *Service) Track(number string) (Order, error) {
	return s.repo.GetByNumber(number)
}

// Get returns one order, enforcing ownership for non-admin callers.
func (s *Service) Get(orderID, userID int, isAdmin bool) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if !isAdmin && ord.UserID != userID {
		return Order{}, ErrForbidden
	}
	return ord, nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) List() ([]Order, error) {
	return s.repo.List()
}
