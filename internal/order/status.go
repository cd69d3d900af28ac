package order

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Actor identifies who initiated a status change.
type Actor string

const (
	ActorSystem   Actor = "system"
	ActorAdmin    Actor = "admin"
	ActorCustomer Actor = "customer"
)

// CancellationWindow is how long after placement a customer may still cancel
// an order that has entered processing. Pending orders can be cancelled at
// any time; admins are not bound by the window.
const CancellationWindow = time.Hour

// Transition validates a status change against the order state machine:
//
//	pending → processing → shipped → delivered, cancelled from pending or
//	processing, delivered and cancelled terminal.
//
// Customers may only cancel. Admins may set any valid status from a
// non-terminal state and may skip intermediate steps. placedAt is the order's
// creation time, used for the customer cancellation window.
func Transition(current, next Status, actor Actor, placedAt, now time.Time) error {
	if !next.Valid() {
		return &InvalidTransitionError{From: current, To: next, Reason: "unknown status"}
	}
	if current.Terminal() {
		return &InvalidTransitionError{From: current, To: next, Reason: "order is " + string(current)}
	}
	if next == current {
		return &InvalidTransitionError{From: current, To: next, Reason: "order is already " + string(current)}
	}

	if next == StatusCancelled {
		switch current {
		case StatusPending:
			return nil
		case StatusProcessing:
			if actor == ActorAdmin {
				return nil
			}
			if now.Sub(placedAt) < CancellationWindow {
				return nil
			}
			return &InvalidTransitionError{From: current, To: next,
				Reason: "cancellation window has expired"}
		default:
			return &InvalidTransitionError{From: current, To: next,
				Reason: "order has already been " + string(current)}
		}
	}

	if actor != ActorAdmin {
		return &InvalidTransitionError{From: current, To: next,
			Reason: "only an admin can set this status"}
	}
	return nil
}
