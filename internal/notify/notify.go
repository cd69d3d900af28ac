package notify

import (
	"log"

	"github.com/awwalu253-ctrl/captain-signature/internal/order"
)

// LogNotifier writes order events to the application log. It stands in for
// the email notifier until an SMTP provider is configured; the order package
// already tolerates notifier failures, so swapping implementations is safe.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) OrderPlaced(ord order.Order) error {
	log.Printf("order %s placed by user %d: %d line(s), total %.2f",
		ord.OrderNumber, ord.UserID, len(ord.Items), ord.Total)
	return nil
}

func (n *LogNotifier) OrderStatusChanged(ord order.Order, old order.Status, actor order.Actor) error {
	log.Printf("order %s status changed %s -> %s by %s", ord.OrderNumber, old, ord.Status, actor)
	return nil
}
