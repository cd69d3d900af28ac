package pricing

// Quote is the price breakdown shown on the cart and checkout pages and
// recorded on the order at checkout time. It is always recomputed from the
// current cart and settings, never cached.
type Quote struct {
	Subtotal     float64 `json:"subtotal"`
	DeliveryFee  float64 `json:"deliveryFee"`
	Total        float64 `json:"total"`
	FreeDelivery bool    `json:"freeDelivery"`
}

// Compute applies the free-delivery rule to a cart subtotal.
// A threshold of zero means the free-delivery feature is disabled, not that
// every order qualifies. The threshold boundary itself is inclusive.
func Compute(subtotal, deliveryFee, freeDeliveryThreshold float64) Quote {
	q := Quote{Subtotal: subtotal}

	if freeDeliveryThreshold > 0 && subtotal >= freeDeliveryThreshold {
		q.DeliveryFee = 0
		q.FreeDelivery = true
	} else {
		q.DeliveryFee = deliveryFee
	}

	q.Total = q.Subtotal + q.DeliveryFee
	return q
}
