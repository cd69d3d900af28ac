package settings

// Settings holds the storefront-wide pricing configuration. A single row is
// kept in the database and created on demand with these defaults.
type Settings struct {
	ID                    int     `json:"id,omitempty"`
	DeliveryFee           float64 `json:"deliveryFee"`
	FreeDeliveryThreshold float64 `json:"freeDeliveryThreshold"`
	Currency              string  `json:"currency"`
	SiteName              string  `json:"siteName"`
	UpdatedAt             string  `json:"updatedAt,omitempty"`
}

// Defaults returns the settings used when no row exists yet or the store is
// unreachable. Delivery is a flat ₦1500; the free-delivery threshold starts
// disabled.
func Defaults() Settings {
	return Settings{
		DeliveryFee:           1500,
		FreeDeliveryThreshold: 0,
		Currency:              "₦",
		SiteName:              "Captain Signature",
	}
}
