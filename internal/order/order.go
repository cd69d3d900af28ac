package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Order is an immutable purchase snapshot. Line items carry the price, name
// and image captured at checkout so later catalog edits never rewrite
// history; only Status (plus its tracking trail) changes after creation.
type Order struct {
	ID          int       `json:"orderID"`
	OrderNumber string    `json:"orderNumber"`
	UserID      int       `json:"userID"`
	OrderDate   time.Time `json:"orderDate"`
	Status      Status    `json:"status"`

	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"totalAmount"`

	ShippingName    string `json:"shippingName"`
	ShippingAddress string `json:"shippingAddress"`
	ShippingCity    string `json:"shippingCity"`
	ShippingState   string `json:"shippingState"`
	ShippingPhone   string `json:"shippingPhone"`
	ShippingEmail   string `json:"shippingEmail"`

	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus"`

	CustomerNotes  string     `json:"customerNotes,omitempty"`
	AdminNotes     string     `json:"adminNotes,omitempty"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	Carrier        string     `json:"carrier,omitempty"`
	DeliveredDate  *time.Time `json:"deliveredDate,omitempty"`

	Items    []LineItem      `json:"items"`
	Tracking []TrackingEvent `json:"tracking,omitempty"`
}

// LineItem is one purchased product line. Price is the unit price the
// shopper saw in the cart; Name and Image come from the catalog at the
// moment of checkout.
type LineItem struct {
	ID        int     `json:"id,omitempty"`
	ProductID int     `json:"productID"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"productName"`
	Image     string  `json:"productImage,omitempty"`
}

// TrackingEvent is one entry in an order's append-only audit trail.
type TrackingEvent struct {
	ID          int       `json:"id,omitempty"`
	Status      Status    `json:"status"`
	Description string    `json:"description"`
	Actor       Actor     `json:"updatedBy"`
	Timestamp   time.Time `json:"timestamp"`
}

// Payment methods and states. Checkout is payment-method-agnostic: the
// method is recorded on the order and any gateway confirmation happens
// before the route calls into this package.
const (
	PaymentCashOnDelivery = "cash_on_delivery"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// NigeriaStates is the list of valid shipping states (delivery is Nigeria
// only).
var NigeriaStates = []string{
	"Abia", "Adamawa", "Akwa Ibom", "Anambra", "Bauchi", "Bayelsa", "Benue",
	"Borno", "Cross River", "Delta", "Ebonyi", "Edo", "Ekiti", "Enugu",
	"FCT - Abuja", "Gombe", "Imo", "Jigawa", "Kaduna", "Kano", "Katsina",
	"Kebbi", "Kogi", "Kwara", "Lagos", "Nasarawa", "Niger", "Ogun", "Ondo",
	"Osun", "Oyo", "Plateau", "Rivers", "Sokoto", "Taraba", "Yobe", "Zamfara",
}

func ValidState(state string) bool {
	for _, s := range NigeriaStates {
		if s == state {
			return true
		}
	}
	return false
}

const orderNumberChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderNumber generates an order number like ORD-20250829-X7K2QD.
func NewOrderNumber() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = orderNumberChars[rand.IntN(len(orderNumberChars))]
	}
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
