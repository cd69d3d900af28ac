package product

// Product maps to the `products` table. Stock is the live available count;
// it is decremented inside the checkout transaction and restored when an
// order is cancelled, never mutated directly by handlers.
type Product struct {
	ID          int     `json:"productId"`
	Name        string  `json:"productName"`
	Description string  `json:"productDesc"`
	Price       float64 `json:"productPrice"`
	Category    string  `json:"category"`
	Image       *string `json:"productImg,omitempty"`
	Stock       int     `json:"stock"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// AllowedCategories contains the supported product categories used across the app.
var AllowedCategories = []string{
	"mens",
	"womens",
	"accessories",
	"footwear",
}

func ValidCategory(category string) bool {
	for _, c := range AllowedCategories {
		if c == category {
			return true
		}
	}
	return false
}
