package cart

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Item is one product line in a shopper's basket. UnitPrice, Name and Image
// are captured when the product is first added so the cart renders without
// re-querying the catalog on every request.
type Item struct {
	ProductID int     `json:"productID"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
}

func (it Item) valid() bool {
	return it.ProductID > 0 && it.Quantity > 0
}

// Cart maps product ids to items for one shopper session. Insertion order is
// kept so the basket displays in a stable order.
type Cart struct {
	items map[int]*Item
	order []int
}

func New() *Cart {
	return &Cart{items: make(map[int]*Item)}
}

// FromItems rebuilds a cart from stored lines. Malformed entries (missing
// product id or non-positive quantity) are silently dropped: a session cart
// is cheap to reconstruct and must never take a page down.
func FromItems(items []Item) *Cart {
	c := New()
	for _, it := range items {
		if !it.valid() {
			continue
		}
		if existing, ok := c.items[it.ProductID]; ok {
			existing.Quantity += it.Quantity
			continue
		}
		copied := it
		c.items[it.ProductID] = &copied
		c.order = append(c.order, it.ProductID)
	}
	return c
}

// Add merges a line into the cart: an existing product gets its quantity
// incremented, a new one is appended. Callers validate quantity >= 1 against
// the catalog before calling.
func (c *Cart) Add(productID, quantity int, unitPrice float64, name, image string) {
	if existing, ok := c.items[productID]; ok {
		existing.Quantity += quantity
		return
	}
	c.items[productID] = &Item{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Name:      name,
		Image:     image,
	}
	c.order = append(c.order, productID)
}

// Update sets an item's quantity. Zero or negative removes the line; an
// unknown product id is a no-op.
func (c *Cart) Update(productID, quantity int) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	c.items[productID].Quantity = quantity
}

func (c *Cart) Remove(productID int) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Clear() {
	c.items = make(map[int]*Item)
	c.order = nil
}

// Items returns the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		if it, ok := c.items[id]; ok {
			out = append(out, *it)
		}
	}
	return out
}

func (c *Cart) Get(productID int) (Item, bool) {
	if it, ok := c.items[productID]; ok {
		return *it, true
	}
	return Item{}, false
}

// Subtotal is Σ(unitPrice × quantity) over all lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, it := range c.items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}

// TotalItems is the number of units across all lines.
func (c *Cart) TotalItems() int {
	var total int
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// ItemsCount is the number of distinct product lines.
func (c *Cart) ItemsCount() int {
	return len(c.items)
}

// MarshalJSON stores the cart as an ordered item array.
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items())
}

// UnmarshalJSON accepts the item-array shape and falls back to the legacy
// map shapes ({"pid": {item}} and {"pid": qty}) still present in old session
// rows. Whatever the shape, invalid lines are dropped rather than failing.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err == nil {
		*c = *FromItems(items)
		return nil
	}

	var legacy map[string]json.RawMessage
	if err := json.Unmarshal(data, &legacy); err != nil {
		// unreadable payloads reset the cart
		*c = *New()
		return nil
	}

	keys := make([]string, 0, len(legacy))
	for k := range legacy {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rebuilt := make([]Item, 0, len(keys))
	for _, k := range keys {
		pid, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		var it Item
		if err := json.Unmarshal(legacy[k], &it); err == nil && it.Quantity > 0 {
			it.ProductID = pid
			rebuilt = append(rebuilt, it)
			continue
		}
		var qty int
		if err := json.Unmarshal(legacy[k], &qty); err == nil && qty > 0 {
			rebuilt = append(rebuilt, Item{ProductID: pid, Quantity: qty})
		}
	}

	*c = *FromItems(rebuilt)
	return nil
}
