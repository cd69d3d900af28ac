package cart

import (
	"encoding/json"
	"testing"
)

func TestAdd_MergesQuantities(t *testing.T) {
	c := New()
	c.Add(1, 2, 500, "Kaftan", "")
	c.Add(1, 3, 500, "Kaftan", "")

	if c.ItemsCount() != 1 {
		t.Fatalf("expected a single entry, got %d", c.ItemsCount())
	}
	it, ok := c.Get(1)
	if !ok || it.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", it)
	}
}

func TestUpdate_ZeroRemoves(t *testing.T) {
	c := New()
	c.Add(1, 2, 500, "Kaftan", "")
	c.Update(1, 0)

	if _, ok := c.Get(1); ok {
		t.Fatalf("expected item removed on zero-quantity update")
	}
	if c.ItemsCount() != 0 || c.TotalItems() != 0 {
		t.Fatalf("expected empty cart, got %d entries / %d units", c.ItemsCount(), c.TotalItems())
	}
}

func TestUpdate_UnknownProductIsNoOp(t *testing.T) {
	c := New()
	c.Add(1, 2, 500, "Kaftan", "")
	c.Update(99, 4)

	if c.ItemsCount() != 1 {
		t.Fatalf("update of unknown product changed the cart: %d entries", c.ItemsCount())
	}
	if _, ok := c.Get(99); ok {
		t.Fatalf("update must not insert new lines")
	}
}

func TestRemove_UnknownProductIsNoOp(t *testing.T) {
	c := New()
	c.Add(1, 1, 500, "Kaftan", "")
	c.Remove(99)
	if c.ItemsCount() != 1 {
		t.Fatalf("expected cart unchanged, got %d entries", c.ItemsCount())
	}
}

func TestTotals(t *testing.T) {
	c := New()
	c.Add(1, 2, 500, "Kaftan", "")
	c.Add(2, 1, 1000, "Agbada", "")

	if got := c.Subtotal(); got != 2000 {
		t.Fatalf("expected subtotal 2000, got %v", got)
	}
	if got := c.TotalItems(); got != 3 {
		t.Fatalf("expected 3 units, got %d", got)
	}
	if got := c.ItemsCount(); got != 2 {
		t.Fatalf("expected 2 distinct lines, got %d", got)
	}

	c.Update(1, 1)
	c.Remove(2)
	if got := c.TotalItems(); got != 1 {
		t.Fatalf("expected 1 unit after mutations, got %d", got)
	}
	if got := c.Subtotal(); got != 500 {
		t.Fatalf("expected subtotal 500, got %v", got)
	}
}

func TestEmptyCartTotals(t *testing.T) {
	c := New()
	if c.Subtotal() != 0 || c.TotalItems() != 0 || c.ItemsCount() != 0 {
		t.Fatalf("empty cart must report zeroes")
	}
}

func TestItems_StableOrder(t *testing.T) {
	c := New()
	c.Add(3, 1, 10, "C", "")
	c.Add(1, 1, 10, "A", "")
	c.Add(2, 1, 10, "B", "")
	c.Add(3, 1, 10, "C", "") // merge keeps original position

	items := c.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(items))
	}
	want := []int{3, 1, 2}
	for i, it := range items {
		if it.ProductID != want[i] {
			t.Fatalf("unexpected order at %d: got %d, want %d", i, it.ProductID, want[i])
		}
	}
}

func TestFromItems_DropsMalformedEntries(t *testing.T) {
	c := FromItems([]Item{
		{ProductID: 1, Quantity: 2, UnitPrice: 500, Name: "Kaftan"},
		{ProductID: 0, Quantity: 3},  // missing product id
		{ProductID: 4, Quantity: 0},  // zero quantity row must not exist
		{ProductID: 5, Quantity: -1}, // negative quantity
	})

	if c.ItemsCount() != 1 {
		t.Fatalf("expected malformed entries dropped, got %d entries", c.ItemsCount())
	}
	if c.TotalItems() != 2 {
		t.Fatalf("expected 2 units, got %d", c.TotalItems())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := New()
	c.Add(1, 2, 500, "Kaftan", "user_uploads:k.jpg")
	c.Add(2, 1, 1000, "Agbada", "")

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}

	restored := New()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatal(err)
	}
	if restored.Subtotal() != 2000 || restored.TotalItems() != 3 {
		t.Fatalf("round trip lost data: subtotal %v, units %d", restored.Subtotal(), restored.TotalItems())
	}
	it, _ := restored.Get(1)
	if it.Name != "Kaftan" || it.Image != "user_uploads:k.jpg" {
		t.Fatalf("round trip lost item fields: %+v", it)
	}
}

func TestUnmarshal_LegacyMapShapes(t *testing.T) {
	// old session rows stored {"pid": {item}} or {"pid": qty}
	c := New()
	if err := json.Unmarshal([]byte(`{"7":{"quantity":2,"unitPrice":1500,"name":"Cap"},"9":3}`), c); err != nil {
		t.Fatal(err)
	}
	if c.ItemsCount() != 2 {
		t.Fatalf("expected 2 entries from legacy map, got %d", c.ItemsCount())
	}
	it, ok := c.Get(7)
	if !ok || it.Quantity != 2 || it.UnitPrice != 1500 {
		t.Fatalf("legacy item not restored: %+v", it)
	}
	if it2, _ := c.Get(9); it2.Quantity != 3 {
		t.Fatalf("legacy qty-only entry not restored: %+v", it2)
	}
}

func TestUnmarshal_GarbageResetsCart(t *testing.T) {
	c := New()
	c.Add(1, 1, 10, "A", "")
	if err := json.Unmarshal([]byte(`"not a cart"`), c); err != nil {
		t.Fatalf("garbage payload must not error, got %v", err)
	}
	if c.ItemsCount() != 0 {
		t.Fatalf("expected reset cart, got %d entries", c.ItemsCount())
	}
}
