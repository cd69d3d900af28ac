package order

import (
	"fmt"
	"sync"
	"time"

	"github.com/awwalu253-ctrl/captain-signature/internal/cart"
	"github.com/awwalu253-ctrl/captain-signature/internal/product"
)

// Repository persists orders. Checkout and UpdateStatus are atomic: either
// every effect (order rows, stock changes, tracking event, cart clear) lands
// or none do.
type Repository interface {
	Checkout(ord Order, cartSessionID string) (Order, error)
	GetByID(id int) (Order, error)
	GetByNumber(number string) (Order, error)
	ListByUser(userID int) ([]Order, error)
	List() ([]Order, error)
	UpdateStatus(id int, next Status, actor Actor, description string, now time.Time) (Order, error)
}

// StockCatalog is the slice of the product repository the in-memory order
// repository needs: a stock read and an atomic guarded adjustment.
type StockCatalog interface {
	GetByID(id int) (product.Product, error)
	AdjustStock(id int, delta int) (product.Product, error)
}

// InMemoryRepository backs tests and local scenarios. A single mutex
// serializes checkouts so the stock check and decrement cannot interleave
// between concurrent callers, mirroring the row locks the Postgres
// implementation takes.
type InMemoryRepository struct {
	mu      sync.Mutex
	orders  []Order
	nextID  int
	catalog StockCatalog
	carts   cart.Store
}

func NewInMemoryRepository(catalog StockCatalog, carts cart.Store) *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, catalog: catalog, carts: carts}
}

func (r *InMemoryRepository) Checkout(ord Order, cartSessionID string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// validate every line against live stock before touching anything
	for i := range ord.Items {
		it := &ord.Items[i]
		p, err := r.catalog.GetByID(it.ProductID)
		if err != nil {
			return Order{}, fmt.Errorf("product %d: %w", it.ProductID, ErrProductMissing)
		}
		if it.Quantity > p.Stock {
			return Order{}, &InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Requested: it.Quantity,
				Available: p.Stock,
			}
		}
		// snapshot catalog fields at this instant
		it.Name = p.Name
		if p.Image != nil {
			it.Image = *p.Image
		}
	}

	for i := range ord.Items {
		if _, err := r.catalog.AdjustStock(ord.Items[i].ProductID, -ord.Items[i].Quantity); err != nil {
			// undo the decrements already applied
			for j := 0; j < i; j++ {
				r.catalog.AdjustStock(ord.Items[j].ProductID, ord.Items[j].Quantity)
			}
			return Order{}, err
		}
	}

	ord.ID = r.nextID
	r.nextID++
	for i := range ord.Items {
		ord.Items[i].ID = i + 1
	}
	ord.Tracking = append(ord.Tracking, TrackingEvent{
		ID:          1,
		Status:      ord.Status,
		Description: "Order placed successfully",
		Actor:       ActorSystem,
		Timestamp:   ord.OrderDate,
	})
	r.orders = append(r.orders, cloneOrder(ord))

	if r.carts != nil && cartSessionID != "" {
		r.carts.Delete(cartSessionID)
	}
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ord := range r.orders {
		if ord.ID == id {
			return cloneOrder(ord), nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) GetByNumber(number string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ord := range r.orders {
		if ord.OrderNumber == number {
			return cloneOrder(ord), nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UserID == userID {
			out = append(out, cloneOrder(ord))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) List() ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0, len(r.orders))
	for _, ord := range r.orders {
		out = append(out, cloneOrder(ord))
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id int, next Status, actor Actor, description string, now time.Time) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID != id {
			continue
		}
		ord := &r.orders[i]

		if err := Transition(ord.Status, next, actor, ord.OrderDate, now); err != nil {
			return Order{}, err
		}

		if next == StatusCancelled {
			for _, it := range ord.Items {
				r.catalog.AdjustStock(it.ProductID, it.Quantity)
			}
		}

		ord.Status = next
		if next == StatusDelivered {
			delivered := now
			ord.DeliveredDate = &delivered
		}
		ord.Tracking = append(ord.Tracking, TrackingEvent{
			ID:          len(ord.Tracking) + 1,
			Status:      next,
			Description: description,
			Actor:       actor,
			Timestamp:   now,
		})
		return cloneOrder(*ord), nil
	}
	return Order{}, ErrNotFound
}

func cloneOrder(ord Order) Order {
	out := ord
	out.Items = make([]LineItem, len(ord.Items))
	copy(out.Items, ord.Items)
	out.Tracking = make([]TrackingEvent, len(ord.Tracking))
	copy(out.Tracking, ord.Tracking)
	return out
}
