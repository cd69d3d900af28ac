package order

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const (
	lockProductQuery = `SELECT "productName", "productImg", stock FROM products WHERE "productId" = $1 FOR UPDATE`

	insertOrderQuery = `
		INSERT INTO orders ("orderNumber", "userID", "orderDate", status,
			subtotal, "deliveryFee", "totalAmount",
			"shippingName", "shippingAddress", "shippingCity", "shippingState", "shippingPhone", "shippingEmail",
			"paymentMethod", "paymentStatus", "customerNotes")
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING "orderID"
	`
	insertItemQuery = `
		INSERT INTO order_items ("orderID", "productID", quantity, price, "productName", "productImage")
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`
	insertTrackingQuery = `
		INSERT INTO order_tracking ("orderID", status, description, "updatedBy", "timestamp")
		VALUES ($1,$2,$3,$4,$5)
	`
	decrementStockQuery = `UPDATE products SET stock = stock - $1 WHERE "productId" = $2`
	restoreStockQuery   = `UPDATE products SET stock = stock + $1 WHERE "productId" = $2`
	deleteCartQuery     = `DELETE FROM carts WHERE "sessionId" = $1`

	selectOrderColumns = `
		"orderID", "orderNumber", "userID", "orderDate", status,
		subtotal, "deliveryFee", "totalAmount",
		"shippingName", "shippingAddress", "shippingCity", "shippingState", "shippingPhone", "shippingEmail",
		"paymentMethod", "paymentStatus", "customerNotes", "adminNotes", "trackingNumber", carrier, "deliveredDate"
	`
)

// Checkout converts a priced order into durable rows inside one transaction.
// Each product row is locked before its stock is checked, so two concurrent
// checkouts for the last unit cannot both pass validation: the second blocks
// on the lock and re-reads the decremented stock.
func (r *PostgresRepository) Checkout(ord Order, cartSessionID string) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	for i := range ord.Items {
		it := &ord.Items[i]

		var name string
		var image sql.NullString
		var stock int
		err := tx.QueryRow(lockProductQuery, it.ProductID).Scan(&name, &image, &stock)
		if err == sql.ErrNoRows {
			return Order{}, ErrProductMissing
		}
		if err != nil {
			return Order{}, err
		}
		if it.Quantity > stock {
			return Order{}, &InsufficientStockError{
				ProductID: it.ProductID,
				Name:      name,
				Requested: it.Quantity,
				Available: stock,
			}
		}

		it.Name = name
		it.Image = image.String
	}

	err = tx.QueryRow(insertOrderQuery,
		ord.OrderNumber, ord.UserID, ord.OrderDate, ord.Status,
		ord.Subtotal, ord.DeliveryFee, ord.Total,
		ord.ShippingName, ord.ShippingAddress, ord.ShippingCity, ord.ShippingState, ord.ShippingPhone, ord.ShippingEmail,
		ord.PaymentMethod, ord.PaymentStatus, ord.CustomerNotes,
	).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}

	for i := range ord.Items {
		it := &ord.Items[i]
		if err := tx.QueryRow(insertItemQuery,
			ord.ID, it.ProductID, it.Quantity, it.Price, it.Name, it.Image).Scan(&it.ID); err != nil {
			return Order{}, err
		}
		if _, err := tx.Exec(decrementStockQuery, it.Quantity, it.ProductID); err != nil {
			return Order{}, err
		}
	}

	if _, err := tx.Exec(insertTrackingQuery,
		ord.ID, ord.Status, "Order placed successfully", ActorSystem, ord.OrderDate); err != nil {
		return Order{}, err
	}

	if cartSessionID != "" {
		if _, err := tx.Exec(deleteCartQuery, cartSessionID); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}

	ord.Tracking = append(ord.Tracking, TrackingEvent{
		Status:      ord.Status,
		Description: "Order placed successfully",
		Actor:       ActorSystem,
		Timestamp:   ord.OrderDate,
	})
	return ord, nil
}

// UpdateStatus applies a validated status transition. Cancelling restores
// every line's stock in the same transaction as the status change.
func (r *PostgresRepository) UpdateStatus(id int, next Status, actor Actor, description string, now time.Time) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	var current Status
	var placedAt time.Time
	err = tx.QueryRow(`SELECT status, "orderDate" FROM orders WHERE "orderID" = $1 FOR UPDATE`, id).
		Scan(&current, &placedAt)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	if err := Transition(current, next, actor, placedAt, now); err != nil {
		return Order{}, err
	}

	if next == StatusDelivered {
		_, err = tx.Exec(`UPDATE orders SET status = $1, "deliveredDate" = $2 WHERE "orderID" = $3`, next, now, id)
	} else {
		_, err = tx.Exec(`UPDATE orders SET status = $1 WHERE "orderID" = $2`, next, id)
	}
	if err != nil {
		return Order{}, err
	}

	if next == StatusCancelled {
		rows, err := tx.Query(`SELECT "productID", quantity FROM order_items WHERE "orderID" = $1`, id)
		if err != nil {
			return Order{}, err
		}
		type line struct{ productID, quantity int }
		var lines []line
		for rows.Next() {
			var l line
			if err := rows.Scan(&l.productID, &l.quantity); err != nil {
				rows.Close()
				return Order{}, err
			}
			lines = append(lines, l)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return Order{}, err
		}
		for _, l := range lines {
			if _, err := tx.Exec(restoreStockQuery, l.quantity, l.productID); err != nil {
				return Order{}, err
			}
		}
	}

	if _, err := tx.Exec(insertTrackingQuery, id, next, description, actor, now); err != nil {
		return Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	return r.getOne(`SELECT `+selectOrderColumns+` FROM orders WHERE "orderID" = $1`, id)
}

func (r *PostgresRepository) GetByNumber(number string) (Order, error) {
	return r.getOne(`SELECT `+selectOrderColumns+` FROM orders WHERE "orderNumber" = $1`, number)
}

func (r *PostgresRepository) getOne(query string, arg any) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	if ord.Items, err = r.loadItems(ord.ID); err != nil {
		return Order{}, err
	}
	if ord.Tracking, err = r.loadTracking(ord.ID); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.list(`SELECT `+selectOrderColumns+` FROM orders WHERE "userID" = $1 ORDER BY "orderDate" DESC`, userID)
}

func (r *PostgresRepository) List() ([]Order, error) {
	return r.list(`SELECT ` + selectOrderColumns + ` FROM orders ORDER BY "orderDate" DESC`)
}

func (r *PostgresRepository) list(query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].Items, err = r.loadItems(orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *PostgresRepository) loadItems(orderID int) ([]LineItem, error) {
	rows, err := r.db.Query(`SELECT id, "productID", quantity, price, "productName", "productImage"
		FROM order_items WHERE "orderID" = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]LineItem, 0)
	for rows.Next() {
		var it LineItem
		var image sql.NullString
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.Price, &it.Name, &image); err != nil {
			return nil, err
		}
		it.Image = image.String
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) loadTracking(orderID int) ([]TrackingEvent, error) {
	rows, err := r.db.Query(`SELECT id, status, description, "updatedBy", "timestamp"
		FROM order_tracking WHERE "orderID" = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]TrackingEvent, 0)
	for rows.Next() {
		var ev TrackingEvent
		if err := rows.Scan(&ev.ID, &ev.Status, &ev.Description, &ev.Actor, &ev.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

type orderScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row orderScanner) (Order, error) {
	var ord Order
	var customerNotes, adminNotes, trackingNumber, carrier sql.NullString
	var delivered sql.NullTime
	err := row.Scan(&ord.ID, &ord.OrderNumber, &ord.UserID, &ord.OrderDate, &ord.Status,
		&ord.Subtotal, &ord.DeliveryFee, &ord.Total,
		&ord.ShippingName, &ord.ShippingAddress, &ord.ShippingCity, &ord.ShippingState, &ord.ShippingPhone, &ord.ShippingEmail,
		&ord.PaymentMethod, &ord.PaymentStatus, &customerNotes, &adminNotes, &trackingNumber, &carrier, &delivered)
	if err != nil {
		return Order{}, err
	}
	ord.CustomerNotes = customerNotes.String
	ord.AdminNotes = adminNotes.String
	ord.TrackingNumber = trackingNumber.String
	ord.Carrier = carrier.String
	if delivered.Valid {
		ord.DeliveredDate = &delivered.Time
	}
	return ord, nil
}
