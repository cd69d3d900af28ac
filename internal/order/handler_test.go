package order

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/awwalu253-ctrl/captain-signature/internal/cart"
	"github.com/awwalu253-ctrl/captain-signature/internal/product"
	"github.com/awwalu253-ctrl/captain-signature/internal/settings"
	"github.com/awwalu253-ctrl/captain-signature/internal/user"
)

type orderFixture struct {
	app     *fiber.App
	catalog *product.InMemoryRepository
	carts   *cart.InMemoryStore
	service *Service
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	catalog := testCatalog()
	carts := cart.NewInMemoryStore()

	userService := user.NewService(user.NewInMemoryRepository([]user.User{
		{ID: 7, Username: "ada", Email: "ada@example.com"},
		{ID: 8, Username: "bola", Email: "bola@example.com"},
	}))
	settingsService := settings.NewService(settings.NewInMemoryRepository(settings.Defaults()))
	cartService := cart.NewService(carts)

	service := NewService(NewInMemoryRepository(catalog, carts), nil)
	handler := NewHandler(service, cartService, settingsService, userService)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims := jwt.MapClaims{"user_id": id}
				if c.Get("X-Admin") == "1" {
					claims["is_admin"] = true
				}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	handler.RegisterPublicRoutes(app)
	handler.RegisterProtectedRoutes(app)
	handler.RegisterAdminRoutes(app)

	return &orderFixture{app: app, catalog: catalog, carts: carts, service: service}
}

func (f *orderFixture) seedCart(t *testing.T, sessionID string, productID, qty int, price float64) {
	t.Helper()
	crt, _ := f.carts.Load(sessionID)
	crt.Add(productID, qty, price, "", "")
	if err := f.carts.Save(sessionID, crt); err != nil {
		t.Fatal(err)
	}
}

const shippingBody = `{
	"shippingName": "Ada Obi",
	"shippingAddress": "12 Marina Road",
	"shippingCity": "Ikeja",
	"shippingState": "Lagos",
	"shippingPhone": "08031234567"
}`

func (f *orderFixture) checkout(t *testing.T, body, userID, session string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)
	req.Header.Set("Cookie", "cart_session="+session)
	res, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestCheckoutEndpoint(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(t, "test-session", 1, 2, 1000)

	status, body := f.checkout(t, shippingBody, "7", "test-session")
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}
	if !strings.Contains(body, `"orderNumber":"ORD-`) {
		t.Fatalf("expected order number in response: %s", body)
	}
	if !strings.Contains(body, `"totalAmount":3500`) {
		t.Fatalf("expected total 3500 in response: %s", body)
	}

	p, _ := f.catalog.GetByID(1)
	if p.Stock != 3 {
		t.Fatalf("expected stock 3 after checkout, got %d", p.Stock)
	}
	crt, _ := f.carts.Load("test-session")
	if crt.ItemsCount() != 0 {
		t.Fatalf("expected cart cleared, got %d lines", crt.ItemsCount())
	}
}

func TestCheckoutEndpoint_EmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	status, body := f.checkout(t, shippingBody, "7", "empty-session")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d: %s", status, body)
	}
	if !strings.Contains(body, "cart is empty") {
		t.Fatalf("unexpected message: %s", body)
	}
}

func TestCheckoutEndpoint_InvalidState(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(t, "test-session", 1, 1, 1000)

	body := strings.Replace(shippingBody, "Lagos", "Atlantis", 1)
	status, got := f.checkout(t, body, "7", "test-session")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid state, got %d", status)
	}
	if !strings.Contains(got, "valid Nigerian state") {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestCheckoutEndpoint_InsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(t, "test-session", 2, 5, 4000)

	status, body := f.checkout(t, shippingBody, "7", "test-session")
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", status, body)
	}
	if !strings.Contains(body, `"available":2`) {
		t.Fatalf("expected stock details in response: %s", body)
	}

	// the failed checkout must leave the cart intact for the shopper to fix
	crt, _ := f.carts.Load("test-session")
	if crt.ItemsCount() != 1 {
		t.Fatalf("cart should survive a failed checkout, got %d lines", crt.ItemsCount())
	}
}

func TestCheckoutEndpoint_Unauthenticated(t *testing.T) {
	f := newOrderFixture(t)

	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(shippingBody))
	req.Header.Set("Content-Type", "application/json")
	res, _ := f.app.Test(req, -1)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestTrackEndpointHidesAccountDetails(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(t, "test-session", 1, 1, 1000)

	_, body := f.checkout(t, shippingBody, "7", "test-session")
	numberStart := strings.Index(body, "ORD-")
	number := body[numberStart : numberStart+19]

	req := httptest.NewRequest("GET", "/api/v1/orders/track/"+number, nil)
	res, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), number) {
		t.Fatalf("expected order number in tracking response: %s", string(b))
	}
	if strings.Contains(string(b), "Marina Road") {
		t.Fatalf("tracking response leaked shipping details: %s", string(b))
	}
}

func TestCancelEndpoint(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(t, "test-session", 1, 2, 1000)

	status, body := f.checkout(t, shippingBody, "7", "test-session")
	if status != fiber.StatusCreated {
		t.Fatalf("checkout failed: %s", body)
	}

	// another user cannot cancel it
	req := httptest.NewRequest("POST", "/api/v1/orders/1/cancel", nil)
	req.Header.Set("X-User-ID", "8")
	res, _ := f.app.Test(req, -1)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for foreign order, got %d", res.StatusCode)
	}

	// the owner can
	req2 := httptest.NewRequest("POST", "/api/v1/orders/1/cancel", nil)
	req2.Header.Set("X-User-ID", "7")
	res2, _ := f.app.Test(req2, -1)
	if res2.StatusCode != fiber.StatusOK {
		b, _ := io.ReadAll(res2.Body)
		t.Fatalf("expected 200, got %d: %s", res2.StatusCode, string(b))
	}

	p, _ := f.catalog.GetByID(1)
	if p.Stock != 5 {
		t.Fatalf("expected stock restored to 5, got %d", p.Stock)
	}

	// cancelling again conflicts with the terminal state
	res3, _ := f.app.Test(req2, -1)
	if res3.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for double cancel, got %d", res3.StatusCode)
	}
}

func TestAdminStatusEndpoint(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(t, "test-session", 1, 1, 1000)
	if status, body := f.checkout(t, shippingBody, "7", "test-session"); status != fiber.StatusCreated {
		t.Fatalf("checkout failed: %s", body)
	}

	// non-admin is rejected
	req := httptest.NewRequest("PATCH", "/api/v1/admin/orders/1/status",
		strings.NewReader(`{"status":"processing"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := f.app.Test(req, -1)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}

	// admin moves the order along
	req2 := httptest.NewRequest("PATCH", "/api/v1/admin/orders/1/status",
		strings.NewReader(`{"status":"processing"}`))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-ID", "9")
	req2.Header.Set("X-Admin", "1")
	res2, _ := f.app.Test(req2, -1)
	if res2.StatusCode != fiber.StatusOK {
		b, _ := io.ReadAll(res2.Body)
		t.Fatalf("expected 200, got %d: %s", res2.StatusCode, string(b))
	}

	// a backwards transition conflicts
	req3 := httptest.NewRequest("PATCH", "/api/v1/admin/orders/1/status",
		strings.NewReader(`{"status":"processing"}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "9")
	req3.Header.Set("X-Admin", "1")
	res3, _ := f.app.Test(req3, -1)
	if res3.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for repeated status, got %d", res3.StatusCode)
	}
}

func TestListOrdersScopedToUser(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(t, "s7", 1, 1, 1000)
	f.seedCart(t, "s8", 1, 1, 1000)
	if status, body := f.checkout(t, shippingBody, "7", "s7"); status != fiber.StatusCreated {
		t.Fatalf("checkout failed: %s", body)
	}
	if status, body := f.checkout(t, shippingBody, "8", "s8"); status != fiber.StatusCreated {
		t.Fatalf("checkout failed: %s", body)
	}

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ := f.app.Test(req, -1)
	b, _ := io.ReadAll(res.Body)
	if strings.Count(string(b), `"orderNumber"`) != 1 {
		t.Fatalf("expected exactly the caller's order, got %s", string(b))
	}

	// admin listing sees both
	req2 := httptest.NewRequest("GET", "/api/v1/admin/orders", nil)
	req2.Header.Set("X-User-ID", "9")
	req2.Header.Set("X-Admin", "1")
	res2, _ := f.app.Test(req2, -1)
	b2, _ := io.ReadAll(res2.Body)
	if strings.Count(string(b2), `"orderNumber"`) != 2 {
		t.Fatalf("expected two orders for admin, got %s", string(b2))
	}
}
